package risk

import (
	"QuantLab/internal/domain/models"
)

// Histogram partitions the return series into equal-width bins. Display
// only; nothing downstream treats the bins as a risk number.
func (e *Engine) Histogram(returns []float64, bins int) []models.HistogramBin {
	if len(returns) == 0 || bins < 1 {
		return nil
	}
	lo, hi := returns[0], returns[0]
	for _, r := range returns {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	if hi == lo {
		return []models.HistogramBin{{Low: lo, High: hi, Count: len(returns)}}
	}
	width := (hi - lo) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i] = models.HistogramBin{Low: lo + float64(i)*width, High: lo + float64(i+1)*width}
	}
	for _, r := range returns {
		idx := int((r - lo) / width)
		if idx >= bins {
			idx = bins - 1 // hi lands in the last bin
		}
		out[idx].Count++
	}
	return out
}
