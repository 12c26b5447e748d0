package signal

import (
	"QuantLab/internal/domain/models"
	"QuantLab/internal/services/features"
)

// Position is the state of the hysteresis machine. Transitions only fire on
// strict threshold crossings, so a z-score hovering between exit and entry
// levels holds the current position.
type Position int

const (
	Flat Position = iota
	Long
	Short
)

func (p Position) String() string {
	switch p {
	case Long:
		return "long"
	case Short:
		return "short"
	default:
		return "flat"
	}
}

// Engine generates pairs-trading signals from a ratio series.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// Transition applies one z-score observation. It returns the next state,
// the event kind when a signal fires, and whether one fired.
//
// Flat enters short above +entry and long below -entry. An open position
// exits when z crosses back inside the exit band; re-entry on the opposite
// side requires passing through the band first.
func Transition(state Position, z float64, p models.SignalParams) (Position, models.SignalKind, bool) {
	switch state {
	case Flat:
		if z > p.EntryZ {
			return Short, models.SignalEnterShort, true
		}
		if z < -p.EntryZ {
			return Long, models.SignalEnterLong, true
		}
	case Short:
		if z < p.ExitZ {
			return Flat, models.SignalExit, true
		}
	case Long:
		if z > -p.ExitZ {
			return Flat, models.SignalExit, true
		}
	}
	return state, "", false
}

// Run walks the ratio series with a rolling z-score and collects the
// emitted events. The returned slice of z-scores is aligned with the
// series; indexes before the lookback window fills hold zero.
func (e *Engine) Run(ratio models.PriceSeries, p models.SignalParams) ([]models.SignalEvent, []float64) {
	n := ratio.Len()
	zs := make([]float64, n)
	if p.Lookback < 2 || n < p.Lookback {
		return nil, zs
	}

	var events []models.SignalEvent
	state := Flat
	prices := ratio.Prices()

	for i := p.Lookback - 1; i < n; i++ {
		mean, std := features.RollingStats(prices[:i+1], p.Lookback)
		if std == 0 {
			continue
		}
		z := (prices[i] - mean) / std
		zs[i] = z

		next, kind, fired := Transition(state, z, p)
		state = next
		if fired {
			events = append(events, models.SignalEvent{
				Date: ratio.Points[i].Date,
				Kind: kind,
				Z:    z,
			})
		}
	}
	return events, zs
}
