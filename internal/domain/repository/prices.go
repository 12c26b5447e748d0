package repository

import (
	"context"

	"QuantLab/internal/domain/models"
)

// PriceStore provides read-only access to historical daily price series.
// The store is an opaque time-ordered data source; series come back
// date-ascending with strictly positive prices.
type PriceStore interface {
	ListSymbols(ctx context.Context) ([]string, error)
	GetSeries(ctx context.Context, symbol string) (models.PriceSeries, error)
	GetLatestN(ctx context.Context, symbol string, n int) (models.PriceSeries, error)
}
