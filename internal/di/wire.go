//go:build wireinject
// +build wireinject

package di

import (
	"QuantLab/pkg/config"
	"QuantLab/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		ProvidePriceStore,

		ProvideSimulator,
		ProvideRiskAnalyzer,
		ProvideForecaster,
		ProvideAllocator,
		ProvideSignalGenerator,

		ProvideLab,
		ProvideCoalescer,
		ProvideHandler,

		ProvideApp,
	)
	return &server.App{}, nil
}
