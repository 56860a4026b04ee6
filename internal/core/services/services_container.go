package services

import (
	portssvc "github.com/SscSPs/aud_rates_app/internal/core/ports/services"
	portsupstream "github.com/SscSPs/aud_rates_app/internal/core/ports/upstream"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(provider portsupstream.RateProvider, historyOpts ...HistoryServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.LatestRates = NewLatestRatesService(provider)
	container.History = NewHistoryService(provider, historyOpts...)
	// Conversion reuses the latest-rates pipeline for target resolution and rebasing
	container.Conversion = NewConversionService(container.LatestRates)

	return container
}
