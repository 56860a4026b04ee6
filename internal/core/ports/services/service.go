package services

// ServiceContainer holds instances of all the application services.
// Handlers reach service functionality only through it.
type ServiceContainer struct {
	LatestRates LatestRatesSvc
	History     HistorySvc
	Conversion  ConversionSvc
}
