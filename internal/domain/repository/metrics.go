package repository

// Metrics records computation-level observations.
type Metrics interface {
	RecordCompute(model string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordPathsSimulated(model string, n int)
}
