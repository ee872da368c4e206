package service

import "time"

// Flyer sources recorded by MetricsRecorder.RecordFlyer.
const (
	FlyerSourceUploaded  = "uploaded"
	FlyerSourceGenerated = "generated"
)

// MetricsRecorder collects operational counters for the HTTP and advert layers.
type MetricsRecorder interface {
	RecordHTTPRequest(method, route string, status int, elapsed time.Duration)
	RecordAuthFailure(reason string)
	RecordFlyer(source string)
}
