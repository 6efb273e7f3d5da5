package waveforms

import "errors"

var (
	// ErrInvalidSampleRate is returned when the service is configured with a non-positive rate
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
