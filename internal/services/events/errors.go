package events

import "errors"

var (
	// ErrMetadataNotFound is returned when an event has no metadata document
	ErrMetadataNotFound = errors.New("event metadata not found")

	// ErrChannelNotFound is returned when a channel sample file does not exist
	ErrChannelNotFound = errors.New("channel samples not found")

	// ErrUnsupportedDType is returned for sample arrays that are not float32 or float64
	ErrUnsupportedDType = errors.New("unsupported sample dtype")

	// ErrInvalidIdentifier is returned for event or channel IDs that are not safe path components
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrEventNotFound is returned when an event row does not exist
	ErrEventNotFound = errors.New("event not found")

	// ErrNoEventAvailable is returned when a random selection has no candidates
	ErrNoEventAvailable = errors.New("no event available")
)
