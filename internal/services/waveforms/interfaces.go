package waveforms

import (
	"context"

	"github.com/killallgit/seispick/internal/services/events"
)

// SampleLoader loads one channel's samples
type SampleLoader interface {
	LoadChannel(ctx context.Context, eventID, channel string) (*events.Samples, error)
}

// WaveformService defines the interface for waveform operations
type WaveformService interface {
	// GetXY returns the time axis followed by the samples as raw native-endian
	// floats. It never fails on unreadable channels.
	GetXY(ctx context.Context, eventID, channel string) ([]byte, error)

	// LoadXY is GetXY with the element type of the encoded buffer
	LoadXY(ctx context.Context, eventID, channel string) (*XY, error)
}

// XY is an encoded waveform buffer
type XY struct {
	DType events.DType
	Data  []byte
}

// Size is the number of bytes the buffer holds
func (xy *XY) Size() int64 {
	return int64(len(xy.Data))
}
