package waveforms

import (
	"encoding/binary"
	"math"

	"github.com/killallgit/seispick/internal/services/events"
)

// fallbackSamples is served in place of a channel that cannot be loaded
func fallbackSamples() *events.Samples {
	return &events.Samples{DType: events.Float32, Float32: make([]float32, 2)}
}

// EncodeXY lays out x = i/sampleRate for every sample, then the samples
// themselves, in the samples' own precision and the host byte order.
func EncodeXY(s *events.Samples, sampleRate float64) []byte {
	n := s.Len()
	size := s.DType.Size()
	buf := make([]byte, 2*n*size)
	order := binary.NativeEndian

	switch s.DType {
	case events.Float64:
		for i := 0; i < n; i++ {
			order.PutUint64(buf[i*8:], math.Float64bits(float64(i)/sampleRate))
		}
		y := buf[n*8:]
		for i, v := range s.Float64 {
			order.PutUint64(y[i*8:], math.Float64bits(v))
		}
	default:
		for i := 0; i < n; i++ {
			order.PutUint32(buf[i*4:], math.Float32bits(float32(float64(i)/sampleRate)))
		}
		y := buf[n*4:]
		for i, v := range s.Float32 {
			order.PutUint32(y[i*4:], math.Float32bits(v))
		}
	}
	return buf
}
