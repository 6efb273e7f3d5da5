package waveforms

import (
	"context"
	"log/slog"
	"time"

	"github.com/killallgit/seispick/internal/services/cache"
	"github.com/killallgit/seispick/pkg/logger"
	"github.com/killallgit/seispick/pkg/metrics"
)

// DefaultSampleRate is the sampling rate of every channel, in Hz
const DefaultSampleRate = 100.0

// service implements WaveformService
type service struct {
	loader     SampleLoader
	sampleRate float64
	metrics    *metrics.Manager
	cache      cache.Cache[*XY]
	cacheTTL   time.Duration
	log        *slog.Logger
}

// Option configures the waveform service
type Option func(*service)

// WithCache keeps encoded channels in c for ttl. Placeholder traces are
// never cached.
func WithCache(c cache.Cache[*XY], ttl time.Duration) Option {
	return func(s *service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// NewService creates a new waveform service. m may be nil.
func NewService(loader SampleLoader, sampleRate float64, m *metrics.Manager, opts ...Option) (WaveformService, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	s := &service{
		loader:     loader,
		sampleRate: sampleRate,
		metrics:    m,
		log:        logger.Component("waveforms"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetXY loads the channel and encodes it
func (s *service) GetXY(ctx context.Context, eventID, channel string) ([]byte, error) {
	xy, err := s.LoadXY(ctx, eventID, channel)
	if err != nil {
		return nil, err
	}
	return xy.Data, nil
}

// LoadXY loads and encodes the channel. Any load failure is replaced by a
// two-sample float32 zero trace.
func (s *service) LoadXY(ctx context.Context, eventID, channel string) (*XY, error) {
	key := cache.Key(eventID, channel)
	if s.cache != nil {
		if xy, ok := s.cache.Get(ctx, key); ok {
			s.metrics.RecordWaveform(false)
			return xy, nil
		}
	}

	samples, err := s.loader.LoadChannel(ctx, eventID, channel)
	fallback := err != nil
	if fallback {
		s.log.Debug("serving placeholder waveform", "event_id", eventID, "channel", channel, "error", err)
		samples = fallbackSamples()
	}

	xy := &XY{DType: samples.DType, Data: EncodeXY(samples, s.sampleRate)}
	if s.cache != nil && !fallback {
		if err := s.cache.Set(ctx, key, xy, s.cacheTTL); err != nil {
			s.log.Warn("caching waveform", "event_id", eventID, "channel", channel, "error", err)
		}
	}

	s.metrics.RecordWaveform(fallback)
	return xy, nil
}
