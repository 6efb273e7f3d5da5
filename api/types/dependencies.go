package types

import (
	"github.com/killallgit/seispick/internal/database"
	"github.com/killallgit/seispick/internal/services/events"
	"github.com/killallgit/seispick/internal/services/picks"
	"github.com/killallgit/seispick/internal/services/waveforms"
	"github.com/killallgit/seispick/pkg/metrics"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB              *database.DB
	EventStore      events.Store
	EventService    events.Service
	PickService     picks.Service
	WaveformService waveforms.WaveformService
	Metrics         *metrics.Manager
	Version         string
}
