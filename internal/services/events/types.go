package events

import (
	"encoding/json"
	"fmt"

	"github.com/killallgit/seispick/internal/models"
)

// Metadata is an event's metadata.json document. Numbers are kept as
// json.Number so they round-trip unchanged to the page.
type Metadata map[string]any

// Metadata keys read by the service
const (
	KeyTraceStartTime         = "trace_start_time"
	KeyReferencePickChannelID = "reference_pick_channel_id"
	KeyNReferencePicks        = "n_reference_picks"
	KeyPicks                  = "picks"
)

// TraceStartTime returns trace_start_time in its textual form. Strings are
// returned verbatim and numbers with their JSON spelling.
func (m Metadata) TraceStartTime() (string, error) {
	v, ok := m[KeyTraceStartTime]
	if !ok {
		return "", fmt.Errorf("metadata has no %s", KeyTraceStartTime)
	}
	return scalarString(v)
}

// Clone returns a shallow copy that can be extended without mutating m
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case float64:
		return fmt.Sprintf("%v", t), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected %T value", v)
	}
}

// Event builds an events row from the metadata document
func (m Metadata) Event(eventID string) (*models.Event, error) {
	event := &models.Event{EventID: eventID}

	start, err := m.TraceStartTime()
	if err != nil {
		return nil, err
	}
	event.TraceStartTime = start

	if v, ok := m[KeyReferencePickChannelID]; ok {
		ch, err := scalarString(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyReferencePickChannelID, err)
		}
		event.ReferencePickChannelID = ch
	}

	if v, ok := m[KeyNReferencePicks]; ok {
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected %T value", KeyNReferencePicks, v)
		}
		count, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", KeyNReferencePicks, err)
		}
		event.NReferencePicks = int(count)
	}

	return event, nil
}

// DType names the sample array element type using NumPy descriptors
type DType string

const (
	Float32 DType = "<f4"
	Float64 DType = "<f8"
)

// Size returns the element size in bytes
func (d DType) Size() int {
	if d == Float64 {
		return 8
	}
	return 4
}

// Samples is one channel's sample array. Exactly one of Float32 and
// Float64 is populated, according to DType.
type Samples struct {
	DType   DType
	Float32 []float32
	Float64 []float64
}

// Len returns the number of samples
func (s *Samples) Len() int {
	if s.DType == Float64 {
		return len(s.Float64)
	}
	return len(s.Float32)
}

// Dashboard holds the aggregate counts rendered on the home page
type Dashboard struct {
	Events            []models.Event `json:"event_info"`
	SumUserPicks      int            `json:"sum_user_picks"`
	SumReferencePicks int            `json:"sum_reference_picks"`
	NEventsTotal      int            `json:"n_events_total"`
	NEventsPicked     int            `json:"n_events_picked"`
}

// Summarize computes dashboard totals from a full set of event rows
func Summarize(events []models.Event) *Dashboard {
	d := &Dashboard{
		Events:       events,
		NEventsTotal: len(events),
	}
	if d.Events == nil {
		d.Events = []models.Event{}
	}
	for _, e := range events {
		d.SumUserPicks += e.NUserPicks
		d.SumReferencePicks += e.NReferencePicks
		if e.Picked() {
			d.NEventsPicked++
		}
	}
	return d
}
