package picks

// CounterMode selects what SavePicks writes to events.n_user_picks
type CounterMode string

const (
	// CounterSubmitted stores the number of entries in the submitted mapping
	CounterSubmitted CounterMode = "submitted"
	// CounterEffective stores the number of non-null effective picks after the save
	CounterEffective CounterMode = "effective"
)

// SaveRequest is the body of POST /save_picks/{event_id}. Both fields are
// pointers so that absent keys can be told apart from empty values.
type SaveRequest struct {
	Picks  map[string]*int64 `json:"picks" swaggertype:"object"`
	UserID *string           `json:"user_id"`
}

// Validate checks that both keys were supplied
func (r SaveRequest) Validate() error {
	if r.Picks == nil {
		return ErrMissingPicks
	}
	if r.UserID == nil {
		return ErrMissingUserID
	}
	return nil
}

// SaveResult reports what a save changed
type SaveResult struct {
	Inserted   int `json:"inserted"`
	NUserPicks int `json:"n_user_picks"`
}

// Filter narrows ListPicks and ListEffectivePicks. An empty EventID matches
// every event.
type Filter struct {
	EventID string
}
