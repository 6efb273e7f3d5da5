package models

// Event represents a seismic event that can be reviewed and picked.
// Rows are bulk-loaded before the service runs; only NUserPicks is mutated.
type Event struct {
	EventID                string `json:"event_id" gorm:"column:event_id;primaryKey"`
	ReferencePickChannelID string `json:"reference_pick_channel_id" gorm:"column:reference_pick_channel_id"`
	TraceStartTime         string `json:"trace_start_time" gorm:"column:trace_start_time"`
	NReferencePicks        int    `json:"n_reference_picks" gorm:"column:n_reference_picks;not null;default:0"`
	NUserPicks             int    `json:"n_user_picks" gorm:"column:n_user_picks;not null;default:0;index"`
}

// TableName returns the table name for the Event model
func (Event) TableName() string {
	return "events"
}

// Picked reports whether the event has at least one user pick
func (e Event) Picked() bool {
	return e.NUserPicks > 0
}
