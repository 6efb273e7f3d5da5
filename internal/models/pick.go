package models

import (
	"time"
)

// Pick is one entry of the append-only pick log. A nil PickSample records
// a deleted pick. The effective pick for an (event, channel) pair is the row
// with the latest CreatedTime, ties going to the highest ID.
type Pick struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	EventID        string    `json:"event_id" gorm:"column:event_id;not null;index:idx_picks_event_channel_created,priority:1"`
	ChannelID      string    `json:"channel_id" gorm:"column:channel_id;not null;index:idx_picks_event_channel_created,priority:2"`
	TraceStartTime string    `json:"trace_start_time" gorm:"column:trace_start_time"`
	PickSample     *int64    `json:"pick_sample" gorm:"column:pick_sample"`
	UserID         string    `json:"user_id" gorm:"column:user_id"`
	CreatedTime    time.Time `json:"created_time" gorm:"column:created_time;not null;index:idx_picks_event_channel_created,priority:3"`
}

// TableName returns the table name for the Pick model
func (Pick) TableName() string {
	return "picks"
}

// All returns every model managed by the pick database, in migration order
func All() []any {
	return []any{&Event{}, &Pick{}}
}
