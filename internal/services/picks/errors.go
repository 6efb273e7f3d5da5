package picks

import "errors"

var (
	// ErrMissingPicks is returned when a save request has no picks object
	ErrMissingPicks = errors.New("picks is required")

	// ErrMissingUserID is returned when a save request has no user_id
	ErrMissingUserID = errors.New("user_id is required")
)
