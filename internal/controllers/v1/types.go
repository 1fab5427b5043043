package v1

import (
	"time"

	ss_uuid "github.com/spendsense/backend/internal/uuid"
)

type URIID struct {
	ID ss_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// userQuery identifies the user whose data is requested. All data is
// partitioned by user.
type userQuery struct {
	UserID ss_uuid.UUID `form:"user"` // ID of the user
}

// rangeQuery restricts a request to a date range. Zero values leave the
// respective bound open.
type rangeQuery struct {
	userQuery
	From time.Time `form:"from" time_format:"2006-01-02" time_utc:"1" example:"2026-01-01"` // Start of the date range, inclusive
	To   time.Time `form:"to" time_format:"2006-01-02" time_utc:"1" example:"2026-12-31"`   // End of the date range, inclusive
}
