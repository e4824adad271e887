package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one append-only audit record. Details is free-form JSON.
type Entry struct {
	ID        uuid.UUID
	UserID    *int64
	Action    string
	Details   map[string]interface{}
	CreatedAt time.Time
}
