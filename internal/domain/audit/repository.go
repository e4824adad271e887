package audit

import "context"

type Repository interface {
	Append(ctx context.Context, entry Entry) error
}

// Recorder is the fire-and-forget facade used by workflows: auditing
// failures are logged and never fail the audited operation.
type Recorder interface {
	Record(ctx context.Context, userID *int64, action string, details map[string]interface{})
}
