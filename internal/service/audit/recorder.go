package audit

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/audit"
)

type recorder struct {
	repo   audit.Repository
	logger *slog.Logger
}

func NewRecorder(repo audit.Repository, logger *slog.Logger) audit.Recorder {
	return &recorder{repo: repo, logger: logger}
}

// Record appends one audit entry. Failures are logged and swallowed; an
// audit hiccup must never fail the operation it describes.
func (r *recorder) Record(ctx context.Context, userID *int64, action string, details map[string]interface{}) {
	entry := audit.Entry{
		ID:      uuid.New(),
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if err := r.repo.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to append audit entry",
			slog.String("action", action),
			slog.Any("error", err))
	}
}
