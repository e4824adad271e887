package postgresql

import (
	"context"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/audit"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.Repository {
	return &auditRepositoryImpl{db: db}
}

// Append implements audit.Repository. Details lands in a jsonb column.
func (r *auditRepositoryImpl) Append(ctx context.Context, entry audit.Entry) error {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO audit_log (id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := q.Exec(ctx, query, entry.ID, entry.UserID, entry.Action, entry.Details)
	return err
}
