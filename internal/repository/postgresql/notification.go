package postgresql

import (
	"context"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

const notificationColumns = `
	n.id, n.user_id, n.role, n.sector_id, n.kind, n.message, n.link, n.read, n.created_at
`

// visibilityClause matches notifications the recipient can see: addressed
// to their user id, to their role (optionally narrowed to their sector),
// or, for admins, untargeted broadcasts. Placeholders are $1 user id,
// $2 role, $3 sector id.
const visibilityClause = `
	(
		n.user_id = $1
		OR (n.role = $2 AND (n.sector_id IS NULL OR n.sector_id = $3))
		OR (n.user_id IS NULL AND n.role IS NULL AND $2 = 'admin')
	)
`

// Create implements notification.Repository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO notifications (user_id, role, sector_id, kind, message, link, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		n.UserID, n.Role, n.SectorID, n.Kind, n.Message, n.Link,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

// ListInbox implements notification.Repository.
func (r *notificationRepositoryImpl) ListInbox(ctx context.Context, userID int64, role user.Role, sectorID *int64, unreadOnly bool) ([]notification.Notification, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + notificationColumns + `
		FROM notifications n
		WHERE ` + visibilityClause + `
		AND ($4 = FALSE OR n.read = FALSE)
		ORDER BY n.created_at DESC, n.id DESC
	`

	rows, err := q.Query(ctx, query, userID, role, sectorID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []notification.Notification{}
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(
			&n.ID, &n.UserID, &n.Role, &n.SectorID, &n.Kind,
			&n.Message, &n.Link, &n.Read, &n.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, ids []int64, userID int64, role user.Role, sectorID *int64) error {
	if len(ids) == 0 {
		return nil
	}
	q := r.db.Querier(ctx)

	query := `
		UPDATE notifications n
		SET read = TRUE
		WHERE n.id = ANY($4)
		AND ` + visibilityClause + `
	`

	_, err := q.Exec(ctx, query, userID, role, sectorID, ids)
	return err
}

// ClearRead implements notification.Repository.
func (r *notificationRepositoryImpl) ClearRead(ctx context.Context, userID int64, role user.Role) (int64, error) {
	q := r.db.Querier(ctx)

	query := `
		DELETE FROM notifications n
		WHERE n.read = TRUE
		AND (n.user_id = $1 OR (n.user_id IS NULL AND n.role = $2))
	`

	tag, err := q.Exec(ctx, query, userID, role)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
