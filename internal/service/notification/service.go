package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/user"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/sse"
)

type Service struct {
	repo     notification.Repository
	userRepo user.Repository
	hub      *sse.Hub
	logger   *slog.Logger
}

func NewService(repo notification.Repository, userRepo user.Repository, hub *sse.Hub, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		hub:      hub,
		logger:   logger,
	}
}

var _ notification.Dispatcher = (*Service)(nil)

// Notify persists one notification and pushes it to connected recipients
// over SSE. Persistence is authoritative; a failed push only means the
// recipient sees the item on their next inbox poll.
func (s *Service) Notify(ctx context.Context, kind notification.Kind, message string, target notification.Target, link *string) error {
	if !target.Valid() {
		return notification.ErrInvalidTarget
	}

	created, err := s.repo.Create(ctx, notification.Notification{
		UserID:   target.UserID,
		Role:     target.Role,
		SectorID: target.SectorID,
		Kind:     kind,
		Message:  message,
		Link:     link,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.push(ctx, created)
	return nil
}

// push fans the stored notification out to live SSE subscribers. Role
// targets are resolved to concrete user ids at send time.
func (s *Service) push(ctx context.Context, n notification.Notification) {
	payload := notification.ToResponse(n)

	if n.UserID != nil {
		s.hub.Publish(*n.UserID, sse.Event{UserID: *n.UserID, Event: "notification", Data: payload})
		return
	}
	if n.Role == nil {
		return
	}

	recipients, err := s.userRepo.ListByRole(ctx, *n.Role, n.SectorID)
	if err != nil {
		s.logger.Warn("failed to resolve notification recipients",
			slog.String("role", string(*n.Role)),
			slog.Any("error", err))
		return
	}

	ids := make([]int64, 0, len(recipients))
	for _, u := range recipients {
		ids = append(ids, u.ID)
	}
	s.hub.PublishToMany(ids, sse.Event{Event: "notification", Data: payload})
}

// Inbox returns the caller's notifications per the visibility rule.
func (s *Service) Inbox(ctx context.Context, userID int64, role user.Role, sectorID *int64, unreadOnly bool) ([]notification.Response, error) {
	notifications, err := s.repo.ListInbox(ctx, userID, role, sectorID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.Response, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.ToResponse(n))
	}
	return responses, nil
}

// MarkRead flags the given notifications read for the caller.
func (s *Service) MarkRead(ctx context.Context, ids []int64, userID int64, role user.Role, sectorID *int64) error {
	if err := s.repo.MarkRead(ctx, ids, userID, role, sectorID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ClearRead removes the caller's read notifications and reports how many
// were deleted.
func (s *Service) ClearRead(ctx context.Context, userID int64, role user.Role) (int64, error) {
	deleted, err := s.repo.ClearRead(ctx, userID, role)
	if err != nil {
		return 0, fmt.Errorf("failed to clear read notifications: %w", err)
	}
	return deleted, nil
}
