package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
	"github.com/velamar-hotels/hr-backend-go/internal/domain/notification"
	"github.com/velamar-hotels/hr-backend-go/internal/handler/http/response"
	"github.com/velamar-hotels/hr-backend-go/internal/pkg/sse"
	notificationservice "github.com/velamar-hotels/hr-backend-go/internal/service/notification"
)

type NotificationHandler interface {
	Inbox(w http.ResponseWriter, r *http.Request)
	MarkRead(w http.ResponseWriter, r *http.Request)
	ClearRead(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type NotificationHandlerImpl struct {
	notificationService *notificationservice.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService *notificationservice.Service, hub *sse.Hub) NotificationHandler {
	return &NotificationHandlerImpl{notificationService: notificationService, hub: hub}
}

// Inbox implements NotificationHandler.
func (h *NotificationHandlerImpl) Inbox(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	unreadOnly := r.URL.Query().Get("unread") == "true"

	items, err := h.notificationService.Inbox(r.Context(), actor.UserID, actor.Role, actor.SectorID, unreadOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// MarkRead implements NotificationHandler.
func (h *NotificationHandlerImpl) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	var req notification.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.IDs) == 0 {
		response.BadRequest(w, "No notification IDs given", nil)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), req.IDs, actor.UserID, actor.Role, actor.SectorID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notifications marked read", nil)
}

// ClearRead implements NotificationHandler.
func (h *NotificationHandlerImpl) ClearRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	deleted, err := h.notificationService.ClearRead(r.Context(), actor.UserID, actor.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, map[string]int64{"deleted": deleted})
}

// Stream implements NotificationHandler. It holds the connection open and
// pushes notifications as SSE events until the client goes away.
func (h *NotificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	actor, ok := mustActor(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(actor.UserID)
	defer cleanup()

	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"user_id\":%d}\n\n", actor.UserID)
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
