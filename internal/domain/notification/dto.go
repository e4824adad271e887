package notification

type Response struct {
	ID        int64   `json:"id"`
	Kind      Kind    `json:"kind"`
	Message   string  `json:"message"`
	Link      *string `json:"link,omitempty"`
	Read      bool    `json:"read"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(n Notification) Response {
	return Response{
		ID:        n.ID,
		Kind:      n.Kind,
		Message:   n.Message,
		Link:      n.Link,
		Read:      n.Read,
		CreatedAt: n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

type MarkReadRequest struct {
	IDs []int64 `json:"ids"`
}
