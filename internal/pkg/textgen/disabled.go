package textgen

import "context"

// Disabled stands in when no API key is configured; every call fails with
// ErrUnavailable so the rest of the system keeps working without drafts.
type Disabled struct{}

func (Disabled) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrUnavailable
}
