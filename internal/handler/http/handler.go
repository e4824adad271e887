package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velamar-hotels/hr-backend-go/internal/domain/auth"
)

// urlID parses a numeric chi URL parameter.
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt64 parses an optional numeric query parameter.
func queryInt64(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// queryDate parses an optional YYYY-MM-DD query parameter, falling back to
// the given default.
func queryDate(r *http.Request, name string, fallback time.Time) time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fallback
	}
	return d
}

// mustActor returns the actor bound by the auth middleware. Routes behind
// AuthRequired always have one; the bool guards misconfigured routing.
func mustActor(r *http.Request) (auth.Actor, bool) {
	return auth.ActorFrom(r.Context())
}
