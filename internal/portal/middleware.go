package portal

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
)

type contextKey string

const portalContextKey contextKey = "portal"

// Source loads a portal by API key; satisfied by *Store.
type Source interface {
	ByAPIKey(ctx context.Context, apiKey string) (*Portal, error)
}

// Resolver resolves the portal identity from the configured request header
// and injects the full portal record into the context.
type Resolver struct {
	Portals    Source
	HeaderName string
}

// NewResolver returns a resolver for the given header name. If headerName
// is empty, "X-Portal-Key" is used.
func NewResolver(portals Source, headerName string) *Resolver {
	if headerName == "" {
		headerName = "X-Portal-Key"
	}
	return &Resolver{Portals: portals, HeaderName: headerName}
}

// Middleware authenticates the portal and passes it downstream. Requests
// without a valid key are rejected before any handler runs.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		key := strings.TrimSpace(req.Header.Get(r.HeaderName))
		if key == "" {
			common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "portal key required", nil)
			return
		}
		p, err := r.Portals.ByAPIKey(req.Context(), key)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				common.JSONError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown portal key", nil)
				return
			}
			common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "portal lookup failed", nil)
			return
		}
		next.ServeHTTP(w, req.WithContext(WithPortal(req.Context(), p)))
	})
}

// WithPortal stores the portal inside the context.
func WithPortal(ctx context.Context, p *Portal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, portalContextKey, p)
}

// FromContext extracts the portal from the context if available.
func FromContext(ctx context.Context) (*Portal, bool) {
	if ctx == nil {
		return nil, false
	}
	p, ok := ctx.Value(portalContextKey).(*Portal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
