package passport

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/passport/pkg/logger"
)

type clientContextKey struct{}

// WithClient returns a copy of ctx carrying c.
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientContextKey{}, c)
}

// FromContext returns the client stored by Middleware.
func FromContext(ctx context.Context) (*Client, bool) {
	c, ok := ctx.Value(clientContextKey{}).(*Client)
	return c, ok
}

// Middleware attaches a per-request Client to the request context.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := s.ForRequest(w, r)
		next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), c)))
	})
}

// RequireLogin resolves the account uid and redirects to loginURL with 302
// when that fails for any reason.
func (s *Service) RequireLogin(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := FromContext(r.Context())
			if !ok {
				c = s.ForRequest(w, r)
				r = r.WithContext(WithClient(r.Context(), c))
			}
			if err := c.Load(r.Context()); err != nil {
				s.logger.DebugContext(r.Context(), "passport login required",
					logger.ErrorCode(CodeOf(err)), logger.Error(err))
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
