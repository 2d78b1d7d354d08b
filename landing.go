package passport

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/passport/pkg/logger"
)

// PerformLanding stores the credential passed back by the account service
// in the "key" query parameter. Without it nothing is stored and
// ERR_LANDING_NO_KEY is returned.
func PerformLanding(ctx context.Context, creds CredentialStore, query url.Values) error {
	key := query.Get("key")
	if key == "" {
		return newError(CodeLandingNoKey, "missing key", nil)
	}
	return creds.SetKey(ctx, key)
}

// Landing completes the handshake for r and, when destination is not
// empty, redirects there with 302. destination comes from host code and
// is used as given.
func (s *Service) Landing(w http.ResponseWriter, r *http.Request, destination string) error {
	if err := PerformLanding(r.Context(), s.Credentials(w, r), r.URL.Query()); err != nil {
		return err
	}
	s.logger.InfoContext(r.Context(), "passport landing", logger.Endpoint(r.URL.Path))

	if destination != "" {
		http.Redirect(w, r, destination, http.StatusFound)
	}
	return nil
}

// LandingHandler serves the landing URL. A missing key answers 400.
// Without a destination a successful landing answers 204.
func (s *Service) LandingHandler(destination string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.Landing(w, r, destination)
		switch {
		case errors.Is(err, ErrLandingNoKey):
			http.Error(w, "missing key", http.StatusBadRequest)
		case err != nil:
			s.logger.ErrorContext(r.Context(), "passport landing failed", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		case destination == "":
			w.WriteHeader(http.StatusNoContent)
		}
	})
}
