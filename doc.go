// Package passport is a client for the Passport account service.
//
// The service authenticates visitors and keeps arbitrary named values per
// account. A visitor logs in on the service, which redirects back to the
// host's landing URL with a credential in the "key" query parameter. The
// landing handshake stores that credential in the passport-key cookie;
// every later call carries it.
//
// A Service is built once per process:
//
//	svc, err := passport.New(passport.DefaultConfig(), passport.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//
//	r.Handle("/landing", svc.LandingHandler("/"))
//	r.With(svc.Middleware, svc.RequireLogin(loginURL)).Get("/me", me)
//
// Handlers then work with a per-request Client:
//
//	c, _ := passport.FromContext(r.Context())
//	uid, _ := c.UID(r.Context())
//	theme, err := c.Get(r.Context(), "theme")
//
// Values travel as wire strings (see pkg/wire). The Client caches decoded
// values for its own lifetime only, so Add detects duplicates only among
// fields this client has seen.
//
// All failures are *Error values with a symbolic code. Compare them with
// errors.Is against ErrLogin, ErrResponse and the other sentinels, or read
// the code with CodeOf. Nothing is retried.
package passport
