// Package cookie reads and writes HTTP cookies with shared defaults.
//
// A Manager carries default attributes (path, domain, lifetime, Secure,
// HttpOnly, SameSite) applied to every cookie it writes; per-call Options
// override them. Plain cookies need no secrets. When the manager is created
// with one or more secrets it can also sign values with HMAC-SHA256 so
// tampering is detected on read. The first secret signs; every secret is
// tried on verification, which allows key rotation.
//
//	man, err := cookie.New(nil,
//		cookie.WithSecure(true),
//		cookie.WithMaxAge(30*24*60*60),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_ = man.Set(w, "passport-key", key)
//	key, err := man.Get(r, "passport-key")
//	man.Delete(w, "passport-key")
//
// Config can be filled from environment variables with pkg/config and turned
// into a Manager with NewFromConfig.
//
// Errors are package-level sentinels (ErrCookieNotFound, ErrInvalidSignature,
// ...) matched with errors.Is.
package cookie
