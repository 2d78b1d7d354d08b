// Package session keeps small server-side state per browser session.
//
// A Manager hands out sessions identified by a random token carried in a
// cookie, and persists them through a Store. Two stores ship with the
// package: MemoryStore for single-process deployments and tests, and
// RedisStore for anything that runs more than one instance.
//
//	cookies, _ := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	manager := session.New(
//		session.WithCookieManager(cookies),
//		session.WithStore(session.NewRedisStore(redisClient)),
//	)
//	defer manager.Close()
//
//	router.Use(manager.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		sess, _ := session.FromContext(r.Context())
//		sess.Set("passport-uid", "42")
//		_ = manager.Save(r.Context(), sess)
//	}
//
// Session tokens are signed when the cookie manager has secrets and stored
// as-is otherwise. Expired sessions are rejected on read; the memory store
// also sweeps them periodically, Redis expires them with a TTL.
package session
