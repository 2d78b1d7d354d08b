// Package logger builds *slog.Logger values with a small set of functional
// options and provides attribute helpers with consistent key names.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "passport-demo"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "landing completed", logger.Component("passport"))
//
// Production and staging environments log JSON at info level; anything else
// logs text at debug level. Context extractors run on every record, so
// request-scoped values are always fresh.
//
// Discard returns a logger that drops everything; libraries use it as their
// default so they stay silent until the host injects a real logger.
package logger
