// passport-demo is a small JSON host showing the landing handshake, the
// uid lookup and field storage against the Passport account service.
//
// Configuration comes from the environment (and an optional .env file):
// PASSPORT_*, HTTP_*, COOKIE_*, SESSION_* and, with --session-store=redis,
// REDIS_*.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/pflag"

	"github.com/dmitrymomot/passport"
	"github.com/dmitrymomot/passport/pkg/config"
	"github.com/dmitrymomot/passport/pkg/cookie"
	"github.com/dmitrymomot/passport/pkg/httpserver"
	"github.com/dmitrymomot/passport/pkg/logger"
	"github.com/dmitrymomot/passport/pkg/redis"
	"github.com/dmitrymomot/passport/pkg/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	addr         string
	envFile      string
	sessionStore string
	loginURL     string
	logFormat    string
	env          string
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet("passport-demo", pflag.ContinueOnError)
	fs.StringVar(&f.addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	fs.StringVar(&f.envFile, "env-file", "", "load variables from this .env file first")
	fs.StringVar(&f.sessionStore, "session-store", "memory", "session backend: memory or redis")
	fs.StringVar(&f.loginURL, "login-url", "/login", "where visitors without a valid credential are sent")
	fs.StringVar(&f.logFormat, "log-format", "", "json or text (default depends on --env)")
	fs.StringVar(&f.env, "env", logger.EnvDevelopment, "development, staging or production")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.sessionStore != "memory" && f.sessionStore != "redis" {
		return f, fmt.Errorf("unknown session store %q", f.sessionStore)
	}
	switch logger.Format(f.logFormat) {
	case "", logger.FormatJSON, logger.FormatText:
	default:
		return f, fmt.Errorf("unknown log format %q", f.logFormat)
	}
	return f, nil
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.envFile != "" {
		if err := config.LoadEnv(f.envFile); err != nil {
			return err
		}
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(f.env, "passport-demo"),
		logger.WithContextExtractors(requestIDExtractor),
	}
	if f.logFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(f.logFormat)))
	}
	log := logger.New(logOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		passportCfg passport.Config
		serverCfg   httpserver.Config
		cookieCfg   cookie.Config
		sessionCfg  session.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&passportCfg) },
		func() error { return config.Load(&serverCfg) },
		func() error { return config.Load(&cookieCfg) },
		func() error { return config.Load(&sessionCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}
	if f.addr != "" {
		serverCfg.Addr = f.addr
	}

	cookies, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		return err
	}

	sessionOpts := []session.Option{session.WithCookieManager(cookies), session.WithConfig(sessionCfg)}
	var checks []func(context.Context) error
	if f.sessionStore == "redis" {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(client)))
		checks = append(checks, redis.Healthcheck(client))
	}
	sessions := session.New(sessionOpts...)
	defer sessions.Close()

	svc, err := passport.New(passportCfg,
		passport.WithLogger(log),
		passport.WithCookieManager(cookies),
		passport.WithSessionManager(sessions),
	)
	if err != nil {
		return err
	}
	defer svc.Close()

	log.InfoContext(ctx, "starting passport demo",
		slog.String("session_store", f.sessionStore),
		logger.Endpoint(passportCfg.BaseURL))

	router := newRouter(svc, log, f.loginURL, checks...)
	return httpserver.New(serverCfg, log).Run(ctx, router)
}

func requestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id := middleware.GetReqID(ctx)
	if id == "" {
		return slog.Attr{}, false
	}
	return slog.String("request_id", id), true
}
