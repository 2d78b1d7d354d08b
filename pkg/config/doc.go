// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional `.env` files) and
// github.com/caarlos0/env/v11 (struct tags) behind two entry points:
//
//   - Load parses a struct once per type and caches the result for the
//     lifetime of the process. Use it in main packages.
//   - Parse always reads the current environment. Use it in tests or when a
//     fresh read is required.
//
// # Usage
//
//	type Config struct {
//		BaseURL string        `env:"PASSPORT_BASE_URL" envDefault:"https://passport.kurtisknodel.com/api/"`
//		Timeout time.Duration `env:"PASSPORT_TIMEOUT" envDefault:"10s"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// The default `.env` file in the working directory is read once, on the
// first Load. A missing file is not an error. Additional files can be loaded
// explicitly with LoadEnv before the first Load; variables already present in
// the process environment always win.
//
// # Errors
//
// Parsing failures wrap ErrParsingConfig together with the underlying
// env error via errors.Join, so both can be matched with errors.Is.
package config
