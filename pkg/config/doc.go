// Package config provides a type-safe, generic and cached way to load
// application configuration from environment variables.
//
// It wraps popular libraries `github.com/joho/godotenv` and
// `github.com/caarlos0/env/v11` to deliver a convenient API that:
//
//   - Loads values from one or multiple `.env` files (fallback to the default
//     `.env` in the current working directory).
//   - Parses the environment into any Go struct using field tags.
//   - Caches each successfully loaded configuration type so it is only parsed
//     once for the lifetime of the process.
//   - Exposes MustLoad, which panics on failure, for configuration the
//     process cannot start without.
//   - Allows an explicit cache reset which is handy in tests.
//
// # Architecture
//
// Internally the package keeps a `configCache` that stores parsed struct
// copies keyed by their reflect.Type. Parsing is delegated to `env.Parse` and
// runs under the cache lock, so each configuration type is parsed at most once
// even when loaded from many goroutines.
//
// # Usage
//
// First, create a struct describing your configuration and annotate its fields
// with `env` tags:
//
//	type FeedConfig struct {
//	    Heartbeat time.Duration `env:"NOTIFY_HEARTBEAT_INTERVAL" envDefault:"5s"`
//	    Capacity  int           `env:"BROADCAST_CAPACITY" envDefault:"10"`
//	}
//
// Load the default `.env` file (optional) then populate the struct:
//
//	import "github.com/aserowy/htmx-playground/pkg/config"
//
//	func main() {
//	    // Optionally load one or many custom .env files before parsing.
//	    if err := config.LoadEnv("./config/.env" /* more files ... */); err != nil {
//	        log.Fatalf("loading env: %v", err)
//	    }
//
//	    var feed FeedConfig
//	    if err := config.Load(&feed); err != nil {
//	        log.Fatalf("parsing env: %v", err)
//	    }
//
//	    // feed is now populated and cached for future calls.
//	}
//
// Subsequent calls to `config.Load(&feed)` will be served from the in-memory cache
// without re-parsing.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with `errors.Is`:
//
//   - `ErrParsingConfig`     – failed to parse env vars into struct.
//   - `ErrInvalidConfigType` – provided value is not a pointer to a struct.
//   - `ErrLoadingEnvFile`    – an explicitly requested .env file could not be read.
//   - `ErrNilPointer`        – nil pointer passed to `Load`/`MustLoad`.
//
// # Testing Helpers
//
// Use `ResetCache()` to clear the cache between tests that change the
// process environment.
//
// # Performance Considerations
//
// Because each unique configuration struct is parsed only once and stored by
// value, lookups are extremely fast after the initial load. The cache does use
// additional memory proportional to the size of your configs.
//
// # See Also
//
//   - https://github.com/joho/godotenv – .env file loader.
//   - https://github.com/caarlos0/env – environment parser.
package config
