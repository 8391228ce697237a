// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer file and env overrides in Load.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StorageDriver selects the key-value backend: memory or sqlite.
	StorageDriver string `koanf:"storage_driver"`

	// StoragePath is the sqlite database file. Ignored for memory.
	StoragePath string `koanf:"storage_path"`

	// WinnerPeriod selects the archive window: daily or weekly.
	WinnerPeriod string `koanf:"winner_period"`

	// MirrorBaseURL points at the remote post backend. Empty disables
	// mirroring and the ledger stays purely local.
	MirrorBaseURL string `koanf:"mirror_base_url"`

	// CatImageURL and DogImageURL override the stock image endpoints.
	CatImageURL string `koanf:"cat_image_url"`
	DogImageURL string `koanf:"dog_image_url"`

	// CatAPIKey is sent as x-api-key to the cat image API when set.
	CatAPIKey string `koanf:"cat_api_key"`

	// NATSURL enables event publishing when set.
	NATSURL string `koanf:"nats_url"`

	// MaxFeedLimit caps GET /feed?limit.
	MaxFeedLimit int `koanf:"max_feed_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		StorageDriver: "sqlite",
		StoragePath:   "paws.db",
		WinnerPeriod:  "daily",
		MaxFeedLimit:  100,
	}
}
