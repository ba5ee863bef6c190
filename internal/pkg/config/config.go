package config

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// SabbathLock blocks mutating endpoints from Friday 18:00 to
	// Saturday 18:30 server time.
	SabbathLock bool `env:"SABBATH_LOCK, default=true"`

	Admin    AdminConfig
	Snapshot SnapshotConfig
	Mongo    MongoConfig
}

// AdminConfig seeds the first administrator when the store starts empty.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME, default=ADMIN"`
	Password string `env:"ADMIN_PASSWORD, default=ADMIN123"`
}

// SnapshotConfig selects where the store document is persisted.
// Backend "file" writes a local JSON file; "mongo" stores a single
// document in MongoDB.
type SnapshotConfig struct {
	Backend string `env:"SNAPSHOT_BACKEND, default=file"`
	Path    string `env:"SNAPSHOT_PATH,    default=data.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pos_system"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(logger zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}
