// Package config loads application configuration from LECTERN_*
// environment variables.
package config

import "github.com/kelseyhightower/envconfig"

// Database holds libsql/Turso connection settings.
type Database struct {
	URL       string `envconfig:"DATABASE_URL" required:"true"`
	AuthToken string `envconfig:"DATABASE_AUTH_TOKEN"`
}

// Auth holds the settings used to verify identity tokens from the
// external auth provider.
type Auth struct {
	TokenSecret string `envconfig:"AUTH_TOKEN_SECRET" required:"true"`
	TokenIssuer string `envconfig:"AUTH_TOKEN_ISSUER" default:"lectern-auth"`
}

// Storage holds cloud storage settings for audio playback. See
// docs/storage.md for how credentials are supplied.
type Storage struct {
	Bucket          string `envconfig:"STORAGE_BUCKET"`
	CredentialsFile string `envconfig:"STORAGE_CREDENTIALS_FILE"`
	CredentialsJSON string `envconfig:"STORAGE_CREDENTIALS_JSON"`
}

// OTEL holds metrics exporter settings.
type OTEL struct {
	Enabled  bool   `envconfig:"OTEL_ENABLED"`
	Endpoint string `envconfig:"OTEL_ENDPOINT"`
	Insecure bool   `envconfig:"OTEL_INSECURE"`
}

// Server is the full configuration of the serve command.
type Server struct {
	Port     int `envconfig:"PORT" default:"8080"`
	Database Database
	Auth     Auth
	Storage  Storage
	OTEL     OTEL
}

// LoadServer loads server configuration from environment variables.
func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("lectern", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabase loads only the database settings (used by migrate).
func LoadDatabase() (*Database, error) {
	var cfg Database
	if err := envconfig.Process("lectern", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
