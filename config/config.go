// Package config loads the service's environment configuration. All
// keys are read with the APP_ prefix (e.g. APP_POSTGRES_URI), matching
// §6 of the specification.
package config

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the fully validated, process-wide configuration.
type Config struct {
	Host string
	Port uint

	PostgresURI string

	JWTSecret []byte

	SnapcraftIOURI   string
	CatalogTimeoutS  uint

	TLSCertPath string
	TLSKeyPath  string

	DBMaxConns uint
}

// Load reads APP_-prefixed environment variables (and, if present, a
// config file named ratings.yaml on the working directory/etc paths)
// into a validated Config.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetConfigName("ratings")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ratings")

	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8443)
	v.SetDefault("db_max_conns", 5)
	v.SetDefault("catalog_timeout_seconds", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	cfg := &Config{
		Host:            v.GetString("host"),
		Port:            v.GetUint("port"),
		PostgresURI:     v.GetString("postgres_uri"),
		SnapcraftIOURI:  v.GetString("snapcraft_io_uri"),
		CatalogTimeoutS: v.GetUint("catalog_timeout_seconds"),
		TLSCertPath:     v.GetString("tls_cert_path"),
		TLSKeyPath:      v.GetString("tls_key_path"),
		DBMaxConns:      v.GetUint("db_max_conns"),
	}

	secret := v.GetString("jwt_secret")

	if err := cfg.validate(secret); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate(jwtSecretB64 string) error {
	if c.PostgresURI == "" {
		return errors.New("APP_POSTGRES_URI is required")
	}

	if c.SnapcraftIOURI == "" {
		return errors.New("APP_SNAPCRAFT_IO_URI is required")
	}

	if jwtSecretB64 == "" {
		return errors.New("APP_JWT_SECRET is required")
	}

	secret, err := base64.StdEncoding.DecodeString(jwtSecretB64)
	if err != nil {
		return errors.Wrap(err, "APP_JWT_SECRET must be base64-encoded")
	}
	c.JWTSecret = secret

	hasCert := c.TLSCertPath != ""
	hasKey := c.TLSKeyPath != ""
	if hasCert != hasKey {
		return errors.New("APP_TLS_CERT_PATH and APP_TLS_KEY_PATH must both be set or both be empty")
	}

	return nil
}

// TLSEnabled reports whether both TLS paths were configured.
func (c *Config) TLSEnabled() bool {
	return c.TLSCertPath != "" && c.TLSKeyPath != ""
}

// Addr is the host:port the gRPC listener binds to.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.FormatUint(uint64(c.Port), 10)
}
