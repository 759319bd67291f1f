package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	lc "github.com/ncobase/qeonaru/logging/logger/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "QEONARU"

// Config represents the configuration implementation.
type Config struct {
	AppName string
	RunMode string
	Server  *Server
	Logger  *lc.Config
	Data    *Data
	Auth    *Auth
	CORS    *CORS
	Viper   *viper.Viper

	mu sync.Mutex
}

// IsProd reports whether the application runs in release mode.
func (c *Config) IsProd() bool {
	return c.RunMode == "release"
}

// LoadConfig loads the configuration from the file.
// An empty path searches the default locations.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/qeonaru")
		v.AddConfigPath("$HOME/.qeonaru")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		AppName: v.GetString("app_name"),
		RunMode: v.GetString("run_mode"),
		Server:  getServerConfig(v),
		Logger:  lc.GetConfig(v),
		Data:    getDataConfig(v),
		Auth:    getAuth(v),
		CORS:    getCORSConfig(v),
		Viper:   v,
	}
}

// Validate checks the values the application cannot start without.
func (c *Config) Validate() error {
	if c.Auth == nil || c.Auth.JWT == nil || c.Auth.JWT.Secret == "" {
		return errors.New("auth.jwt.secret is required")
	}
	switch c.Data.Driver {
	case DriverMongoDB:
		if c.Data.MongoDB.URI == "" {
			return errors.New("data.mongodb.uri is required for the mongodb driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported data driver %q", c.Data.Driver)
	}
	return nil
}

// Watch reloads the configuration when the file changes and hands the new
// value to callback. Invalid reloads are reported through onError.
func (c *Config) Watch(callback func(*Config), onError func(error)) {
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		c.mu.Lock()
		defer c.mu.Unlock()

		if err := c.Viper.ReadInConfig(); err != nil {
			onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			return
		}
		next := fromViper(c.Viper)
		if err := next.Validate(); err != nil {
			onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			return
		}
		callback(next)
	})
	c.Viper.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "qeonaru")
	v.SetDefault("run_mode", "release")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "30s")
	v.SetDefault("data.driver", DriverMongoDB)
	v.SetDefault("data.mongodb.database", defaultDatabase)
	v.SetDefault("data.mongodb.connect_timeout", "10s")
	v.SetDefault("auth.jwt.expire", defaultTokenExpire)
	v.SetDefault("auth.bcrypt_cost", defaultBcryptCost)
	v.SetDefault("cors.allow_origins", []string{"*"})
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Variables used by existing deployments
	_ = v.BindEnv("data.mongodb.uri", EnvPrefix+"_DATA_MONGODB_URI", "MONGODB_URL")
	_ = v.BindEnv("auth.jwt.secret", EnvPrefix+"_AUTH_JWT_SECRET", "JWT_SECRET")
}
