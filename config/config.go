package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/facerelay"
	relayhttp "github.com/sagarc03/facerelay/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for facerelay.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors"`
	Intervals IntervalsConfig `mapstructure:"intervals" yaml:"intervals"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Env       string          `mapstructure:"env" yaml:"env"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host          string `mapstructure:"host" yaml:"host"`
	Port          int    `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	MaxUploadSize int64  `mapstructure:"max_upload_size" yaml:"max_upload_size" validate:"min=0"`
	MaxMemory     int64  `mapstructure:"max_memory" yaml:"max_memory" validate:"min=0"`
}

// Addr returns the host:port the server listens on.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// StorageConfig holds upload directory configuration.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path" validate:"required"`
}

// CORSConfig holds the cross-origin allow-list. ExtraOrigin and ExtraPort
// extend AllowedOrigins, usually from the environment.
type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ExtraOrigin      string   `mapstructure:"extra_origin" yaml:"extra_origin" validate:"omitempty,url"`
	ExtraPort        int      `mapstructure:"extra_port" yaml:"extra_port" validate:"min=0,max=65535"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age" validate:"min=0"`
}

// Origins returns the allow-list with the extra origin and the extra
// localhost port appended, without duplicates.
func (c CORSConfig) Origins() []string {
	origins := slices.Clone(c.AllowedOrigins)

	add := func(origin string) {
		origin = strings.TrimRight(origin, "/")
		if origin != "" && !slices.Contains(origins, origin) {
			origins = append(origins, origin)
		}
	}

	add(c.ExtraOrigin)
	if c.ExtraPort > 0 {
		add("http://localhost:" + strconv.Itoa(c.ExtraPort))
	}

	return origins
}

// Handler converts the config into the HTTP layer's CORS options.
func (c CORSConfig) Handler() relayhttp.CORSConfig {
	return relayhttp.CORSConfig{
		Enabled:          c.Enabled,
		AllowedOrigins:   c.Origins(),
		AllowedMethods:   c.AllowedMethods,
		AllowedHeaders:   c.AllowedHeaders,
		ExposedHeaders:   c.ExposedHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAge,
	}
}

// IntervalsConfig holds the pacing hints reported before a client sets its own.
type IntervalsConfig struct {
	Upload      int `mapstructure:"upload" yaml:"upload" validate:"min=1"`
	Recognition int `mapstructure:"recognition" yaml:"recognition" validate:"min=1"`
}

// Service converts the config into the service's interval defaults.
func (c IntervalsConfig) Service() facerelay.Intervals {
	return facerelay.Intervals{Upload: c.Upload, Recognition: c.Recognition}
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// IsProduction reports whether logs should be emitted as JSON.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "prod" || env == "production"
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"storage-path": "storage.path",
	"port":         "server.port",
	"host":         "server.host",
	"log-level":    "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.max_upload_size", 0) // 0 means no limit
	v.SetDefault("server.max_memory", 32<<20)

	v.SetDefault("storage.path", "uploads")

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:4200"})
	v.SetDefault("cors.extra_origin", "")
	v.SetDefault("cors.extra_port", 0)
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"*"})
	v.SetDefault("cors.exposed_headers", []string{"Content-Disposition", "ETag"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 300)

	v.SetDefault("intervals.upload", facerelay.DefaultIntervals.Upload)
	v.SetDefault("intervals.recognition", facerelay.DefaultIntervals.Recognition)

	v.SetDefault("log.level", "info")
	v.SetDefault("env", "")
}

// DotEnvFiles are loaded into the process environment before anything else.
// Variables already set in the environment win.
var DotEnvFiles = []string{".env"}

func loadDotEnv(files []string) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("error loading env file", "file", f, "err", err)
		}
	}
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	loadDotEnv(DotEnvFiles)

	v := viper.New()

	setDefaults(v)

	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	v.SetEnvPrefix("FACERELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
