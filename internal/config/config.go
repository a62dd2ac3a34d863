package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	hottub "github.com/christophersalem/hebard-hot-tub"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. HOTTUB_DB_PATH.
const EnvPrefix = "HOTTUB"

type Config struct {
	Port  string
	DB    DBConfig
	Sheet SheetConfig
	Log   LogConfig
	HTTP  HTTPConfig
}

type DBConfig struct {
	Path string
}

type SheetConfig struct {
	Revision   hottub.Revision
	MaxRows    int
	InitHeader bool // write the header at startup when the log has none
}

type LogConfig struct {
	Level  string
	Format string // console | json
}

type HTTPConfig struct {
	ReadHeaderTimeout  time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	RateLimitPerMinute int // 0 disables the limiter
	RateLimitBurst     int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "hottub.db")
	v.SetDefault("sheet.revision", int(hottub.LatestRevision))
	v.SetDefault("sheet.max_rows", 500)
	v.SetDefault("sheet.init_header", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("http.read_header_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.rate_limit.per_minute", 0)
	v.SetDefault("http.rate_limit.burst", 10)
}

// Load reads dir/config.yml (optional), a .env file in the working
// directory (optional) and HOTTUB_* environment overrides.
func Load(dir string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	revNum, err := cast.ToIntE(v.Get("sheet.revision"))
	if err != nil {
		return nil, fmt.Errorf("sheet.revision: %w", err)
	}
	rev, err := hottub.ParseRevision(revNum)
	if err != nil {
		return nil, fmt.Errorf("sheet.revision: %w", err)
	}

	maxRows, err := cast.ToIntE(v.Get("sheet.max_rows"))
	if err != nil {
		return nil, fmt.Errorf("sheet.max_rows: %w", err)
	}
	if maxRows <= 0 {
		return nil, fmt.Errorf("sheet.max_rows must be positive, got %d", maxRows)
	}

	perMinute, err := cast.ToIntE(v.Get("http.rate_limit.per_minute"))
	if err != nil {
		return nil, fmt.Errorf("http.rate_limit.per_minute: %w", err)
	}
	if perMinute < 0 {
		return nil, fmt.Errorf("http.rate_limit.per_minute must not be negative, got %d", perMinute)
	}

	return &Config{
		Port: v.GetString("port"),
		DB: DBConfig{
			Path: v.GetString("db.path"),
		},
		Sheet: SheetConfig{
			Revision:   rev,
			MaxRows:    maxRows,
			InitHeader: v.GetBool("sheet.init_header"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		HTTP: HTTPConfig{
			ReadHeaderTimeout:  v.GetDuration("http.read_header_timeout"),
			WriteTimeout:       v.GetDuration("http.write_timeout"),
			IdleTimeout:        v.GetDuration("http.idle_timeout"),
			RateLimitPerMinute: perMinute,
			RateLimitBurst:     v.GetInt("http.rate_limit.burst"),
		},
	}, nil
}
