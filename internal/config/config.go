package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/concierge/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".config/concierge"
	envPrefix  = "CONCIERGE"
)

type Config struct {
	Locale      string        `mapstructure:"locale"`
	Destination string        `mapstructure:"destination"`
	Speed       float64       `mapstructure:"speed"`
	Timings     TimingsConfig `mapstructure:"timings"`
	Log         LogConfig     `mapstructure:"log"`
}

// TimingsConfig holds every scripted delay. Values are scenario-relative.
type TimingsConfig struct {
	ReadDelay      time.Duration `mapstructure:"read_delay"`
	AgentStep      time.Duration `mapstructure:"agent_step"`
	AgentJitter    time.Duration `mapstructure:"agent_jitter"`
	ListenDuration time.Duration `mapstructure:"listen_duration"`
	AnalyzeDelay   time.Duration `mapstructure:"analyze_delay"`
	ReviewDelay    time.Duration `mapstructure:"review_delay"`
	SummaryDelay   time.Duration `mapstructure:"summary_delay"`
	OverviewDelay  time.Duration `mapstructure:"overview_delay"`
	AlertDelay     time.Duration `mapstructure:"alert_delay"`
	ResolveDelay   time.Duration `mapstructure:"resolve_delay"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("locale", string(domain.DefaultLocale))
	v.SetDefault("destination", "")
	v.SetDefault("speed", 1.0)

	v.SetDefault("timings.read_delay", "500ms")
	v.SetDefault("timings.agent_step", "800ms")
	v.SetDefault("timings.agent_jitter", "500ms")
	v.SetDefault("timings.listen_duration", "2s")
	v.SetDefault("timings.analyze_delay", "1s")
	v.SetDefault("timings.review_delay", "1500ms")
	v.SetDefault("timings.summary_delay", "8s")
	v.SetDefault("timings.overview_delay", "500ms")
	v.SetDefault("timings.alert_delay", "6s")
	v.SetDefault("timings.resolve_delay", "2500ms")

	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)
}

// Load reads path when given, otherwise config.toml from the user config
// directory if one exists, then applies CONCIERGE_* environment overrides.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home directory: %w", err)
		}
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func Default() Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("decode default config: %v", err))
	}
	return cfg
}

func (c Config) Validate() error {
	if _, err := domain.ParseLocale(c.Locale); err != nil {
		return fmt.Errorf("locale: %w", err)
	}
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %v", c.Speed)
	}
	if err := c.Timings.Validate(); err != nil {
		return fmt.Errorf("timings: %w", err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

func (t TimingsConfig) Validate() error {
	named := []struct {
		name  string
		value time.Duration
	}{
		{"read_delay", t.ReadDelay},
		{"agent_step", t.AgentStep},
		{"agent_jitter", t.AgentJitter},
		{"listen_duration", t.ListenDuration},
		{"analyze_delay", t.AnalyzeDelay},
		{"review_delay", t.ReviewDelay},
		{"summary_delay", t.SummaryDelay},
		{"overview_delay", t.OverviewDelay},
		{"alert_delay", t.AlertDelay},
		{"resolve_delay", t.ResolveDelay},
	}
	for _, d := range named {
		if d.value < 0 {
			return fmt.Errorf("%s must not be negative", d.name)
		}
	}
	return nil
}
