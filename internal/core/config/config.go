package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config represents the top-level configuration for dadbot.
type Config struct {
	Bot      BotConfig      `koanf:"bot"`
	Twitch   TwitchConfig   `koanf:"twitch"`
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
}

type BotConfig struct {
	Name          string `koanf:"name"`
	DaddedRegex   string `koanf:"dadded_regex"` // empty selects the built-in pattern
	EpochWidth    int    `koanf:"epoch_width"`  // minutes
	DaddedChance  int    `koanf:"dadded_chance"`
	LoveMeChance  int    `koanf:"love_me_chance"`
	CommandPrefix string `koanf:"command_prefix"`
	TickInterval  int    `koanf:"tick_interval"` // seconds, 0 disables the rollover scheduler
}

// EpochWidthDuration returns the bucket width as a duration.
func (c BotConfig) EpochWidthDuration() time.Duration {
	return time.Duration(c.EpochWidth) * time.Minute
}

func (c BotConfig) TickIntervalDuration() time.Duration {
	return time.Duration(c.TickInterval) * time.Second
}

type TwitchConfig struct {
	Username   string   `koanf:"username"`
	OAuthToken string   `koanf:"oauth_token"`
	Channels   []string `koanf:"channels"`
}

type DatabaseConfig struct {
	Type         string `koanf:"type"` // sqlite | postgres
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type ServerConfig struct {
	Enabled bool   `koanf:"enabled"`
	Port    int    `koanf:"port"`
	Host    string `koanf:"host"`
	Mode    string `koanf:"mode"` // debug | release
}

// Addr returns host:port for the HTTP listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Bot.Name) == "" {
		return fmt.Errorf("bot.name is required")
	}
	if c.Bot.EpochWidth <= 0 {
		return fmt.Errorf("invalid bot.epoch_width %d (must be > 0 minutes)", c.Bot.EpochWidth)
	}
	if c.Bot.DaddedChance < 0 {
		return fmt.Errorf("bot.dadded_chance must be >= 0")
	}
	if c.Bot.LoveMeChance < 0 {
		return fmt.Errorf("bot.love_me_chance must be >= 0")
	}
	if c.Bot.TickInterval < 0 {
		return fmt.Errorf("bot.tick_interval must be >= 0")
	}
	if strings.TrimSpace(c.Bot.CommandPrefix) == "" {
		return fmt.Errorf("bot.command_prefix is required")
	}
	if c.Bot.DaddedRegex != "" {
		if _, err := regexp.Compile("(?i)" + c.Bot.DaddedRegex); err != nil {
			return fmt.Errorf("invalid bot.dadded_regex: %w", err)
		}
	}

	if strings.TrimSpace(c.Twitch.Username) == "" {
		return fmt.Errorf("twitch.username is required")
	}
	if strings.TrimSpace(c.Twitch.OAuthToken) == "" {
		return fmt.Errorf("twitch.oauth_token is required")
	}
	if len(c.Twitch.Channels) == 0 {
		return fmt.Errorf("twitch.channels must list at least one channel")
	}

	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database.type %q (must be sqlite or postgres)", c.Database.Type)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
		}
		if strings.TrimSpace(c.Server.Host) == "" {
			return fmt.Errorf("server.host is required")
		}
		if c.Server.Mode != "debug" && c.Server.Mode != "release" {
			return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
		}
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and DADBOT_ env
// vars, in that order, then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"bot.name":                "Dad",
		"bot.dadded_regex":        "",
		"bot.epoch_width":         1440,
		"bot.dadded_chance":       0,
		"bot.love_me_chance":      0,
		"bot.command_prefix":      "!",
		"bot.tick_interval":       60,
		"database.type":           "sqlite",
		"database.dsn":            "dad.db",
		"database.max_open_conns": 4,
		"database.max_idle_conns": 4,
		"database.auto_migrate":   true,
		"server.enabled":          true,
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.mode":             "release",
		"log.level":               "info",
		"log.format":              "text",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("DADBOT_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "DADBOT_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Twitch.Channels = splitList(cfg.Twitch.Channels)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// splitList flattens comma separated entries, so DADBOT_TWITCH__CHANNELS=a,b
// works alongside a YAML list.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
