// Package config loads server configuration from a YAML file with
// OVERLORD_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration object.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the transport and the poll loop.
type ServerConfig struct {
	// Transport selects the frame transport: "udp" or "websocket".
	Transport string `mapstructure:"transport"`
	// Address is the listen address for the selected transport.
	Address string `mapstructure:"address"`
	// PollInterval is the fixed sleep between poll-loop iterations.
	PollInterval time.Duration `mapstructure:"poll_interval"`
	// RetransmitEvery is the retransmission cadence in poll-loop
	// iterations, not wall-clock time.
	RetransmitEvery int `mapstructure:"retransmit_every"`
}

// GameConfig selects the ruleset variant.
type GameConfig struct {
	StartHandSize  int  `mapstructure:"start_hand_size"`
	MaxManaCap     int  `mapstructure:"max_mana_cap"`
	ClearFacedowns bool `mapstructure:"clear_facedowns"`
}

// DatabaseConfig configures the optional match-result store. An empty DSN
// disables persistence entirely.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file path. A missing file is not
// an error: defaults plus environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.transport", "udp")
	v.SetDefault("server.address", ":9099")
	v.SetDefault("server.poll_interval", 10*time.Millisecond)
	v.SetDefault("server.retransmit_every", 100)
	v.SetDefault("game.start_hand_size", 5)
	v.SetDefault("game.max_mana_cap", 15)
	v.SetDefault("game.clear_facedowns", true)
	v.SetDefault("database.dsn", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetEnvPrefix("OVERLORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Server.Transport {
	case "udp", "websocket":
	default:
		return fmt.Errorf("unknown transport %q", c.Server.Transport)
	}
	if c.Server.RetransmitEvery <= 0 {
		return fmt.Errorf("server.retransmit_every must be positive, got %d", c.Server.RetransmitEvery)
	}
	if c.Server.PollInterval <= 0 {
		return fmt.Errorf("server.poll_interval must be positive, got %s", c.Server.PollInterval)
	}
	if c.Game.StartHandSize < 0 {
		return fmt.Errorf("game.start_hand_size must not be negative, got %d", c.Game.StartHandSize)
	}
	if c.Game.MaxManaCap <= 0 {
		return fmt.Errorf("game.max_mana_cap must be positive, got %d", c.Game.MaxManaCap)
	}
	return nil
}
