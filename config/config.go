package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/itsvyle/wordle_bot/command"
	"github.com/itsvyle/wordle_bot/wordle"
)

/*
The config file is YAML. ${VAR} references are expanded from the environment
(and from a .env file when present) before parsing, so secrets can stay out
of the file:

	discord_token: ${BOT_TOKEN}
	admin_ids: ["123456789012345678"]
	timezone: America/New_York
*/

const defaultPath = "config.yaml"

type Config struct {
	DiscordToken     string   `yaml:"discord_token"`
	AdminIDs         []string `yaml:"admin_ids"`
	AdminRoles       []string `yaml:"admin_roles"`
	GuildID          string   `yaml:"guild_id"`
	Timezone         string   `yaml:"timezone"`
	SeriesName       string   `yaml:"series_name"`
	StartDate        string   `yaml:"start_date"`
	CommandPrefix    string   `yaml:"command_prefix"`
	SlashCommands    *bool    `yaml:"slash_commands"`
	Reconnect        *bool    `yaml:"reconnect"`
	DedupeConcurrent bool     `yaml:"dedupe_concurrent"`
	MetricsAddr      string   `yaml:"metrics_addr"`

	// Resolved by Validate.
	Location *time.Location `yaml:"-"`
	Epoch    time.Time      `yaml:"-"`
}

// Load reads the file at $CONFIG_PATH (default config.yaml) and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	filePath := defaultPath
	if f := os.Getenv("CONFIG_PATH"); f != "" {
		filePath = f
	}

	b, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(b)
}

// Parse expands environment references in b, decodes it and validates the result.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(b))), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fills defaults and reports every invalid field.
func (c *Config) Validate() error {
	var errs []error

	c.DiscordToken = strings.TrimSpace(c.DiscordToken)
	if c.DiscordToken == "" {
		c.DiscordToken = strings.TrimSpace(os.Getenv("BOT_TOKEN"))
	}
	if c.DiscordToken == "" {
		errs = append(errs, errors.New("missing or invalid discord_token"))
	}

	if c.AdminIDs == nil && c.AdminRoles == nil {
		errs = append(errs, errors.New("missing admin_ids or admin_roles"))
	}

	c.Location = time.Local
	if c.Timezone != "" {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err))
		} else {
			c.Location = loc
		}
	}

	if c.SeriesName == "" {
		c.SeriesName = "wordle"
	}
	c.Epoch = wordle.DefaultEpoch
	if c.StartDate != "" {
		epoch, err := wordle.ParseStartDate(c.StartDate, c.Location)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid start_date: %w", err))
		} else {
			c.Epoch = epoch
		}
	}

	if c.CommandPrefix == "" {
		c.CommandPrefix = command.DefaultPrefix
	} else if strings.ContainsAny(c.CommandPrefix, " \t\n") {
		errs = append(errs, fmt.Errorf("command_prefix %q must be a single word", c.CommandPrefix))
	}

	return errors.Join(errs...)
}

func (c *Config) SlashCommandsEnabled() bool {
	return c.SlashCommands == nil || *c.SlashCommands
}

func (c *Config) ReconnectEnabled() bool {
	return c.Reconnect == nil || *c.Reconnect
}

// IsAdmin reports whether the user or one of the given roles is an administrator.
// roles may hold role IDs or role names.
func (c *Config) IsAdmin(userID string, roles ...string) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	for _, want := range c.AdminRoles {
		for _, r := range roles {
			if r == want || strings.EqualFold(r, want) {
				return true
			}
		}
	}
	return false
}
