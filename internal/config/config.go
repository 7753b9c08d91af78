package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sim     SimConfig     `yaml:"sim"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type SimConfig struct {
	Seed               int64         `yaml:"seed"`
	TickInterval       time.Duration `yaml:"tick_interval"`
	StartPaused        bool          `yaml:"start_paused"`
	StartingBalance    float64       `yaml:"starting_balance"`
	StartingDemand     int           `yaml:"starting_demand"`
	StartingReputation int           `yaml:"starting_reputation"`
}

type AdvisorConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	Dir   string `yaml:"dir"`   // empty = stdout
}

// Load reads the optional YAML file, then applies env overrides, then
// validates.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.setDefaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) setDefaults() {
	c.Server.Port = 4000
	c.Sim.TickInterval = time.Second
	c.Sim.StartingBalance = 200000
	c.Sim.StartingDemand = 40
	c.Sim.StartingReputation = 80
	c.Advisor.Enabled = true
	c.Logging.Level = "info"
}

func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if seed := os.Getenv("SIM_SEED"); seed != "" {
		if s, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Sim.Seed = s
		}
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		c.Logging.Level = lvl
	}
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		c.Logging.Dir = dir
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if c.Sim.TickInterval < 10*time.Millisecond {
		return fmt.Errorf("tick interval must be at least 10ms")
	}
	if c.Sim.StartingDemand < 0 || c.Sim.StartingReputation < 0 {
		return fmt.Errorf("starting counters must not be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error")
	}
	return nil
}
