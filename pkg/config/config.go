package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Sport       string `yaml:"sport"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic"`
		RequiredAcks int           `yaml:"required_acks"`
		Compression  string        `yaml:"compression"`
		MaxAttempts  int           `yaml:"max_attempts"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		Async        bool          `yaml:"async"`
	} `yaml:"kafka"`
	Odds struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Regions string        `yaml:"regions"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"odds"`
	ESPN struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"espn"`
	NBAStats struct {
		BaseURL      string        `yaml:"base_url"`
		Timeout      time.Duration `yaml:"timeout"`
		RateCapacity float64       `yaml:"rate_capacity"`
		RatePerSec   float64       `yaml:"rate_per_sec"`
	} `yaml:"nba_stats"`
	Sections struct {
		FreshnessWindow time.Duration `yaml:"freshness_window"`
		Deadline        time.Duration `yaml:"deadline"`
		TrendsLimit     int           `yaml:"trends_limit"`
		MinSampleSize   int           `yaml:"min_sample_size"`
	} `yaml:"sections"`
	Roster struct {
		TTL            time.Duration `yaml:"ttl"`
		FuzzyThreshold float64       `yaml:"fuzzy_threshold"`
	} `yaml:"roster"`
	Refresh struct {
		PlayerDelay time.Duration `yaml:"player_delay"`
		GamesPerRun int           `yaml:"games_per_run"`
	} `yaml:"refresh"`
	Cron struct {
		Secret string `yaml:"secret"`
	} `yaml:"cron"`
	TrackedPlayers []string `yaml:"tracked_players"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("ODDS_API_KEY"); v != "" {
		c.Odds.APIKey = v
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		c.Cron.Secret = v
	}
	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Redis.Host = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("TRACKED_PLAYERS"); v != "" {
		c.TrackedPlayers = strings.Split(v, ",")
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Sport == "" {
		c.Sport = "NBA"
	}
	if c.Sections.FreshnessWindow == 0 {
		c.Sections.FreshnessWindow = 15 * time.Minute
	}
	if c.Sections.Deadline == 0 {
		c.Sections.Deadline = 7 * time.Second
	}
	if c.Sections.TrendsLimit == 0 {
		c.Sections.TrendsLimit = 12
	}
	if c.Sections.MinSampleSize == 0 {
		c.Sections.MinSampleSize = 5
	}
	if c.Roster.TTL == 0 {
		c.Roster.TTL = 24 * time.Hour
	}
	if c.Roster.FuzzyThreshold == 0 {
		c.Roster.FuzzyThreshold = 0.5
	}
	if c.Refresh.PlayerDelay == 0 {
		c.Refresh.PlayerDelay = time.Second
	}
	if c.Refresh.GamesPerRun == 0 {
		c.Refresh.GamesPerRun = 20
	}
	if c.Odds.BaseURL == "" {
		c.Odds.BaseURL = "https://api.the-odds-api.com/v4"
	}
	if c.Odds.Regions == "" {
		c.Odds.Regions = "us"
	}
	if c.ESPN.BaseURL == "" {
		c.ESPN.BaseURL = "https://site.api.espn.com/apis/site/v2/sports/basketball/nba"
	}
	if c.NBAStats.BaseURL == "" {
		c.NBAStats.BaseURL = "https://stats.nba.com/stats"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if len(c.TrackedPlayers) == 0 {
		return fmt.Errorf("tracked_players cannot be empty")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}
	return nil
}
