package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ResultsDir string         `yaml:"results_dir"`
	History    HistoryConfig  `yaml:"history"`
	Fetch      FetchConfig    `yaml:"fetch"`
	Analysis   AnalysisConfig `yaml:"analysis"`
	LogLevel   string         `yaml:"log_level"`
}

type HistoryConfig struct {
	// Path of the run-history SQLite database. Empty disables history.
	Path string `yaml:"path"`
}

type FetchConfig struct {
	BaseURL  string   `yaml:"base_url"`
	Lang     string   `yaml:"lang"`
	Country  string   `yaml:"country"`
	Sort     string   `yaml:"sort"` // most_relevant, newest, rating
	PageSize int      `yaml:"page_size"`
	Timeout  Duration `yaml:"timeout"` // 0 waits indefinitely
}

// Duration accepts Go duration strings ("30s") in YAML, which
// yaml.v3 does not decode into time.Duration on its own.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

type AnalysisConfig struct {
	RecentReviews int `yaml:"recent_reviews"`
}

// Load reads the YAML config with environment variables expanded. A
// missing file is not an error; the tool runs on defaults so the GUI
// works without any setup.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.ResultsDir == "" {
		c.ResultsDir = "results"
	}
	if c.Fetch.Lang == "" {
		c.Fetch.Lang = "en"
	}
	if c.Fetch.Country == "" {
		c.Fetch.Country = "us"
	}
	if c.Fetch.Sort == "" {
		c.Fetch.Sort = "most_relevant"
	}
	if c.Fetch.PageSize == 0 {
		c.Fetch.PageSize = 199
	}
	if c.Analysis.RecentReviews == 0 {
		c.Analysis.RecentReviews = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
