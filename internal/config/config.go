package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jmorascalyr/jarvis-coding/internal/validation"
)

// Config contains everything a validation run needs: both boundary
// endpoints, polling limits, run bounds, and the grade table.
type Config struct {
	Ingest   IngestConfig          `mapstructure:"ingest"`
	Query    QueryConfig           `mapstructure:"query"`
	Poll     PollConfig            `mapstructure:"poll"`
	Run      RunConfig             `mapstructure:"run"`
	Submit   SubmitConfig          `mapstructure:"submit"`
	Score    validation.Thresholds `mapstructure:"score"`
	Products ProductsConfig        `mapstructure:"products"`
	Logging  LoggingConfig         `mapstructure:"logging"`
}

// IngestConfig points at the HEC-compatible ingestion boundary.
type IngestConfig struct {
	URL      string `mapstructure:"url"`
	HECToken string `mapstructure:"hec_token"`
}

// QueryConfig points at the search boundary the poller reads back
// from.
type QueryConfig struct {
	URL      string `mapstructure:"url"`
	APIToken string `mapstructure:"api_token"`
}

// PollConfig bounds per-token polling.
type PollConfig struct {
	BaseInterval time.Duration `mapstructure:"base_interval"`
	MaxInterval  time.Duration `mapstructure:"max_interval"`
	Deadline     time.Duration `mapstructure:"deadline"`
	Lookback     time.Duration `mapstructure:"lookback"`
}

// RunConfig bounds the run as a whole.
type RunConfig struct {
	Settle      time.Duration `mapstructure:"settle"`
	Deadline    time.Duration `mapstructure:"deadline"`
	MaxInFlight int           `mapstructure:"max_in_flight"`
	ResultsFile string        `mapstructure:"results_file"`
}

// SubmitConfig paces submissions: each event waits a jittered delay
// drawn from [SpacingMin, SpacingMax] before it is sent.
type SubmitConfig struct {
	SpacingMin time.Duration `mapstructure:"spacing_min"`
	SpacingMax time.Duration `mapstructure:"spacing_max"`
}

// ProductsConfig selects which product taxonomies a run validates.
type ProductsConfig struct {
	// File is an optional YAML taxonomy file merged over the built-in
	// catalog.
	File string `mapstructure:"file"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from an optional file with JARVIS_*
// environment overrides layered on top.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Empty-string defaults register the keys so environment
	// overrides bind without a config file.
	v.SetDefault("ingest.url", "http://localhost:8088")
	v.SetDefault("ingest.hec_token", "")
	v.SetDefault("query.url", "http://localhost:8082/api/v1/search")
	v.SetDefault("query.api_token", "")
	v.SetDefault("products.file", "")
	v.SetDefault("poll.base_interval", "1s")
	v.SetDefault("poll.max_interval", "8s")
	v.SetDefault("poll.deadline", "90s")
	v.SetDefault("poll.lookback", "2h")
	v.SetDefault("run.settle", "10s")
	v.SetDefault("run.deadline", "0")
	v.SetDefault("run.max_in_flight", 8)
	v.SetDefault("run.results_file", "validation_results.json")
	v.SetDefault("submit.spacing_min", "0")
	v.SetDefault("submit.spacing_max", "0")
	v.SetDefault("score.excellent_coverage", 80)
	v.SetDefault("score.good_compliance", 60)
	v.SetDefault("score.functional_compliance", 40)
	v.SetDefault("score.high_water_fields", 20)
	v.SetDefault("score.sample_fields", 20)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("jarvis")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/jarvis")
	}

	v.SetEnvPrefix("JARVIS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; defaults plus environment apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects configurations a run cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if err := checkURL("ingest.url", c.Ingest.URL); err != nil {
		errs = append(errs, err)
	}
	if err := checkURL("query.url", c.Query.URL); err != nil {
		errs = append(errs, err)
	}
	if c.Ingest.HECToken == "" {
		errs = append(errs, errors.New("ingest.hec_token is required"))
	}
	if c.Poll.BaseInterval <= 0 {
		errs = append(errs, errors.New("poll.base_interval must be positive"))
	}
	if c.Poll.MaxInterval < c.Poll.BaseInterval {
		errs = append(errs, errors.New("poll.max_interval must be at least poll.base_interval"))
	}
	if c.Poll.Deadline <= 0 {
		errs = append(errs, errors.New("poll.deadline must be positive"))
	}
	if c.Run.MaxInFlight <= 0 {
		errs = append(errs, errors.New("run.max_in_flight must be positive"))
	}
	if c.Submit.SpacingMax > 0 && c.Submit.SpacingMin > c.Submit.SpacingMax {
		errs = append(errs, errors.New("submit.spacing_min must not exceed submit.spacing_max"))
	}
	return errors.Join(errs...)
}

// PollPolicy converts the poll section into the poller's policy.
func (c *Config) PollPolicy() validation.PollPolicy {
	return validation.PollPolicy{
		BaseInterval: c.Poll.BaseInterval,
		MaxInterval:  c.Poll.MaxInterval,
		Deadline:     c.Poll.Deadline,
		Lookback:     c.Poll.Lookback,
	}
}

// OrchestratorConfig converts the run section into orchestrator
// bounds.
func (c *Config) OrchestratorConfig() validation.OrchestratorConfig {
	return validation.OrchestratorConfig{
		MaxInFlight: c.Run.MaxInFlight,
		Settle:      c.Run.Settle,
		SpacingMin:  c.Submit.SpacingMin,
		SpacingMax:  c.Submit.SpacingMax,
		RunDeadline: c.Run.Deadline,
	}
}

func checkURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s is not a valid URL: %q", key, raw)
	}
	return nil
}
