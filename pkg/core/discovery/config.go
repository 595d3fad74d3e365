package discovery

import "time"

// Config holds the scraper tunables loaded from config/scraper.yaml.
// Zero values are replaced by the defaults below so a partial (or
// missing) config file still yields a working pipeline.
type Config struct {
	UserAgent         string `yaml:"user_agent"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	DetailDelayMillis int    `yaml:"detail_delay_millis"`
	MaxCandidates     int    `yaml:"max_candidates"`
	LookbackYears     int    `yaml:"lookback_years"`
	TDNetLookbackDays int    `yaml:"tdnet_lookback_days"`
}

// DefaultConfig returns the baseline scraper settings.
func DefaultConfig() Config {
	return Config{
		UserAgent:         "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
		TimeoutSeconds:    10,
		DetailDelayMillis: 500,
		MaxCandidates:     15,
		LookbackYears:     3,
		TDNetLookbackDays: 30,
	}
}

// ApplyDefaults fills any unset field from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = def.TimeoutSeconds
	}
	if c.DetailDelayMillis <= 0 {
		c.DetailDelayMillis = def.DetailDelayMillis
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = def.MaxCandidates
	}
	if c.LookbackYears <= 0 {
		c.LookbackYears = def.LookbackYears
	}
	if c.TDNetLookbackDays <= 0 {
		c.TDNetLookbackDays = def.TDNetLookbackDays
	}
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) detailDelay() time.Duration {
	return time.Duration(c.DetailDelayMillis) * time.Millisecond
}
