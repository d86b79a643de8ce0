package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App        AppConfig                  `mapstructure:"app"`
	Logging    LoggingConfig              `mapstructure:"logging"`
	HTTP       HTTPConfig                 `mapstructure:"http"`
	Cache      CacheConfig                `mapstructure:"cache"`
	Metrics    MetricsConfig              `mapstructure:"metrics"`
	Collection CollectionConfig           `mapstructure:"collection"`
	Scoring    ScoringConfig              `mapstructure:"scoring"`
	Collectors map[string]CollectorConfig `mapstructure:"collectors"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HTTPConfig struct {
	Timeout   int    `mapstructure:"timeout"` // milliseconds
	UserAgent string `mapstructure:"user_agent"`
}

type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
}

// CollectionConfig holds the reliability envelope applied to every
// collector by its runner.
type CollectionConfig struct {
	MaxAttempts    int `mapstructure:"max_attempts"`
	BaseDelay      int `mapstructure:"base_delay"`       // milliseconds
	RateLimitDelay int `mapstructure:"rate_limit_delay"` // milliseconds
	MaxResults     int `mapstructure:"max_results"`
	Timeout        int `mapstructure:"timeout"`     // per-collector, milliseconds
	RunTimeout     int `mapstructure:"run_timeout"` // whole pipeline, milliseconds
}

func (c CollectionConfig) BaseDelayDuration() time.Duration {
	return time.Duration(c.BaseDelay) * time.Millisecond
}

func (c CollectionConfig) RateLimitDelayDuration() time.Duration {
	return time.Duration(c.RateLimitDelay) * time.Millisecond
}

func (c CollectionConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

func (c CollectionConfig) RunTimeoutDuration() time.Duration {
	return time.Duration(c.RunTimeout) * time.Millisecond
}

// CollectorConfig holds per-collector overrides.
type CollectorConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	MaxResults     int  `mapstructure:"max_results"`
	RateLimitDelay int  `mapstructure:"rate_limit_delay"` // milliseconds
}

// ScoringConfig exposes the aggregation weights. The weights are
// tunable but are never re-normalized to sum to 1.0.
type ScoringConfig struct {
	FounderWeight     float64 `mapstructure:"founder_weight"`
	MarketWeight      float64 `mapstructure:"market_weight"`
	CompetitionWeight float64 `mapstructure:"competition_weight"`
	TokenWeight       float64 `mapstructure:"token_weight"`

	MarketSectionWeight  float64 `mapstructure:"market_section_weight"`
	MarketSectionBase    float64 `mapstructure:"market_section_base"`
	MarketCoverageWeight float64 `mapstructure:"market_coverage_weight"`
	MarketWebsiteWeight  float64 `mapstructure:"market_website_weight"`
	MarketPaperWeight    float64 `mapstructure:"market_paper_weight"`

	CompetitionSectionWeight float64 `mapstructure:"competition_section_weight"`
	CompetitionSectionBase   float64 `mapstructure:"competition_section_base"`
	CompetitionPagesWeight   float64 `mapstructure:"competition_pages_weight"`
	CompetitionPagesScale    float64 `mapstructure:"competition_pages_scale"`

	WeaknessThreshold  int     `mapstructure:"weakness_threshold"`
	WeaknessPenalty    float64 `mapstructure:"weakness_penalty"`
	WeaknessPenaltyCap float64 `mapstructure:"weakness_penalty_cap"`

	StrongThreshold   int `mapstructure:"strong_threshold"`
	ModerateThreshold int `mapstructure:"moderate_threshold"`
}
