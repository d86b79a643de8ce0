package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// CollectorRoles enumerates the fixed set of collector roles the
// pipeline registers. Keys of Config.Collectors must come from this set.
var CollectorRoles = []string{"pitch_deck", "whitepaper", "website", "tokenomics", "founders"}

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DQDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("DQDA_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Default returns a fully defaulted configuration without touching the
// filesystem. Used by tests and as the CLI fallback.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dqda"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}

	if cfg.HTTP.Timeout <= 0 {
		cfg.HTTP.Timeout = 30000
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	}

	if cfg.Cache.Address == "" {
		cfg.Cache.Address = "localhost:6379"
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 3600
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = ":9102"
	}

	if cfg.Collection.MaxAttempts <= 0 {
		cfg.Collection.MaxAttempts = 3
	}
	if cfg.Collection.BaseDelay <= 0 {
		cfg.Collection.BaseDelay = 1000
	}
	if cfg.Collection.RateLimitDelay <= 0 {
		cfg.Collection.RateLimitDelay = 1000
	}
	if cfg.Collection.MaxResults <= 0 {
		cfg.Collection.MaxResults = 5
	}
	if cfg.Collection.Timeout <= 0 {
		cfg.Collection.Timeout = 60000
	}
	if cfg.Collection.RunTimeout <= 0 {
		cfg.Collection.RunTimeout = 300000
	}

	applyScoringDefaults(&cfg.Scoring)

	if cfg.Collectors == nil {
		cfg.Collectors = map[string]CollectorConfig{}
	}
	for _, role := range CollectorRoles {
		if _, ok := cfg.Collectors[role]; !ok {
			cfg.Collectors[role] = CollectorConfig{Enabled: true}
		}
	}
}

func applyScoringDefaults(s *ScoringConfig) {
	if s.FounderWeight <= 0 {
		s.FounderWeight = 0.35
	}
	if s.MarketWeight <= 0 {
		s.MarketWeight = 0.30
	}
	if s.CompetitionWeight <= 0 {
		s.CompetitionWeight = 0.15
	}
	if s.TokenWeight <= 0 {
		s.TokenWeight = 0.20
	}

	if s.MarketSectionWeight <= 0 {
		s.MarketSectionWeight = 0.45
	}
	if s.MarketSectionBase <= 0 {
		s.MarketSectionBase = 0.15
	}
	if s.MarketCoverageWeight <= 0 {
		s.MarketCoverageWeight = 0.25
	}
	if s.MarketWebsiteWeight <= 0 {
		s.MarketWebsiteWeight = 0.2
	}
	if s.MarketPaperWeight <= 0 {
		s.MarketPaperWeight = 0.1
	}

	if s.CompetitionSectionWeight <= 0 {
		s.CompetitionSectionWeight = 0.6
	}
	if s.CompetitionSectionBase <= 0 {
		s.CompetitionSectionBase = 0.3
	}
	if s.CompetitionPagesWeight <= 0 {
		s.CompetitionPagesWeight = 0.4
	}
	if s.CompetitionPagesScale <= 0 {
		s.CompetitionPagesScale = 10
	}

	if s.WeaknessThreshold <= 0 {
		s.WeaknessThreshold = 40
	}
	if s.WeaknessPenalty <= 0 {
		s.WeaknessPenalty = 0.02
	}
	if s.WeaknessPenaltyCap <= 0 {
		s.WeaknessPenaltyCap = 0.20
	}

	if s.StrongThreshold <= 0 {
		s.StrongThreshold = 75
	}
	if s.ModerateThreshold <= 0 {
		s.ModerateThreshold = 55
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Collection.MaxAttempts < 1 {
		return fmt.Errorf("collection.max_attempts must be at least 1")
	}
	if cfg.Scoring.ModerateThreshold >= cfg.Scoring.StrongThreshold {
		return fmt.Errorf("scoring.moderate_threshold must be below scoring.strong_threshold")
	}
	for role := range cfg.Collectors {
		valid := false
		for _, known := range CollectorRoles {
			if role == known {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown collector role in config: %s", role)
		}
	}
	return nil
}
