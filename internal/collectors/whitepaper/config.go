package whitepaper

// Config holds whitepaper collector tunables.
type Config struct {
	Formats         []string
	MaxInsights     int
	MaxNameMentions int
}

func LoadConfig() *Config {
	return &Config{
		Formats:         []string{"pdf", "html", "txt"},
		MaxInsights:     10,
		MaxNameMentions: 3,
	}
}
