package pitchdeck

// Config holds pitch-deck collector tunables.
type Config struct {
	MinSectionLength int
	MaxNameMentions  int
}

func LoadConfig() *Config {
	return &Config{
		MinSectionLength: 50,
		MaxNameMentions:  5,
	}
}
