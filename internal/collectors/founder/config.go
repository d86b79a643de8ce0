package founder

// Config holds founder collector tunables.
type Config struct {
	MaxFounders  int
	SearchSocial bool
}

func LoadConfig() *Config {
	return &Config{
		MaxFounders:  3,
		SearchSocial: true,
	}
}
