package website

// Config holds website crawler tunables.
type Config struct {
	MaxPages     int
	CrawlDepth   int
	LinksPerPage int
}

func LoadConfig() *Config {
	return &Config{
		MaxPages:     10,
		CrawlDepth:   2,
		LinksPerPage: 10,
	}
}
