package tokenomics

// Config holds tokenomics collector tunables. The explorer base URLs
// are configurable so tests can point them at local servers.
type Config struct {
	Blockchains      []string
	MaxTokens        int
	EtherscanBaseURL string
	BscscanBaseURL   string
}

func LoadConfig() *Config {
	return &Config{
		Blockchains:      []string{"ethereum", "bsc"},
		MaxTokens:        5,
		EtherscanBaseURL: "https://api.etherscan.io/api",
		BscscanBaseURL:   "https://api.bscscan.com/api",
	}
}
