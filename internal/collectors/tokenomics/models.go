package tokenomics

// knownTokens maps well-known token symbols to contract addresses per
// chain. Used when a run supplies keywords but no explicit addresses.
var knownTokens = map[string]map[string]string{
	"ethereum": {
		"USDC": "0xa0b86a33e6415b8b23665e5b9adf3e9b5d0d4f62",
		"USDT": "0xdac17f958d2ee523a2206206994597c13d831ec7",
		"DAI":  "0x6b175474e89094c44da98b954eedeac495271d0f",
		"LINK": "0x514910771af9ca656af840dff83e8264ecf986ca",
	},
	"bsc": {
		"USDC": "0x8ac76a51cc950d9822d68b83fe1ad97b32cd580d",
		"BUSD": "0xe9e7cea3dedca5984780bafc599bd69add087d56",
		"CAKE": "0x0e09fabb73bd3ade0a17ecc321fd13a19e81ce82",
	},
}

var blockchainExplorers = map[string][]string{
	"ethereum":  {"https://etherscan.io", "https://ethplorer.io"},
	"bsc":       {"https://bscscan.com", "https://testnet.bscscan.com"},
	"polygon":   {"https://polygonscan.com"},
	"avalanche": {"https://snowtrace.io"},
}

var decentralizationLevels = map[string]string{
	"ethereum":  "high",
	"bsc":       "medium",
	"polygon":   "medium",
	"avalanche": "high",
	"solana":    "high",
}

// explorerResponse is the JSON envelope etherscan-style APIs return.
type explorerResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Result  interface{} `json:"result"`
}
