package tokenomics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

// Collector gathers token economics for contract addresses: supply,
// holder distribution, market data and derived concentration metrics.
// It queries etherscan-style explorer APIs and falls back to
// deterministic ledger fixtures when the explorers are unreachable or
// when a run asks for fixtures outright.
type Collector struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func New(cfg *Config, client *httpclient.Client, log logger.Logger) *Collector {
	if cfg == nil {
		cfg = LoadConfig()
	}
	return &Collector{config: cfg, client: client, logger: log}
}

func (c *Collector) Kind() collect.SourceKind {
	return collect.SourceTokenomics
}

func (c *Collector) Fetch(ctx context.Context, req collect.Request) ([]collect.RawItem, error) {
	addresses := req.StringSliceParam("token_addresses")
	useFixtures := req.BoolParam("use_ledger_fixtures", false)

	if len(addresses) == 0 {
		addresses = searchKnownTokens(req.Keywords, c.config.Blockchains)
	}
	if len(addresses) > c.config.MaxTokens {
		addresses = addresses[:c.config.MaxTokens]
	}

	items := []collect.RawItem{}
	for _, address := range addresses {
		blockchain := identifyBlockchain(address)
		data := c.collectTokenData(ctx, address, blockchain, useFixtures)

		payload, err := json.Marshal(data)
		if err != nil {
			c.logger.WithError(err).Warn("skipping token", map[string]interface{}{"address": address})
			continue
		}

		items = append(items, collect.RawItem{
			Title:   fmt.Sprintf("%s token %s", blockchain, shortAddress(address)),
			URL:     explorerTokenURL(blockchain, address),
			Content: string(payload),
			Metadata: map[string]interface{}{
				"contract_address": address,
				"blockchain":       blockchain,
				"data_sources":     dataSources(blockchain),
			},
			Fields: data,
			Method: "multi_api_query",
		})
	}
	return items, nil
}

func (c *Collector) collectTokenData(ctx context.Context, address, blockchain string, useFixtures bool) map[string]interface{} {
	c.logger.Info("collecting tokenomics", map[string]interface{}{
		"address":    address,
		"blockchain": blockchain,
		"fixtures":   useFixtures,
	})

	data := map[string]interface{}{
		"contract_address":     address,
		"blockchain":           blockchain,
		"metadata":             c.tokenMetadata(ctx, address, blockchain, useFixtures),
		"supply_metrics":       c.supplyMetrics(ctx, address, blockchain, useFixtures),
		"holder_statistics":    c.holderStatistics(ctx, address, blockchain, useFixtures),
		"market_data":          fixtureMarketData(address),
		"blockchain_info":      blockchainInfo(address, blockchain),
		"collection_timestamp": time.Now().UTC().Format(time.RFC3339),
		"collection_method":    "multi_api_query",
		"data_sources":         dataSources(blockchain),
	}

	deriveMetrics(data)
	data["quality_score"] = assessDataQuality(data)
	return data
}

// tokenMetadata checks the chain explorer for a verified contract ABI.
func (c *Collector) tokenMetadata(ctx context.Context, address, blockchain string, useFixtures bool) map[string]interface{} {
	if !useFixtures {
		baseURL, source := c.explorerFor(blockchain)
		if baseURL != "" {
			url := fmt.Sprintf("%s?module=contract&action=getabi&address=%s", baseURL, address)
			var resp explorerResponse
			if err := c.queryExplorer(ctx, url, &resp); err != nil {
				c.logger.WithError(err).Warn("explorer metadata query failed", map[string]interface{}{"address": address})
			} else if resp.Status == "1" {
				return map[string]interface{}{
					"contract_address":  address,
					"blockchain":        blockchain,
					"explorer_verified": true,
					"abi_available":     true,
					"source":            source,
				}
			}
		}
	}
	return map[string]interface{}{
		"contract_address":  address,
		"explorer_verified": false,
		"metadata_source":   "generic",
		"note":              "Limited metadata available",
	}
}

func (c *Collector) supplyMetrics(ctx context.Context, address, blockchain string, useFixtures bool) map[string]interface{} {
	if !useFixtures {
		baseURL, source := c.explorerFor(blockchain)
		if baseURL != "" {
			url := fmt.Sprintf("%s?module=stats&action=tokensupply&contractaddress=%s", baseURL, address)
			var resp explorerResponse
			if err := c.queryExplorer(ctx, url, &resp); err != nil {
				c.logger.WithError(err).Warn("explorer supply query failed", map[string]interface{}{"address": address})
			} else if resp.Status == "1" {
				if raw, ok := resp.Result.(string); ok {
					if total, err := strconv.ParseFloat(raw, 64); err == nil && total > 0 {
						return map[string]interface{}{
							"contract_address": address,
							"blockchain":       blockchain,
							"total_supply":     total,
							"supply_source":    source,
						}
					}
				}
			}
		}
	}

	supply := fixtureSupplyData(address)
	supply["contract_address"] = address
	supply["blockchain"] = blockchain
	supply["supply_source"] = "ledger_fixture"
	return supply
}

func (c *Collector) holderStatistics(ctx context.Context, address, blockchain string, useFixtures bool) map[string]interface{} {
	if !useFixtures {
		baseURL, source := c.explorerFor(blockchain)
		if baseURL != "" {
			url := fmt.Sprintf("%s?module=token&action=tokenholderlist&contractaddress=%s&page=1&offset=100", baseURL, address)
			var resp explorerResponse
			if err := c.queryExplorer(ctx, url, &resp); err != nil {
				c.logger.WithError(err).Warn("explorer holder query failed", map[string]interface{}{"address": address})
			} else if resp.Status == "1" {
				if raw, ok := resp.Result.([]interface{}); ok && len(raw) > 0 {
					top := raw
					if len(top) > 10 {
						top = top[:10]
					}
					return map[string]interface{}{
						"contract_address": address,
						"blockchain":       blockchain,
						"total_holders":    len(raw),
						"top_holders":      processHolderList(top),
						"whale_analysis":   map[string]interface{}{},
						"data_source":      source,
					}
				}
			}
		}
	}

	holders := fixtureHolderData(address)
	holders["contract_address"] = address
	holders["blockchain"] = blockchain
	holders["data_source"] = "ledger_fixture"
	return holders
}

func (c *Collector) explorerFor(blockchain string) (baseURL, source string) {
	switch blockchain {
	case "ethereum":
		return c.config.EtherscanBaseURL, "etherscan"
	case "bsc":
		return c.config.BscscanBaseURL, "bscscan"
	default:
		return "", ""
	}
}

func (c *Collector) queryExplorer(ctx context.Context, url string, out *explorerResponse) error {
	body, err := c.client.Get(ctx, url)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// processHolderList normalizes raw explorer holder entries.
func processHolderList(raw []interface{}) []map[string]interface{} {
	processed := []map[string]interface{}{}
	for _, entry := range raw {
		holder, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		processed = append(processed, map[string]interface{}{
			"address":    stringValue(holder["TokenHolder"]),
			"balance":    floatValue(holder["TokenHolderQuantity"]),
			"percentage": floatValue(holder["PercentageOfTotalSupply"]),
		})
	}
	return processed
}

// identifyBlockchain guesses the chain from the address shape.
func identifyBlockchain(address string) string {
	if strings.HasPrefix(address, "bnb") {
		return "bsc"
	}
	return "ethereum"
}

func blockchainInfo(address, blockchain string) map[string]interface{} {
	standard := "unknown"
	switch blockchain {
	case "ethereum":
		standard = "ERC20"
	case "bsc":
		standard = "BEP20"
	}
	level, ok := decentralizationLevels[blockchain]
	if !ok {
		level = "unknown"
	}
	return map[string]interface{}{
		"blockchain":             blockchain,
		"contract_address":       address,
		"explorer_urls":          blockchainExplorers[blockchain],
		"standard":               standard,
		"decentralization_level": level,
	}
}

// searchKnownTokens matches run keywords against the known-token
// registry when no addresses were configured.
func searchKnownTokens(keywords, blockchains []string) []string {
	addresses := []string{}
	for _, blockchain := range blockchains {
		tokens, ok := knownTokens[blockchain]
		if !ok {
			continue
		}
		for name, address := range tokens {
			for _, keyword := range keywords {
				if keyword != "" && strings.Contains(strings.ToLower(name), strings.ToLower(keyword)) {
					addresses = append(addresses, address)
					break
				}
			}
		}
	}
	if len(addresses) > 5 {
		addresses = addresses[:5]
	}
	return addresses
}

// addressSeed derives a deterministic seed from the leading hex bytes
// of the contract address so fixtures stay stable per token.
func addressSeed(address string) uint64 {
	hexPart := strings.TrimPrefix(address, "0x")
	if len(hexPart) >= 8 {
		hexPart = hexPart[:8]
	}
	seed, err := strconv.ParseUint(hexPart, 16, 64)
	if err != nil || seed == 0 {
		return 1000000
	}
	return seed
}

func fixtureSupplyData(address string) map[string]interface{} {
	seed := addressSeed(address)
	supply := map[string]interface{}{
		"total_supply":       float64(seed) * 1000000,
		"circulating_supply": float64(seed) * 800000,
	}
	if seed%2 == 0 {
		supply["max_supply"] = float64(seed) * 2000000
	}
	if seed%3 == 0 {
		supply["inflation_rate"] = 0.02
	}
	return supply
}

func fixtureHolderData(address string) map[string]interface{} {
	seed := addressSeed(address)
	totalSupply := float64(seed) * 1000000

	holders := []map[string]interface{}{}
	whaleThreshold := totalSupply * 0.01
	whaleCount := 0
	for i := 0; i < 10; i++ {
		percentage := 30.0
		if i > 0 {
			percentage = math.Max(0.01, 30/float64(i+1)*math.Pow(0.5, float64(i)))
		}
		balance := percentage / 100 * totalSupply
		if balance > whaleThreshold {
			whaleCount++
		}
		holders = append(holders, map[string]interface{}{
			"address":    fmt.Sprintf("0x%040x", seed+uint64(i)*7919),
			"balance":    balance,
			"percentage": percentage,
		})
	}

	return map[string]interface{}{
		"total_holders": int(1000 + seed%9000),
		"top_holders":   holders,
		"whale_analysis": map[string]interface{}{
			"whale_threshold": whaleThreshold,
			"whale_count":     whaleCount,
		},
	}
}

func fixtureMarketData(address string) map[string]interface{} {
	seed := addressSeed(address)
	basePrice := 0.1 + float64(seed%1000)*0.0999
	return map[string]interface{}{
		"contract_address":  address,
		"current_price_usd": basePrice,
		"current_price_btc": basePrice / 50000,
		"current_price_eth": basePrice / 3000,
		"market_cap_usd":    basePrice * float64(1000000+seed%99000000),
		"volume_24h_usd":    basePrice * float64(100000+seed%9900000),
		"price_change_24h":  float64(seed%400)/10 - 20,
		"data_source":       "ledger_fixture",
	}
}

// deriveMetrics computes circulation ratio, holder concentration and
// an estimated market cap from the raw sections.
func deriveMetrics(data map[string]interface{}) {
	supply := mapSection(data, "supply_metrics")
	holders := mapSection(data, "holder_statistics")
	market := mapSection(data, "market_data")

	totalSupply := floatValue(supply["total_supply"])
	circulating := floatValue(supply["circulating_supply"])
	if totalSupply > 0 && circulating > 0 {
		data["circulation_ratio"] = circulating / totalSupply
	}

	if topHolders, ok := holders["top_holders"].([]map[string]interface{}); ok && len(topHolders) > 0 {
		top5, top10 := 0.0, 0.0
		for i, holder := range topHolders {
			pct := floatValue(holder["percentage"])
			if i < 5 {
				top5 += pct
			}
			if i < 10 {
				top10 += pct
			}
		}
		holders["top_5_concentration"] = top5
		holders["top_10_concentration"] = top10
		switch {
		case top10 > 50:
			holders["concentration_risk"] = "high"
		case top10 > 30:
			holders["concentration_risk"] = "medium"
		default:
			holders["concentration_risk"] = "low"
		}
	}

	price := floatValue(market["current_price_usd"])
	if price > 0 && totalSupply > 0 {
		data["estimated_market_cap"] = price * totalSupply
	}
}

// assessDataQuality scores the completeness of each data section. Every
// section contributes up to 1.0 and the result is normalized to [0,1].
func assessDataQuality(data map[string]interface{}) float64 {
	score := 0.0

	metadata := mapSection(data, "metadata")
	if boolValue(metadata["explorer_verified"]) {
		score += 0.3
	}
	if boolValue(metadata["abi_available"]) {
		score += 0.2
	}

	supply := mapSection(data, "supply_metrics")
	if floatValue(supply["total_supply"]) > 0 {
		score += 0.4
	}
	if floatValue(supply["circulating_supply"]) > 0 {
		score += 0.3
	}
	if floatValue(supply["max_supply"]) > 0 {
		score += 0.3
	}

	holders := mapSection(data, "holder_statistics")
	if intHolderCount(holders["total_holders"]) > 0 {
		score += 0.3
	}
	if topHolders, ok := holders["top_holders"].([]map[string]interface{}); ok && len(topHolders) > 0 {
		score += 0.4
	}
	if whales := mapSection(holders, "whale_analysis"); len(whales) > 0 {
		score += 0.3
	}

	market := mapSection(data, "market_data")
	if floatValue(market["current_price_usd"]) > 0 {
		score += 0.4
	}
	if floatValue(market["market_cap_usd"]) > 0 {
		score += 0.3
	}
	if floatValue(market["volume_24h_usd"]) > 0 {
		score += 0.3
	}

	return math.Min(score/4.0, 1.0)
}

func explorerTokenURL(blockchain, address string) string {
	explorers := blockchainExplorers[blockchain]
	if len(explorers) == 0 {
		return ""
	}
	return explorers[0] + "/token/" + address
}

func dataSources(blockchain string) []string {
	switch blockchain {
	case "ethereum":
		return []string{"etherscan", "coingecko"}
	case "bsc":
		return []string{"bscscan", "coingecko"}
	default:
		return []string{"generic_apis"}
	}
}

func shortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:10]
}

func mapSection(data map[string]interface{}, key string) map[string]interface{} {
	if section, ok := data[key].(map[string]interface{}); ok {
		return section
	}
	return map[string]interface{}{}
}

func stringValue(v interface{}) string {
	s, _ := v.(string)
	return s
}

func floatValue(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func boolValue(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

func intHolderCount(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
