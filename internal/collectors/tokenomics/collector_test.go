package tokenomics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

const usdtAddress = "0xdac17f958d2ee523a2206206994597c13d831ec7"

func newTestCollector(cfg *Config) *Collector {
	return New(cfg, httpclient.New(5*time.Second), logger.NewNoOpLogger())
}

func TestFetchWithLedgerFixtures(t *testing.T) {
	c := newTestCollector(nil)

	items, err := c.Fetch(context.Background(), collect.Request{
		StartupName: "Example AI",
		Params: map[string]interface{}{
			"token_addresses":     []string{usdtAddress},
			"use_ledger_fixtures": true,
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "multi_api_query", item.Method)
	assert.Equal(t, "https://etherscan.io/token/"+usdtAddress, item.URL)
	assert.Contains(t, item.Title, "ethereum token")
	assert.NotEmpty(t, item.Content)

	data := item.Fields
	assert.Equal(t, usdtAddress, data["contract_address"])
	assert.Equal(t, "ethereum", data["blockchain"])

	metadata := data["metadata"].(map[string]interface{})
	assert.Equal(t, false, metadata["explorer_verified"])

	supply := data["supply_metrics"].(map[string]interface{})
	assert.Equal(t, "ledger_fixture", supply["supply_source"])
	assert.Greater(t, supply["total_supply"].(float64), 0.0)

	// 0xdac17f95 is odd, so the fixture omits max_supply and the
	// supply section only earns 0.7 of its 1.0 share.
	_, hasMax := supply["max_supply"]
	assert.False(t, hasMax)
	assert.InDelta(t, 0.675, data["quality_score"].(float64), 1e-9)

	assert.InDelta(t, 0.8, data["circulation_ratio"].(float64), 1e-9)
	assert.Greater(t, data["estimated_market_cap"].(float64), 0.0)
}

func TestFetchDerivesConcentrationMetrics(t *testing.T) {
	c := newTestCollector(nil)

	items, err := c.Fetch(context.Background(), collect.Request{
		Params: map[string]interface{}{
			"token_addresses":     []string{usdtAddress},
			"use_ledger_fixtures": true,
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	holders := items[0].Fields["holder_statistics"].(map[string]interface{})
	assert.InDelta(t, 41.3125, holders["top_5_concentration"].(float64), 1e-4)
	assert.Equal(t, "medium", holders["concentration_risk"])

	top := holders["top_holders"].([]map[string]interface{})
	require.Len(t, top, 10)
	assert.Equal(t, 30.0, top[0]["percentage"])

	whales := holders["whale_analysis"].(map[string]interface{})
	assert.Greater(t, whales["whale_count"].(int), 0)
}

func TestFetchQueriesExplorer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("action") {
		case "getabi":
			fmt.Fprint(w, `{"status":"1","message":"OK","result":"[]"}`)
		case "tokensupply":
			fmt.Fprint(w, `{"status":"1","message":"OK","result":"5000000"}`)
		default:
			fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":null}`)
		}
	}))
	defer srv.Close()

	cfg := LoadConfig()
	cfg.EtherscanBaseURL = srv.URL
	c := newTestCollector(cfg)

	items, err := c.Fetch(context.Background(), collect.Request{
		Params: map[string]interface{}{"token_addresses": []string{usdtAddress}},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	data := items[0].Fields
	metadata := data["metadata"].(map[string]interface{})
	assert.Equal(t, true, metadata["explorer_verified"])
	assert.Equal(t, true, metadata["abi_available"])
	assert.Equal(t, "etherscan", metadata["source"])

	supply := data["supply_metrics"].(map[string]interface{})
	assert.Equal(t, "etherscan", supply["supply_source"])
	assert.Equal(t, 5000000.0, supply["total_supply"])

	// holder endpoint said no, so holder stats come from fixtures
	holders := data["holder_statistics"].(map[string]interface{})
	assert.Equal(t, "ledger_fixture", holders["data_source"])

	assert.InDelta(t, 0.725, data["quality_score"].(float64), 1e-9)
}

func TestFetchFallsBackToFixturesWhenExplorerDown(t *testing.T) {
	cfg := LoadConfig()
	cfg.EtherscanBaseURL = "http://127.0.0.1:1"
	c := newTestCollector(cfg)

	items, err := c.Fetch(context.Background(), collect.Request{
		Params: map[string]interface{}{"token_addresses": []string{usdtAddress}},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	supply := items[0].Fields["supply_metrics"].(map[string]interface{})
	assert.Equal(t, "ledger_fixture", supply["supply_source"])
}

func TestSearchKnownTokens(t *testing.T) {
	addrs := searchKnownTokens([]string{"usdc"}, []string{"ethereum", "bsc"})
	assert.Len(t, addrs, 2)

	addrs = searchKnownTokens([]string{"cake"}, []string{"ethereum", "bsc"})
	assert.Equal(t, []string{"0x0e09fabb73bd3ade0a17ecc321fd13a19e81ce82"}, addrs)

	assert.Empty(t, searchKnownTokens([]string{"nomatch"}, []string{"ethereum"}))
	assert.Empty(t, searchKnownTokens(nil, []string{"ethereum"}))
}

func TestIdentifyBlockchain(t *testing.T) {
	assert.Equal(t, "ethereum", identifyBlockchain(usdtAddress))
	assert.Equal(t, "bsc", identifyBlockchain("bnb1grpf0955h0ykzq3ar5nmum7y6gdfl6lxfn46h2"))
	assert.Equal(t, "ethereum", identifyBlockchain("something-else"))
}

func TestAddressSeed(t *testing.T) {
	assert.Equal(t, uint64(0xdac17f95), addressSeed(usdtAddress))
	assert.Equal(t, addressSeed(usdtAddress), addressSeed(usdtAddress))
	assert.Equal(t, uint64(1000000), addressSeed("not-hex"))
}

func TestAssessDataQualityEmpty(t *testing.T) {
	assert.Equal(t, 0.0, assessDataQuality(map[string]interface{}{}))
}
