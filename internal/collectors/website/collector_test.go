package website

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/cache"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

func newTestCollector(pageCache *cache.Cache) *Collector {
	client := httpclient.New(5 * time.Second)
	return New(nil, client, pageCache, logger.NewNoOpLogger())
}

func fixtureSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head>
			<title>Example AI</title>
			<meta name="description" content="Deterministic analytics platform">
			</head><body>
			<p>Example AI builds a technology platform for venture analysis.</p>
			<a href="/about">About</a>
			<a href="/product">Product</a>
			<a href="/admin/panel">Admin</a>
			<a href="https://elsewhere.test/page">External</a>
			</body></html>`)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>About</title></head><body>
			<p>Established 2019 and based in Berlin. Our CEO Jane Moore leads the company.</p>
			</body></html>`)
	})
	mux.HandleFunc("/product", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Product</title></head><body>
			<p>Our solution analyses startups as a service.</p>
			</body></html>`)
	})
	mux.HandleFunc("/admin/panel", func(w http.ResponseWriter, r *http.Request) {
		t.Error("crawler fetched a blocked URL")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCrawlsSite(t *testing.T) {
	srv := fixtureSite(t)
	c := newTestCollector(nil)

	items, err := c.Fetch(context.Background(), collect.Request{
		StartupName: "Example AI",
		Params:      map[string]interface{}{"website_urls": []string{srv.URL}},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "Example AI", item.Title)
	assert.Equal(t, srv.URL, item.URL)
	assert.Equal(t, "website_crawling", item.Method)
	assert.Contains(t, item.Content, "venture analysis")

	pages, ok := item.Fields["crawled_pages"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, pages, 3)
	assert.Contains(t, pages, srv.URL)
	assert.Contains(t, pages, srv.URL+"/about")
	assert.Contains(t, pages, srv.URL+"/product")
	assert.NotContains(t, pages, srv.URL+"/admin/panel")

	home, ok := pages[srv.URL].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Example AI", home["title"])
	assert.Equal(t, "Deterministic analytics platform", home["meta_description"])

	info, ok := item.Fields["company_information"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "2019", info["founded_year"])
	assert.Equal(t, "Berlin", info["location"])
	assert.Equal(t, true, info["startup_mentioned"])
	assert.Contains(t, info["key_terms_mentioned"], "platform")

	team, ok := info["team"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, team["ceo"], "Jane Moore")

	stats, ok := item.Fields["crawl_stats"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 3, stats["pages_crawled"])

	structure, ok := item.Fields["site_structure"].(map[string]interface{})
	require.True(t, ok)
	about, ok := structure["/about"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "about", about["priority_page"])
}

func TestFetchRespectsMaxPages(t *testing.T) {
	srv := fixtureSite(t)
	c := newTestCollector(nil)

	items, err := c.Fetch(context.Background(), collect.Request{
		StartupName: "Example AI",
		Params: map[string]interface{}{
			"website_urls": []string{srv.URL},
			"max_pages":    1,
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 1)

	pages := items[0].Fields["crawled_pages"].(map[string]interface{})
	assert.Len(t, pages, 1)
}

func TestFetchSkipsUnreachableBase(t *testing.T) {
	c := newTestCollector(nil)

	items, err := c.Fetch(context.Background(), collect.Request{
		StartupName: "Example AI",
		Params:      map[string]interface{}{"website_urls": []string{"http://127.0.0.1:1/"}},
	})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchUsesPageCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `<html><head><title>Cached</title></head><body><p>Single page site.</p></body></html>`)
	}))
	defer srv.Close()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	pageCache := cache.NewWithClient(client, time.Minute, "dqda")

	c := newTestCollector(pageCache)
	req := collect.Request{
		StartupName: "Example AI",
		Params:      map[string]interface{}{"website_urls": []string{srv.URL}, "max_pages": 1},
	}

	_, err := c.Fetch(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), hits.Load())

	items, err := c.Fetch(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cached", items[0].Title)
	assert.Equal(t, int64(1), hits.Load())
}

func TestCandidateURLs(t *testing.T) {
	urls := candidateURLs("Example AI")
	assert.Contains(t, urls, "https://exampleai.com")
	assert.Contains(t, urls, "https://example-ai.com")
	assert.Empty(t, candidateURLs(""))
}

func TestBlockedURL(t *testing.T) {
	cases := []struct {
		url     string
		blocked bool
	}{
		{"https://site.test/about", false},
		{"https://site.test/admin/panel", true},
		{"https://site.test/wp-admin/index.php", true},
		{"https://site.test/logo.png", true},
		{"https://site.test/page?utm_source=news", true},
		{"https://site.test/search?q=x", true},
		{"https://site.test/product", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.blocked, blockedURL(tc.url), tc.url)
	}
}

func TestResolveLink(t *testing.T) {
	assert.Equal(t, "https://site.test/about", resolveLink("https://site.test/", "/about"))
	assert.Equal(t, "https://site.test/a/b", resolveLink("https://site.test/a/", "b"))
	assert.Equal(t, "https://site.test/page", resolveLink("https://site.test/", "/page#section"))
	assert.Equal(t, "", resolveLink("https://site.test/", "mailto:hi@site.test"))
}

func TestExtractCompanyInfo(t *testing.T) {
	content := "Acme was founded 2021 and is headquartered in Lisbon. " +
		"We raised $12m in funding with 45 employees. Our founder Ada King started Acme."
	info := extractCompanyInfo(content, "Acme")

	assert.Equal(t, "2021", info["founded_year"])
	assert.Equal(t, "Lisbon", info["location"])
	assert.Equal(t, "45", info["employees"])
	assert.Equal(t, true, info["startup_mentioned"])

	team := info["team"].(map[string]interface{})
	assert.Contains(t, team["founder"], "Ada King")
}

func TestPagePriority(t *testing.T) {
	assert.Equal(t, "about", pagePriority("/about-us"))
	assert.Equal(t, "product", pagePriority("/solutions/ai"))
	assert.Equal(t, "legal", pagePriority("/privacy"))
	assert.Equal(t, "blog", pagePriority("/blog/post-1"))
	assert.Equal(t, "general", pagePriority("/random"))
}
