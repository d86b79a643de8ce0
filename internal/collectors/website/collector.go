package website

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Oragnicveda/Blockchain-AI/internal/common/cache"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/httpclient"
	"github.com/Oragnicveda/Blockchain-AI/internal/common/logger"
	"github.com/Oragnicveda/Blockchain-AI/internal/dqda/collect"
)

// Collector crawls a startup's public site breadth-first and distills
// it into one raw item per base URL: crawled pages, extracted company
// information, site structure and crawl stats. Fetched pages are
// memoized in Redis when a cache is wired in.
type Collector struct {
	config *Config
	client *httpclient.Client
	cache  *cache.Cache
	logger logger.Logger
}

func New(cfg *Config, client *httpclient.Client, pageCache *cache.Cache, log logger.Logger) *Collector {
	if cfg == nil {
		cfg = LoadConfig()
	}
	return &Collector{config: cfg, client: client, cache: pageCache, logger: log}
}

func (c *Collector) Kind() collect.SourceKind {
	return collect.SourceWebsite
}

// Fetch crawls every configured base URL. A base URL whose crawl fails
// entirely is skipped with a warning, so unreachable sites degrade to
// an empty item list rather than an error; retrying would not fix a
// missing or dead site.
func (c *Collector) Fetch(ctx context.Context, req collect.Request) ([]collect.RawItem, error) {
	baseURLs := req.StringSliceParam("website_urls")
	if len(baseURLs) == 0 {
		baseURLs = candidateURLs(req.StartupName)
	}

	maxPages := req.IntParam("max_pages", c.config.MaxPages)
	depth := req.IntParam("crawl_depth", c.config.CrawlDepth)

	items := []collect.RawItem{}
	for _, base := range baseURLs {
		item, ok := c.crawl(ctx, base, req.StartupName, maxPages, depth)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// candidateURLs guesses likely homepages from the startup name when
// none were configured.
func candidateURLs(startupName string) []string {
	if startupName == "" {
		return nil
	}
	slug := strings.ToLower(strings.ReplaceAll(startupName, " ", ""))
	dashed := strings.ToLower(strings.ReplaceAll(startupName, " ", "-"))
	return []string{
		"https://" + slug + ".com",
		"https://www." + slug + ".com",
		"https://" + slug + ".io",
		"https://" + dashed + ".com",
	}
}

type crawledPage struct {
	title           string
	content         string
	metaDescription string
	links           []string
}

func (c *Collector) crawl(ctx context.Context, baseURL, startupName string, maxPages, maxDepth int) (collect.RawItem, bool) {
	start := time.Now()
	c.logger.Info("starting website crawl", map[string]interface{}{
		"base_url":  baseURL,
		"max_pages": maxPages,
		"depth":     maxDepth,
	})

	base, err := url.Parse(baseURL)
	if err != nil {
		c.logger.WithError(err).Warn("invalid base url", map[string]interface{}{"url": baseURL})
		return collect.RawItem{}, false
	}

	type queued struct {
		url   string
		depth int
	}

	visited := map[string]bool{}
	queue := []queued{{url: baseURL, depth: 0}}
	crawledPages := map[string]interface{}{}
	companyInfo := map[string]interface{}{}
	siteStructure := map[string]interface{}{}
	var contentParts []string

	for len(queue) > 0 && len(crawledPages) < maxPages {
		next := queue[0]
		queue = queue[1:]

		if visited[next.url] || next.depth > maxDepth {
			continue
		}
		if blockedURL(next.url) {
			continue
		}
		visited[next.url] = true

		page, err := c.fetchPage(ctx, next.url)
		if err != nil {
			c.logger.WithError(err).Warn("skipping page", map[string]interface{}{"url": next.url})
			continue
		}

		crawledPages[next.url] = map[string]interface{}{
			"title":            page.title,
			"meta_description": page.metaDescription,
			"content_length":   len(page.content),
		}
		contentParts = append(contentParts, page.content)
		mergeCompanyInfo(companyInfo, extractCompanyInfo(page.content, startupName))

		path := next.url
		if u, err := url.Parse(next.url); err == nil {
			path = u.Path
		}
		siteStructure[path] = map[string]interface{}{
			"title":          page.title,
			"content_length": len(page.content),
			"priority_page":  pagePriority(path),
		}

		if next.depth < maxDepth {
			for _, link := range page.links {
				if u, err := url.Parse(link); err == nil && u.Host == base.Host && !visited[link] && !blockedURL(link) {
					queue = append(queue, queued{url: link, depth: next.depth + 1})
				}
			}
		}
	}

	if len(crawledPages) == 0 {
		return collect.RawItem{}, false
	}

	c.logger.Info("website crawl complete", map[string]interface{}{
		"base_url": baseURL,
		"pages":    len(crawledPages),
	})

	title := ""
	if home, ok := crawledPages[baseURL].(map[string]interface{}); ok {
		title, _ = home["title"].(string)
	}

	return collect.RawItem{
		Title:   title,
		URL:     baseURL,
		Content: strings.Join(contentParts, "\n"),
		Metadata: map[string]interface{}{
			"base_url":      baseURL,
			"pages_crawled": len(crawledPages),
		},
		Fields: map[string]interface{}{
			"base_url":            baseURL,
			"crawled_pages":       crawledPages,
			"company_information": companyInfo,
			"site_structure":      siteStructure,
			"crawl_stats": map[string]interface{}{
				"pages_crawled":      len(crawledPages),
				"total_urls_visited": len(visited),
				"crawl_depth":        maxDepth,
				"crawl_duration_ms":  time.Since(start).Milliseconds(),
			},
		},
		Method: "website_crawling",
	}, true
}

// fetchPage loads one page through the cache and parses it.
func (c *Collector) fetchPage(ctx context.Context, pageURL string) (*crawledPage, error) {
	var body string
	if cached, ok := c.cache.Get(ctx, "page:"+pageURL); ok {
		body = cached
	} else {
		raw, err := c.client.Get(ctx, pageURL)
		if err != nil {
			return nil, err
		}
		body = string(raw)
		c.cache.Set(ctx, "page:"+pageURL, body)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	page := &crawledPage{
		title:           strings.TrimSpace(doc.Find("title").First().Text()),
		metaDescription: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := resolveLink(pageURL, href); resolved != "" {
			page.links = append(page.links, resolved)
		}
	})
	if len(page.links) > c.config.LinksPerPage {
		page.links = page.links[:c.config.LinksPerPage]
	}

	doc.Find("script, style, nav, header, footer, aside").Remove()
	main := doc.Find("main").First()
	if main.Length() == 0 {
		main = doc.Find("article").First()
	}
	text := ""
	if main.Length() > 0 {
		text = main.Text()
	} else {
		text = doc.Find("body").Text()
	}
	page.content = strings.Join(strings.Fields(text), " ")

	return page, nil
}

func resolveLink(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

func blockedURL(u string) bool {
	for _, pattern := range blockedPatterns {
		if pattern.MatchString(u) {
			return true
		}
	}
	return false
}

func extractCompanyInfo(content, startupName string) map[string]interface{} {
	info := map[string]interface{}{}

	for infoType, pattern := range companyInfoPatterns {
		if m := pattern.FindStringSubmatch(content); m != nil {
			info[infoType] = strings.TrimSpace(m[1])
		}
	}

	team := map[string]interface{}{}
	for role, pattern := range teamPatterns {
		matches := pattern.FindAllStringSubmatch(content, -1)
		if len(matches) == 0 {
			continue
		}
		names := []string{}
		for _, m := range matches {
			names = append(names, m[1])
		}
		team[role] = names
	}
	if len(team) > 0 {
		info["team"] = team
	}

	lower := strings.ToLower(content)
	if startupName != "" && strings.Contains(lower, strings.ToLower(startupName)) {
		info["startup_mentioned"] = true
	}

	mentioned := []string{}
	for _, term := range keyTerms {
		if strings.Contains(lower, term) {
			mentioned = append(mentioned, term)
		}
	}
	if len(mentioned) > 0 {
		info["key_terms_mentioned"] = mentioned
	}

	return info
}

// mergeCompanyInfo keeps the first value seen per fact and appends
// list-valued facts.
func mergeCompanyInfo(existing, incoming map[string]interface{}) {
	for key, value := range incoming {
		current, ok := existing[key]
		if !ok {
			existing[key] = value
			continue
		}
		if cur, ok := current.([]string); ok {
			if add, ok := value.([]string); ok {
				existing[key] = append(cur, add...)
			}
		}
	}
}

func pagePriority(path string) string {
	lower := strings.ToLower(path)
	for priority, paths := range priorityPaths {
		for _, p := range paths {
			if strings.Contains(lower, p) {
				return priority
			}
		}
	}
	return "general"
}
