package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stock-chat/internal/cache"
	"stock-chat/internal/config"

	"github.com/go-resty/resty/v2"
)

// Per-endpoint TTLs. Quotes go stale fast; profiles and fundamentals barely move.
const (
	ttlQuote      = 15 * time.Second
	ttlProfile    = time.Hour
	ttlMetrics    = time.Hour
	ttlNews       = 5 * time.Minute
	ttlMarketNews = 5 * time.Minute
)

// MarketClient wraps the Finnhub HTTP API. All lookups are idempotent GETs
// with no retries: a failed attempt surfaces immediately as *ProviderError.
// Payloads pass through as raw JSON; decoding happens only where a field
// drives behavior.
type MarketClient struct {
	client *resty.Client
	cache  *cache.Cache
	apiKey string
}

func NewMarketClient(cfg config.FinnhubConfig, c *cache.Cache) *MarketClient {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(cfg.BaseURL, "/"))
	if cfg.TimeoutSec > 0 {
		client.SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second)
	}
	return &MarketClient{client: client, cache: c, apiKey: cfg.APIKey}
}

func (m *MarketClient) Quote(ctx context.Context, symbol string) (json.RawMessage, error) {
	return m.get(ctx, "/quote", map[string]string{"symbol": symbol}, ttlQuote)
}

func (m *MarketClient) Profile(ctx context.Context, symbol string) (json.RawMessage, error) {
	return m.get(ctx, "/stock/profile2", map[string]string{"symbol": symbol}, ttlProfile)
}

func (m *MarketClient) Metrics(ctx context.Context, symbol string) (json.RawMessage, error) {
	return m.get(ctx, "/stock/metric", map[string]string{"symbol": symbol, "metric": "all"}, ttlMetrics)
}

func (m *MarketClient) News(ctx context.Context, symbol, from, to string) (json.RawMessage, error) {
	return m.get(ctx, "/company-news", map[string]string{"symbol": symbol, "from": from, "to": to}, ttlNews)
}

// MarketNews fetches general market headlines, no symbol involved.
func (m *MarketClient) MarketNews(ctx context.Context, category string) (json.RawMessage, error) {
	return m.get(ctx, "/news", map[string]string{"category": category}, ttlMarketNews)
}

func (m *MarketClient) get(ctx context.Context, path string, params map[string]string, ttl time.Duration) (json.RawMessage, error) {
	params["token"] = m.apiKey

	key := cacheKey(path, params)
	if ttl > 0 {
		if hit, ok := m.cache.Get(key); ok {
			return hit.(json.RawMessage), nil
		}
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	if resp.StatusCode() != 200 {
		return nil, &ProviderError{Status: resp.StatusCode(), Body: resp.String()}
	}

	data := json.RawMessage(append([]byte(nil), resp.Body()...))
	if !json.Valid(data) {
		return nil, &ProviderError{Status: resp.StatusCode(), Body: "malformed body"}
	}
	if ttl > 0 {
		m.cache.Set(key, data, ttl)
	}
	return data, nil
}

// cacheKey derives a stable key from the endpoint path and its sorted params.
func cacheKey(path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(path)
	sb.WriteByte('|')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	return sb.String()
}

// profileTicker reads the ticker field out of a profile payload. Empty means
// the provider did not recognize the symbol.
func profileTicker(profile json.RawMessage) string {
	var p struct {
		Ticker string `json:"ticker"`
	}
	if json.Unmarshal(profile, &p) != nil {
		return ""
	}
	return p.Ticker
}

// TruncateNews keeps at most n items of a news array payload. Non-array
// payloads pass through untouched.
func TruncateNews(news json.RawMessage, n int) json.RawMessage {
	var items []json.RawMessage
	if json.Unmarshal(news, &items) != nil {
		return news
	}
	if len(items) <= n {
		return news
	}
	out, err := json.Marshal(items[:n])
	if err != nil {
		return news
	}
	return out
}

// Overview response shapes. Per-symbol failures are embedded, never raised.
type OverviewQuote struct {
	Symbol string          `json:"symbol"`
	Quote  json.RawMessage `json:"quote,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type MarketOverview struct {
	Category string          `json:"category"`
	Quotes   []OverviewQuote `json:"quotes"`
	News     json.RawMessage `json:"news"`
}

// Index-proxy ETFs: the most reliable way to show "the indexes" on Finnhub.
var overviewSymbols = []string{"IVV", "QQQ", "DIA", "IWM", "TLT"}

// Overview fans out quotes for the index proxies plus general news. The
// request as a whole never fails; each leg carries its own error.
func (m *MarketClient) Overview(ctx context.Context, category string, newsLimit int) MarketOverview {
	if category == "" {
		category = "general"
	}
	if newsLimit < 1 {
		newsLimit = 1
	} else if newsLimit > 30 {
		newsLimit = 30
	}

	quotes := make([]OverviewQuote, len(overviewSymbols))
	var news json.RawMessage
	var newsErr error

	var wg sync.WaitGroup
	for i, sym := range overviewSymbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			q, err := m.Quote(ctx, sym)
			if err != nil {
				quotes[i] = OverviewQuote{Symbol: sym, Error: err.Error()}
				return
			}
			quotes[i] = OverviewQuote{Symbol: sym, Quote: q}
		}(i, sym)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		news, newsErr = m.MarketNews(ctx, category)
	}()
	wg.Wait()

	if newsErr != nil {
		news, _ = json.Marshal(map[string]string{"error": newsErr.Error()})
	} else {
		news = TruncateNews(news, newsLimit)
	}

	return MarketOverview{Category: category, Quotes: quotes, News: news}
}
