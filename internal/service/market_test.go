package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stock-chat/internal/cache"
	"stock-chat/internal/config"
)

func newTestMarketClient(t *testing.T, h http.HandlerFunc) *MarketClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewMarketClient(config.FinnhubConfig{BaseURL: srv.URL, APIKey: "test-key"}, cache.New())
}

func TestQuoteServedFromCache(t *testing.T) {
	calls := 0
	m := newTestMarketClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path != "/quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "test-key" {
			t.Errorf("missing token param")
		}
		w.Write([]byte(`{"c":123.4}`))
	})

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		q, err := m.Quote(ctx, "AAPL")
		if err != nil {
			t.Fatalf("Quote: %v", err)
		}
		if !strings.Contains(string(q), "123.4") {
			t.Fatalf("unexpected payload %s", q)
		}
	}
	if calls != 1 {
		t.Fatalf("upstream called %d times, want 1 (second read from cache)", calls)
	}
}

func TestDistinctSymbolsNotShared(t *testing.T) {
	m := newTestMarketClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"symbol": r.URL.Query().Get("symbol")})
	})

	ctx := context.Background()
	a, _ := m.Quote(ctx, "AAPL")
	b, _ := m.Quote(ctx, "TLT")
	if string(a) == string(b) {
		t.Fatalf("cache collided across symbols: %s vs %s", a, b)
	}
}

func TestProviderErrorCarriesStatusAndBody(t *testing.T) {
	m := newTestMarketClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	})

	_, err := m.Profile(context.Background(), "AAPL")
	if err == nil {
		t.Fatal("expected error on non-200")
	}
	pe, ok := err.(*ProviderError)
	if !ok {
		t.Fatalf("want *ProviderError, got %T: %v", err, err)
	}
	if pe.Status != http.StatusTooManyRequests || !strings.Contains(pe.Body, "rate limited") {
		t.Fatalf("unexpected provider error: %+v", pe)
	}
}

func TestFailedLookupNotCached(t *testing.T) {
	calls := 0
	m := newTestMarketClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ticker":"AAPL"}`))
	})

	ctx := context.Background()
	if _, err := m.Profile(ctx, "AAPL"); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := m.Profile(ctx, "AAPL"); err != nil {
		t.Fatalf("second call should succeed: %v", err)
	}
	if calls != 2 {
		t.Fatalf("upstream called %d times, want 2", calls)
	}
}

func TestCacheKeyOrderIndependent(t *testing.T) {
	a := cacheKey("/company-news", map[string]string{"symbol": "TLT", "from": "2026-08-01", "to": "2026-08-10"})
	b := cacheKey("/company-news", map[string]string{"to": "2026-08-10", "from": "2026-08-01", "symbol": "TLT"})
	if a != b {
		t.Fatalf("cache keys differ: %s vs %s", a, b)
	}
	if !strings.HasPrefix(a, "/company-news|") {
		t.Fatalf("key missing path prefix: %s", a)
	}
}

func TestTruncateNews(t *testing.T) {
	items := make([]map[string]string, 8)
	for i := range items {
		items[i] = map[string]string{"headline": "h"}
	}
	raw, _ := json.Marshal(items)

	out := TruncateNews(raw, 5)
	var got []json.RawMessage
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("unmarshal truncated: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d items, want 5", len(got))
	}

	// Non-array payloads pass through untouched.
	obj := json.RawMessage(`{"error":"nope"}`)
	if string(TruncateNews(obj, 5)) != string(obj) {
		t.Fatal("non-array payload should pass through")
	}
}

func TestOverviewEmbedsPerSymbolErrors(t *testing.T) {
	m := newTestMarketClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			if r.URL.Query().Get("symbol") == "TLT" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(`{"c":1}`))
		case "/news":
			w.Write([]byte(`[{"headline":"a"},{"headline":"b"}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	ov := m.Overview(context.Background(), "", 1)
	if ov.Category != "general" {
		t.Fatalf("category default = %s, want general", ov.Category)
	}
	if len(ov.Quotes) != 5 {
		t.Fatalf("got %d quotes, want 5", len(ov.Quotes))
	}
	for _, q := range ov.Quotes {
		if q.Symbol == "TLT" {
			if q.Error == "" {
				t.Fatal("TLT error should be embedded")
			}
		} else if q.Error != "" {
			t.Fatalf("%s unexpectedly failed: %s", q.Symbol, q.Error)
		}
	}
	var news []json.RawMessage
	if err := json.Unmarshal(ov.News, &news); err != nil {
		t.Fatalf("news payload: %v", err)
	}
	if len(news) != 1 {
		t.Fatalf("news not clamped, got %d items", len(news))
	}
}
