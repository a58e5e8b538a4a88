package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stock-chat/internal/logger"
	"stock-chat/internal/model"
	"stock-chat/internal/prompt"
	"stock-chat/internal/ticker"
)

// ChatStore is the persistence surface the orchestrator needs.
type ChatStore interface {
	SaveChatLog(ctx context.Context, sessionID, name, blob string) error
	LatestContext(ctx context.Context, sessionID string) (string, error)
}

// ChatService runs the ticker-detection + context-injection pipeline:
// detect a candidate in the last user message, fan out market data fetches,
// assemble an augmented conversation, call the model, persist the turn.
type ChatService struct {
	market *MarketClient
	llm    *LLMClient
	store  ChatStore
}

func NewChatService(market *MarketClient, llm *LLMClient, store ChatStore) *ChatService {
	return &ChatService{market: market, llm: llm, store: store}
}

// Pipeline outcomes. Prompt assembly switches on the kind instead of
// spelunking through optional values.
type outcomeKind int

const (
	outcomeNone outcomeKind = iota
	outcomeEnriched
	outcomeFallback
)

type enrichOutcome struct {
	kind   outcomeKind
	symbol string
	bundle *marketBundle
}

// marketBundle is the request-scoped aggregate for a recognized ticker.
// Discarded after prompt assembly, never persisted.
type marketBundle struct {
	symbol  string
	quote   json.RawMessage
	profile json.RawMessage
	metrics json.RawMessage
	news    json.RawMessage
}

func (s *ChatService) Chat(ctx context.Context, req model.ChatRequest) (model.ChatResponse, error) {
	lastUser := lastUserMessage(req.Messages)
	symbols := ticker.Extract(lastUser, 1)

	outcome := s.enrich(ctx, symbols)
	messages := assembleMessages(outcome, req.Messages)

	content, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return model.ChatResponse{}, err
	}

	// History is best-effort: a failed save is logged, never surfaced.
	blob, err := json.Marshal(model.ChatLogBlob{
		Messages: req.Messages,
		Response: content,
		Model:    s.llm.Model(),
		LastUser: lastUser,
	})
	if err == nil {
		err = s.store.SaveChatLog(ctx, req.SessionID, SessionName(req.Messages), string(blob))
	}
	if err != nil {
		logger.Error("chat log save failed", "session", req.SessionID, "err", err)
	}

	return model.ChatResponse{Model: s.llm.Model(), Content: content}, nil
}

// enrich fans out the four data fetches for the candidate and joins them at
// a barrier; all four finish before the outcome is decided. Any failure, or
// a profile without a ticker field, degrades to the fallback outcome.
func (s *ChatService) enrich(ctx context.Context, symbols []string) enrichOutcome {
	if len(symbols) == 0 {
		return enrichOutcome{kind: outcomeNone}
	}
	symbol := symbols[0]

	today := time.Now()
	from := today.AddDate(0, 0, -10).Format("2006-01-02")
	to := today.Format("2006-01-02")

	var (
		wg                            sync.WaitGroup
		quote, profile, metrics, news json.RawMessage
		errs                          [4]error
	)
	wg.Add(4)
	go func() { defer wg.Done(); quote, errs[0] = s.market.Quote(ctx, symbol) }()
	go func() { defer wg.Done(); profile, errs[1] = s.market.Profile(ctx, symbol) }()
	go func() { defer wg.Done(); metrics, errs[2] = s.market.Metrics(ctx, symbol) }()
	go func() { defer wg.Done(); news, errs[3] = s.market.News(ctx, symbol, from, to) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			logger.Warn("market fetch failed", "symbol", symbol, "err", err)
			return enrichOutcome{kind: outcomeFallback, symbol: symbol}
		}
	}
	if profileTicker(profile) == "" {
		return enrichOutcome{kind: outcomeFallback, symbol: symbol}
	}

	return enrichOutcome{kind: outcomeEnriched, symbol: symbol, bundle: &marketBundle{
		symbol:  symbol,
		quote:   quote,
		profile: profile,
		metrics: metrics,
		news:    TruncateNews(news, 5),
	}}
}

func assembleMessages(outcome enrichOutcome, in []model.ChatMessage) []model.ChatMessage {
	switch outcome.kind {
	case outcomeEnriched:
		b := outcome.bundle
		injected := prompt.Enrichment(b.symbol,
			string(b.quote), string(b.profile), string(b.metrics), string(b.news))
		return append([]model.ChatMessage{
			{Role: "system", Content: prompt.SystemGrounding},
			{Role: "system", Content: injected},
		}, in...)
	case outcomeFallback:
		return append([]model.ChatMessage{
			{Role: "system", Content: prompt.DisambiguationGuard},
			{Role: "system", Content: prompt.DisambiguationAsk(outcome.symbol)},
		}, in...)
	default:
		return in
	}
}

func lastUserMessage(messages []model.ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}
