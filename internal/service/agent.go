package service

import (
	"context"
	"strings"
	"time"

	"stock-chat/internal/model"
	"stock-chat/internal/prompt"
)

// AgentService runs the one-shot advisory and report flows. Unlike the chat
// pipeline, data is the whole point here: fetches are sequential and any
// provider failure is surfaced to the caller.
type AgentService struct {
	market *MarketClient
	llm    *LLMClient
	store  ChatStore
}

func NewAgentService(market *MarketClient, llm *LLMClient, store ChatStore) *AgentService {
	return &AgentService{market: market, llm: llm, store: store}
}

func (s *AgentService) ShouldIBuy(ctx context.Context, req model.ShouldIBuyRequest) (model.ShouldIBuyResponse, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	question := strings.TrimSpace(req.Question)
	if question == "" {
		question = prompt.DefaultBuyQuestion
	}

	quote, profile, metrics, news, err := s.fetchBundle(ctx, symbol, 10, 5)
	if err != nil {
		return model.ShouldIBuyResponse{}, err
	}

	user := prompt.ShouldIBuy(question, symbol, quote, profile, metrics, news)
	answer, err := s.llm.Chat(ctx, []model.ChatMessage{
		{Role: "system", Content: prompt.SystemGrounding},
		{Role: "user", Content: user},
	})
	if err != nil {
		return model.ShouldIBuyResponse{}, err
	}
	return model.ShouldIBuyResponse{Symbol: symbol, Answer: answer}, nil
}

// StockReport builds a longer structured report, grounded additionally on
// the most recent stored conversation for the session. A session without
// history is ErrNoHistory, not an empty report.
func (s *AgentService) StockReport(ctx context.Context, req model.StockReportRequest) (model.StockReportResponse, error) {
	chatContext, err := s.store.LatestContext(ctx, req.SessionID)
	if err != nil {
		return model.StockReportResponse{}, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	audience := strings.TrimSpace(req.Audience)
	if audience == "" {
		audience = prompt.DefaultAudience
	}
	focus := strings.TrimSpace(req.Focus)
	if focus == "" {
		focus = prompt.DefaultFocus
	}

	quote, profile, metrics, news, err := s.fetchBundle(ctx, symbol, 30, 8)
	if err != nil {
		return model.StockReportResponse{}, err
	}

	user := prompt.StockReport(symbol, audience, focus, chatContext, quote, profile, metrics, news)
	report, err := s.llm.Chat(ctx, []model.ChatMessage{
		{Role: "system", Content: prompt.SystemGrounding},
		{Role: "user", Content: user},
	})
	if err != nil {
		return model.StockReportResponse{}, err
	}
	return model.StockReportResponse{Symbol: symbol, Report: report}, nil
}

// fetchBundle pulls quote/profile/metrics/news for symbol one after another,
// news over the last windowDays and cut to maxNews items.
func (s *AgentService) fetchBundle(ctx context.Context, symbol string, windowDays, maxNews int) (quote, profile, metrics, news string, err error) {
	q, err := s.market.Quote(ctx, symbol)
	if err != nil {
		return "", "", "", "", err
	}
	p, err := s.market.Profile(ctx, symbol)
	if err != nil {
		return "", "", "", "", err
	}
	m, err := s.market.Metrics(ctx, symbol)
	if err != nil {
		return "", "", "", "", err
	}

	today := time.Now()
	from := today.AddDate(0, 0, -windowDays).Format("2006-01-02")
	to := today.Format("2006-01-02")
	n, err := s.market.News(ctx, symbol, from, to)
	if err != nil {
		return "", "", "", "", err
	}
	n = TruncateNews(n, maxNews)

	return string(q), string(p), string(m), string(n), nil
}
