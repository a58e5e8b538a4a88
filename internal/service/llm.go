package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-chat/internal/config"
	"stock-chat/internal/model"
)

// LLMClient sends a full conversation to a local Ollama server and waits for
// the complete reply. No retries, no streaming; local inference is slow, so
// the wall-clock ceiling comes from the client timeout (order of minutes).
type LLMClient struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewLLMClient(cfg config.OllamaConfig) *LLMClient {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if cfg.TimeoutSec <= 0 {
		timeout = 600 * time.Second
	}
	return &LLMClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *LLMClient) Model() string { return s.model }

func (s *LLMClient) Chat(ctx context.Context, messages []model.ChatMessage) (string, error) {
	body := map[string]interface{}{
		"model":      s.model,
		"messages":   messages,
		"stream":     false,
		"keep_alive": "1h",
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", &ModelError{Status: resp.StatusCode, Body: string(data)}
	}

	var result struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return result.Message.Content, nil
}
