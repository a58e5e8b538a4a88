package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stock-chat/internal/model"

	"gorm.io/gorm"
)

// Placeholders for session naming and empty history rendering.
const (
	defaultSessionName = "대화"
	emptyContext       = "대화 없음"
)

// ChatLogService persists chat turns as an append-only log keyed by session.
type ChatLogService struct {
	db *gorm.DB
}

func NewChatLogService(db *gorm.DB) *ChatLogService { return &ChatLogService{db: db} }

// SaveChatLog appends one turn under sessionID, creating the session row
// lazily on first save.
func (s *ChatLogService) SaveChatLog(ctx context.Context, sessionID, name, blob string) error {
	var sess model.Session
	err := s.db.WithContext(ctx).Where("id = ?", sessionID).First(&sess).Error
	if err == gorm.ErrRecordNotFound {
		if name == "" {
			name = defaultSessionName
		}
		sess = model.Session{ID: sessionID, Name: name}
		if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("query session: %w", err)
	}

	row := model.ChatLog{SessionID: sess.ID, Message: blob}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert chat log: %w", err)
	}
	return nil
}

// LatestContext renders the most recent stored turn for a session as
// "role: content" lines, the stored assistant reply last. Returns
// ErrNoHistory when the session has no rows.
func (s *ChatLogService) LatestContext(ctx context.Context, sessionID string) (string, error) {
	var row model.ChatLog
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC, id DESC").
		First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return "", ErrNoHistory
	}
	if err != nil {
		return "", fmt.Errorf("query chat log: %w", err)
	}
	return renderContext(row.Message), nil
}

func renderContext(blob string) string {
	var payload model.ChatLogBlob
	_ = json.Unmarshal([]byte(blob), &payload)

	var lines []string
	for _, m := range payload.Messages {
		role := strings.TrimSpace(m.Role)
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		lines = append(lines, role+": "+content)
	}
	if payload.Response != "" {
		lines = append(lines, "assistant: "+payload.Response)
	}
	out := strings.TrimSpace(strings.Join(lines, "\n"))
	if out == "" {
		return emptyContext
	}
	return out
}

// SessionName derives a human-readable name from the first ≤3 user
// utterances: joined with " / ", whitespace collapsed, capped at 80 runes.
func SessionName(messages []model.ChatMessage) string {
	var parts []string
	for _, m := range messages {
		if m.Role != "user" {
			continue
		}
		if text := strings.TrimSpace(m.Content); text != "" {
			parts = append(parts, text)
		}
		if len(parts) >= 3 {
			break
		}
	}
	if len(parts) == 0 {
		return defaultSessionName
	}
	merged := strings.Join(strings.Fields(strings.Join(parts, " / ")), " ")
	if r := []rune(merged); len(r) > 80 {
		merged = string(r[:80])
	}
	return merged
}
