package model

import "time"

// Session groups stored chat turns under an opaque client-provided id.
// Created lazily on the first saved turn.
type Session struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:200" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatLog is one immutable chat turn: a JSON blob of
// {messages, response, model, last_user}. Append-only, no update or delete path.
type ChatLog struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"type:char(36);index" json:"session_id"`
	Message   string    `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is a login account for the optional auth layer.
type Member struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex" json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
}

func (Session) TableName() string { return "sessions" }
func (ChatLog) TableName() string { return "chat_logs" }
func (Member) TableName() string  { return "members" }
