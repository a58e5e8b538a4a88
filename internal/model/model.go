package model

// ChatMessage is one {role, content} pair; role ∈ {system, user, assistant}.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	SessionID string        `json:"session_id" binding:"required"`
}

type ChatResponse struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

type ShouldIBuyRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Question string `json:"question"`
}

type ShouldIBuyResponse struct {
	Symbol string `json:"symbol"`
	Answer string `json:"answer"`
}

type StockReportRequest struct {
	Symbol    string `json:"symbol"`
	SessionID string `json:"session_id"`
	Audience  string `json:"audience"`
	Focus     string `json:"focus"`
}

type StockReportResponse struct {
	Symbol string `json:"symbol"`
	Report string `json:"report"`
}

// ChatLogBlob is the JSON payload stored per chat turn.
type ChatLogBlob struct {
	Messages []ChatMessage `json:"messages"`
	Response string        `json:"response"`
	Model    string        `json:"model"`
	LastUser string        `json:"last_user"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
