package session

import "time"

// Message is one conversation turn. Role is restricted to RoleUser and
// RoleAssistant.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Session is the serialized per-user conversation state kept in redis.
// History is insertion-ordered and bounded; trimming always evicts from the
// head.
type Session struct {
	Id           string    `json:"id"`
	UserId       string    `json:"user_id"`
	History      []Message `json:"history"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}
