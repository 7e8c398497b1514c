package dto

import "time"

type QueryRequest struct {
	Query     string `json:"query" validate:"required,min=1,max=1000"`
	SessionId string `json:"session_id,omitempty" validate:"omitempty,uuid4"`
}

type DocumentDTO struct {
	Section string  `json:"section"`
	Title   string  `json:"title"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

type QueryResponse struct {
	Answer    string        `json:"answer"`
	Sources   []DocumentDTO `json:"sources"`
	SessionId string        `json:"session_id"`
	Query     string        `json:"query"`
}

type CreateSessionResponse struct {
	SessionId string `json:"session_id"`
}

type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GetHistoryResponse struct {
	SessionId string       `json:"session_id"`
	Messages  []MessageDTO `json:"messages"`
}

type LatestSessionResponse struct {
	SessionId    string       `json:"session_id"`
	Messages     []MessageDTO `json:"messages"`
	LastActivity time.Time    `json:"last_activity"`
}
