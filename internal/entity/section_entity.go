package entity

import (
	"time"

	"github.com/google/uuid"
)

// Section is one retrievable statute unit of the Indian Penal Code.
type Section struct {
	Id            uuid.UUID
	SectionCode   string // e.g. "302", "498A"
	Title         string
	Body          string
	Chapter       string
	Explanations  []string
	Illustrations []string
	Repealed      bool
	Embedding     []float32
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
