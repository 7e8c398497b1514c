package contract

import (
	"context"

	"legal-assistant-be/internal/entity"
)

// ScoredSection pairs a section with its cosine similarity against a query vector.
type ScoredSection struct {
	Section    *entity.Section
	Similarity float64
}

type SectionRepository interface {
	Create(ctx context.Context, section *entity.Section) error
	// FindBySectionCode is an equality lookup on the section code, not a
	// similarity search. Limit bounds the number of chunks returned per code.
	FindBySectionCode(ctx context.Context, sectionCode string, limit int) ([]*entity.Section, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*ScoredSection, error)
	Count(ctx context.Context) (int64, error)
}
