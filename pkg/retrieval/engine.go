package retrieval

import (
	"context"
	"fmt"

	"legal-assistant-be/internal/apperr"
	"legal-assistant-be/internal/entity"
	"legal-assistant-be/internal/pkg/logger"
	"legal-assistant-be/internal/repository/contract"
	"legal-assistant-be/pkg/embedding"
)

// Config encapsulates retrieval parameters
type Config struct {
	TopK            int // semantic nearest-neighbor result count
	MaxQueryChars   int // query text is truncated to this many runes before embedding
	PerSectionLimit int // cap on documents fetched per detected section code
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		TopK:            5,
		MaxQueryChars:   1000,
		PerSectionLimit: 5,
	}
}

// Engine composes the section detector, the vector store and the embedding
// provider into hybrid retrieval: exact statute references always win over
// semantic search when they resolve to stored documents.
type Engine struct {
	sections contract.SectionRepository
	embedder embedding.EmbeddingProvider
	logger   logger.ILogger
	config   Config
}

func NewEngine(
	sections contract.SectionRepository,
	embedder embedding.EmbeddingProvider,
	log logger.ILogger,
	config Config,
) *Engine {
	return &Engine{
		sections: sections,
		embedder: embedder,
		logger:   log,
		config:   config,
	}
}

// Retrieve returns ranked documents for a query.
//
// Detected section references are resolved by equality lookup first; a
// non-empty union is returned immediately with all scores pinned to 1.0.
// When no references are detected, or every exact lookup comes back empty
// (a reference to a nonexistent section), retrieval falls through to
// semantic nearest-neighbor search.
func (e *Engine) Retrieve(ctx context.Context, query string) ([]Document, error) {
	sections := DetectSections(query)

	if len(sections) > 0 {
		e.logger.Info("Retrieval", "Section references detected", map[string]interface{}{
			"sections": sections,
		})

		var docs []Document
		for _, code := range sections {
			matches, err := e.sections.FindBySectionCode(ctx, code, e.config.PerSectionLimit)
			if err != nil {
				return nil, fmt.Errorf("%w: exact lookup for section %s: %v", apperr.ErrRetrievalUnavailable, code, err)
			}
			for _, s := range matches {
				docs = append(docs, exactDocument(s))
			}
		}
		if len(docs) > 0 {
			return docs, nil
		}
	}

	e.logger.Info("Retrieval", "Falling back to semantic search", nil)
	return e.semanticSearch(ctx, query)
}

func (e *Engine) semanticSearch(ctx context.Context, query string) ([]Document, error) {
	vector, err := e.embedder.Generate(ctx, truncateRunes(query, e.config.MaxQueryChars))
	if err != nil {
		return nil, fmt.Errorf("%w: embedding generation: %v", apperr.ErrRetrievalUnavailable, err)
	}

	scored, err := e.sections.SearchSimilarWithScore(ctx, vector, e.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("%w: semantic search: %v", apperr.ErrRetrievalUnavailable, err)
	}

	docs := make([]Document, len(scored))
	for i, res := range scored {
		docs[i] = Document{
			SectionCode: res.Section.SectionCode,
			Title:       res.Section.Title,
			Text:        res.Section.Body,
			Score:       res.Similarity,
		}
	}
	return docs, nil
}

func exactDocument(s *entity.Section) Document {
	return Document{
		SectionCode: s.SectionCode,
		Title:       s.Title,
		Text:        s.Body,
		Score:       1.0, // equality match, not similarity
	}
}

// truncateRunes bounds embedding latency and cost on long queries.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
