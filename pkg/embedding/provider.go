package embedding

import (
	"context"
	"math"
)

// EmbeddingProvider defines the interface for generating text embeddings.
// Implementations must return unit-normalized vectors and be safe for
// concurrent use.
type EmbeddingProvider interface {
	Generate(ctx context.Context, text string) ([]float32, error)
}

// normalizeVector normalizes a vector to unit length (magnitude = 1).
// Cosine distance in pgvector requires normalized vectors.
func normalizeVector(vec []float32) []float32 {
	var magnitude float64
	for _, v := range vec {
		magnitude += float64(v) * float64(v)
	}
	magnitude = math.Sqrt(magnitude)

	// Avoid division by zero
	if magnitude == 0 {
		return vec
	}

	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = float32(float64(v) / magnitude)
	}
	return normalized
}
