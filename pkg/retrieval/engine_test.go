package retrieval

import (
	"context"
	"errors"
	"testing"

	"legal-assistant-be/internal/apperr"
	"legal-assistant-be/internal/entity"
	"legal-assistant-be/internal/repository/contract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeSectionRepo serves canned sections keyed by code and a fixed
// similarity result set.
type fakeSectionRepo struct {
	byCode      map[string][]*entity.Section
	similar     []*contract.ScoredSection
	findErr     error
	searchErr   error
	searchCalls int
	lastLimit   int
}

func (f *fakeSectionRepo) Create(ctx context.Context, section *entity.Section) error {
	return errors.New("not implemented")
}

func (f *fakeSectionRepo) FindBySectionCode(ctx context.Context, sectionCode string, limit int) ([]*entity.Section, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	f.lastLimit = limit
	matches := f.byCode[sectionCode]
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (f *fakeSectionRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredSection, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	results := f.similar
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (f *fakeSectionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.byCode)), nil
}

type fakeEmbedder struct {
	vector   []float32
	err      error
	lastText string
	calls    int
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func section(code, title, body string) *entity.Section {
	return &entity.Section{SectionCode: code, Title: title, Body: body}
}

func TestRetrieveExactMatchWinsOverSemantic(t *testing.T) {
	repo := &fakeSectionRepo{
		byCode: map[string][]*entity.Section{
			"302": {section("302", "Punishment for murder", "Whoever commits murder...")},
		},
		similar: []*contract.ScoredSection{
			{Section: section("378", "Theft", "Whoever intends to take..."), Similarity: 0.91},
		},
	}
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	engine := NewEngine(repo, embedder, nopLogger{}, DefaultConfig())

	docs, err := engine.Retrieve(context.Background(), "What does Section 302 say?")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "302", docs[0].SectionCode)
	assert.Equal(t, 1.0, docs[0].Score)
	assert.Equal(t, 0, embedder.calls, "exact match must not trigger embedding")
	assert.Equal(t, 0, repo.searchCalls, "exact match must not trigger semantic search")
}

func TestRetrieveExactMatchMergesMultipleReferences(t *testing.T) {
	repo := &fakeSectionRepo{
		byCode: map[string][]*entity.Section{
			"302": {section("302", "Punishment for murder", "...")},
			"304": {
				section("304", "Culpable homicide", "part one"),
				section("304", "Culpable homicide", "part two"),
			},
		},
	}
	engine := NewEngine(repo, &fakeEmbedder{}, nopLogger{}, DefaultConfig())

	docs, err := engine.Retrieve(context.Background(), "Compare Section 302 with Section 304")
	require.NoError(t, err)
	assert.Len(t, docs, 3)
	for _, d := range docs {
		assert.Equal(t, 1.0, d.Score)
	}
}

func TestRetrieveUnknownSectionFallsBackToSemantic(t *testing.T) {
	repo := &fakeSectionRepo{
		byCode: map[string][]*entity.Section{},
		similar: []*contract.ScoredSection{
			{Section: section("378", "Theft", "Whoever intends to take..."), Similarity: 0.88},
			{Section: section("379", "Punishment for theft", "..."), Similarity: 0.81},
		},
	}
	embedder := &fakeEmbedder{vector: []float32{0.3}}
	engine := NewEngine(repo, embedder, nopLogger{}, DefaultConfig())

	docs, err := engine.Retrieve(context.Background(), "Explain section 999 please")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, 1, embedder.calls)
	assert.Equal(t, "378", docs[0].SectionCode)
	assert.Equal(t, 0.88, docs[0].Score)
	assert.Equal(t, 0.81, docs[1].Score)
}

func TestRetrieveNoReferencesUsesSemantic(t *testing.T) {
	repo := &fakeSectionRepo{
		similar: []*contract.ScoredSection{
			{Section: section("378", "Theft", "..."), Similarity: 0.75},
		},
	}
	embedder := &fakeEmbedder{vector: []float32{0.5}}
	engine := NewEngine(repo, embedder, nopLogger{}, DefaultConfig())

	docs, err := engine.Retrieve(context.Background(), "What happens if someone steals my phone?")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "What happens if someone steals my phone?", embedder.lastText)
}

func TestRetrieveTruncatesLongQueryBeforeEmbedding(t *testing.T) {
	repo := &fakeSectionRepo{}
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	cfg := DefaultConfig()
	cfg.MaxQueryChars = 10
	engine := NewEngine(repo, embedder, nopLogger{}, cfg)

	_, err := engine.Retrieve(context.Background(), "abcdefghijKLMNOP")
	require.NoError(t, err)
	assert.Equal(t, "abcdefghij", embedder.lastText)
}

func TestRetrieveExactLookupErrorIsRetrievalUnavailable(t *testing.T) {
	repo := &fakeSectionRepo{findErr: errors.New("connection refused")}
	engine := NewEngine(repo, &fakeEmbedder{}, nopLogger{}, DefaultConfig())

	_, err := engine.Retrieve(context.Background(), "Section 302")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRetrievalUnavailable)
}

func TestRetrieveEmbeddingErrorIsRetrievalUnavailable(t *testing.T) {
	repo := &fakeSectionRepo{}
	embedder := &fakeEmbedder{err: errors.New("model not loaded")}
	engine := NewEngine(repo, embedder, nopLogger{}, DefaultConfig())

	_, err := engine.Retrieve(context.Background(), "what is theft")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRetrievalUnavailable)
}

func TestRetrieveSemanticSearchErrorIsRetrievalUnavailable(t *testing.T) {
	repo := &fakeSectionRepo{searchErr: errors.New("db down")}
	embedder := &fakeEmbedder{vector: []float32{0.1}}
	engine := NewEngine(repo, embedder, nopLogger{}, DefaultConfig())

	_, err := engine.Retrieve(context.Background(), "what is theft")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRetrievalUnavailable)
}
