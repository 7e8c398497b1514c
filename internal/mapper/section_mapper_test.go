package mapper

import (
	"testing"
	"time"

	"legal-assistant-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionMapperRoundTrip(t *testing.T) {
	m := NewSectionMapper()
	updated := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	src := &entity.Section{
		Id:            uuid.New(),
		SectionCode:   "498A",
		Title:         "Husband or relative of husband of a woman subjecting her to cruelty",
		Body:          "Whoever, being the husband...",
		Chapter:       "XX-A",
		Explanations:  []string{"For the purpose of this section, cruelty means..."},
		Illustrations: []string{"(a) A, the husband..."},
		Repealed:      false,
		Embedding:     []float32{0.1, 0.2, 0.3},
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:     &updated,
	}

	got := m.ToEntity(m.ToModel(src))
	require.NotNil(t, got)

	assert.Equal(t, src.Id, got.Id)
	assert.Equal(t, src.SectionCode, got.SectionCode)
	assert.Equal(t, src.Chapter, got.Chapter)
	assert.Equal(t, src.Explanations, got.Explanations)
	assert.Equal(t, src.Illustrations, got.Illustrations)
	assert.Equal(t, src.Embedding, got.Embedding)
	require.NotNil(t, got.UpdatedAt)
	assert.True(t, got.UpdatedAt.Equal(updated))
}

func TestSectionMapperEmptyLists(t *testing.T) {
	m := NewSectionMapper()

	model := m.ToModel(&entity.Section{SectionCode: "302", Title: "Punishment for murder", Body: "..."})
	assert.Nil(t, model.Explanations)
	assert.Nil(t, model.Illustrations)
	assert.Nil(t, model.Embedding)

	back := m.ToEntity(model)
	assert.Nil(t, back.Explanations)
	assert.Nil(t, back.Illustrations)
	assert.Nil(t, back.UpdatedAt)
}

func TestSectionMapperNilPassthrough(t *testing.T) {
	m := NewSectionMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
