package mapper

import (
	"encoding/json"
	"time"

	"legal-assistant-be/internal/entity"
	"legal-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type SectionMapper struct{}

func NewSectionMapper() *SectionMapper {
	return &SectionMapper{}
}

func (m *SectionMapper) ToEntity(s *model.Section) *entity.Section {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Section{
		Id:            s.Id,
		SectionCode:   s.SectionCode,
		Title:         s.Title,
		Body:          s.Body,
		Chapter:       s.Chapter,
		Explanations:  decodeStringList(s.Explanations),
		Illustrations: decodeStringList(s.Illustrations),
		Repealed:      s.Repealed,
		Embedding:     decodeVector(s.Embedding),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *SectionMapper) ToModel(e *entity.Section) *model.Section {
	if e == nil {
		return nil
	}

	s := &model.Section{
		Id:            e.Id,
		SectionCode:   e.SectionCode,
		Title:         e.Title,
		Body:          e.Body,
		Chapter:       e.Chapter,
		Explanations:  encodeStringList(e.Explanations),
		Illustrations: encodeStringList(e.Illustrations),
		Repealed:      e.Repealed,
		Embedding:     encodeVector(e.Embedding),
		CreatedAt:     e.CreatedAt,
	}
	if e.UpdatedAt != nil {
		s.UpdatedAt = *e.UpdatedAt
	}
	return s
}

func decodeVector(v *pgvector.Vector) []float32 {
	if v == nil {
		return nil
	}
	return v.Slice()
}

// encodeVector maps an absent embedding to NULL; an empty pgvector literal
// is rejected by postgres.
func encodeVector(values []float32) *pgvector.Vector {
	if len(values) == 0 {
		return nil
	}
	v := pgvector.NewVector(values)
	return &v
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func encodeStringList(values []string) datatypes.JSON {
	if len(values) == 0 {
		return nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil
	}
	return raw
}
