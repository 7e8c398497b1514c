package implementation

import (
	"context"

	"legal-assistant-be/internal/entity"
	"legal-assistant-be/internal/mapper"
	"legal-assistant-be/internal/model"
	"legal-assistant-be/internal/repository/contract"
	"legal-assistant-be/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type SectionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SectionMapper
}

func NewSectionRepository(db *gorm.DB) contract.SectionRepository {
	return &SectionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSectionMapper(),
	}
}

func (r *SectionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SectionRepositoryImpl) Create(ctx context.Context, section *entity.Section) error {
	m := r.mapper.ToModel(section)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*section = *r.mapper.ToEntity(m)
	return nil
}

func (r *SectionRepositoryImpl) FindBySectionCode(ctx context.Context, sectionCode string, limit int) ([]*entity.Section, error) {
	if limit <= 0 {
		limit = 5
	}
	var models []*model.Section

	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.BySectionCode{Code: sectionCode},
		specification.Pagination{Limit: limit},
	)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entities := make([]*entity.Section, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// SearchSimilarWithScore runs a nearest-neighbor query ordered by cosine similarity.
// Cosine distance in pgvector is 1 - cosine_similarity, so the select inverts it.
func (r *SectionRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]*contract.ScoredSection, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Section
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("sections").
		Select("sections.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("sections.deleted_at IS NULL").
		Where("sections.embedding IS NOT NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredSection, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredSection{
			Section:    r.mapper.ToEntity(&res.Section),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

func (r *SectionRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Section{}).Count(&count).Error
	return count, err
}
