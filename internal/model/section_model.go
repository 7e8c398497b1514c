package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Section struct {
	Id            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SectionCode   string          `gorm:"type:text;not null;index"` // multiple chunks may share a code
	Title         string          `gorm:"type:text;not null"`
	Body          string          `gorm:"type:text;not null"`
	Chapter       string          `gorm:"type:text"`
	Explanations  datatypes.JSON  `gorm:"type:jsonb"`
	Illustrations datatypes.JSON  `gorm:"type:jsonb"`
	Repealed      bool            `gorm:"default:false"`
	Embedding     *pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text emits 768 dimensions
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

func (Section) TableName() string {
	return "sections"
}
