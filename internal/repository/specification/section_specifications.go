package specification

import "gorm.io/gorm"

// BySectionCode filters on the statute code (exact match, all chunks)
type BySectionCode struct {
	Code string
}

func (s BySectionCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("section_code = ?", s.Code)
}
