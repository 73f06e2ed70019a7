package repository

import (
	"gorm.io/gorm"
	"weblearn_backend/internal/model"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

// FindByNumber 把人类可读的板块编号解析成内部主键，所有写入前都要走这一步
func (r *SectionRepository) FindByNumber(number int) (*model.Section, error) {
	var section model.Section
	err := r.DB.Where("section_number = ?", number).First(&section).Error
	return &section, err
}

func (r *SectionRepository) FindByIDs(ids []string) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Where("id IN ?", ids).Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) FindAll() ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Order("section_number").Find(&sections).Error
	return sections, err
}
