package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weblearn_backend/internal/model"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// ProgressWithSection 进度行连同板块编号/标题，供加载端还原客户端记录形态
type ProgressWithSection struct {
	model.UserSectionProgress
	SectionNumber int    `json:"sectionNumber"`
	SectionTitle  string `json:"sectionTitle"`
}

// Upsert 以 (user_id, section_id) 为冲突键写入，同一键永远只有一行
func (r *ProgressRepository) Upsert(p *model.UserSectionProgress) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "section_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"questions_answered",
			"questions_correct",
			"total_score",
			"max_possible_score",
			"time_spent",
			"completion_percentage",
			"status",
			"completed_at",
			"updated_at",
		}),
	}).Create(p).Error
}

func (r *ProgressRepository) FindByUserAndSection(userID, sectionID string) (*model.UserSectionProgress, error) {
	var progress model.UserSectionProgress
	err := r.DB.Where("user_id = ? AND section_id = ?", userID, sectionID).First(&progress).Error
	return &progress, err
}

// FindCompletedByUser 只取已完成的进度，连板块元数据一起返回
func (r *ProgressRepository) FindCompletedByUser(userID string) ([]ProgressWithSection, error) {
	var rows []ProgressWithSection
	err := r.DB.Table("user_section_progress").
		Select("user_section_progress.*, sections.section_number, sections.title AS section_title").
		Joins("JOIN sections ON sections.id = user_section_progress.section_id").
		Where("user_section_progress.user_id = ? AND user_section_progress.status = ?", userID, model.StatusCompleted).
		Where("user_section_progress.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

// FindAllWithSections 全部进度行，管理端统计用
func (r *ProgressRepository) FindAllWithSections() ([]ProgressWithSection, error) {
	var rows []ProgressWithSection
	err := r.DB.Table("user_section_progress").
		Select("user_section_progress.*, sections.section_number, sections.title AS section_title").
		Joins("JOIN sections ON sections.id = user_section_progress.section_id").
		Where("user_section_progress.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}
