package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"weblearn_backend/internal/model"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// ResponseWithSection 作答行连同板块编号
type ResponseWithSection struct {
	model.UserQuestionResponse
	SectionNumber int `json:"sectionNumber"`
}

func (r *ResponseRepository) FindByUserAndQuestion(userID, questionID string) (*model.UserQuestionResponse, error) {
	var resp model.UserQuestionResponse
	err := r.DB.Where("user_id = ? AND question_id = ?", userID, questionID).First(&resp).Error
	return &resp, err
}

// Upsert 以 (user_id, question_id) 为冲突键写入。时间先后的取舍由调用方决定，
// 这里只保证同一键不出现重复行。
func (r *ResponseRepository) Upsert(resp *model.UserQuestionResponse) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"section_id",
			"user_answer",
			"is_correct",
			"response_time",
			"points_earned",
			"answered_at",
			"updated_at",
		}),
	}).Create(resp).Error
}

func (r *ResponseRepository) FindByUser(userID string) ([]ResponseWithSection, error) {
	var rows []ResponseWithSection
	err := r.DB.Table("user_question_responses").
		Select("user_question_responses.*, sections.section_number").
		Joins("JOIN sections ON sections.id = user_question_responses.section_id").
		Where("user_question_responses.user_id = ?", userID).
		Where("user_question_responses.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}

func (r *ResponseRepository) FindAllWithSections() ([]ResponseWithSection, error) {
	var rows []ResponseWithSection
	err := r.DB.Table("user_question_responses").
		Select("user_question_responses.*, sections.section_number").
		Joins("JOIN sections ON sections.id = user_question_responses.section_id").
		Where("user_question_responses.deleted_at IS NULL").
		Scan(&rows).Error
	return rows, err
}
