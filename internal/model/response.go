package model

import (
	"time"
)

// UserQuestionResponse 每个 (user, question) 至多一行
type UserQuestionResponse struct {
	RowModel
	UserID       string    `gorm:"size:36;not null;uniqueIndex:idx_user_question" json:"userId"`
	SectionID    string    `gorm:"size:36;not null;index" json:"sectionId"`
	QuestionID   string    `gorm:"size:64;not null;uniqueIndex:idx_user_question" json:"questionId"`
	UserAnswer   string    `gorm:"size:500" json:"userAnswer"`
	IsCorrect    bool      `gorm:"default:false" json:"isCorrect"`
	ResponseTime int       `gorm:"default:0" json:"responseTime"` // 秒
	PointsEarned int       `gorm:"default:0" json:"pointsEarned"`
	AnsweredAt   time.Time `json:"answeredAt"`
}

func (UserQuestionResponse) TableName() string {
	return "user_question_responses"
}

// QuestionResponse 对账与缓存使用的单题作答记录，即原始的 section_progress 条目
type QuestionResponse struct {
	SectionNumber int       `json:"sectionNumber"`
	QuestionID    string    `json:"questionId"`
	Answer        string    `json:"answer"`
	IsCorrect     bool      `json:"isCorrect"`
	ResponseTime  int       `json:"responseTime"` // 秒
	Timestamp     time.Time `json:"timestamp"`
}
