package model

import (
	"time"
)

type ProgressStatus string

const (
	StatusCompleted  ProgressStatus = "completed"
	StatusInProgress ProgressStatus = "in-progress"
	StatusNotStarted ProgressStatus = "not-started"
)

// UserSectionProgress 每个 (user, section) 至多一行，靠唯一索引保证 upsert 不产生重复
type UserSectionProgress struct {
	RowModel
	UserID               string         `gorm:"size:36;not null;uniqueIndex:idx_user_section" json:"userId"`
	SectionID            string         `gorm:"size:36;not null;uniqueIndex:idx_user_section" json:"sectionId"`
	QuestionsAnswered    int            `gorm:"default:0" json:"questionsAnswered"`
	QuestionsCorrect     int            `gorm:"default:0" json:"questionsCorrect"`
	TotalScore           int            `gorm:"default:0" json:"totalScore"`
	MaxPossibleScore     int            `gorm:"default:0" json:"maxPossibleScore"`
	TimeSpent            int            `gorm:"default:0" json:"timeSpent"` // 秒
	CompletionPercentage int            `gorm:"default:0" json:"completionPercentage"`
	Status               ProgressStatus `gorm:"size:20;default:'not-started'" json:"status"`
	CompletedAt          *time.Time     `json:"completedAt"`
}

func (UserSectionProgress) TableName() string {
	return "user_section_progress"
}

// SectionCompletion 对账与缓存使用的板块完成记录，即原始的 completed_sections 条目
type SectionCompletion struct {
	SectionNumber    int       `json:"sectionNumber"`
	SectionTitle     string    `json:"sectionTitle"`
	TotalQuestions   int       `json:"totalQuestions"`
	QuestionsCorrect int       `json:"questionsCorrect"`
	Score            int       `json:"score"`
	Accuracy         int       `json:"accuracy"`  // 0-100
	TimeSpent        int       `json:"timeSpent"` // 秒
	CompletedAt      time.Time `json:"completedAt"`
}
