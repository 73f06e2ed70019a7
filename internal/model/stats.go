package model

import (
	"time"
)

// AdminUserProgress 管理端视角的进度行：进度记录与用户、板块元数据拼接后的完整形态。
// 远端返回缺失的数值字段在服务边界统一补 0，缺失状态补 not-started。
type AdminUserProgress struct {
	UserID           string         `json:"userId"`
	UserName         string         `json:"userName"`
	UserEmail        string         `json:"userEmail"`
	SectionNumber    int            `json:"sectionNumber"`
	SectionTitle     string         `json:"sectionTitle"`
	TotalQuestions   int            `json:"totalQuestions"`
	QuestionsCorrect int            `json:"questionsCorrect"`
	Accuracy         int            `json:"accuracy"`
	TimeSpent        int            `json:"timeSpent"` // 秒
	CompletedAt      *time.Time     `json:"completedAt"`
	Status           ProgressStatus `json:"status"`
}

// AdminQuestionResponse 管理端视角的作答行
type AdminQuestionResponse struct {
	UserID        string    `json:"userId"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	SectionNumber int       `json:"sectionNumber"`
	QuestionID    string    `json:"questionId"`
	UserAnswer    string    `json:"userAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
	ResponseTime  int       `json:"responseTime"`
	Timestamp     time.Time `json:"timestamp"`
}

// SectionStats 按需重算的板块统计，不落库
type SectionStats struct {
	SectionNumber    int    `json:"sectionNumber"`
	SectionTitle     string `json:"sectionTitle"`
	TotalUsers       int    `json:"totalUsers"`
	CompletedUsers   int    `json:"completedUsers"`
	CompletionRate   int    `json:"completionRate"`
	AverageAccuracy  int    `json:"averageAccuracy"`
	AverageTimeSpent int    `json:"averageTimeSpent"` // 秒
	TotalQuestions   int    `json:"totalQuestions"`
	TotalResponses   int    `json:"totalResponses"`
}

// OverallStats 全平台汇总统计
type OverallStats struct {
	TotalUsers            int `json:"totalUsers"`
	TotalSections         int `json:"totalSections"`
	TotalQuestions        int `json:"totalQuestions"`
	TotalResponses        int `json:"totalResponses"`
	OverallCompletionRate int `json:"overallCompletionRate"`
	OverallAccuracy       int `json:"overallAccuracy"`
	AverageTimePerSection int `json:"averageTimePerSection"` // 秒
}

// ParticipantScore 管理端成绩面板/导出使用的参与者行
type ParticipantScore struct {
	UserID            string         `json:"userId"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	SectionNumber     int            `json:"sectionNumber"`
	SectionTitle      string         `json:"sectionTitle"`
	QuestionsAnswered int            `json:"questionsAnswered"`
	QuestionsCorrect  int            `json:"questionsCorrect"`
	Accuracy          int            `json:"accuracy"`
	TimeSpent         int            `json:"timeSpent"` // 秒
	CompletedAt       *time.Time     `json:"completedAt,omitempty"`
	Status            ProgressStatus `json:"status"`
}

// ModuleScores 一个板块的成绩面板数据
type ModuleScores struct {
	SectionNumber     int                `json:"sectionNumber"`
	Title             string             `json:"title"`
	Participants      []ParticipantScore `json:"participants"`
	AverageScore      int                `json:"averageScore"`
	CompletionRate    int                `json:"completionRate"`
	TotalParticipants int                `json:"totalParticipants"`
}

// ReconciledProgress 对账后的权威记录集
type ReconciledProgress struct {
	Completions []SectionCompletion `json:"completions"`
	Responses   []QuestionResponse  `json:"responses"`
}

// ScoreSummary 个人成绩页汇总
type ScoreSummary struct {
	SectionsCompleted int `json:"sectionsCompleted"`
	TotalQuestions    int `json:"totalQuestions"`
	TotalCorrect      int `json:"totalCorrect"`
	OverallAccuracy   int `json:"overallAccuracy"`
	TotalTimeSpent    int `json:"totalTimeSpent"` // 秒
}
