package service

import (
	"testing"
	"time"

	"weblearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressRow(userID string, section int, status model.ProgressStatus, accuracy, timeSpent, totalQuestions int) model.AdminUserProgress {
	return model.AdminUserProgress{
		UserID:         userID,
		UserName:       "User " + userID,
		UserEmail:      userID + "@example.com",
		SectionNumber:  section,
		SectionTitle:   "Section",
		TotalQuestions: totalQuestions,
		Accuracy:       accuracy,
		TimeSpent:      timeSpent,
		Status:         status,
	}
}

func TestComputeSectionStatsEmptyInput(t *testing.T) {
	assert.Empty(t, ComputeSectionStats(nil, nil))
}

func TestComputeSectionStatsAllCompleted(t *testing.T) {
	rows := []model.AdminUserProgress{
		progressRow("u1", 1, model.StatusCompleted, 80, 300, 8),
		progressRow("u2", 1, model.StatusCompleted, 60, 500, 8),
	}

	stats := ComputeSectionStats(rows, nil)
	require.Len(t, stats, 1)
	assert.Equal(t, 100, stats[0].CompletionRate)
	assert.Equal(t, 70, stats[0].AverageAccuracy)
	assert.Equal(t, 400, stats[0].AverageTimeSpent)
	assert.Equal(t, 2, stats[0].TotalUsers)
	assert.Equal(t, 2, stats[0].CompletedUsers)
}

// 没有任何完成者时平均值必须是 0 而不是 NaN
func TestComputeSectionStatsNoCompletions(t *testing.T) {
	rows := []model.AdminUserProgress{
		progressRow("u1", 1, model.StatusInProgress, 0, 120, 8),
		progressRow("u2", 1, model.StatusNotStarted, 0, 0, 0),
	}

	stats := ComputeSectionStats(rows, nil)
	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].CompletionRate)
	assert.Equal(t, 0, stats[0].AverageAccuracy)
	assert.Equal(t, 0, stats[0].AverageTimeSpent)
}

func TestComputeSectionStatsCompletionRateRounds(t *testing.T) {
	rows := []model.AdminUserProgress{
		progressRow("u1", 1, model.StatusCompleted, 100, 60, 8),
		progressRow("u2", 1, model.StatusInProgress, 0, 0, 8),
		progressRow("u3", 1, model.StatusInProgress, 0, 0, 8),
	}

	stats := ComputeSectionStats(rows, nil)
	require.Len(t, stats, 1)
	// 1/3 -> 33
	assert.Equal(t, 33, stats[0].CompletionRate)
}

// 题目总数取板块内观察到的最大值，未答完的行不会拉低它
func TestComputeSectionStatsTotalQuestionsIsMax(t *testing.T) {
	rows := []model.AdminUserProgress{
		progressRow("u1", 1, model.StatusCompleted, 80, 60, 8),
		progressRow("u2", 1, model.StatusInProgress, 0, 0, 3),
	}

	stats := ComputeSectionStats(rows, nil)
	require.Len(t, stats, 1)
	assert.Equal(t, 8, stats[0].TotalQuestions)
}

func TestComputeSectionStatsCountsResponsesPerSection(t *testing.T) {
	rows := []model.AdminUserProgress{
		progressRow("u1", 1, model.StatusCompleted, 80, 60, 8),
		progressRow("u1", 2, model.StatusCompleted, 80, 60, 8),
	}
	responses := []model.AdminQuestionResponse{
		{UserID: "u1", SectionNumber: 1, QuestionID: "html-1"},
		{UserID: "u1", SectionNumber: 1, QuestionID: "html-2"},
		{UserID: "u1", SectionNumber: 2, QuestionID: "css-1"},
	}

	stats := ComputeSectionStats(rows, responses)
	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats[0].TotalResponses)
	assert.Equal(t, 1, stats[1].TotalResponses)
}

func TestComputeOverallStats(t *testing.T) {
	rows := []model.AdminUserProgress{
		progressRow("u1", 1, model.StatusCompleted, 80, 300, 8),
		progressRow("u2", 1, model.StatusInProgress, 0, 0, 8),
		progressRow("u1", 2, model.StatusCompleted, 60, 100, 8),
	}
	responses := []model.AdminQuestionResponse{
		{SectionNumber: 1, QuestionID: "html-1"},
		{SectionNumber: 1, QuestionID: "html-1"}, // 不同用户同一题只算一道题
		{SectionNumber: 2, QuestionID: "css-1"},
	}

	overall := ComputeOverallStats(rows, responses, 2)
	assert.Equal(t, 2, overall.TotalUsers)
	assert.Equal(t, 2, overall.TotalSections)
	assert.Equal(t, 2, overall.TotalQuestions)
	assert.Equal(t, 3, overall.TotalResponses)
	// 2/3 完成 -> 67
	assert.Equal(t, 67, overall.OverallCompletionRate)
	assert.Equal(t, 70, overall.OverallAccuracy)
	assert.Equal(t, 200, overall.AverageTimePerSection)
}

func TestComputeOverallStatsEmpty(t *testing.T) {
	overall := ComputeOverallStats(nil, nil, 0)
	assert.Equal(t, 0, overall.OverallCompletionRate)
	assert.Equal(t, 0, overall.OverallAccuracy)
	assert.Equal(t, 0, overall.AverageTimePerSection)
}

func TestComputeSummary(t *testing.T) {
	completions := []model.SectionCompletion{
		{TotalQuestions: 8, QuestionsCorrect: 6, Accuracy: 75, TimeSpent: 120},
		{TotalQuestions: 8, QuestionsCorrect: 8, Accuracy: 100, TimeSpent: 80},
	}

	summary := ComputeSummary(completions)
	assert.Equal(t, 2, summary.SectionsCompleted)
	assert.Equal(t, 16, summary.TotalQuestions)
	assert.Equal(t, 14, summary.TotalCorrect)
	assert.Equal(t, 88, summary.OverallAccuracy)
	assert.Equal(t, 200, summary.TotalTimeSpent)

	assert.Equal(t, 0, ComputeSummary(nil).OverallAccuracy)
}

func participant(name, email string, status model.ProgressStatus, accuracy, timeSpent int, completedAt *time.Time) model.ParticipantScore {
	return model.ParticipantScore{
		Name:        name,
		Email:       email,
		Status:      status,
		Accuracy:    accuracy,
		TimeSpent:   timeSpent,
		CompletedAt: completedAt,
	}
}

func TestFilterParticipantsByStatus(t *testing.T) {
	rows := []model.ParticipantScore{
		participant("Alice Johnson", "alice@example.com", model.StatusCompleted, 80, 300, nil),
		participant("Bob Smith", "bob@example.com", model.StatusInProgress, 40, 100, nil),
	}

	filtered := FilterParticipants(rows, ParticipantFilter{Status: model.StatusCompleted})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Alice Johnson", filtered[0].Name)

	assert.Len(t, FilterParticipants(rows, ParticipantFilter{}), 2)
}

func TestFilterParticipantsSearchMatchesNameOrEmail(t *testing.T) {
	rows := []model.ParticipantScore{
		participant("Alice Johnson", "alice@example.com", model.StatusCompleted, 80, 300, nil),
		participant("Bob Smith", "bob@example.com", model.StatusCompleted, 40, 100, nil),
	}

	byName := FilterParticipants(rows, ParticipantFilter{Search: "johnson"})
	require.Len(t, byName, 1)
	assert.Equal(t, "Alice Johnson", byName[0].Name)

	byEmail := FilterParticipants(rows, ParticipantFilter{Search: "BOB@"})
	require.Len(t, byEmail, 1)
	assert.Equal(t, "Bob Smith", byEmail[0].Name)
}

func TestFilterParticipantsSortByScoreDesc(t *testing.T) {
	rows := []model.ParticipantScore{
		participant("Low", "low@example.com", model.StatusCompleted, 40, 0, nil),
		participant("High", "high@example.com", model.StatusCompleted, 90, 0, nil),
	}

	sorted := FilterParticipants(rows, ParticipantFilter{SortBy: "score", Desc: true})
	require.Len(t, sorted, 2)
	assert.Equal(t, "High", sorted[0].Name)
}

func TestFilterParticipantsSortByDateNilLast(t *testing.T) {
	ts := time.Now()
	rows := []model.ParticipantScore{
		participant("Done", "done@example.com", model.StatusCompleted, 50, 0, &ts),
		participant("Pending", "pending@example.com", model.StatusInProgress, 0, 0, nil),
	}

	sorted := FilterParticipants(rows, ParticipantFilter{SortBy: "date", Desc: true})
	require.Len(t, sorted, 2)
	assert.Equal(t, "Done", sorted[0].Name, "缺失完成时间的行按最早排序")
}
