package service

import (
	"context"
	"testing"

	"weblearn_backend/internal/repository"
	"weblearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDegradedLearningService() *LearningService {
	cache := repository.NewProgressCache(nil)
	records := NewRecordService(nil, nil, nil, nil, nil)
	return NewLearningService(cache, records, NewSyncService(cache, records))
}

func TestSubmitAnswerGradesOnServer(t *testing.T) {
	svc := newDegradedLearningService()
	ctx := context.Background()

	result, err := svc.SubmitAnswer(ctx, "u1", 1, "html-1", "0", 12)
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 1, result.Points)
	assert.NotEmpty(t, result.Explanation)
	assert.False(t, result.Saved, "远端不可用时作答不落库")

	wrong, err := svc.SubmitAnswer(ctx, "u1", 1, "html-1", "2", 12)
	require.NoError(t, err)
	assert.False(t, wrong.IsCorrect)
	assert.Equal(t, 0, wrong.Points)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	svc := newDegradedLearningService()

	_, err := svc.SubmitAnswer(context.Background(), "u1", 1, "nope-1", "0", 0)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	_, err = svc.SubmitAnswer(context.Background(), "u1", 42, "html-1", "0", 0)
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}

func TestCompleteSectionWithoutResponses(t *testing.T) {
	svc := newDegradedLearningService()

	completion, err := svc.CompleteSection(context.Background(), "u1", 1, 300)
	require.NoError(t, err)
	assert.Equal(t, 8, completion.TotalQuestions)
	assert.Equal(t, 0, completion.QuestionsCorrect)
	assert.Equal(t, 0, completion.Accuracy)
	assert.Equal(t, 300, completion.TimeSpent)
	assert.False(t, completion.CompletedAt.IsZero())
	assert.Equal(t, "HTML Fundamentals", completion.SectionTitle)
}

func TestCompleteSectionUnknownSection(t *testing.T) {
	svc := newDegradedLearningService()

	_, err := svc.CompleteSection(context.Background(), "u1", 42, 0)
	assert.ErrorIs(t, err, util.ErrSectionNotFound)
}

func TestScoresFullyDegraded(t *testing.T) {
	svc := newDegradedLearningService()

	page := svc.Scores(context.Background(), "u1")
	require.NotNil(t, page)
	assert.Empty(t, page.Completions)
	assert.Empty(t, page.Responses)
	assert.Equal(t, 0, page.Summary.SectionsCompleted)
}
