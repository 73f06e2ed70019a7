package service

import (
	"context"
	"testing"
	"time"

	"weblearn_backend/internal/model"
	"weblearn_backend/internal/repository"
	"weblearn_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	m.Run()
}

func completion(section int, completedAt time.Time, accuracy int) model.SectionCompletion {
	return model.SectionCompletion{
		SectionNumber:    section,
		SectionTitle:     "HTML Fundamentals",
		TotalQuestions:   8,
		QuestionsCorrect: accuracy * 8 / 100,
		Accuracy:         accuracy,
		CompletedAt:      completedAt,
	}
}

func TestMergeCompletionsRemoteNewerWins(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	local := []model.SectionCompletion{completion(2, t1, 50)}
	remote := []model.SectionCompletion{completion(2, t2, 88)}

	merged := MergeCompletions(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 88, merged[0].Accuracy)
	assert.True(t, merged[0].CompletedAt.Equal(t2))
}

func TestMergeCompletionsLocalNewerKept(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	local := []model.SectionCompletion{completion(2, t2, 88)}
	remote := []model.SectionCompletion{completion(2, t1, 50)}

	merged := MergeCompletions(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 88, merged[0].Accuracy)
}

func TestMergeCompletionsTieKeepsLocal(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	local := []model.SectionCompletion{completion(2, ts, 75)}
	remote := []model.SectionCompletion{completion(2, ts, 25)}

	merged := MergeCompletions(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, 75, merged[0].Accuracy, "相同时间戳必须保留本地记录")
}

func TestMergeCompletionsDisjointUnionSorted(t *testing.T) {
	ts := time.Now()
	local := []model.SectionCompletion{completion(3, ts, 60)}
	remote := []model.SectionCompletion{completion(1, ts, 40), completion(5, ts, 90)}

	merged := MergeCompletions(local, remote)
	require.Len(t, merged, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{
		merged[0].SectionNumber, merged[1].SectionNumber, merged[2].SectionNumber,
	})
}

func TestMergeCompletionsIdempotent(t *testing.T) {
	ts := time.Now()
	local := []model.SectionCompletion{completion(1, ts, 50), completion(2, ts.Add(time.Minute), 60)}
	remote := []model.SectionCompletion{completion(2, ts, 30)}

	once := MergeCompletions(local, remote)
	twice := MergeCompletions(once, remote)
	assert.Equal(t, once, twice)
}

func TestMergeCompletionsEmptyInputs(t *testing.T) {
	ts := time.Now()
	local := []model.SectionCompletion{completion(1, ts, 50)}

	assert.Equal(t, local, MergeCompletions(local, nil))
	assert.Equal(t, local, MergeCompletions(nil, local))
	assert.Empty(t, MergeCompletions(nil, nil))
}

func response(section int, questionID string, ts time.Time, answer string) model.QuestionResponse {
	return model.QuestionResponse{
		SectionNumber: section,
		QuestionID:    questionID,
		Answer:        answer,
		Timestamp:     ts,
	}
}

func TestMergeResponsesDedupByKey(t *testing.T) {
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	local := []model.QuestionResponse{response(1, "html-3", t1, "0")}
	remote := []model.QuestionResponse{response(1, "html-3", t2, "2")}

	merged := MergeResponses(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, "2", merged[0].Answer, "后答的一次必须胜出")
}

func TestMergeResponsesTieKeepsLocal(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	local := []model.QuestionResponse{response(1, "html-3", ts, "local")}
	remote := []model.QuestionResponse{response(1, "html-3", ts, "remote")}

	merged := MergeResponses(local, remote)
	require.Len(t, merged, 1)
	assert.Equal(t, "local", merged[0].Answer)
}

func TestMergeResponsesKeyIncludesSection(t *testing.T) {
	ts := time.Now()
	// 同名题目出现在不同板块时互不覆盖
	local := []model.QuestionResponse{response(1, "q-1", ts, "a")}
	remote := []model.QuestionResponse{response(2, "q-1", ts, "b")}

	merged := MergeResponses(local, remote)
	assert.Len(t, merged, 2)
}

func TestMergeResponsesSortOrder(t *testing.T) {
	ts := time.Now()
	merged := MergeResponses(
		[]model.QuestionResponse{response(2, "css-2", ts, ""), response(1, "html-9", ts, "")},
		[]model.QuestionResponse{response(1, "html-1", ts, "")},
	)

	require.Len(t, merged, 3)
	assert.Equal(t, "html-1", merged[0].QuestionID)
	assert.Equal(t, "html-9", merged[1].QuestionID)
	assert.Equal(t, "css-2", merged[2].QuestionID)
}

// 远端库与缓存都不可用时对账必须安全返回空集而不是崩溃
func TestReconcileFullyDegraded(t *testing.T) {
	svc := NewSyncService(
		repository.NewProgressCache(nil),
		NewRecordService(nil, nil, nil, nil, nil),
	)

	result := svc.Reconcile(context.Background(), "user-1")
	require.NotNil(t, result)
	assert.Empty(t, result.Completions)
	assert.Empty(t, result.Responses)
}

func TestPushLocalNoStoreIsNoop(t *testing.T) {
	svc := NewSyncService(
		repository.NewProgressCache(nil),
		NewRecordService(nil, nil, nil, nil, nil),
	)

	assert.NotPanics(t, func() {
		svc.PushLocal(context.Background(), "user-1")
		svc.FlushPending(context.Background())
	})
}
