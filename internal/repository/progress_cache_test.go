package repository

import (
	"context"
	"testing"
	"time"

	"weblearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCompletions(t *testing.T) {
	raw := []byte(`[
		{"sectionNumber":1,"sectionTitle":"HTML Fundamentals","totalQuestions":8,"questionsCorrect":6,"score":6,"accuracy":75,"timeSpent":300,"completedAt":"2024-01-01T00:00:00Z"},
		{"sectionNumber":2,"sectionTitle":"CSS Styling","completedAt":"2024-02-01T12:30:00Z"}
	]`)

	out := DecodeCompletions(raw)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].SectionNumber)
	assert.Equal(t, 75, out[0].Accuracy)
	assert.True(t, out[0].CompletedAt.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDecodeCompletionsDropsMalformedEntries(t *testing.T) {
	raw := []byte(`[
		{"sectionNumber":1,"completedAt":"2024-01-01T00:00:00Z"},
		"not an object",
		{"sectionNumber":0,"completedAt":"2024-01-01T00:00:00Z"},
		{"sectionNumber":"three"}
	]`)

	out := DecodeCompletions(raw)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0].SectionNumber)
}

// 损坏的时间戳当最早时间处理，而不是丢掉整条记录：
// 这样它在合并时会输给任何一条有效时间的同键记录
func TestDecodeCompletionsInvalidTimestampIsZero(t *testing.T) {
	raw := []byte(`[{"sectionNumber":3,"completedAt":"garbage"}]`)

	out := DecodeCompletions(raw)
	require.Len(t, out, 1)
	assert.True(t, out[0].CompletedAt.IsZero())
}

func TestDecodeCompletionsInvalidPayload(t *testing.T) {
	assert.Nil(t, DecodeCompletions([]byte(`{"oops":1}`)))
	assert.Nil(t, DecodeCompletions([]byte(`garbage`)))
	assert.Empty(t, DecodeCompletions([]byte(`[]`)))
}

func TestDecodeResponses(t *testing.T) {
	raw := []byte(`[
		{"sectionNumber":1,"questionId":"html-1","answer":"0","isCorrect":true,"responseTime":12,"timestamp":"2024-01-01T00:00:00Z"},
		{"sectionNumber":1,"questionId":"","answer":"x"},
		{"sectionNumber":0,"questionId":"html-2"}
	]`)

	out := DecodeResponses(raw)
	require.Len(t, out, 1)
	assert.Equal(t, "html-1", out[0].QuestionID)
	assert.True(t, out[0].IsCorrect)
	assert.Equal(t, 12, out[0].ResponseTime)
}

// 缓存不可用时（redis 客户端为空）读写必须安静退化，不 panic 不报错
func TestCacheUnavailableIsNoop(t *testing.T) {
	cache := NewProgressCache(nil)
	ctx := context.Background()

	assert.False(t, cache.Available())
	assert.Empty(t, cache.ReadCompletions(ctx, "u1"))
	assert.Empty(t, cache.ReadResponses(ctx, "u1"))
	assert.Nil(t, cache.ReadUserInfo(ctx, "u1"))
	assert.Empty(t, cache.ActiveUserIDs(ctx))

	assert.NotPanics(t, func() {
		cache.WriteCompletions(ctx, "u1", []model.SectionCompletion{{SectionNumber: 1}})
		cache.WriteResponses(ctx, "u1", []model.QuestionResponse{{SectionNumber: 1, QuestionID: "html-1"}})
		cache.WriteUserInfo(ctx, &model.UserInfo{ID: "u1"})
		cache.Clear(ctx, "u1")
	})
}
