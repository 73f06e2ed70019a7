package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllSectionsOrderedAndComplete(t *testing.T) {
	sections := AllSections()
	require.Len(t, sections, 5)

	for i, sec := range sections {
		assert.Equal(t, i+1, sec.Number)
		assert.NotEmpty(t, sec.Title)
		assert.Len(t, sec.Questions, 8)

		for _, q := range sec.Questions {
			assert.NotEmpty(t, q.ID)
			assert.NotEmpty(t, q.CorrectAnswer)
			assert.Greater(t, q.Points, 0)
			if q.Type == MultipleChoice {
				assert.NotEmpty(t, q.Options)
			}
		}
	}
}

func TestGetSection(t *testing.T) {
	sec := GetSection(1)
	require.NotNil(t, sec)
	assert.Equal(t, "HTML Fundamentals", sec.Title)

	assert.Nil(t, GetSection(0))
	assert.Nil(t, GetSection(99))
}

func TestGetQuestion(t *testing.T) {
	q := GetQuestion(1, "html-1")
	require.NotNil(t, q)
	assert.Equal(t, MultipleChoice, q.Type)

	assert.Nil(t, GetQuestion(1, "css-1"), "题目只在自己的板块里可见")
	assert.Nil(t, GetQuestion(99, "html-1"))
}

func TestCheckAnswerMultipleChoice(t *testing.T) {
	q := GetQuestion(1, "html-1") // 正确下标 0
	require.NotNil(t, q)

	assert.True(t, CheckAnswer(q, "0"))
	assert.True(t, CheckAnswer(q, " 0 "))
	assert.False(t, CheckAnswer(q, "1"))
	assert.False(t, CheckAnswer(q, "7"), "越界下标")
	assert.False(t, CheckAnswer(q, "-1"))
	assert.False(t, CheckAnswer(q, "abc"))
	assert.False(t, CheckAnswer(q, ""))
}

func TestCheckAnswerTrueFalse(t *testing.T) {
	q := GetQuestion(1, "html-2") // 正确答案 false
	require.NotNil(t, q)

	assert.True(t, CheckAnswer(q, "false"))
	assert.True(t, CheckAnswer(q, "FALSE"))
	assert.True(t, CheckAnswer(q, "  False "))
	assert.False(t, CheckAnswer(q, "true"))
	assert.False(t, CheckAnswer(q, ""))
}

// 答案和解析绝不能随题目下发到客户端
func TestQuestionSerializationHidesAnswer(t *testing.T) {
	q := GetQuestion(1, "html-1")
	require.NotNil(t, q)

	data, err := json.Marshal(q)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "correctAnswer")
	assert.NotContains(t, string(data), "CorrectAnswer")
	assert.NotContains(t, string(data), q.Explanation)
}

func TestGetSectionReturnsCopy(t *testing.T) {
	a := GetSection(1)
	require.NotNil(t, a)
	originalTitle := a.Title
	a.Title = "mutated"

	b := GetSection(1)
	require.NotNil(t, b)
	assert.Equal(t, originalTitle, b.Title, "调用方拿到的是副本，改动不能影响题库")
}
