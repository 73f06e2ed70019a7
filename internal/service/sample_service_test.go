package service

import (
	"testing"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleModuleScoresDeterministicWithSeed(t *testing.T) {
	cfg := &config.DemoConfig{SampleData: true, Seed: 42}

	a := NewSampleService(cfg).ModuleScores()
	b := NewSampleService(cfg).ModuleScores()
	assert.Equal(t, a, b, "固定种子必须产出相同数据")
}

func TestSampleModuleScoresShape(t *testing.T) {
	modules := NewSampleService(&config.DemoConfig{Seed: 7}).ModuleScores()
	require.Len(t, modules, 5)

	for _, m := range modules {
		assert.NotEmpty(t, m.Title)
		assert.GreaterOrEqual(t, len(m.Participants), 20)
		assert.LessOrEqual(t, len(m.Participants), 35)
		assert.Equal(t, len(m.Participants), m.TotalParticipants)

		for _, p := range m.Participants {
			assert.GreaterOrEqual(t, p.Accuracy, 0)
			assert.LessOrEqual(t, p.Accuracy, 100)
			assert.LessOrEqual(t, p.QuestionsCorrect, p.QuestionsAnswered)
			assert.NotEmpty(t, p.Email)

			if p.Status == model.StatusCompleted {
				assert.NotNil(t, p.CompletedAt)
			} else {
				assert.Nil(t, p.CompletedAt)
			}
		}
	}
}
