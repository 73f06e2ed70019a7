package service

import (
	"context"
	"testing"
	"time"

	"weblearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCompletionSupersedes(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	older := base.Add(-time.Hour)
	newer := base.Add(time.Hour)

	rec := &model.SectionCompletion{SectionNumber: 1, CompletedAt: base}

	t.Run("无完成时间的旧行允许覆盖", func(t *testing.T) {
		assert.True(t, completionSupersedes(&model.UserSectionProgress{}, rec))
	})

	t.Run("旧行更早允许覆盖", func(t *testing.T) {
		existing := &model.UserSectionProgress{CompletedAt: &older}
		assert.True(t, completionSupersedes(existing, rec))
	})

	t.Run("时间相等保留旧行", func(t *testing.T) {
		same := base
		existing := &model.UserSectionProgress{CompletedAt: &same}
		assert.False(t, completionSupersedes(existing, rec))
	})

	t.Run("旧行更新时保留旧行", func(t *testing.T) {
		existing := &model.UserSectionProgress{CompletedAt: &newer}
		assert.False(t, completionSupersedes(existing, rec))
	})
}

func TestSaveCompletionDegradedReturnsFalse(t *testing.T) {
	svc := NewRecordService(nil, nil, nil, nil, nil)
	saved := svc.SaveCompletion(context.Background(), "u1", &model.SectionCompletion{SectionNumber: 1})
	assert.False(t, saved)
}
