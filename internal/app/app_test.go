package app

import (
	"testing"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/service"
	"weblearn_backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReloadConfigRebuildsSampleService(t *testing.T) {
	logger.Log = zap.NewNop()

	cfg := &config.Config{Demo: config.DemoConfig{SampleData: true, Seed: 1}}
	a := &App{Config: cfg, services: &services{}}
	a.services.sample = service.NewSampleService(&cfg.Demo)
	a.services.stats = service.NewStatsService(nil, a.services.sample, cfg)

	old := a.services.sample
	a.ReloadConfig(&config.Config{Demo: config.DemoConfig{SampleData: true, Seed: 99}})

	assert.NotSame(t, old, a.services.sample, "演示配置变化后生成器必须重建")
	assert.Same(t, a.services.sample, a.services.stats.Sample)
	assert.Equal(t, int64(99), a.Config.Demo.Seed)
}

func TestReloadConfigAppliesExportSettings(t *testing.T) {
	logger.Log = zap.NewNop()

	cfg := &config.Config{Export: config.ExportConfig{TimeLayout: "2006-01-02 15:04:05"}}
	a := &App{Config: cfg}

	a.ReloadConfig(&config.Config{Export: config.ExportConfig{TimeLayout: "2006-01-02"}})

	assert.Equal(t, "2006-01-02", a.Config.Export.TimeLayout)
}
