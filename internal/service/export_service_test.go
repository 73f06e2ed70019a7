package service

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newExportService() *ExportService {
	return NewExportService(nil, &config.ExportConfig{
		TimeLayout: "2006-01-02 15:04:05",
		ArchiveDir: "score-exports",
	})
}

func aliceModule() *model.ModuleScores {
	completedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &model.ModuleScores{
		SectionNumber: 1,
		Title:         "HTML Fundamentals",
		Participants: []model.ParticipantScore{
			{
				Name:              "Alice Johnson",
				Email:             "alice@example.com",
				QuestionsAnswered: 10,
				QuestionsCorrect:  8,
				Accuracy:          80,
				TimeSpent:         300,
				Status:            model.StatusCompleted,
				CompletedAt:       &completedAt,
			},
		},
	}
}

func TestModuleCSVFormat(t *testing.T) {
	data := newExportService().ModuleCSV(aliceModule())
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		"Name,Email,Questions Answered,Questions Correct,Accuracy (%),Time Spent (min),Status,Completed At",
		lines[0])
	assert.Equal(t,
		`"Alice Johnson","alice@example.com",10,8,80,5,completed,2024-01-01 00:00:00`,
		lines[1])
}

func TestModuleCSVMissingCompletedAt(t *testing.T) {
	m := aliceModule()
	m.Participants[0].CompletedAt = nil
	m.Participants[0].Status = model.StatusInProgress

	data := newExportService().ModuleCSV(m)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], ",in-progress,N/A"))
}

func TestModuleCSVQuotesEscaped(t *testing.T) {
	m := aliceModule()
	m.Participants[0].Name = `Annie "Ace" Hall`

	data := newExportService().ModuleCSV(m)
	assert.Contains(t, string(data), `"Annie ""Ace"" Hall"`)
}

func TestModuleCSVEmptyModule(t *testing.T) {
	data := newExportService().ModuleCSV(&model.ModuleScores{Title: "Empty"})
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	assert.Len(t, lines, 1, "空板块只输出表头")
}

func TestMinutesRounding(t *testing.T) {
	assert.Equal(t, 5, minutes(300))
	assert.Equal(t, 1, minutes(89))
	assert.Equal(t, 2, minutes(90))
	assert.Equal(t, 0, minutes(0))
}

func TestAllScoresCSVPrependsModuleColumns(t *testing.T) {
	data := newExportService().AllScoresCSV([]model.ModuleScores{*aliceModule()})
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], "Module,Section,Name,Email,"))
	assert.True(t, strings.HasPrefix(lines[1], `"HTML Fundamentals",1,"Alice Johnson",`))
}

func TestAllScoresXLSX(t *testing.T) {
	data, err := newExportService().AllScoresXLSX([]model.ModuleScores{*aliceModule()})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Section 1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", name)

	mins, err := f.GetCellValue("Section 1", "F2")
	require.NoError(t, err)
	assert.Equal(t, "5", mins)
}

func TestModuleFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "HTML_Fundamentals_scores_"+today+".csv", ModuleFilename("HTML Fundamentals", ".csv"))
	assert.Equal(t, "module_scores_"+today+".csv", ModuleFilename("   ", ".csv"))
}
