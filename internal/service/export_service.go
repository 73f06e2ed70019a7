package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/model"
	"weblearn_backend/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ExportService 成绩导出：CSV / XLSX 生成与归档。
// 行格式固定：姓名与邮箱带引号，数值列裸写，用时从秒取整到分钟，
// 缺失完成时间写 N/A。
type ExportService struct {
	Storage *StorageService
	Cfg     *config.ExportConfig
}

func NewExportService(storage *StorageService, cfg *config.ExportConfig) *ExportService {
	return &ExportService{Storage: storage, Cfg: cfg}
}

var scoreHeaders = []string{
	"Name", "Email", "Questions Answered", "Questions Correct",
	"Accuracy (%)", "Time Spent (min)", "Status", "Completed At",
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func minutes(seconds int) int {
	return int(float64(seconds)/60 + 0.5)
}

func (s *ExportService) formatCompletedAt(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(s.Cfg.TimeLayout)
}

func (s *ExportService) scoreRow(p *model.ParticipantScore) []string {
	return []string{
		quote(p.Name),
		quote(p.Email),
		strconv.Itoa(p.QuestionsAnswered),
		strconv.Itoa(p.QuestionsCorrect),
		strconv.Itoa(p.Accuracy),
		strconv.Itoa(minutes(p.TimeSpent)),
		string(p.Status),
		s.formatCompletedAt(p.CompletedAt),
	}
}

// ModuleCSV 单板块成绩 CSV
func (s *ExportService) ModuleCSV(m *model.ModuleScores) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(scoreHeaders, ","))
	buf.WriteByte('\n')
	for i := range m.Participants {
		buf.WriteString(strings.Join(s.scoreRow(&m.Participants[i]), ","))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// AllScoresCSV 全部板块成绩 CSV，前置板块标题与编号两列
func (s *ExportService) AllScoresCSV(modules []model.ModuleScores) []byte {
	headers := append([]string{"Module", "Section"}, scoreHeaders...)

	var buf bytes.Buffer
	buf.WriteString(strings.Join(headers, ","))
	buf.WriteByte('\n')
	for i := range modules {
		m := &modules[i]
		for j := range m.Participants {
			row := append([]string{quote(m.Title), strconv.Itoa(m.SectionNumber)}, s.scoreRow(&m.Participants[j])...)
			buf.WriteString(strings.Join(row, ","))
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// AllScoresXLSX 全部板块成绩表格，每个板块一个工作表
func (s *ExportService) AllScoresXLSX(modules []model.ModuleScores) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i := range modules {
		m := &modules[i]
		sheet := fmt.Sprintf("Section %d", m.SectionNumber)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}

		header := make([]interface{}, len(scoreHeaders))
		for c, h := range scoreHeaders {
			header[c] = h
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, err
		}

		for r := range m.Participants {
			p := &m.Participants[r]
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, err
			}
			row := []interface{}{
				p.Name, p.Email, p.QuestionsAnswered, p.QuestionsCorrect,
				p.Accuracy, minutes(p.TimeSpent), string(p.Status),
				s.formatCompletedAt(p.CompletedAt),
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ModuleFilename 单板块导出文件名，标题空白替换为下划线
func ModuleFilename(title, ext string) string {
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "module"
	}
	return fmt.Sprintf("%s_scores_%s%s", name, time.Now().Format("2006-01-02"), ext)
}

// AllScoresFilename 汇总导出文件名
func AllScoresFilename(ext string) string {
	return fmt.Sprintf("all_module_scores_%s%s", time.Now().Format("2006-01-02"), ext)
}

// Archive 把导出文件上传到归档存储。失败只记日志不影响下载。
func (s *ExportService) Archive(ctx context.Context, filename, contentType string, data []byte) {
	if s.Storage == nil {
		return
	}
	key := path.Join(s.Cfg.ArchiveDir, filename)
	if _, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.Log.Warn("导出归档失败",
			zap.String("file", key),
			zap.Error(err))
	}
}
