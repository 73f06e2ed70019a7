package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/model"
)

// StatsService 从对账后的记录集和用户花名册推导统计数据。
// 全部计算都是输入的纯函数：相同记录集永远得到相同结果，没有隐藏状态。
type StatsService struct {
	Records *RecordService
	Sample  *SampleService
	Cfg     *config.Config
}

func NewStatsService(records *RecordService, sample *SampleService, cfg *config.Config) *StatsService {
	return &StatsService{
		Records: records,
		Sample:  sample,
		Cfg:     cfg,
	}
}

func roundPercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

func roundMean(sum, count int) int {
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// ComputeSectionStats 按板块聚合进度行。completionRate 在零用户时定义为 0，
// 平均值只对已完成用户计算、空集为 0，totalQuestions 取板块内观察到的最大值。
func ComputeSectionStats(progress []model.AdminUserProgress, responses []model.AdminQuestionResponse) []model.SectionStats {
	grouped := make(map[int][]model.AdminUserProgress)
	for _, p := range progress {
		grouped[p.SectionNumber] = append(grouped[p.SectionNumber], p)
	}

	responsesBySection := make(map[int]int)
	for _, r := range responses {
		responsesBySection[r.SectionNumber]++
	}

	stats := make([]model.SectionStats, 0, len(grouped))
	for sectionNumber, rows := range grouped {
		var completed, accuracySum, timeSum, maxQuestions int
		title := ""
		for _, row := range rows {
			if title == "" {
				title = row.SectionTitle
			}
			if row.TotalQuestions > maxQuestions {
				maxQuestions = row.TotalQuestions
			}
			if row.Status == model.StatusCompleted {
				completed++
				accuracySum += row.Accuracy
				timeSum += row.TimeSpent
			}
		}

		stats = append(stats, model.SectionStats{
			SectionNumber:    sectionNumber,
			SectionTitle:     title,
			TotalUsers:       len(rows),
			CompletedUsers:   completed,
			CompletionRate:   roundPercent(completed, len(rows)),
			AverageAccuracy:  roundMean(accuracySum, completed),
			AverageTimeSpent: roundMean(timeSum, completed),
			TotalQuestions:   maxQuestions,
			TotalResponses:   responsesBySection[sectionNumber],
		})
	}

	sort.Slice(stats, func(i, j int) bool { return stats[i].SectionNumber < stats[j].SectionNumber })
	return stats
}

// ComputeOverallStats 全平台汇总，零值守卫与板块统计一致
func ComputeOverallStats(progress []model.AdminUserProgress, responses []model.AdminQuestionResponse, totalUsers int) model.OverallStats {
	sections := make(map[int]bool)
	questions := make(map[string]bool)
	var completed, accuracySum, timeSum int

	for _, p := range progress {
		sections[p.SectionNumber] = true
		if p.Status == model.StatusCompleted {
			completed++
			accuracySum += p.Accuracy
			timeSum += p.TimeSpent
		}
	}
	for _, r := range responses {
		questions[r.QuestionID] = true
	}

	return model.OverallStats{
		TotalUsers:            totalUsers,
		TotalSections:         len(sections),
		TotalQuestions:        len(questions),
		TotalResponses:        len(responses),
		OverallCompletionRate: roundPercent(completed, len(progress)),
		OverallAccuracy:       roundMean(accuracySum, completed),
		AverageTimePerSection: roundMean(timeSum, completed),
	}
}

// ComputeSummary 个人成绩页的汇总数字
func ComputeSummary(completions []model.SectionCompletion) model.ScoreSummary {
	var questions, correct, timeSum, accuracySum int
	for _, c := range completions {
		questions += c.TotalQuestions
		correct += c.QuestionsCorrect
		timeSum += c.TimeSpent
		accuracySum += c.Accuracy
	}
	return model.ScoreSummary{
		SectionsCompleted: len(completions),
		TotalQuestions:    questions,
		TotalCorrect:      correct,
		OverallAccuracy:   roundMean(accuracySum, len(completions)),
		TotalTimeSpent:    timeSum,
	}
}

// SectionStatistics 管理端板块统计
func (s *StatsService) SectionStatistics(ctx context.Context) []model.SectionStats {
	progress := s.Records.LoadAllProgress(ctx)
	responses := s.Records.LoadAllResponses(ctx)
	return ComputeSectionStats(progress, responses)
}

// OverallStatistics 管理端平台统计
func (s *StatsService) OverallStatistics(ctx context.Context) model.OverallStats {
	progress := s.Records.LoadAllProgress(ctx)
	responses := s.Records.LoadAllResponses(ctx)
	users := s.Records.LoadUsers(ctx)
	return ComputeOverallStats(progress, responses, len(users))
}

// ParticipantFilter 成绩面板的过滤/排序参数
type ParticipantFilter struct {
	Status model.ProgressStatus // 空值表示全部
	Search string               // 按姓名/邮箱模糊匹配
	SortBy string               // name / score / time / date
	Desc   bool
}

// FilterParticipants 过滤并排序参与者行。纯函数。
func FilterParticipants(rows []model.ParticipantScore, f ParticipantFilter) []model.ParticipantScore {
	out := make([]model.ParticipantScore, 0, len(rows))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, row := range rows {
		if f.Status != "" && row.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(row.Name), search) &&
			!strings.Contains(strings.ToLower(row.Email), search) {
			continue
		}
		out = append(out, row)
	}

	less := func(i, j int) bool { return out[i].Accuracy < out[j].Accuracy }
	switch f.SortBy {
	case "name":
		less = func(i, j int) bool { return out[i].Name < out[j].Name }
	case "time":
		less = func(i, j int) bool { return out[i].TimeSpent < out[j].TimeSpent }
	case "date":
		less = func(i, j int) bool {
			var ti, tj int64
			if out[i].CompletedAt != nil {
				ti = out[i].CompletedAt.UnixMilli()
			}
			if out[j].CompletedAt != nil {
				tj = out[j].CompletedAt.UnixMilli()
			}
			return ti < tj
		}
	}
	if f.Desc {
		sort.SliceStable(out, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(out, less)
	}
	return out
}

// buildModuleScores 把进度行整理成每板块的成绩面板数据
func buildModuleScores(progress []model.AdminUserProgress) []model.ModuleScores {
	grouped := make(map[int][]model.ParticipantScore)
	titles := make(map[int]string)
	for _, p := range progress {
		grouped[p.SectionNumber] = append(grouped[p.SectionNumber], model.ParticipantScore{
			UserID:            p.UserID,
			Name:              p.UserName,
			Email:             p.UserEmail,
			SectionNumber:     p.SectionNumber,
			SectionTitle:      p.SectionTitle,
			QuestionsAnswered: p.TotalQuestions,
			QuestionsCorrect:  p.QuestionsCorrect,
			Accuracy:          p.Accuracy,
			TimeSpent:         p.TimeSpent,
			CompletedAt:       p.CompletedAt,
			Status:            p.Status,
		})
		if titles[p.SectionNumber] == "" {
			titles[p.SectionNumber] = p.SectionTitle
		}
	}

	modules := make([]model.ModuleScores, 0, len(grouped))
	for sectionNumber, participants := range grouped {
		var completed, accuracySum int
		for _, p := range participants {
			if p.Status == model.StatusCompleted {
				completed++
				accuracySum += p.Accuracy
			}
		}
		modules = append(modules, model.ModuleScores{
			SectionNumber:     sectionNumber,
			Title:             titles[sectionNumber],
			Participants:      participants,
			AverageScore:      roundMean(accuracySum, completed),
			CompletionRate:    roundPercent(completed, len(participants)),
			TotalParticipants: len(participants),
		})
	}
	sort.Slice(modules, func(i, j int) bool { return modules[i].SectionNumber < modules[j].SectionNumber })
	return modules
}

// ModuleScores 成绩面板数据。远端无数据且开启演示模式时退回示例数据，
// 示例数据只做展示填充，永远不进入对账或统计的正式路径。
func (s *StatsService) ModuleScores(ctx context.Context) []model.ModuleScores {
	progress := s.Records.LoadAllProgress(ctx)
	if len(progress) == 0 && s.Cfg.Demo.SampleData && s.Sample != nil {
		return s.Sample.ModuleScores()
	}
	return buildModuleScores(progress)
}
