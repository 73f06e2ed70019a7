package service

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"weblearn_backend/internal/config"
	"weblearn_backend/internal/content"
	"weblearn_backend/internal/model"
)

// SampleService 演示模式的示例成绩生成器。只在远端没有任何记录时
// 给管理面板填充展示数据，永远不写入库或缓存。
type SampleService struct {
	rng *rand.Rand
	// base 是完成时间的基准时刻。固定种子时必须连基准一起固定，
	// 否则同一种子两次生成的 CompletedAt 会不同；零值表示按当前时间取。
	base time.Time
}

// sampleEpoch 固定种子模式下完成时间的统一基准
var sampleEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func NewSampleService(cfg *config.DemoConfig) *SampleService {
	if cfg.Seed == 0 {
		return &SampleService{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	}
	return &SampleService{rng: rand.New(rand.NewSource(cfg.Seed)), base: sampleEpoch}
}

var sampleNames = []string{
	"Alice Johnson", "Bob Smith", "Carol Davis", "David Wilson", "Emma Brown",
	"Frank Miller", "Grace Lee", "Henry Taylor", "Ivy Chen", "Jack Anderson",
	"Kate Thompson", "Liam Garcia", "Maya Patel", "Noah Rodriguez", "Olivia Martinez",
	"Peter Kim", "Quinn O'Brien", "Rachel Green", "Sam Jones", "Tara Singh",
	"Uma Williams", "Victor Chang", "Wendy Liu", "Xavier Woods", "Yuki Tanaka",
	"Zoe Jackson", "Ananya Sharma", "Carlos Mendez", "Diana Ross", "Eric Foster",
}

func sampleEmail(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String() + "@example.com"
}

func (s *SampleService) participants(section *content.Section) []model.ParticipantScore {
	base := s.base
	if base.IsZero() {
		base = time.Now()
	}

	count := s.rng.Intn(15) + 20
	out := make([]model.ParticipantScore, 0, count)
	for i := 0; i < count; i++ {
		name := sampleNames[i%len(sampleNames)]
		answered := s.rng.Intn(8) + 5
		correct := int(float64(answered) * (0.5 + s.rng.Float64()*0.5))
		accuracy := 0
		if answered > 0 {
			accuracy = int(float64(correct)/float64(answered)*100 + 0.5)
		}

		var status model.ProgressStatus
		var completedAt *time.Time
		switch r := s.rng.Float64(); {
		case r > 0.8:
			status = model.StatusNotStarted
		case r > 0.1:
			status = model.StatusCompleted
			t := base.Add(-time.Duration(s.rng.Float64() * float64(7*24*time.Hour)))
			completedAt = &t
		default:
			status = model.StatusInProgress
		}

		out = append(out, model.ParticipantScore{
			UserID:            fmt.Sprintf("sample-user-%d", i),
			Name:              name,
			Email:             sampleEmail(name),
			SectionNumber:     section.Number,
			SectionTitle:      section.Title,
			QuestionsAnswered: answered,
			QuestionsCorrect:  correct,
			Accuracy:          accuracy,
			TimeSpent:         s.rng.Intn(600) + 180,
			CompletedAt:       completedAt,
			Status:            status,
		})
	}
	return out
}

// ModuleScores 全部板块的示例面板数据
func (s *SampleService) ModuleScores() []model.ModuleScores {
	sections := content.AllSections()
	modules := make([]model.ModuleScores, 0, len(sections))
	for i := range sections {
		sec := &sections[i]
		participants := s.participants(sec)

		var completed, accuracySum int
		for _, p := range participants {
			if p.Status == model.StatusCompleted {
				completed++
				accuracySum += p.Accuracy
			}
		}
		modules = append(modules, model.ModuleScores{
			SectionNumber:     sec.Number,
			Title:             sec.Title,
			Participants:      participants,
			AverageScore:      roundMean(accuracySum, completed),
			CompletionRate:    roundPercent(completed, len(participants)),
			TotalParticipants: len(participants),
		})
	}
	return modules
}
