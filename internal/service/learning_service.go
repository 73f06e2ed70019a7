package service

import (
	"context"
	"math"
	"time"

	"weblearn_backend/internal/content"
	"weblearn_backend/internal/model"
	"weblearn_backend/internal/repository"
	"weblearn_backend/internal/util"
)

// LearningService 答题主流程：服务端判题、先写本地缓存、尽力同步远端。
// 缓存是权威的即时存储，远端写入失败只降级不报错。
type LearningService struct {
	Cache   *repository.ProgressCache
	Records *RecordService
	Sync    *SyncService
}

func NewLearningService(cache *repository.ProgressCache, records *RecordService, sync *SyncService) *LearningService {
	return &LearningService{
		Cache:   cache,
		Records: records,
		Sync:    sync,
	}
}

// SubmitResult 单题判题结果
type SubmitResult struct {
	QuestionID    string `json:"questionId"`
	IsCorrect     bool   `json:"isCorrect"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Points        int    `json:"points"`
	Saved         bool   `json:"saved"` // 远端是否已落库
}

// SubmitAnswer 判题并记录一次作答。同一题重复作答保留最新一次。
func (s *LearningService) SubmitAnswer(ctx context.Context, userID string, sectionNumber int, questionID, answer string, responseTime int) (*SubmitResult, error) {
	q := content.GetQuestion(sectionNumber, questionID)
	if q == nil {
		return nil, util.ErrQuestionNotFound
	}

	correct := content.CheckAnswer(q, answer)
	resp := model.QuestionResponse{
		SectionNumber: sectionNumber,
		QuestionID:    questionID,
		Answer:        answer,
		IsCorrect:     correct,
		ResponseTime:  responseTime,
		Timestamp:     time.Now(),
	}

	existing := s.Cache.ReadResponses(ctx, userID)
	s.Cache.WriteResponses(ctx, userID, MergeResponses(existing, []model.QuestionResponse{resp}))

	saved := s.Records.SaveResponse(ctx, userID, &resp)

	points := 0
	if correct {
		points = q.Points
	}
	return &SubmitResult{
		QuestionID:    questionID,
		IsCorrect:     correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Points:        points,
		Saved:         saved,
	}, nil
}

// CompleteSection 结算一个板块：从已记录的作答统计正确数与得分。
// 未作答的题按未答计入总题数但不计分。
func (s *LearningService) CompleteSection(ctx context.Context, userID string, sectionNumber, timeSpent int) (*model.SectionCompletion, error) {
	section := content.GetSection(sectionNumber)
	if section == nil {
		return nil, util.ErrSectionNotFound
	}

	responses := s.Cache.ReadResponses(ctx, userID)
	byQuestion := make(map[string]model.QuestionResponse)
	for _, r := range responses {
		if r.SectionNumber == sectionNumber {
			byQuestion[r.QuestionID] = r
		}
	}

	var correct, score, maxScore int
	for i := range section.Questions {
		q := &section.Questions[i]
		maxScore += q.Points
		if r, ok := byQuestion[q.ID]; ok && r.IsCorrect {
			correct++
			score += q.Points
		}
	}

	total := len(section.Questions)
	accuracy := 0
	if total > 0 {
		accuracy = int(math.Round(float64(correct) / float64(total) * 100))
	}

	completion := model.SectionCompletion{
		SectionNumber:    sectionNumber,
		SectionTitle:     section.Title,
		TotalQuestions:   total,
		QuestionsCorrect: correct,
		Score:            score,
		Accuracy:         accuracy,
		TimeSpent:        timeSpent,
		CompletedAt:      time.Now(),
	}

	existing := s.Cache.ReadCompletions(ctx, userID)
	s.Cache.WriteCompletions(ctx, userID, MergeCompletions(existing, []model.SectionCompletion{completion}))

	s.Records.SaveCompletion(ctx, userID, &completion)
	return &completion, nil
}

// ScorePage 个人成绩页数据
type ScorePage struct {
	Completions []model.SectionCompletion `json:"completions"`
	Responses   []model.QuestionResponse  `json:"responses"`
	Summary     model.ScoreSummary        `json:"summary"`
}

// Scores 对账后的个人成绩视图
func (s *LearningService) Scores(ctx context.Context, userID string) *ScorePage {
	merged := s.Sync.Reconcile(ctx, userID)
	return &ScorePage{
		Completions: merged.Completions,
		Responses:   merged.Responses,
		Summary:     ComputeSummary(merged.Completions),
	}
}

// Reset 清空本地进度。远端记录保留，下次对账会重新拉回。
func (s *LearningService) Reset(ctx context.Context, userID string) {
	s.Cache.Clear(ctx, userID)
}
