package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"weblearn_backend/internal/model"
	"weblearn_backend/internal/repository"
	"weblearn_backend/pkg/logger"
	"weblearn_backend/pkg/monitoring"
)

// RecordService 远端记录库的薄封装。所有操作都是尽力而为：
// 单次失败记日志、按"远端没有贡献数据"处理，绝不向调用方抛致命错误。
// 库未配置时整个服务处于降级模式，读返回空、写返回 false。
type RecordService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	SectionRepo  *repository.SectionRepository
	ProgressRepo *repository.ProgressRepository
	ResponseRepo *repository.ResponseRepository
}

func NewRecordService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	sectionRepo *repository.SectionRepository,
	progressRepo *repository.ProgressRepository,
	responseRepo *repository.ResponseRepository,
) *RecordService {
	return &RecordService{
		DB:           db,
		UserRepo:     userRepo,
		SectionRepo:  sectionRepo,
		ProgressRepo: progressRepo,
		ResponseRepo: responseRepo,
	}
}

// IsAvailable 远端记录库是否可用。false 是设计内的降级状态，不是故障。
func (s *RecordService) IsAvailable() bool {
	return s.DB != nil
}

// completionSupersedes 判断新完成记录是否覆盖库里已有的进度行。
// 已有行带完成时间且不早于新记录时保留旧行，与作答记录的取舍规则一致。
func completionSupersedes(existing *model.UserSectionProgress, rec *model.SectionCompletion) bool {
	if existing.CompletedAt == nil {
		return true
	}
	return existing.CompletedAt.Before(rec.CompletedAt)
}

// SaveCompletion 先把板块编号解析成内部主键，再以 (user, section) 为键 upsert。
// 重考产生更晚的完成时间才覆盖旧行，后台补推的旧缓存记录不会冲掉更新的远端行。
func (s *RecordService) SaveCompletion(ctx context.Context, userID string, rec *model.SectionCompletion) bool {
	if !s.IsAvailable() {
		return false
	}

	section, err := s.SectionRepo.FindByNumber(rec.SectionNumber)
	if err != nil {
		logger.Log.Warn("section lookup failed, completion not saved",
			zap.Int("section", rec.SectionNumber), zap.Error(err))
		monitoring.RecordSaveCounter.WithLabelValues("progress", "error").Inc()
		return false
	}

	existing, err := s.ProgressRepo.FindByUserAndSection(userID, section.ID)
	if err == nil && !completionSupersedes(existing, rec) {
		// 已有记录不比新提交旧，按幂等成功处理
		monitoring.RecordSaveCounter.WithLabelValues("progress", "skipped").Inc()
		return true
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		logger.Log.Warn("progress lookup failed", zap.String("user", userID), zap.Error(err))
		monitoring.RecordSaveCounter.WithLabelValues("progress", "error").Inc()
		return false
	}

	completedAt := rec.CompletedAt
	row := &model.UserSectionProgress{
		UserID:               userID,
		SectionID:            section.ID,
		QuestionsAnswered:    rec.TotalQuestions,
		QuestionsCorrect:     rec.QuestionsCorrect,
		TotalScore:           rec.Score,
		MaxPossibleScore:     rec.TotalQuestions,
		TimeSpent:            rec.TimeSpent,
		CompletionPercentage: rec.Accuracy,
		Status:               model.StatusCompleted,
		CompletedAt:          &completedAt,
	}

	if err := s.ProgressRepo.Upsert(row); err != nil {
		logger.Log.Warn("completion save failed",
			zap.String("user", userID), zap.Int("section", rec.SectionNumber), zap.Error(err))
		monitoring.RecordSaveCounter.WithLabelValues("progress", "error").Inc()
		return false
	}

	monitoring.RecordSaveCounter.WithLabelValues("progress", "ok").Inc()
	return true
}

// SaveResponse 以 (user, question) 为键写入作答。库里已有更新（或同时刻）的作答时
// 跳过写入，时间戳更晚者胜的策略在存储层和对账层保持一致。
func (s *RecordService) SaveResponse(ctx context.Context, userID string, resp *model.QuestionResponse) bool {
	if !s.IsAvailable() {
		return false
	}

	section, err := s.SectionRepo.FindByNumber(resp.SectionNumber)
	if err != nil {
		logger.Log.Warn("section lookup failed, response not saved",
			zap.Int("section", resp.SectionNumber), zap.Error(err))
		monitoring.RecordSaveCounter.WithLabelValues("response", "error").Inc()
		return false
	}

	existing, err := s.ResponseRepo.FindByUserAndQuestion(userID, resp.QuestionID)
	if err == nil && !existing.AnsweredAt.Before(resp.Timestamp) {
		// 已有记录不比新提交旧，按幂等成功处理
		monitoring.RecordSaveCounter.WithLabelValues("response", "skipped").Inc()
		return true
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		logger.Log.Warn("response lookup failed", zap.String("user", userID), zap.Error(err))
		monitoring.RecordSaveCounter.WithLabelValues("response", "error").Inc()
		return false
	}

	points := 0
	if resp.IsCorrect {
		points = 1
	}
	row := &model.UserQuestionResponse{
		UserID:       userID,
		SectionID:    section.ID,
		QuestionID:   resp.QuestionID,
		UserAnswer:   resp.Answer,
		IsCorrect:    resp.IsCorrect,
		ResponseTime: resp.ResponseTime,
		PointsEarned: points,
		AnsweredAt:   resp.Timestamp,
	}

	if err := s.ResponseRepo.Upsert(row); err != nil {
		logger.Log.Warn("response save failed",
			zap.String("user", userID), zap.String("question", resp.QuestionID), zap.Error(err))
		monitoring.RecordSaveCounter.WithLabelValues("response", "error").Inc()
		return false
	}

	monitoring.RecordSaveCounter.WithLabelValues("response", "ok").Inc()
	return true
}

// LoadCompletions 拉取某用户全部已完成板块，连板块元数据还原成客户端记录形态
func (s *RecordService) LoadCompletions(ctx context.Context, userID string) []model.SectionCompletion {
	if !s.IsAvailable() {
		return nil
	}

	rows, err := s.ProgressRepo.FindCompletedByUser(userID)
	if err != nil {
		logger.Log.Warn("completion load failed", zap.String("user", userID), zap.Error(err))
		return nil
	}

	out := make([]model.SectionCompletion, 0, len(rows))
	for _, row := range rows {
		var completedAt time.Time
		if row.CompletedAt != nil {
			completedAt = *row.CompletedAt
		}
		out = append(out, model.SectionCompletion{
			SectionNumber:    row.SectionNumber,
			SectionTitle:     row.SectionTitle,
			TotalQuestions:   row.QuestionsAnswered,
			QuestionsCorrect: row.QuestionsCorrect,
			Score:            row.TotalScore,
			Accuracy:         row.CompletionPercentage,
			TimeSpent:        row.TimeSpent,
			CompletedAt:      completedAt,
		})
	}
	return out
}

// LoadResponses 拉取某用户全部作答记录
func (s *RecordService) LoadResponses(ctx context.Context, userID string) []model.QuestionResponse {
	if !s.IsAvailable() {
		return nil
	}

	rows, err := s.ResponseRepo.FindByUser(userID)
	if err != nil {
		logger.Log.Warn("response load failed", zap.String("user", userID), zap.Error(err))
		return nil
	}

	out := make([]model.QuestionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.QuestionResponse{
			SectionNumber: row.SectionNumber,
			QuestionID:    row.QuestionID,
			Answer:        row.UserAnswer,
			IsCorrect:     row.IsCorrect,
			ResponseTime:  row.ResponseTime,
			Timestamp:     row.AnsweredAt,
		})
	}
	return out
}

// LoadAllProgress 管理端视角的全部进度行。用户/板块元数据缺失时按边界默认值补齐，
// 保证后续统计拿到的是完整类型的数据。
func (s *RecordService) LoadAllProgress(ctx context.Context) []model.AdminUserProgress {
	if !s.IsAvailable() {
		return nil
	}

	rows, err := s.ProgressRepo.FindAllWithSections()
	if err != nil {
		logger.Log.Warn("admin progress load failed", zap.Error(err))
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	userIDs := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			userIDs = append(userIDs, row.UserID)
		}
	}

	users, err := s.UserRepo.FindByIDs(userIDs)
	if err != nil {
		logger.Log.Warn("admin roster load failed", zap.Error(err))
	}
	usersByID := make(map[string]model.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	out := make([]model.AdminUserProgress, 0, len(rows))
	for _, row := range rows {
		name, email := "Unknown User", "unknown@email.com"
		if u, ok := usersByID[row.UserID]; ok {
			name, email = u.Name, u.Email
		}
		out = append(out, model.AdminUserProgress{
			UserID:           row.UserID,
			UserName:         name,
			UserEmail:        email,
			SectionNumber:    row.SectionNumber,
			SectionTitle:     row.SectionTitle,
			TotalQuestions:   row.QuestionsAnswered,
			QuestionsCorrect: row.QuestionsCorrect,
			Accuracy:         row.CompletionPercentage,
			TimeSpent:        row.TimeSpent,
			CompletedAt:      row.CompletedAt,
			Status:           normalizeStatus(row.Status),
		})
	}
	return out
}

// LoadAllResponses 管理端视角的全部作答行
func (s *RecordService) LoadAllResponses(ctx context.Context) []model.AdminQuestionResponse {
	if !s.IsAvailable() {
		return nil
	}

	rows, err := s.ResponseRepo.FindAllWithSections()
	if err != nil {
		logger.Log.Warn("admin response load failed", zap.Error(err))
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	userIDs := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			userIDs = append(userIDs, row.UserID)
		}
	}
	users, err := s.UserRepo.FindByIDs(userIDs)
	if err != nil {
		logger.Log.Warn("admin roster load failed", zap.Error(err))
	}
	usersByID := make(map[string]model.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	out := make([]model.AdminQuestionResponse, 0, len(rows))
	for _, row := range rows {
		name, email := "Unknown User", "unknown@email.com"
		if u, ok := usersByID[row.UserID]; ok {
			name, email = u.Name, u.Email
		}
		out = append(out, model.AdminQuestionResponse{
			UserID:        row.UserID,
			UserName:      name,
			UserEmail:     email,
			SectionNumber: row.SectionNumber,
			QuestionID:    row.QuestionID,
			UserAnswer:    row.UserAnswer,
			IsCorrect:     row.IsCorrect,
			ResponseTime:  row.ResponseTime,
			Timestamp:     row.AnsweredAt,
		})
	}
	return out
}

// LoadUsers 管理端花名册
func (s *RecordService) LoadUsers(ctx context.Context) []model.User {
	if !s.IsAvailable() {
		return nil
	}
	users, err := s.UserRepo.FindAll()
	if err != nil {
		logger.Log.Warn("roster load failed", zap.Error(err))
		return nil
	}
	return users
}

func normalizeStatus(status model.ProgressStatus) model.ProgressStatus {
	switch status {
	case model.StatusCompleted, model.StatusInProgress:
		return status
	default:
		return model.StatusNotStarted
	}
}
