package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"weblearn_backend/internal/model"
	"weblearn_backend/pkg/logger"
)

const (
	completionsKeyPrefix = "completed_sections:"
	responsesKeyPrefix   = "section_progress:"
	userInfoKeyPrefix    = "user_info:"
)

// ProgressCache 每个用户独占的本地进度缓存。读取遵循静默降级契约：
// 客户端为 nil、键不存在、内容损坏都返回空集合，绝不向上抛错。
type ProgressCache struct {
	Redis *redis.Client
}

func NewProgressCache(rdb *redis.Client) *ProgressCache {
	return &ProgressCache{Redis: rdb}
}

// Available 缓存是否可用。不可用时所有读返回空、所有写为空操作。
func (c *ProgressCache) Available() bool {
	return c.Redis != nil
}

// cachedCompletion / cachedResponse 宽松解码形态：时间戳先按字符串接住，
// 解析失败当作最早时间而不是丢整条记录。
type cachedCompletion struct {
	SectionNumber    int    `json:"sectionNumber"`
	SectionTitle     string `json:"sectionTitle"`
	TotalQuestions   int    `json:"totalQuestions"`
	QuestionsCorrect int    `json:"questionsCorrect"`
	Score            int    `json:"score"`
	Accuracy         int    `json:"accuracy"`
	TimeSpent        int    `json:"timeSpent"`
	CompletedAt      string `json:"completedAt"`
}

type cachedResponse struct {
	SectionNumber int    `json:"sectionNumber"`
	QuestionID    string `json:"questionId"`
	Answer        string `json:"answer"`
	IsCorrect     bool   `json:"isCorrect"`
	ResponseTime  int    `json:"responseTime"`
	Timestamp     string `json:"timestamp"`
}

func parseCachedTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// DecodeCompletions 把缓存键的原始内容解码成完成记录，损坏条目静默丢弃
func DecodeCompletions(raw []byte) []model.SectionCompletion {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	out := make([]model.SectionCompletion, 0, len(entries))
	for _, entry := range entries {
		var cc cachedCompletion
		if err := json.Unmarshal(entry, &cc); err != nil {
			continue
		}
		if cc.SectionNumber <= 0 {
			continue
		}
		out = append(out, model.SectionCompletion{
			SectionNumber:    cc.SectionNumber,
			SectionTitle:     cc.SectionTitle,
			TotalQuestions:   cc.TotalQuestions,
			QuestionsCorrect: cc.QuestionsCorrect,
			Score:            cc.Score,
			Accuracy:         cc.Accuracy,
			TimeSpent:        cc.TimeSpent,
			CompletedAt:      parseCachedTime(cc.CompletedAt),
		})
	}
	return out
}

// DecodeResponses 同 DecodeCompletions，作答记录版本
func DecodeResponses(raw []byte) []model.QuestionResponse {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	out := make([]model.QuestionResponse, 0, len(entries))
	for _, entry := range entries {
		var cr cachedResponse
		if err := json.Unmarshal(entry, &cr); err != nil {
			continue
		}
		if cr.SectionNumber <= 0 || cr.QuestionID == "" {
			continue
		}
		out = append(out, model.QuestionResponse{
			SectionNumber: cr.SectionNumber,
			QuestionID:    cr.QuestionID,
			Answer:        cr.Answer,
			IsCorrect:     cr.IsCorrect,
			ResponseTime:  cr.ResponseTime,
			Timestamp:     parseCachedTime(cr.Timestamp),
		})
	}
	return out
}

func (c *ProgressCache) ReadCompletions(ctx context.Context, userID string) []model.SectionCompletion {
	if !c.Available() {
		return nil
	}
	val, err := c.Redis.Get(ctx, completionsKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("progress cache read failed", zap.String("user", userID), zap.Error(err))
		}
		return nil
	}
	return DecodeCompletions(val)
}

func (c *ProgressCache) ReadResponses(ctx context.Context, userID string) []model.QuestionResponse {
	if !c.Available() {
		return nil
	}
	val, err := c.Redis.Get(ctx, responsesKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("progress cache read failed", zap.String("user", userID), zap.Error(err))
		}
		return nil
	}
	return DecodeResponses(val)
}

func (c *ProgressCache) WriteCompletions(ctx context.Context, userID string, records []model.SectionCompletion) {
	if !c.Available() {
		return
	}
	val, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, completionsKeyPrefix+userID, val, 0).Err(); err != nil {
		logger.Log.Warn("progress cache write failed", zap.String("user", userID), zap.Error(err))
	}
}

func (c *ProgressCache) WriteResponses(ctx context.Context, userID string, records []model.QuestionResponse) {
	if !c.Available() {
		return
	}
	val, err := json.Marshal(records)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, responsesKeyPrefix+userID, val, 0).Err(); err != nil {
		logger.Log.Warn("progress cache write failed", zap.String("user", userID), zap.Error(err))
	}
}

func (c *ProgressCache) ReadUserInfo(ctx context.Context, userID string) *model.UserInfo {
	if !c.Available() {
		return nil
	}
	val, err := c.Redis.Get(ctx, userInfoKeyPrefix+userID).Bytes()
	if err != nil {
		return nil
	}
	var info model.UserInfo
	if err := json.Unmarshal(val, &info); err != nil {
		return nil
	}
	if info.ID == "" {
		return nil
	}
	return &info
}

func (c *ProgressCache) WriteUserInfo(ctx context.Context, info *model.UserInfo) {
	if !c.Available() || info == nil || info.ID == "" {
		return
	}
	val, err := json.Marshal(info)
	if err != nil {
		return
	}
	c.Redis.Set(ctx, userInfoKeyPrefix+info.ID, val, 0)
}

// Clear 清空一个用户的全部本地状态（身份、完成记录、作答记录）
func (c *ProgressCache) Clear(ctx context.Context, userID string) {
	if !c.Available() {
		return
	}
	c.Redis.Del(ctx,
		completionsKeyPrefix+userID,
		responsesKeyPrefix+userID,
		userInfoKeyPrefix+userID,
	)
}

// ActiveUserIDs 列出缓存里有完成记录的用户，后台回传任务用
func (c *ProgressCache) ActiveUserIDs(ctx context.Context) []string {
	if !c.Available() {
		return nil
	}

	var ids []string
	var cursor uint64
	for {
		keys, next, err := c.Redis.Scan(ctx, cursor, completionsKeyPrefix+"*", 100).Result()
		if err != nil {
			logger.Log.Warn("progress cache scan failed", zap.Error(err))
			return ids
		}
		for _, key := range keys {
			ids = append(ids, strings.TrimPrefix(key, completionsKeyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return ids
}
