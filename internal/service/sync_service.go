package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"weblearn_backend/internal/model"
	"weblearn_backend/internal/repository"
	"weblearn_backend/pkg/logger"
	"weblearn_backend/pkg/monitoring"
)

// SyncService 把本地进度缓存和远端记录库合并成每个用户唯一的权威记录集。
// 合并规则：键相同（完成记录按板块编号，作答记录按 板块+题目）时，
// 远端严格更新才覆盖本地；时间戳相等保留本地，本地是当前会话已经展示给
// 用户的值。合并结果写回缓存，后续读取无需重复对账。
type SyncService struct {
	Cache   *repository.ProgressCache
	Records *RecordService
}

func NewSyncService(cache *repository.ProgressCache, records *RecordService) *SyncService {
	return &SyncService{
		Cache:   cache,
		Records: records,
	}
}

// MergeCompletions 按板块编号合并两份完成记录。纯函数，结果按编号排序。
func MergeCompletions(local, remote []model.SectionCompletion) []model.SectionCompletion {
	merged := make(map[int]model.SectionCompletion, len(local)+len(remote))

	for _, rec := range local {
		merged[rec.SectionNumber] = rec
	}
	for _, rec := range remote {
		existing, ok := merged[rec.SectionNumber]
		if !ok || rec.CompletedAt.After(existing.CompletedAt) {
			merged[rec.SectionNumber] = rec
		}
	}

	out := make([]model.SectionCompletion, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SectionNumber < out[j].SectionNumber })
	return out
}

// MergeResponses 按 (板块编号, 题目) 合并两份作答记录。纯函数，结果排序稳定。
func MergeResponses(local, remote []model.QuestionResponse) []model.QuestionResponse {
	key := func(r model.QuestionResponse) string {
		return fmt.Sprintf("%d-%s", r.SectionNumber, r.QuestionID)
	}

	merged := make(map[string]model.QuestionResponse, len(local)+len(remote))
	for _, rec := range local {
		merged[key(rec)] = rec
	}
	for _, rec := range remote {
		k := key(rec)
		existing, ok := merged[k]
		if !ok || rec.Timestamp.After(existing.Timestamp) {
			merged[k] = rec
		}
	}

	out := make([]model.QuestionResponse, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SectionNumber != out[j].SectionNumber {
			return out[i].SectionNumber < out[j].SectionNumber
		}
		return out[i].QuestionID < out[j].QuestionID
	})
	return out
}

// Reconcile 产出某用户的权威记录集。远端不可用时原样透传本地（降级模式），
// 否则合并后写回缓存再返回。
func (s *SyncService) Reconcile(ctx context.Context, userID string) *model.ReconciledProgress {
	localCompletions := s.Cache.ReadCompletions(ctx, userID)
	localResponses := s.Cache.ReadResponses(ctx, userID)

	if !s.Records.IsAvailable() {
		monitoring.ReconcileCounter.WithLabelValues("local_only").Inc()
		return &model.ReconciledProgress{
			Completions: localCompletions,
			Responses:   localResponses,
		}
	}

	remoteCompletions := s.Records.LoadCompletions(ctx, userID)
	remoteResponses := s.Records.LoadResponses(ctx, userID)

	mergedCompletions := MergeCompletions(localCompletions, remoteCompletions)
	mergedResponses := MergeResponses(localResponses, remoteResponses)

	// 写穿缓存，后续读取直接命中合并结果
	s.Cache.WriteCompletions(ctx, userID, mergedCompletions)
	s.Cache.WriteResponses(ctx, userID, mergedResponses)

	monitoring.ReconcileCounter.WithLabelValues("merged").Inc()
	return &model.ReconciledProgress{
		Completions: mergedCompletions,
		Responses:   mergedResponses,
	}
}

// PushLocal 把缓存里的记录尽力回传远端库，对应降级期间积累的本地数据
func (s *SyncService) PushLocal(ctx context.Context, userID string) {
	if !s.Records.IsAvailable() {
		return
	}

	for _, rec := range s.Cache.ReadCompletions(ctx, userID) {
		r := rec
		s.Records.SaveCompletion(ctx, userID, &r)
	}
	for _, resp := range s.Cache.ReadResponses(ctx, userID) {
		r := resp
		s.Records.SaveResponse(ctx, userID, &r)
	}
}

// FlushPending 后台任务入口：把所有有本地记录的用户回传一遍
func (s *SyncService) FlushPending(ctx context.Context) {
	if !s.Records.IsAvailable() {
		return
	}

	ids := s.Cache.ActiveUserIDs(ctx)
	for _, userID := range ids {
		s.PushLocal(ctx, userID)
	}
	if len(ids) > 0 {
		logger.Log.Debug("flushed cached records to store", zap.Int("users", len(ids)))
	}
}
