package controller

import (
	"errors"

	"weblearn_backend/internal/service"
	"weblearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningController struct {
	LearningService *service.LearningService
	SyncService     *service.SyncService
}

func NewLearningController(learningService *service.LearningService, syncService *service.SyncService) *LearningController {
	return &LearningController{
		LearningService: learningService,
		SyncService:     syncService,
	}
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	SectionNumber int    `json:"sectionNumber" binding:"required,min=1"`
	QuestionID    string `json:"questionId" binding:"required"`
	Answer        string `json:"answer" binding:"required"`
	ResponseTime  int    `json:"responseTime" binding:"min=0"`
}

// SubmitAnswer godoc
// @Summary 提交单题作答
// @Description 服务端判题并记录作答，同题重复提交保留最新一次
// @Tags 学习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitAnswerRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitResult} "成功"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/learning/answers [post]
func (c *LearningController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.LearningService.SubmitAnswer(ctx.Request.Context(), claims.UserID,
		req.SectionNumber, req.QuestionID, req.Answer, req.ResponseTime)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx, "题目不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// swagger:model CompleteSectionRequest
type CompleteSectionRequest struct {
	SectionNumber int `json:"sectionNumber" binding:"required,min=1"`
	TimeSpent     int `json:"timeSpent" binding:"min=0"`
}

// CompleteSection godoc
// @Summary 结算板块成绩
// @Description 根据已记录的作答计算正确数、得分与准确率
// @Tags 学习
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CompleteSectionRequest true "结算参数"
// @Success 200 {object} util.Response{data=model.SectionCompletion} "成功"
// @Failure 404 {object} util.Response "板块不存在"
// @Router /api/learning/completions [post]
func (c *LearningController) CompleteSection(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CompleteSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	completion, err := c.LearningService.CompleteSection(ctx.Request.Context(), claims.UserID,
		req.SectionNumber, req.TimeSpent)
	if err != nil {
		if errors.Is(err, util.ErrSectionNotFound) {
			util.NotFound(ctx, "板块不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, completion)
}

// MyScores godoc
// @Summary 个人成绩
// @Description 本地缓存与远端记录对账后的权威成绩视图
// @Tags 学习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.ScorePage} "成功"
// @Router /api/learning/my-scores [get]
func (c *LearningController) MyScores(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.LearningService.Scores(ctx.Request.Context(), claims.UserID))
}

// Sync godoc
// @Summary 手动触发对账
// @Description 把本地缓存记录推送到远端并返回合并结果
// @Tags 学习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.ReconciledProgress} "成功"
// @Router /api/learning/sync [post]
func (c *LearningController) Sync(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	rctx := ctx.Request.Context()
	c.SyncService.PushLocal(rctx, claims.UserID)
	util.Success(ctx, c.SyncService.Reconcile(rctx, claims.UserID))
}

// Reset godoc
// @Summary 清空本地进度
// @Description 只清缓存，远端记录保留
// @Tags 学习
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /api/learning/progress [delete]
func (c *LearningController) Reset(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	c.LearningService.Reset(ctx.Request.Context(), claims.UserID)
	util.Success(ctx, nil)
}
