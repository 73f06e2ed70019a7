package controller

import (
	"net/http"
	"strconv"

	"weblearn_backend/internal/model"
	"weblearn_backend/internal/service"
	"weblearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminController 管理端统计与导出
type AdminController struct {
	StatsService  *service.StatsService
	ExportService *service.ExportService
}

func NewAdminController(statsService *service.StatsService, exportService *service.ExportService) *AdminController {
	return &AdminController{
		StatsService:  statsService,
		ExportService: exportService,
	}
}

// SectionStats godoc
// @Summary 板块维度统计
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.SectionStats} "成功"
// @Router /api/admin/stats/sections [get]
func (c *AdminController) SectionStats(ctx *gin.Context) {
	util.Success(ctx, c.StatsService.SectionStatistics(ctx.Request.Context()))
}

// OverallStats godoc
// @Summary 平台整体统计
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.OverallStats} "成功"
// @Router /api/admin/stats/overall [get]
func (c *AdminController) OverallStats(ctx *gin.Context) {
	util.Success(ctx, c.StatsService.OverallStatistics(ctx.Request.Context()))
}

func participantFilter(ctx *gin.Context) service.ParticipantFilter {
	return service.ParticipantFilter{
		Status: model.ProgressStatus(ctx.Query("status")),
		Search: ctx.Query("search"),
		SortBy: ctx.DefaultQuery("sortBy", "score"),
		Desc:   ctx.DefaultQuery("order", "desc") == "desc",
	}
}

// ModuleScores godoc
// @Summary 成绩面板
// @Description 每板块的参与者成绩，支持状态过滤、搜索与排序
// @Tags 管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   status query string false "completed / in-progress / not-started"
// @Param   search query string false "按姓名或邮箱模糊匹配"
// @Param   sortBy query string false "name / score / time / date"
// @Param   order query string false "asc / desc"
// @Success 200 {object} util.Response{data=[]model.ModuleScores} "成功"
// @Router /api/admin/scores [get]
func (c *AdminController) ModuleScores(ctx *gin.Context) {
	modules := c.StatsService.ModuleScores(ctx.Request.Context())
	filter := participantFilter(ctx)
	for i := range modules {
		modules[i].Participants = service.FilterParticipants(modules[i].Participants, filter)
	}
	util.Success(ctx, modules)
}

func (c *AdminController) findModule(ctx *gin.Context) *model.ModuleScores {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		util.BadRequest(ctx, "无效的板块编号")
		return nil
	}
	modules := c.StatsService.ModuleScores(ctx.Request.Context())
	for i := range modules {
		if modules[i].SectionNumber == number {
			return &modules[i]
		}
	}
	util.NotFound(ctx, "板块不存在")
	return nil
}

func serveDownload(ctx *gin.Context, filename, contentType string, data []byte) {
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, contentType, data)
}

// ExportModuleCSV godoc
// @Summary 导出单板块成绩 CSV
// @Tags 管理
// @Produce  text/csv
// @Security ApiKeyAuth
// @Param   number path int true "板块编号"
// @Param   status query string false "状态过滤"
// @Param   search query string false "搜索"
// @Success 200 {string} string "CSV 文件"
// @Router /api/admin/scores/{number}/export [get]
func (c *AdminController) ExportModuleCSV(ctx *gin.Context) {
	module := c.findModule(ctx)
	if module == nil {
		return
	}
	module.Participants = service.FilterParticipants(module.Participants, participantFilter(ctx))

	data := c.ExportService.ModuleCSV(module)
	filename := service.ModuleFilename(module.Title, ".csv")
	c.ExportService.Archive(ctx.Request.Context(), filename, "text/csv", data)
	serveDownload(ctx, filename, "text/csv", data)
}

// ExportAllCSV godoc
// @Summary 导出全部板块成绩 CSV
// @Tags 管理
// @Produce  text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string "CSV 文件"
// @Router /api/admin/scores/export [get]
func (c *AdminController) ExportAllCSV(ctx *gin.Context) {
	modules := c.StatsService.ModuleScores(ctx.Request.Context())

	data := c.ExportService.AllScoresCSV(modules)
	filename := service.AllScoresFilename(".csv")
	c.ExportService.Archive(ctx.Request.Context(), filename, "text/csv", data)
	serveDownload(ctx, filename, "text/csv", data)
}

// ExportAllXLSX godoc
// @Summary 导出全部板块成绩表格
// @Description 每个板块一个工作表
// @Tags 管理
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {string} string "XLSX 文件"
// @Router /api/admin/scores/export/xlsx [get]
func (c *AdminController) ExportAllXLSX(ctx *gin.Context) {
	modules := c.StatsService.ModuleScores(ctx.Request.Context())

	data, err := c.ExportService.AllScoresXLSX(modules)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	filename := service.AllScoresFilename(".xlsx")
	c.ExportService.Archive(ctx.Request.Context(), filename, xlsxType, data)
	serveDownload(ctx, filename, xlsxType, data)
}
