package controller

import (
	"strconv"

	"weblearn_backend/internal/content"
	"weblearn_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentController 只读的题库接口。答案与解析不随题目下发，判题在服务端完成。
type ContentController struct{}

func NewContentController() *ContentController {
	return &ContentController{}
}

// ListSections godoc
// @Summary 板块列表
// @Tags 题库
// @Produce  json
// @Success 200 {object} util.Response{data=[]content.Section} "成功"
// @Router /api/sections [get]
func (c *ContentController) ListSections(ctx *gin.Context) {
	util.Success(ctx, content.AllSections())
}

// GetSection godoc
// @Summary 板块详情及题目
// @Tags 题库
// @Produce  json
// @Param   number path int true "板块编号"
// @Success 200 {object} util.Response{data=content.Section} "成功"
// @Failure 404 {object} util.Response "板块不存在"
// @Router /api/sections/{number} [get]
func (c *ContentController) GetSection(ctx *gin.Context) {
	number, err := strconv.Atoi(ctx.Param("number"))
	if err != nil {
		util.BadRequest(ctx, "无效的板块编号")
		return
	}

	section := content.GetSection(number)
	if section == nil {
		util.NotFound(ctx, "板块不存在")
		return
	}
	util.Success(ctx, section)
}
