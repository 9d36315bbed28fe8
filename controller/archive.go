package controller

import (
	"net/http"
	"strconv"

	"adhd_task/model"
	"adhd_task/service/factory"

	"github.com/gin-gonic/gin"
)

// GetQueueArchives 查询队列归档
// @Summary 查询被跨天重置丢弃的历史队列，可按模式和日期过滤
// @Tags Archive
// @Produce json
// @Param mode query string false "ADHD 模式"
// @Param date query string false "队列日期 YYYY-MM-DD"
// @Param limit query int false "返回条数上限"
// @Success 200 {array} entity.QueueArchive
// @Router /api/v1/archive [get]
func GetQueueArchives(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.Query("limit"))
	condition := &model.QueueArchiveListCondition{
		Mode:      ctx.Query("mode"),
		QueueDate: ctx.Query("date"),
		Limit:     limit,
	}

	archives, err := factory.GetServiceFactory().ListQueueArchives(ctx, condition)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, archives)
}
