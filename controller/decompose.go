package controller

import (
	"context"
	"net/http"
	"sync"

	"adhd_task/constant"
	"adhd_task/model"
	"adhd_task/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// DecomposeService 拆解服务能力，测试用桩替换
type DecomposeService interface {
	Decompose(ctx context.Context, userTask string, mode constant.Mode) (*model.DecomposeResponse, error)
}

var (
	decomposeServiceOnce sync.Once
	decomposeService     DecomposeService
)

// getDecomposeService 获取拆解服务单例
func getDecomposeService() DecomposeService {
	decomposeServiceOnce.Do(func() {
		if decomposeService == nil {
			decomposeService = factory.GetServiceFactory().NewDecomposeService()
		}
	})
	return decomposeService
}

// Decompose 任务拆解接口
// @Summary 把一个任务拆解为有序子任务
// @Description 按 ADHD 类型定制提示词，调用上游模型返回子任务列表
// @Tags AI
// @Accept json
// @Produce json
// @Param request body model.DecomposeRequest true "拆解请求"
// @Success 200 {object} model.DecomposeResponse
// @Router /api/v1/decompose [post]
func Decompose(ctx *gin.Context) {
	var req model.DecomposeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode := constant.ParseMode(req.AdhdType)

	res, err := getDecomposeService().Decompose(ctx, req.UserTask, mode)
	if err != nil {
		log.Errorf("Decompose error: %v", err)
		ctx.JSON(statusOfDecomposeError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, res)
}

// statusOfDecomposeError 错误码到 HTTP 状态的映射：
// 输入类与响应格式类归 400，凭证、上游与空结果归 500
func statusOfDecomposeError(err error) int {
	switch model.CodeOf(err) {
	case model.ErrorEmptyTask, model.ErrorEmptyAssessment, model.ErrorInvalidResponse, model.ErrorParams:
		return http.StatusBadRequest
	case model.ErrorRequestInFlight:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
