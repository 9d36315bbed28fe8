package controller

import (
	"context"
	"net/http"
	"sync"

	"adhd_task/model"
	"adhd_task/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AssessService 评估服务能力，测试用桩替换
type AssessService interface {
	Classify(ctx context.Context, answers map[string]string) (*model.ClassifyResponse, error)
}

var (
	assessServiceOnce sync.Once
	assessService     AssessService
)

// getAssessService 获取评估服务单例
func getAssessService() AssessService {
	assessServiceOnce.Do(func() {
		if assessService == nil {
			assessService = factory.GetServiceFactory().NewAssessService()
		}
	})
	return assessService
}

// Classify 类型评估接口
// @Summary 根据问卷答案评估 ADHD 类型
// @Description 答案集合交给上游模型，返回类型标签、置信度与解释
// @Tags AI
// @Accept json
// @Produce json
// @Param request body map[string]string true "问卷答案，键为题目标识"
// @Success 200 {object} model.ClassifyResponse
// @Router /api/v1/classify [post]
func Classify(ctx *gin.Context) {
	var answers map[string]string
	if err := ctx.ShouldBindJSON(&answers); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := getAssessService().Classify(ctx, answers)
	if err != nil {
		log.Errorf("Classify error: %v", err)
		ctx.JSON(statusOfDecomposeError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, res)
}
