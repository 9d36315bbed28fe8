package controller

import (
	"net/http"
	"strings"

	"adhd_task/model"
	"adhd_task/service/factory"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// GetCredentialStatus 凭证状态
// @Summary 查询上游模型凭证是否已配置（不返回凭证本身）
// @Tags Settings
// @Produce json
// @Router /api/v1/credential [get]
func GetCredentialStatus(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"configured": factory.GetServiceFactory().HasCredential()})
}

// PutCredential 写入凭证
// @Summary 写入上游模型凭证，立即对后续 AI 调用生效
// @Tags Settings
// @Accept json
// @Router /api/v1/credential [put]
func PutCredential(ctx *gin.Context) {
	var req model.CredentialRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := strings.TrimSpace(req.APIKey)
	if key == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "apiKey is required"})
		return
	}

	if err := factory.GetServiceFactory().SetCredential(ctx, key); err != nil {
		log.Errorf("PutCredential error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"configured": true})
}
