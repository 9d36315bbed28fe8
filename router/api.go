package router

import (
	"adhd_task/controller"

	"github.com/gin-gonic/gin"
)

func addApiRouter(engine *gin.Engine) {

	api := engine.Group("/api/v1")
	{
		// AI 相关 API
		api.POST("/decompose", controller.Decompose)
		api.POST("/classify", controller.Classify)

		// 看板 API（按模式分看板）
		// 清单
		api.GET("/board/:mode/lists", controller.GetLists)
		api.POST("/board/:mode/lists", controller.CreateList)
		api.DELETE("/board/:mode/lists/:list_id", controller.DeleteList)
		api.PUT("/board/:mode/lists/:list_id/name", controller.RenameList)

		// 清单任务
		api.POST("/board/:mode/lists/:list_id/tasks", controller.AddListTask)
		api.POST("/board/:mode/lists/:list_id/tasks/:task_id/toggle", controller.ToggleListTask)
		api.DELETE("/board/:mode/lists/:list_id/tasks/:task_id", controller.RemoveListTask)

		// 今日队列
		api.GET("/board/:mode/queue", controller.GetQueue)
		api.POST("/board/:mode/queue/tasks", controller.AddQueueTask)
		api.POST("/board/:mode/queue/import", controller.ImportQueueTasks)
		api.POST("/board/:mode/queue/tasks/:task_id/toggle", controller.ToggleQueueTask)
		api.DELETE("/board/:mode/queue/tasks/:task_id", controller.RemoveQueueTask)

		// 凭证
		api.GET("/credential", controller.GetCredentialStatus)
		api.PUT("/credential", controller.PutCredential)

		// 账本与专注
		api.GET("/stats", controller.GetStats)
		api.GET("/focus", controller.GetFocusSelection)
		api.PUT("/focus", controller.PutFocusSelection)
		api.POST("/focus/session", controller.StartFocusSession)
		api.GET("/focus/session", controller.GetFocusSession)
		api.POST("/focus/session/pause", controller.PauseFocusSession)
		api.POST("/focus/session/resume", controller.ResumeFocusSession)

		// 跨天归档
		api.GET("/archive", controller.GetQueueArchives)
	}
}
