package controller

import (
	"net/http"
	"strconv"

	"adhd_task/constant"
	"adhd_task/entity"
	"adhd_task/model"
	"adhd_task/pkg/board"
	"adhd_task/service/factory"

	"github.com/gin-gonic/gin"
)

// getBoard 按路径里的模式取看板；模式非法时返回 nil 并已写好响应
func getBoard(ctx *gin.Context) *board.Board {
	mode := constant.Mode(ctx.Param("mode"))
	if !mode.IsValid() {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": model.ErrorMessages[model.ErrorModeInvalid]})
		return nil
	}
	return factory.GetServiceFactory().Board(mode)
}

// pathID 解析路径里的数字 id，非法时返回 0 并已写好响应
func pathID(ctx *gin.Context, name string) int64 {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0
	}
	return id
}

// GetLists 列出清单
// @Summary 列出当前模式的所有任务清单
// @Tags Board
// @Produce json
// @Param mode path string true "ADHD 模式"
// @Success 200 {array} model.TaskListView
// @Router /api/v1/board/{mode}/lists [get]
func GetLists(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}

	lists := b.Store.Lists(ctx)
	views := make([]model.TaskListView, 0, len(lists))
	for _, list := range lists {
		views = append(views, model.TaskListView{TaskList: list, Status: string(list.Status())})
	}
	ctx.JSON(http.StatusOK, views)
}

// CreateList 新建清单
// @Summary 新建一个默认命名的空清单
// @Tags Board
// @Produce json
// @Param mode path string true "ADHD 模式"
// @Success 200 {object} entity.TaskList
// @Router /api/v1/board/{mode}/lists [post]
func CreateList(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}

	list := b.Store.CreateList(ctx)
	if list == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "list could not be created"})
		return
	}
	ctx.JSON(http.StatusOK, list)
}

// DeleteList 删除清单
// @Summary 删除一个清单（最后一个清单不可删）
// @Tags Board
// @Router /api/v1/board/{mode}/lists/{list_id} [delete]
func DeleteList(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	listID := pathID(ctx, "list_id")
	if listID == 0 {
		return
	}

	if !b.Store.DeleteList(ctx, listID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "list cannot be deleted"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"deleted": listID})
}

// RenameList 清单重命名
// @Summary 重命名清单（空白名称拒绝）
// @Tags Board
// @Router /api/v1/board/{mode}/lists/{list_id}/name [put]
func RenameList(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	listID := pathID(ctx, "list_id")
	if listID == 0 {
		return
	}

	var req model.RenameListRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !b.Store.RenameList(ctx, listID, req.Name) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "list cannot be renamed"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"renamed": listID})
}

// AddListTask 往清单加任务
// @Summary 往指定清单追加一条任务
// @Tags Board
// @Success 200 {object} entity.Task
// @Router /api/v1/board/{mode}/lists/{list_id}/tasks [post]
func AddListTask(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	listID := pathID(ctx, "list_id")
	if listID == 0 {
		return
	}

	var req model.AddTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := b.Store.AddTask(ctx, listID, req.Text)
	if task == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task could not be added"})
		return
	}
	ctx.JSON(http.StatusOK, task)
}

// ToggleListTask 勾选/取消清单任务
// @Summary 翻转清单任务的完成状态
// @Tags Board
// @Router /api/v1/board/{mode}/lists/{list_id}/tasks/{task_id}/toggle [post]
func ToggleListTask(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	listID := pathID(ctx, "list_id")
	if listID == 0 {
		return
	}
	taskID := pathID(ctx, "task_id")
	if taskID == 0 {
		return
	}

	if !b.Store.ToggleTask(ctx, listID, taskID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"toggled": taskID})
}

// RemoveListTask 删除清单任务
// @Summary 删除清单任务（混合型会顺带清理空清单）
// @Tags Board
// @Router /api/v1/board/{mode}/lists/{list_id}/tasks/{task_id} [delete]
func RemoveListTask(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	listID := pathID(ctx, "list_id")
	if listID == 0 {
		return
	}
	taskID := pathID(ctx, "task_id")
	if taskID == 0 {
		return
	}

	if !b.Store.RemoveTask(ctx, listID, taskID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": taskID})
}

// GetQueue 今日队列
// @Summary 读取今日队列（按需执行跨天重置）
// @Tags Board
// @Success 200 {object} entity.DailyQueueDoc
// @Router /api/v1/board/{mode}/queue [get]
func GetQueue(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	ctx.JSON(http.StatusOK, b.Queue.Load(ctx))
}

// AddQueueTask 往今日队列加任务
// @Summary 往今日队列追加一条任务（混合型同时生成镜像清单）
// @Tags Board
// @Success 200 {object} entity.Task
// @Router /api/v1/board/{mode}/queue/tasks [post]
func AddQueueTask(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}

	var req model.AddTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := b.AddCombinedTask(ctx, req.Text)
	if task == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task could not be added"})
		return
	}
	ctx.JSON(http.StatusOK, task)
}

// ImportQueueTasks 批量把清单任务加入今日队列
// @Summary 从清单复制任务到今日队列（保留来源 id，重复跳过）
// @Tags Board
// @Router /api/v1/board/{mode}/queue/import [post]
func ImportQueueTasks(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}

	var req model.AddQueueTasksRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	added := b.Queue.AddTasks(ctx, req.Tasks)
	ctx.JSON(http.StatusOK, gin.H{"added": added})
}

// ToggleQueueTask 勾选/取消今日队列任务
// @Summary 翻转今日队列任务的完成状态
// @Tags Board
// @Router /api/v1/board/{mode}/queue/tasks/{task_id}/toggle [post]
func ToggleQueueTask(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	taskID := pathID(ctx, "task_id")
	if taskID == 0 {
		return
	}

	if !b.Queue.ToggleTask(ctx, taskID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"toggled": taskID})
}

// RemoveQueueTask 删除今日队列任务
// @Summary 删除今日队列任务并级联删除清单同 id 任务
// @Tags Board
// @Router /api/v1/board/{mode}/queue/tasks/{task_id} [delete]
func RemoveQueueTask(ctx *gin.Context) {
	b := getBoard(ctx)
	if b == nil {
		return
	}
	taskID := pathID(ctx, "task_id")
	if taskID == 0 {
		return
	}

	if !b.Queue.RemoveTask(ctx, taskID) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "task not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"removed": taskID})
}

// GetStats 经验值账本
// @Summary 读取账本与派生等级
// @Tags Stats
// @Success 200 {object} model.StatsView
// @Router /api/v1/stats [get]
func GetStats(ctx *gin.Context) {
	ledger := factory.GetServiceFactory().Ledger().Get(ctx)
	ctx.JSON(http.StatusOK, model.NewStatsView(ledger))
}

// GetFocusSelection 读取专注选择
// @Summary 读取专注任务选择与计时时长
// @Tags Focus
// @Success 200 {object} entity.FocusSelection
// @Router /api/v1/focus [get]
func GetFocusSelection(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, factory.GetServiceFactory().FocusStore().Load(ctx))
}

// PutFocusSelection 保存专注选择
// @Summary 保存专注任务选择；时长必须在 1-120 分钟之间
// @Tags Focus
// @Router /api/v1/focus [put]
func PutFocusSelection(ctx *gin.Context) {
	var sel entity.FocusSelection
	if err := ctx.ShouldBindJSON(&sel); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !factory.GetServiceFactory().FocusStore().Save(ctx, &sel) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": model.ErrorMessages[model.ErrorFocusTimerInvalid]})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"saved": true})
}

func focusSessionView(s *board.FocusSession) model.FocusSessionView {
	if s == nil {
		return model.FocusSessionView{}
	}
	return model.FocusSessionView{
		Active:           true,
		Running:          s.Running(),
		RemainingSeconds: s.Remaining(),
		Finished:         s.Finished(),
	}
}

// StartFocusSession 开启专注会话
// @Summary 按已保存的计时时长开启专注倒计时（替换进行中的会话）
// @Tags Focus
// @Success 200 {object} model.FocusSessionView
// @Router /api/v1/focus/session [post]
func StartFocusSession(ctx *gin.Context) {
	var req model.StartFocusSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := factory.GetServiceFactory().StartFocusSession(ctx, constant.ParseMode(req.AdhdType))
	ctx.JSON(http.StatusOK, focusSessionView(session))
}

// GetFocusSession 读取专注会话状态
// @Summary 读取当前专注会话；没有会话时 active 为 false
// @Tags Focus
// @Success 200 {object} model.FocusSessionView
// @Router /api/v1/focus/session [get]
func GetFocusSession(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, focusSessionView(factory.GetServiceFactory().FocusSession()))
}

// PauseFocusSession 暂停专注会话
// @Summary 暂停倒计时
// @Tags Focus
// @Router /api/v1/focus/session/pause [post]
func PauseFocusSession(ctx *gin.Context) {
	session := factory.GetServiceFactory().FocusSession()
	if session == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no focus session"})
		return
	}
	session.Pause()
	ctx.JSON(http.StatusOK, focusSessionView(session))
}

// ResumeFocusSession 恢复专注会话
// @Summary 恢复倒计时（不补偿暂停期间的时间）
// @Tags Focus
// @Router /api/v1/focus/session/resume [post]
func ResumeFocusSession(ctx *gin.Context) {
	session := factory.GetServiceFactory().FocusSession()
	if session == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no focus session"})
		return
	}
	session.Resume()
	ctx.JSON(http.StatusOK, focusSessionView(session))
}
