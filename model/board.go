package model

import "adhd_task/entity"

// AddTaskRequest 加任务请求
type AddTaskRequest struct {
	Text string `json:"text" binding:"required"` // 任务文本
}

// RenameListRequest 清单重命名请求
type RenameListRequest struct {
	Name string `json:"name" binding:"required"` // 新名称
}

// AddQueueTasksRequest 今日队列批量加入请求（从清单复制）
type AddQueueTasksRequest struct {
	Tasks []entity.Task `json:"tasks" binding:"required"`
}

// StartFocusSessionRequest 开启专注会话请求；模式非法或缺省兜底混合型
type StartFocusSessionRequest struct {
	AdhdType string `json:"adhdType"`
}

// FocusSessionView 专注会话状态视图
type FocusSessionView struct {
	Active           bool `json:"active"`           // 是否存在会话
	Running          bool `json:"running"`          // 是否在倒计时
	RemainingSeconds int  `json:"remainingSeconds"` // 剩余秒数
	Finished         bool `json:"finished"`         // 是否已走完
}

// TaskListView 带派生状态的清单视图
type TaskListView struct {
	entity.TaskList
	Status string `json:"status"` // todo / doing / done，读取时计算
}

// StatsView 账本视图，含派生等级字段
type StatsView struct {
	entity.StatsLedger
	Level          int `json:"level"`
	CurrentLevelXP int `json:"currentLevelXP"`
	XPToNextLevel  int `json:"xpToNextLevel"`
}

// NewStatsView 由账本构造视图
func NewStatsView(s *entity.StatsLedger) *StatsView {
	return &StatsView{
		StatsLedger:    *s,
		Level:          s.Level(),
		CurrentLevelXP: s.CurrentLevelXP(),
		XPToNextLevel:  s.XPToNextLevel(),
	}
}
