package entity

// FocusTask 专注模式选中的任务快照（完成状态由专注视图临时跟踪，不落盘）
type FocusTask struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// FocusSelection 专注模式选择（全局单槽位，每次会话覆盖）
type FocusSelection struct {
	Tasks        []FocusTask `json:"tasks"`        // 选中的任务
	TimerMinutes int         `json:"timerMinutes"` // 计时分钟数，1..120
}
