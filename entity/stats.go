package entity

import "adhd_task/constant"

// StatsLedger 经验值账本（全模式共享，单槽位持久化）
type StatsLedger struct {
	TotalXP             int    `json:"totalXP"`             // 累计经验值，非负
	TasksCompleted      int    `json:"tasksCompleted"`      // 累计完成任务数，非负
	TasksCompletedToday int    `json:"tasksCompletedToday"` // 今日完成任务数，跨天读取时归零
	LastDate            string `json:"lastDate"`            // 最后一次记账的日历日
}

// Level 等级，totalXP 的纯函数，读取时计算，从不单独存储
func (s *StatsLedger) Level() int {
	return s.TotalXP/constant.XPPerLevel + 1
}

// CurrentLevelXP 当前等级内的经验值
func (s *StatsLedger) CurrentLevelXP() int {
	return s.TotalXP % constant.XPPerLevel
}

// XPToNextLevel 距离下一级还需的经验值
func (s *StatsLedger) XPToNextLevel() int {
	return constant.XPPerLevel - s.CurrentLevelXP()
}
