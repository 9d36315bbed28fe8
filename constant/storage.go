package constant

import "fmt"

// =============================================
// 持久化键常量
// 按模式区分的键采用 <base>-<mode> 形式，全局键为单槽位
// =============================================

const (
	// KeyBaseTaskLists 任务清单集合键前缀
	KeyBaseTaskLists = "taskLists"
	// KeyBaseTodayTasks 今日队列文档键前缀
	KeyBaseTodayTasks = "todayTasks"
	// KeyBaseCompletedLists 已记功清单 id 集合键前缀
	KeyBaseCompletedLists = "completedLists"

	// KeyFocusSelection 专注模式选择（全局单槽位，每次会话覆盖）
	KeyFocusSelection = "focusSelection"
	// KeyXPLedger 经验值账本（全局单槽位）
	KeyXPLedger = "xpLedger"
	// KeyAPICredential 上游模型凭证槽位
	KeyAPICredential = "apiKey"
	// KeySchemaVersion 存储结构版本标记，用于启动时决定是否清空存储
	KeySchemaVersion = "schemaVersion"
)

// SchemaVersion 当前存储结构版本，升级后启动时全量清空旧数据
const SchemaVersion = "2"

// KeyTaskLists 某模式的任务清单集合键
func KeyTaskLists(mode Mode) string {
	return fmt.Sprintf("%s-%s", KeyBaseTaskLists, mode)
}

// KeyTodayTasks 某模式的今日队列文档键
func KeyTodayTasks(mode Mode) string {
	return fmt.Sprintf("%s-%s", KeyBaseTodayTasks, mode)
}

// KeyCompletedLists 某模式的已记功清单 id 集合键
func KeyCompletedLists(mode Mode) string {
	return fmt.Sprintf("%s-%s", KeyBaseCompletedLists, mode)
}

// =============================================
// 广播信号主题常量
// 写入持久化后发布，其他视图收到后重读并按版本号对账
// =============================================

const (
	// TopicStorageChanged 通用存储变更信号（跨标签页传播用）
	TopicStorageChanged = "storage-changed"
	// TopicStatsUpdated 经验值账本变更信号
	TopicStatsUpdated = "stats-updated"

	topicTaskListsUpdated  = "task-list-updated"
	topicTodayTasksUpdated = "today-tasks-updated"
)

// TopicTaskListsUpdated 某模式任务清单变更信号
func TopicTaskListsUpdated(mode Mode) string {
	return fmt.Sprintf("%s-%s", topicTaskListsUpdated, mode)
}

// TopicTodayTasksUpdated 某模式今日队列变更信号
func TopicTodayTasksUpdated(mode Mode) string {
	return fmt.Sprintf("%s-%s", topicTodayTasksUpdated, mode)
}
