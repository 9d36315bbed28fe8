package entity

// DailyQueueDoc 今日队列的持久化文档
// 日期与当天不一致时加载即重置（破坏性，昨日未完成任务不保留）
type DailyQueueDoc struct {
	Date       string `json:"date"`       // 本地日历日标识，格式 2006-01-02
	Tasks      []Task `json:"tasks"`      // 有序任务序列
	NextTaskID int64  `json:"nextTaskId"` // 任务 id 计数器，只增不减
}

// EmptyDailyQueueDoc 指定日期的空队列文档
func EmptyDailyQueueDoc(date string) *DailyQueueDoc {
	return &DailyQueueDoc{Date: date, Tasks: []Task{}, NextTaskID: 1}
}

// FindTask 按 id 查找任务，返回下标，未找到返回 -1
func (d *DailyQueueDoc) FindTask(taskID int64) int {
	for i := range d.Tasks {
		if d.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}
