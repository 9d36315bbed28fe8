package entity

import "time"

// ========== 今日队列归档表 ==========

const (
	TableNameQueueArchive = "queue_archives"

	QueueArchiveFieldID         = "id"
	QueueArchiveFieldMode       = "mode"
	QueueArchiveFieldQueueDate  = "queue_date"
	QueueArchiveFieldTasksJSON  = "tasks_json"
	QueueArchiveFieldArchivedAt = "archived_at"
)

// QueueArchive 跨天重置时被丢弃的今日队列归档实体
type QueueArchive struct {
	ID         int64     `xorm:"pk autoincr 'id'" json:"id"`
	Mode       string    `xorm:"varchar(16) index 'mode'" json:"mode"`
	QueueDate  string    `xorm:"varchar(16) index 'queue_date'" json:"queue_date"`
	TasksJSON  string    `xorm:"text 'tasks_json'" json:"tasks_json"`
	ArchivedAt time.Time `xorm:"created 'archived_at'" json:"archived_at"`
}

func (e *QueueArchive) TableName() string {
	return TableNameQueueArchive
}
