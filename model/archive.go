package model

// QueueArchiveListCondition 归档记录查询条件
type QueueArchiveListCondition struct {
	// Mode 为空表示不按模式过滤
	Mode string
	// QueueDate 为空表示不按日期过滤
	QueueDate string
	// Limit 小于等于 0 表示不限制条数
	Limit int
}
