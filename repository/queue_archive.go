package repository

import (
	"adhd_task/entity"
	"adhd_task/model"
)

// QueueArchiveRepository 队列归档仓库接口
type QueueArchiveRepository interface {
	// Insert 写入一条归档记录
	Insert(archive *entity.QueueArchive) error
	// List 按条件列出归档记录
	List(condition *model.QueueArchiveListCondition) ([]*entity.QueueArchive, error)
}
