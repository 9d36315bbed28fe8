package xormimplement

import (
	"fmt"

	"adhd_task/entity"
	"adhd_task/model"
	"adhd_task/repository"

	"xorm.io/builder"
)

type QueueArchiveRepository struct {
	session *Session
}

func NewQueueArchiveRepository(session *Session) repository.QueueArchiveRepository {
	return &QueueArchiveRepository{session: session}
}

func buildQueueArchiveListConditions(condition *model.QueueArchiveListCondition) builder.Cond {
	var conds []builder.Cond

	if condition.Mode != "" {
		conds = append(conds, builder.Eq{entity.QueueArchiveFieldMode: condition.Mode})
	}
	if condition.QueueDate != "" {
		conds = append(conds, builder.Eq{entity.QueueArchiveFieldQueueDate: condition.QueueDate})
	}

	if len(conds) == 0 {
		return nil
	}
	return builder.And(conds...)
}

func (r *QueueArchiveRepository) Insert(archive *entity.QueueArchive) error {
	if archive == nil {
		return fmt.Errorf("archive cannot be nil")
	}
	if archive.Mode == "" {
		return fmt.Errorf("mode is required")
	}
	if archive.QueueDate == "" {
		return fmt.Errorf("queue_date is required")
	}

	if _, err := r.session.Table(entity.TableNameQueueArchive).Insert(archive); err != nil {
		return fmt.Errorf("failed to insert queue archive: %w", err)
	}
	return nil
}

func (r *QueueArchiveRepository) List(condition *model.QueueArchiveListCondition) ([]*entity.QueueArchive, error) {
	if condition == nil {
		condition = &model.QueueArchiveListCondition{}
	}

	query := r.session.Table(entity.TableNameQueueArchive)
	if cond := buildQueueArchiveListConditions(condition); cond != nil {
		query = query.Where(cond)
	}
	if condition.Limit > 0 {
		query = query.Limit(condition.Limit)
	}

	var archives []*entity.QueueArchive
	if err := query.Desc(entity.QueueArchiveFieldArchivedAt).Find(&archives); err != nil {
		return nil, fmt.Errorf("failed to list queue archives: %w", err)
	}
	return archives, nil
}
