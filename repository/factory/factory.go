package factory

import (
	"context"

	"adhd_task/repository"
	"adhd_task/repository/interfaces"
)

type Factory interface {
	NewSession(ctx context.Context) interfaces.Session
	NewQueueArchiveRepository(session interfaces.Session) (repository.QueueArchiveRepository, error)
}
