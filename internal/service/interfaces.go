package service

import (
	"context"

	"taskManager/internal/models/task"
	"taskManager/internal/models/user"

	"github.com/google/uuid"
)

type TaskRepository interface {
	Create(context.Context, *task.Task) error
	GetByID(ctx context.Context, id, ownerID uuid.UUID) (*task.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, filter task.Filter) ([]*task.Task, error)
	Update(context.Context, *task.Task) error
	DeleteSoft(context.Context, *task.Task) error
	DeleteFull(ctx context.Context, id, ownerID uuid.UUID) error
	HealthCheck(context.Context) error
}

type UserRepository interface {
	Create(context.Context, *user.User) error
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// TokenSigner закрывает механизм подписи токена от остального кода
type TokenSigner interface {
	Sign(username string) (string, error)
	Verify(token string) (username string, err error)
}
