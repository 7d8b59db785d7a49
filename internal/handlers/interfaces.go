package handlers

import (
	"context"

	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	"taskManager/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	Statuses() []task.Status
	HealthCheck(ctx context.Context) error
	CreateTask(ctx context.Context, params service.CreateTaskParams, actor *user.User) (*task.Task, error)
	GetTasks(ctx context.Context, actor *user.User, filter task.Filter) ([]*task.Task, error)
	GetTaskByID(ctx context.Context, id uuid.UUID, actor *user.User) (*task.Task, error)
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status task.Status, actor *user.User) (*task.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, params service.UpdateTaskParams, actor *user.User) (*task.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID, actor *user.User, softDelete bool) (*task.Task, error)
}

type AuthService interface {
	SignUp(ctx context.Context, username, password string) error
	SignIn(ctx context.Context, username, password string) (string, error)
}
