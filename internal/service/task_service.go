package service

import (
	"context"
	"errors"
	"fmt"

	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	rep "taskManager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TaskService — тонкий слой трансляции: сигнал хранилища ErrNotFound
// превращается в бизнес-ошибку NOT_FOUND с id задачи, всё остальное
// логируется целиком и уходит наверх как внутренняя ошибка.
// Повторов нет, каждая операция выполняется ровно один раз.
type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

type CreateTaskParams struct {
	Title       string
	Description string
}

type UpdateTaskParams struct {
	Title       string
	Description string
	Status      task.Status
	IsDeleted   bool
}

// Statuses отдаёт допустимые статусы задач
func (s *TaskService) Statuses() []task.Status {
	return task.AllStatuses()
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

// CreateTask всегда создаёт задачу в статусе OPEN и без флага удаления
func (s *TaskService) CreateTask(ctx context.Context, params CreateTaskParams, actor *user.User) (*task.Task, error) {
	t := &task.Task{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Status:      task.StatusOpen,
		IsDeleted:   false,
		OwnerID:     actor.ID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		logger.Error("Service: Не удалось создать задачу", err,
			zap.String("owner_id", actor.ID.String()))
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	return t, nil
}

func (s *TaskService) GetTasks(ctx context.Context, actor *user.User, filter task.Filter) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, actor.ID, filter)
	if err != nil {
		logger.Error("Service: Не удалось получить задачи", err,
			zap.String("owner_id", actor.ID.String()))
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id uuid.UUID, actor *user.User) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id, actor.ID)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return t, nil
}

// UpdateTaskStatus перезаписывает только статус
func (s *TaskService) UpdateTaskStatus(ctx context.Context, id uuid.UUID, status task.Status, actor *user.User) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id, actor.ID)
	if err != nil {
		return nil, s.translate(err, id)
	}

	t.Status = status

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, s.translate(err, id)
	}

	return t, nil
}

// UpdateTask перезаписывает title, description, status и isDeleted целиком
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, params UpdateTaskParams, actor *user.User) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id, actor.ID)
	if err != nil {
		return nil, s.translate(err, id)
	}

	t.Title = params.Title
	t.Description = params.Description
	t.Status = params.Status
	t.IsDeleted = params.IsDeleted

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, s.translate(err, id)
	}

	return t, nil
}

// DeleteTask: softDelete=true ставит флаг и оставляет запись,
// softDelete=false удаляет строку насовсем и возвращает снимок задачи
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID, actor *user.User, softDelete bool) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, id, actor.ID)
	if err != nil {
		return nil, s.translate(err, id)
	}

	if softDelete {
		if err := s.repo.DeleteSoft(ctx, t); err != nil {
			return nil, s.translate(err, id)
		}
		return t, nil
	}

	if err := s.repo.DeleteFull(ctx, id, actor.ID); err != nil {
		return nil, s.translate(err, id)
	}

	return t, nil
}

// единственная точка превращения сигналов хранилища в бизнес-ошибки
func (s *TaskService) translate(err error, id uuid.UUID) error {
	if errors.Is(err, rep.ErrNotFound) {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id.String()))
		return NewNotFound("задача", id.String())
	}

	logger.Error("Service: Ошибка хранилища", err, zap.String("target_id", id.String()))
	return fmt.Errorf("операция с задачей: %w", err)
}
