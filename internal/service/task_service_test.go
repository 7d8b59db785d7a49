package service_test

import (
	"context"
	"errors"
	"testing"

	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	rep "taskManager/internal/repository"
	"taskManager/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Init(true)
}

// MockTaskRepository - мок репозитория
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, ownerID uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteSoft(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteFull(ctx context.Context, id, ownerID uuid.UUID) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)

func testActor() *user.User {
	return &user.User{
		ID:       uuid.New(),
		Username: "alice",
		IsActive: true,
	}
}

// TestTaskService_CreateTask: новая задача всегда OPEN и не удалена
func TestTaskService_CreateTask(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(created *task.Task) bool {
		return created.Status == task.StatusOpen &&
			!created.IsDeleted &&
			created.OwnerID == actor.ID &&
			created.ID != uuid.Nil
	})).Return(nil)

	created, err := svc.CreateTask(context.Background(), service.CreateTaskParams{
		Title:       "купить хлеб",
		Description: "до вечера",
	}, actor)

	require.NoError(t, err)
	assert.Equal(t, task.StatusOpen, created.Status)
	assert.False(t, created.IsDeleted)
	assert.Equal(t, actor.ID, created.OwnerID)
	repo.AssertExpectations(t)
}

func TestTaskService_CreateTask_RepoError(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("соединение потеряно"))

	_, err := svc.CreateTask(context.Background(), service.CreateTaskParams{Title: "x"}, testActor())

	require.Error(t, err)

	var businessErr *service.BusinessError
	assert.False(t, errors.As(err, &businessErr), "внутренняя ошибка не должна становиться бизнес-ошибкой")
}

// TestTaskService_GetTaskByID_NotFound: сигнал хранилища превращается в NOT_FOUND с id
func TestTaskService_GetTaskByID_NotFound(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id, actor.ID).Return(nil, rep.ErrNotFound)

	_, err := svc.GetTaskByID(context.Background(), id, actor)

	require.Error(t, err)

	var businessErr *service.BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, service.CodeNotFound, businessErr.Code)
	assert.Equal(t, id.String(), businessErr.Details["id"])
}

func TestTaskService_GetTaskByID_OK(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	expected := &task.Task{ID: uuid.New(), Title: "задача", Status: task.StatusOpen, OwnerID: actor.ID}
	repo.On("GetByID", mock.Anything, expected.ID, actor.ID).Return(expected, nil)

	got, err := svc.GetTaskByID(context.Background(), expected.ID, actor)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

// TestTaskService_UpdateTaskStatus: перезаписывается только статус
func TestTaskService_UpdateTaskStatus(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	existing := &task.Task{
		ID:          uuid.New(),
		Title:       "задача",
		Description: "описание",
		Status:      task.StatusOpen,
		OwnerID:     actor.ID,
	}

	repo.On("GetByID", mock.Anything, existing.ID, actor.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
		return updated.Status == task.StatusDone &&
			updated.Title == "задача" &&
			updated.Description == "описание"
	})).Return(nil)

	updated, err := svc.UpdateTaskStatus(context.Background(), existing.ID, task.StatusDone, actor)

	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)
	repo.AssertExpectations(t)
}

func TestTaskService_UpdateTaskStatus_NotFound(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id, actor.ID).Return(nil, rep.ErrNotFound)

	_, err := svc.UpdateTaskStatus(context.Background(), id, task.StatusDone, actor)

	var businessErr *service.BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, service.CodeNotFound, businessErr.Code)
	repo.AssertNotCalled(t, "Update")
}

// TestTaskService_UpdateTask: полная перезапись изменяемых полей
func TestTaskService_UpdateTask(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	existing := &task.Task{
		ID:          uuid.New(),
		Title:       "старое",
		Description: "старое описание",
		Status:      task.StatusOpen,
		OwnerID:     actor.ID,
	}

	repo.On("GetByID", mock.Anything, existing.ID, actor.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
		return updated.Title == "новое" &&
			updated.Description == "" &&
			updated.Status == task.StatusBlocked &&
			updated.IsDeleted
	})).Return(nil)

	updated, err := svc.UpdateTask(context.Background(), existing.ID, service.UpdateTaskParams{
		Title:       "новое",
		Description: "", // пустое описание тоже перезаписывает
		Status:      task.StatusBlocked,
		IsDeleted:   true,
	}, actor)

	require.NoError(t, err)
	assert.Equal(t, "новое", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.True(t, updated.IsDeleted)
	repo.AssertExpectations(t)
}

// TestTaskService_DeleteTask_Soft: задача помечается и возвращается
func TestTaskService_DeleteTask_Soft(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	existing := &task.Task{ID: uuid.New(), Title: "задача", Status: task.StatusOpen, OwnerID: actor.ID}

	repo.On("GetByID", mock.Anything, existing.ID, actor.ID).Return(existing, nil)
	repo.On("DeleteSoft", mock.Anything, existing).Run(func(args mock.Arguments) {
		args.Get(1).(*task.Task).IsDeleted = true
	}).Return(nil)

	deleted, err := svc.DeleteTask(context.Background(), existing.ID, actor, true)

	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	repo.AssertNotCalled(t, "DeleteFull")
}

// TestTaskService_DeleteTask_Hard: строка удаляется, возвращается снимок
func TestTaskService_DeleteTask_Hard(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	existing := &task.Task{ID: uuid.New(), Title: "задача", Status: task.StatusOpen, OwnerID: actor.ID}

	repo.On("GetByID", mock.Anything, existing.ID, actor.ID).Return(existing, nil)
	repo.On("DeleteFull", mock.Anything, existing.ID, actor.ID).Return(nil)

	deleted, err := svc.DeleteTask(context.Background(), existing.ID, actor, false)

	require.NoError(t, err)
	assert.Equal(t, existing.Title, deleted.Title)
	assert.False(t, deleted.IsDeleted)
	repo.AssertNotCalled(t, "DeleteSoft")
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()
	id := uuid.New()

	repo.On("GetByID", mock.Anything, id, actor.ID).Return(nil, rep.ErrNotFound)

	_, err := svc.DeleteTask(context.Background(), id, actor, false)

	var businessErr *service.BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, service.CodeNotFound, businessErr.Code)
}

func TestTaskService_GetTasks_PassesFilter(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)
	actor := testActor()

	filter := task.Filter{Status: task.StatusOpen, Search: "хлеб"}
	expected := []*task.Task{{ID: uuid.New(), Title: "купить хлеб", OwnerID: actor.ID}}

	repo.On("List", mock.Anything, actor.ID, filter).Return(expected, nil)

	got, err := svc.GetTasks(context.Background(), actor, filter)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestTaskService_Statuses(t *testing.T) {
	repo := new(MockTaskRepository)
	svc := service.NewTaskService(repo)

	statuses := svc.Statuses()

	assert.Equal(t, []task.Status{
		task.StatusOpen,
		task.StatusInProgress,
		task.StatusBlocked,
		task.StatusDone,
	}, statuses)
}
