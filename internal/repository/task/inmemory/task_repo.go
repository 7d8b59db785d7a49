package inmemory

import (
	"context"
	"strings"
	"sync"
	"time"

	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
)

// TaskStorage хранит задачи в памяти, порядок вставки сохраняется в ids
type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.CreatedAt = time.Now()

	copied := *taskToCreate
	s.storage[copied.ID] = &copied
	s.ids = append(s.ids, copied.ID)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok || taskToGet.OwnerID != ownerID {
		return nil, repo.ErrNotFound
	}

	copied := *taskToGet
	return &copied, nil
}

func (s *TaskStorage) List(ctx context.Context, ownerID uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	search := strings.ToLower(filter.Search)

	for _, id := range s.ids {
		t, ok := s.storage[id]
		if !ok {
			continue
		}

		if t.OwnerID != ownerID || t.IsDeleted {
			continue
		}

		if filter.Status != "" && t.Status != filter.Status {
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}

		copied := *t
		res = append(res, &copied)
	}

	return res, nil
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.storage[taskToUpdate.ID]
	if !ok || existed.OwnerID != taskToUpdate.OwnerID {
		return repo.ErrNotFound
	}

	now := time.Now()
	taskToUpdate.UpdatedAt = &now

	copied := *taskToUpdate
	s.storage[copied.ID] = &copied

	return nil
}

// мягкое удаление, запись остаётся в хранилище
func (s *TaskStorage) DeleteSoft(ctx context.Context, taskToDelete *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.storage[taskToDelete.ID]
	if !ok || existed.OwnerID != taskToDelete.OwnerID {
		return repo.ErrNotFound
	}

	now := time.Now()
	existed.UpdatedAt = &now
	existed.IsDeleted = true

	taskToDelete.IsDeleted = true
	taskToDelete.UpdatedAt = &now

	return nil
}

// полное удаление
func (s *TaskStorage) DeleteFull(ctx context.Context, id, ownerID uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existed, ok := s.storage[id]
	if !ok || existed.OwnerID != ownerID {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	for ind, val := range s.ids {
		if val == id {
			s.ids = append(s.ids[:ind], s.ids[ind+1:]...)
			break
		}
	}
	return nil
}
