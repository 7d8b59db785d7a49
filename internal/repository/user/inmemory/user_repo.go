package inmemory

import (
	"context"
	"sync"

	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"
)

// UserStorage хранит пользователей в памяти, уникальность username
// проверяется так же, как это делает уникальный индекс в БД
type UserStorage struct {
	byUsername map[string]*user.User
	mtx        *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		byUsername: make(map[string]*user.User),
		mtx:        &sync.RWMutex{},
	}
}

func (s *UserStorage) Create(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.byUsername[userToCreate.Username]; ok {
		return repo.ErrDuplicate
	}

	copied := *userToCreate
	s.byUsername[copied.Username] = &copied
	return nil
}

func (s *UserStorage) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	userToGet, ok := s.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}

	copied := *userToGet
	return &copied, nil
}
