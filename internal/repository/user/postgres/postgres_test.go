package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"
	"taskManager/internal/repository/user/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    username VARCHAR(20) NOT NULL UNIQUE,
    password_hash VARCHAR(60) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT true
);
`

// UserPostgresTestSuite для интеграционных тестов хранилища пользователей
type UserPostgresTestSuite struct {
	suite.Suite
	container testcontainers.Container
	pool      *pgxpool.Pool
	storage   *postgres.Storage
	ctx       context.Context
}

func (s *UserPostgresTestSuite) SetupSuite() {
	s.ctx = context.Background()
	require.NoError(s.T(), logger.Init(true))

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "5432")
	require.NoError(s.T(), err)

	connString := fmt.Sprintf("postgres://test:test@%s:%s/testdb", host, port.Port())

	s.pool, err = pgxpool.New(s.ctx, connString)
	require.NoError(s.T(), err)

	_, err = s.pool.Exec(s.ctx, usersSchema)
	require.NoError(s.T(), err)

	s.storage = postgres.NewWithPool(s.pool)
}

func (s *UserPostgresTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *UserPostgresTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "DELETE FROM users")
	require.NoError(s.T(), err)
}

func (s *UserPostgresTestSuite) TestCreateAndGet() {
	created := &user.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		IsActive:     true,
	}
	require.NoError(s.T(), s.storage.Create(s.ctx, created))

	got, err := s.storage.GetByUsername(s.ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, got.ID)
	assert.Equal(s.T(), created.PasswordHash, got.PasswordHash)
	assert.True(s.T(), got.IsActive)
}

// нарушение уникальности превращается в ErrDuplicate
func (s *UserPostgresTestSuite) TestDuplicateUsername() {
	first := &user.User{ID: uuid.New(), Username: "alice", PasswordHash: "hash-1", IsActive: true}
	require.NoError(s.T(), s.storage.Create(s.ctx, first))

	second := &user.User{ID: uuid.New(), Username: "alice", PasswordHash: "hash-2", IsActive: true}
	err := s.storage.Create(s.ctx, second)
	assert.True(s.T(), errors.Is(err, repo.ErrDuplicate))
}

func (s *UserPostgresTestSuite) TestGetMissing() {
	_, err := s.storage.GetByUsername(s.ctx, "ghost")
	assert.True(s.T(), errors.Is(err, repo.ErrNotFound))
}

func TestUserPostgresTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("интеграционный тест, пропускаем в -short")
	}
	suite.Run(t, new(UserPostgresTestSuite))
}
