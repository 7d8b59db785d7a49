package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/user"
	repo "taskManager/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// код ошибки PostgreSQL для нарушения уникальности
const uniqueViolationCode = "23505"

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Create(ctx context.Context, userToCreate *user.User) error {
	start := time.Now()

	query := `INSERT INTO users
				(id, username, password_hash, is_active)
				VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, query,
		userToCreate.ID,
		userToCreate.Username,
		userToCreate.PasswordHash,
		userToCreate.IsActive,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			logger.Warn("Repository: Имя пользователя занято",
				zap.String("username", userToCreate.Username))
			return repo.ErrDuplicate
		}
		logger.Error("Repository: Не удалось добавить пользователя", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление пользователя: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	start := time.Now()

	query := `SELECT
				id,
				username,
				password_hash,
				is_active
				FROM users
				WHERE username = $1`

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.IsActive,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return u, nil
}
