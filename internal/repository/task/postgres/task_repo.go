package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"taskManager/internal/logger"
	"taskManager/internal/models/task"
	repo "taskManager/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

// NewWithPool для случаев, когда пул уже создан (общий с user-репозиторием)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, title, description, status, is_deleted, owner_id, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, NOW())
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.ID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.Status,
		taskToCreate.IsDeleted,
		taskToCreate.OwnerID,
	).Scan(&taskToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// GetByID отдаёт задачу только её владельцу, чужая задача = не найдена.
// Мягко удалённые задачи по прямому id по-прежнему доступны.
func (s *Storage) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*task.Task, error) {
	start := time.Now()

	query := `SELECT
				id,
				title,
				description,
				status,
				is_deleted,
				owner_id,
				created_at,
				updated_at
				FROM tasks
				WHERE id = $1 AND owner_id = $2`

	t := &task.Task{}
	err := s.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.IsDeleted,
		&t.OwnerID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return t, nil
}

// List: базовый предикат is_deleted = false + владелец,
// опционально точный статус и подстрока по title ИЛИ description
func (s *Storage) List(ctx context.Context, ownerID uuid.UUID, filter task.Filter) ([]*task.Task, error) {
	start := time.Now()

	query := `SELECT
				id,
				title,
				description,
				status,
				is_deleted,
				owner_id,
				created_at,
				updated_at
				FROM tasks
				WHERE is_deleted = false AND owner_id = $1`

	args := []any{ownerID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}

	query += " ORDER BY created_at"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	defer rows.Close()

	tasks := []*task.Task{}

	for rows.Next() {
		t := &task.Task{}

		err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.IsDeleted,
			&t.OwnerID,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return tasks, nil
}

// Update перезаписывает изменяемые поля целиком, последняя запись побеждает
func (s *Storage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				status = $3,
				is_deleted = $4,
				updated_at = NOW()
			WHERE id = $5 AND owner_id = $6
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.Status,
		taskToUpdate.IsDeleted,
		taskToUpdate.ID,
		taskToUpdate.OwnerID,
	).Scan(&taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// мягкое удаление задачи, строка остаётся в таблице
func (s *Storage) DeleteSoft(ctx context.Context, taskToDelete *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
				SET is_deleted = true,
				updated_at = NOW()
			WHERE id = $1 AND owner_id = $2
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query, taskToDelete.ID, taskToDelete.OwnerID).Scan(&taskToDelete.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Мягкое удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("мягкое удаление: %w", err)
	}

	taskToDelete.IsDeleted = true

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

// полное удаление из БД
func (s *Storage) DeleteFull(ctx context.Context, id, ownerID uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM tasks
				WHERE id = $1 AND owner_id = $2`

	tag, err := s.pool.Exec(ctx, query, id, ownerID)

	if err != nil {
		logger.Error("Repository: Полное удаление задачи", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("полное удаление: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}

	return nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Попытка миграций")

	initUp, err := os.ReadFile("internal/migrations/001_init.up.sql")
	if err != nil {
		logger.Error("failed to read 001_init.up.sql", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(initUp))
	if err != nil {
		logger.Error("failed to apply 001_init", err)
		return err
	}

	logger.Info("Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Откат миграций")

	initDown, err := os.ReadFile("internal/migrations/001_init.down.sql")
	if err != nil {
		logger.Error("failed to read 001_init.down.sql", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(initDown))
	if err != nil {
		logger.Error("failed to rollback 001_init", err)
		return err
	}

	logger.Info("Откат миграций завершён")
	return nil
}
