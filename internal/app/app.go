package app

import (
	"context"
	"fmt"
	"net/http"

	"taskManager/internal/config"
	"taskManager/internal/auth"
	"taskManager/internal/handlers"
	"taskManager/internal/logger"
	"taskManager/internal/middleware"
	"taskManager/internal/service"

	taskinmemory "taskManager/internal/repository/task/inmemory"
	taskpostgres "taskManager/internal/repository/task/postgres"
	userinmemory "taskManager/internal/repository/user/inmemory"
	userpostgres "taskManager/internal/repository/user/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	shutdowns []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {

	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	taskRepo, userRepo, err := a.initRepositories(ctx)
	if err != nil {
		return err
	}

	tokens := auth.NewTokenManager(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL)

	taskService := service.NewTaskService(taskRepo)
	authService := service.NewAuthService(userRepo, tokens)

	taskHandler := handlers.NewTaskHandler(&taskService)
	authHandler := handlers.NewAuthHandler(&authService)

	a.router = NewRouter(&taskHandler, &authHandler, &authService)

	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

// initRepositories собирает хранилища по конфигу: postgres делит один пул
// между задачами и пользователями, inmemory — для локального запуска и тестов
func (a *App) initRepositories(ctx context.Context) (service.TaskRepository, service.UserRepository, error) {
	switch a.config.Repository.Type {
	case "postgres":
		poolConfig, err := pgxpool.ParseConfig(a.config.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("загрузка конфига БД: %w", err)
		}

		if a.config.Database.MaxConnections > 0 {
			poolConfig.MaxConns = int32(a.config.Database.MaxConnections)
		}
		if a.config.Database.MinConnections > 0 {
			poolConfig.MinConns = int32(a.config.Database.MinConnections)
		}
		if a.config.Database.IdleTimeout > 0 {
			poolConfig.MaxConnIdleTime = a.config.Database.IdleTimeout
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("создание пула: %w", err)
		}

		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("проверка соединения ping: %w", err)
		}

		a.shutdowns = append(a.shutdowns, func() {
			logger.Info("Закрытие пула PostgreSQL...")
			pool.Close()
		})

		taskRepo := taskpostgres.NewWithPool(pool)
		if err := taskRepo.Migrate(ctx); err != nil {
			return nil, nil, fmt.Errorf("миграции: %w", err)
		}

		return taskRepo, userpostgres.NewWithPool(pool), nil

	case "inmemory":
		return taskinmemory.NewTaskStorage(), userinmemory.NewUserStorage(), nil

	default:
		return nil, nil, fmt.Errorf("неизвестный тип репозитория: %q", a.config.Repository.Type)
	}
}

func (a *App) Run() error {
	logger.Info("Server started")
	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск сервера: %w", err)
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) {
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			logger.Error("Ошибка остановки сервера", err)
		}
	}

	// в обратном порядке, как defer
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}

func NewRouter(taskHandler *handlers.TaskHandler, authHandler *handlers.AuthHandler, resolver middleware.UserResolver) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.SignUp) // POST /auth/signup
		r.Post("/signin", authHandler.SignIn) // POST /auth/signin
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Use(middleware.Authenticate(resolver))

		r.Get("/", taskHandler.GetTasks)           // GET /tasks?status=&search=
		r.Post("/", taskHandler.PostTask)          // POST /tasks
		r.Get("/statuses", taskHandler.GetStatuses) // GET /tasks/statuses

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", taskHandler.GetTaskByID) // GET /tasks/{id}
			r.Put("/", taskHandler.PutTask)     // PUT /tasks/{id}
			r.Delete("/", taskHandler.DeleteTask) // DELETE /tasks/{id}?soft-delete=

			r.Patch("/status", taskHandler.PatchTaskStatus) // PATCH /tasks/{id}/status
		})
	})

	r.Get("/health", taskHandler.HealthCheck)

	return r
}
