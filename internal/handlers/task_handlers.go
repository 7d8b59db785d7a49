package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"
	"taskManager/internal/middleware"
	"taskManager/internal/models/task"
	"taskManager/internal/models/user"
	"taskManager/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskHandler struct {
	TaskService TaskService
}

func NewTaskHandler(taskService TaskService) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
	}
}

// actor достаёт пользователя, положенного middleware.Authenticate
func (s *TaskHandler) actor(w http.ResponseWriter, r *http.Request) (*user.User, bool) {
	u, ok := middleware.GetUser(r.Context())
	if !ok {
		logger.Warn("HTTP: Запрос без пользователя в контексте",
			zap.String("path", r.URL.Path),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusUnauthorized, "требуется авторизация")
		return nil, false
	}
	return u, true
}

// пустой или кривой id — это класс "не найдено", а не отдельная ошибка
func (s *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idParam := chi.URLParam(r, "id")

	id, err := uuid.Parse(idParam)
	if err != nil || id == uuid.Nil {
		logger.Warn("HTTP: Неверное значение id",
			zap.String("id", idParam),
			zap.String("client_ip", r.RemoteAddr))

		handleServiceError(w, r, service.NewNotFound("задача", idParam))
		return uuid.Nil, false
	}

	return id, true
}

func (s *TaskHandler) GetStatuses(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")

	responseWithJSON(w, http.StatusOK, s.TaskService.Statuses())
}

func (s *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	filter := task.Filter{
		Status: task.Status(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		logger.Warn("HTTP: Неверное значение параметра",
			zap.String("query", "status"),
			zap.String("value", string(filter.Status)),
			zap.String("client_ip", r.RemoteAddr))
		responseWithError(w, http.StatusBadRequest, "неверное значение status")
		return
	}

	tasks, err := s.TaskService.GetTasks(r.Context(), actor, filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTaskList(tasks))
}

func (s *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	t, err := s.TaskService.GetTaskByID(r.Context(), id, actor)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача получена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	t, err := s.TaskService.CreateTask(r.Context(), service.CreateTaskParams{
		Title:       request.Title,
		Description: request.Description,
	}, actor)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, dto.FromTask(t))
}

func (s *TaskHandler) PatchTaskStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	if !request.Status.Valid() {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "status"),
			zap.String("value", string(request.Status)),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное значение status")
		return
	}

	t, err := s.TaskService.UpdateTaskStatus(r.Context(), id, request.Status, actor)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Статус задачи обновлён",
		zap.String("task_id", t.ID.String()),
		zap.String("status", string(t.Status)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) PutTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	var request dto.UpdateTaskRequest

	decoder := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверно переданы параметры обновления")
		return
	}

	if request.Title == "" {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "title"),
			zap.String("error", "empty_field"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "название не может быть пустым")
		return
	}

	if !request.Status.Valid() {
		logger.Warn("HTTP: Ошибка валидации",
			zap.String("field", "status"),
			zap.String("value", string(request.Status)),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное значение status")
		return
	}

	t, err := s.TaskService.UpdateTask(r.Context(), id, service.UpdateTaskParams{
		Title:       request.Title,
		Description: request.Description,
		Status:      request.Status,
		IsDeleted:   request.IsDeleted,
	}, actor)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача обновлена",
		zap.String("task_id", t.ID.String()),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	actor, ok := s.actor(w, r)
	if !ok {
		return
	}

	id, ok := s.taskID(w, r)
	if !ok {
		return
	}

	// отсутствующее или нечитаемое значение = полное удаление
	softDelete, err := strconv.ParseBool(r.URL.Query().Get("soft-delete"))
	if err != nil {
		softDelete = false
	}

	t, err := s.TaskService.DeleteTask(r.Context(), id, actor, softDelete)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.String("task_id", t.ID.String()),
		zap.Bool("soft_delete", softDelete),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.FromTask(t))
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		responseWithError(w, http.StatusServiceUnavailable, "хранилище недоступно")
		return
	}

	responseWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
