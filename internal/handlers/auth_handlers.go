package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"taskManager/internal/handlers/dto"
	"taskManager/internal/logger"

	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService AuthService
}

func NewAuthHandler(authService AuthService) AuthHandler {
	return AuthHandler{
		AuthService: authService,
	}
}

func (s *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if !checkContentType(r, "application/json") {
		logger.Warn("HTTP: Неверный тип контента",
			zap.String("expected", "application/json"),
			zap.String("received", r.Header.Get("Content-Type")),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusUnsupportedMediaType, "Content-Type должен быть application/json")
		return
	}

	var request dto.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	if err := s.AuthService.SignUp(r.Context(), request.Username, request.Password); err != nil {
		handleServiceError(w, r, err)
		return
	}

	logger.Info("HTTP_OUT: Пользователь зарегистрирован",
		zap.String("username", request.Username),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusCreated))

	responseWithJSON(w, http.StatusCreated, nil)
}

func (s *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	var request dto.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: ошибка чтения JSON",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest, "неверное тело запроса")
		return
	}

	token, err := s.AuthService.SignIn(r.Context(), request.Username, request.Password)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// в лог уходит только имя, токен не логируем
	logger.Info("HTTP_OUT: Пользователь вошёл",
		zap.String("username", request.Username),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	responseWithJSON(w, http.StatusOK, dto.TokenResponse{AccessToken: token})
}
