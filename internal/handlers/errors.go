package handlers

import (
	"errors"
	"net/http"

	"taskManager/internal/logger"
	"taskManager/internal/service"

	"go.uber.org/zap"
)

// handleServiceError — единственное место, где ошибка сервиса
// превращается в HTTP-ответ. Бизнес-ошибка уходит клиенту с кодом и
// сообщением, всё остальное логируется целиком, а наружу уходит
// только общий текст без внутренних деталей.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var businessErr *service.BusinessError
	if errors.As(err, &businessErr) {
		statusCode := mapBusinessErrorToHTTP(businessErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", businessErr.Code),
			zap.Int("http_status", statusCode),
			zap.String("client_ip", r.RemoteAddr))

		body := map[string]any{
			"error":   businessErr.Code,
			"message": businessErr.Message,
		}
		if len(businessErr.Details) > 0 {
			body["details"] = businessErr.Details
		}

		responseWithJSON(w, statusCode, body)
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err,
		zap.String("path", r.URL.Path),
		zap.String("client_ip", r.RemoteAddr))

	responseWithError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidation:
		return http.StatusBadRequest
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
