package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"taskManager/internal/app"
	"taskManager/internal/config"
	"taskManager/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("загрузка конфигурации: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg)
	if err := application.Init(ctx); err != nil {
		log.Fatalf("инициализация приложения: %v", err)
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Error("Сервер остановился с ошибкой", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Получен сигнал остановки...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	application.Shutdown(shutdownCtx)
}
