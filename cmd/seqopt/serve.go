package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"seqOpt/internal/api"
	"seqOpt/internal/config"
	"seqOpt/internal/disassembly"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP-сервис",
	Long: `Настройки берутся из переменных окружения с префиксом SEQOPT_:
  SEQOPT_SERVER_PORT, SEQOPT_SERVER_*_TIMEOUT (секунды),
  SEQOPT_SOLVER_WORKBOOK, SEQOPT_SOLVER_SEED, SEQOPT_SOLVER_MAX_ITERATIONS,
  SEQOPT_SOLVER_RUN_TIMEOUT, SEQOPT_LOG_LEVEL.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("не удалось загрузить настройки: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("SEQOPT_LOG_LEVEL: %w", err)
	}
	if verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	wb, err := loadWorkbook(cfg.Solver.Workbook)
	if err != nil {
		return fmt.Errorf("не удалось загрузить книгу: %w", err)
	}

	handler, err := api.NewHandler(cfg, wb, disassembly.DefaultCatalog())
	if err != nil {
		return fmt.Errorf("не удалось создать обработчик: %w", err)
	}
	handler.RegisterRoutes()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      handler.Mux,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("запуск сервера", "port", cfg.Server.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Контекст команды отменяется по SIGINT/SIGTERM
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("не удалось запустить сервер: %w", err)
		}
		return nil
	case <-cmd.Context().Done():
	}
	logger.Info("остановка сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("не удалось остановить сервер: %w", err)
	}
	logger.Info("сервер остановлен")
	return nil
}
