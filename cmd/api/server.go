package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"bookstore-api/pkg/container"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func Serve() error {
	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer appContainer.Cleanup()

	log := appContainer.Log

	// ========================================
	// 2. SCHEMA + DEFAULT ACCOUNTS
	// ========================================
	prepareCtx, prepareCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	err = prepareStore(prepareCtx, appContainer, poolMigrator(appContainer))
	prepareCancel()
	if err != nil {
		return fmt.Errorf("failed to prepare database: %w", err)
	}

	// ========================================
	// 3. SETUP ROUTER
	// ========================================
	// Tùy theo APP_ENV: development (debug logs) hoặc production (optimize)
	if appContainer.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := SetupRouter(appContainer)

	// ========================================
	// 4. CONFIGURE HTTP SERVER
	// ========================================
	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", port),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 5. START SERVER (NON-BLOCKING)
	// ========================================
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", map[string]interface{}{
			"addr":        srv.Addr,
			"environment": appContainer.Config.App.Environment,
			"health":      fmt.Sprintf("http://localhost:%s/api/health", port),
		})

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ========================================
	// 6. GRACEFUL SHUTDOWN
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	log.Info("shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", err, nil)
		return err
	}

	log.Info("server exited gracefully", nil)
	return nil
}
