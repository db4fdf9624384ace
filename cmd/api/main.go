package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/config"
	appHTTP "github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/handler/http"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/cron"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/database"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/pkg/jwt"
	"github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/repository/postgresql"
	leaveService "github.com/yazmarketing/staging-yazmedia-dashboard-backend-sub001/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	summaryRepo := postgresql.NewLeaveSummaryRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	summaries := leaveService.NewSummaryService(cfg.Leave, summaryRepo, employeeRepo)
	validators := leaveService.NewValidators(summaries, requestRepo, overtimeRepo)
	requests := leaveService.NewRequestService(db, requestRepo, overtimeRepo, summaries, validators)
	recompute := leaveService.NewRecomputeService(summaries, requestRepo, overtimeRepo, employeeRepo)
	carryOver := leaveService.NewCarryOverService(cfg.Leave, summaries, employeeRepo)
	service := leaveService.NewService(requests, summaries, recompute, carryOver)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("leave-recomputation", cfg.Leave.RecomputeInterval, func(ctx context.Context) error {
		_, err := service.RunRecomputation(ctx)
		return err
	})
	scheduler.AddJob("annual-carry-over", cfg.Leave.CarryOverCheckInterval, func(ctx context.Context) error {
		// Only the first check of a new year does work; later runs converge
		// to the same carried amounts.
		year := time.Now().UTC().Year()
		_, err := service.RunCarryOver(ctx, year-1, year)
		return err
	})
	scheduler.Start()
	defer scheduler.Stop()

	leaveHandler := appHTTP.NewLeaveHandler(service)
	router := appHTTP.NewRouter(jwtService, leaveHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server running", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
