package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/prejin2310/paperlesh-notifier/internal/config"
	"github.com/prejin2310/paperlesh-notifier/internal/logger"
	"github.com/prejin2310/paperlesh-notifier/internal/metrics"
	"github.com/prejin2310/paperlesh-notifier/internal/push"
	"github.com/prejin2310/paperlesh-notifier/internal/repository"
	"github.com/prejin2310/paperlesh-notifier/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zlog.Fatal("load timezone", zap.String("tz", cfg.Timezone), zap.Error(err))
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("open db", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	leaseRepo := repository.NewLeaseRepository(db)

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	var sender push.Sender
	switch cfg.PushBackend {
	case config.BackendFCM:
		sender, err = push.NewFCMSender(ctx, cfg.FirebaseCreds)
	case config.BackendTelegram:
		sender, err = push.NewTelegramSender(cfg.TelegramToken)
	}
	if err != nil {
		zlog.Fatal("init push sender", zap.String("backend", cfg.PushBackend), zap.Error(err))
	}

	notifier := service.NewNotificationService(userRepo, notifRepo, sender, collector, zlog)
	dailyLogJob := service.NewDailyLogJob(userRepo, notifier, loc, cfg.JobConcurrency, zlog)
	importantDateJob := service.NewImportantDateJob(userRepo, notifier, loc, cfg.JobConcurrency, zlog)
	sweepJob := service.NewRetentionSweepJob(userRepo, notifRepo, cfg.Retention(), cfg.JobConcurrency, collector, zlog)
	runner := service.NewJobRunner(leaseRepo, cfg.JobTimeout, collector, zlog)

	sweepDay, err := cfg.SweepWeekday()
	if err != nil {
		zlog.Fatal("sweep weekday", zap.Error(err))
	}

	scheduler := service.NewSchedulerService(loc)
	if _, err := scheduler.ScheduleDaily(cfg.DailyLogTime, func() {
		runner.Run(context.Background(), dailyLogJob)
	}); err != nil {
		zlog.Fatal("schedule daily log job", zap.Error(err))
	}
	if _, err := scheduler.ScheduleDaily(cfg.ImportantDatesTime, func() {
		runner.Run(context.Background(), importantDateJob)
	}); err != nil {
		zlog.Fatal("schedule important date job", zap.Error(err))
	}
	if _, err := scheduler.ScheduleWeekly(sweepDay, cfg.SweepTime, func() {
		runner.Run(context.Background(), sweepJob)
	}); err != nil {
		zlog.Fatal("schedule retention sweep", zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("http server", zap.Error(err))
		}
	}()

	zlog.Info("notifier started",
		zap.String("backend", cfg.PushBackend),
		zap.String("tz", cfg.Timezone),
		zap.String("http", cfg.HTTPAddr),
	)

	<-ctx.Done()
	zlog.Info("shutdown signal received")

	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		zlog.Warn("http shutdown", zap.Error(err))
	}
	zlog.Info("shutdown complete")
}
