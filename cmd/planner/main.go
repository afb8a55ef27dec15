package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"planner/internal/auth"
	"planner/internal/config"
	"planner/internal/db"
	"planner/internal/email"
	httpx "planner/internal/http"
	"planner/internal/reminder"
	"planner/internal/scheduler"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect db")
	}
	if err := db.AutoMigrateAndIndexes(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate db")
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)

	// daily reminder pipeline
	mailer := email.NewClient(cfg.BrevoAPIKey, cfg.EmailSenderName, cfg.EmailSenderAddress)
	batch := reminder.NewBatch(&reminder.GormStore{DB: gdb}, mailer, cfg.ReminderDelay)

	sched, err := scheduler.New(batch, cfg.ReminderTimezone)
	if err != nil {
		log.Fatal().Err(err).Msg("build scheduler")
	}
	sched.Start()
	defer sched.Stop()

	r := httpx.NewRouter(cfg, gdb, jwtSvc, batch)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
