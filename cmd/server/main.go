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

	"github.com/aryansawant3579-cell/review-app/internal/access"
	"github.com/aryansawant3579-cell/review-app/internal/analytics"
	"github.com/aryansawant3579-cell/review-app/internal/auth"
	"github.com/aryansawant3579-cell/review-app/internal/config"
	httpserver "github.com/aryansawant3579-cell/review-app/internal/http"
	"github.com/aryansawant3579-cell/review-app/internal/repository"
	"github.com/aryansawant3579-cell/review-app/internal/review"
	"github.com/aryansawant3579-cell/review-app/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := log.New(os.Stdout, "[reviews-api] ", log.LstdFlags|log.Lshortfile)

	dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	storeOpts := store.Options{
		MaxConns:        int32(cfg.DBMaxConns),
		MinConns:        int32(cfg.DBMinConns),
		MaxConnIdleTime: time.Duration(cfg.DBMaxIdleSecs) * time.Second,
		MaxConnLifetime: time.Duration(cfg.DBMaxLifeSecs) * time.Second,
		ConnTimeout:     time.Duration(cfg.DBConnTimeoutSecs) * time.Second,
		Logger:          logger,
	}

	st, err := store.New(dbCtx, cfg.DBURL, storeOpts)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer st.Close()

	repo := repository.New(st)
	resolver := access.NewResolver(repo.Branches)

	authSvc := auth.NewService(repo, []byte(cfg.JWTSecret), time.Duration(cfg.TokenTTLHours)*time.Hour)
	reviewSvc := review.NewService(repo, resolver, logger)
	analyticsSvc := analytics.NewService(repo.Reviews, resolver)

	server := httpserver.New(cfg, st, repo, authSvc, reviewSvc, analyticsSvc, logger)

	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			serverErrCh <- err
			return
		}
		serverErrCh <- nil
	}()

	select {
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, context.Canceled) {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown error: %v", err)
	}
}
