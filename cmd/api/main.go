package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solarscope/internal/cache"
	"solarscope/internal/config"
	httpx "solarscope/internal/http"
	"solarscope/internal/solar"
	"solarscope/internal/upstream"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional response cache
	c := cache.New(cfg.Cache.RedisAddr)
	defer c.Close()

	client := upstream.New(cfg, c)
	svc := solar.NewService(client)

	// Keep the body set warm when a cache is configured
	if c != nil {
		refresher := solar.NewRefresher(svc, cfg.Cache.TTL*4/5)
		go refresher.Run(ctx)
	}

	r := httpx.NewRouter(svc)

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("Solarscope API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
