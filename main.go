package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/catch-the-antonym/internal/config"
	"github.com/robalobadob/catch-the-antonym/internal/httpserver"
	"github.com/robalobadob/catch-the-antonym/internal/store"
	"github.com/robalobadob/catch-the-antonym/internal/words"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	catalog, err := words.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.CatalogFile).Msg("failed to load word catalog")
	}
	log.Info().Int("pairs", catalog.Len()).Msg("word catalog loaded")

	mem := store.NewMemoryStore()
	srv := httpserver.New(cfg, catalog, mem)

	idle := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info().Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
		close(idle)
	}()

	log.Info().Str("port", cfg.Port).Msg("starting catch-the-antonym server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	<-idle
}
