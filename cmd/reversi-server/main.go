// Command reversi-server hosts the engine over HTTP and websockets,
// persisting preferences, stats and the transposition table across runs.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/foxzool/reversi/internal/book"
	"github.com/foxzool/reversi/internal/engine"
	"github.com/foxzool/reversi/internal/server"
	"github.com/foxzool/reversi/internal/storage"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	ttSize := flag.Int("hash", 64, "transposition table size in MB")
	dataDir := flag.String("data", "", "database directory (default: platform data dir)")
	noPersist := flag.Bool("no-persist", false, "disable persistence")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	var store *storage.Storage
	if !*noPersist {
		var err error
		if *dataDir != "" {
			store, err = storage.NewStorageAt(*dataDir)
		} else {
			store, err = storage.NewStorage()
		}
		if err != nil {
			log.Warn().Msgf("storage unavailable, running without persistence: %v", err)
			store = nil
		}
	}

	size := *ttSize
	if store != nil {
		if prefs, err := store.LoadPreferences(); err == nil && prefs.TTSizeMB > 0 {
			size = prefs.TTSizeMB
		}
	}

	eng := engine.NewEngine(size)
	if store != nil {
		if entries, err := store.LoadTTSnapshot(); err != nil {
			log.Warn().Msgf("could not restore cache snapshot: %v", err)
		} else if len(entries) > 0 {
			eng.Table().LoadSnapshot(entries)
			log.Info().Msgf("restored %d cached search entries", len(entries))
		}
	}

	var persistOnce sync.Once
	persistOnShutdown := func(reason string) {
		persistOnce.Do(func() {
			if store == nil {
				return
			}
			log.Info().Msgf("persisting caches on %s", reason)
			if err := store.SaveTTSnapshot(eng.Table().Snapshot()); err != nil {
				log.Warn().Msgf("cache snapshot failed: %v", err)
			}
			if err := store.Close(); err != nil {
				log.Warn().Msgf("storage close failed: %v", err)
			}
		})
	}
	defer persistOnShutdown("exit")

	srv := server.New(eng, book.Builtin())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Hub().Run(ctx.Done())

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: srv.Router(),
	}

	go func() {
		log.Info().Msgf("listening on %s (hash %dMB)", *addr, size)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("server failed: %v", err)
		}
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	<-sigCtx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Warn().Msgf("shutdown: %v", err)
	}

	persistOnShutdown("shutdown")
}
