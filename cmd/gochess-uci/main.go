// Command gochess-uci is the engine's UCI entry point, grounded on
// hailam's cmd/chessplay-uci/main.go: construct the engine, optionally
// load an opening book and config file, then hand control to the UCI
// protocol loop.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/cetincan0/gochess/internal/book"
	"github.com/cetincan0/gochess/internal/config"
	"github.com/cetincan0/gochess/internal/logging"
	"github.com/cetincan0/gochess/internal/metrics"
	"github.com/cetincan0/gochess/internal/search"
	"github.com/cetincan0/gochess/internal/tablebase"
	"github.com/cetincan0/gochess/internal/uci"
)

var configPath = flag.String("config", "chessengine.toml", "path to the engine config file")

func main() {
	flag.Parse()
	log := logging.New()
	defer log.Sync() //nolint:errcheck

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warnw("failed to load config, using defaults", "error", err)
	}

	eng := search.NewEngine(cfg.Hash, cfg.Threads)
	if cfg.MoveOverheadMS > 0 {
		eng.MoveOverhead = time.Duration(cfg.MoveOverheadMS) * time.Millisecond
	}

	protocol := uci.New(eng, log)

	if cfg.BookPath != "" {
		if b, err := book.LoadPolyglot(cfg.BookPath); err != nil {
			log.Warnw("failed to load opening book", "path", cfg.BookPath, "error", err)
		} else {
			protocol.SetBook(b)
			log.Infow("opening book loaded", "path", cfg.BookPath, "positions", b.Size())
		}
	}

	if cfg.UseLichessProbe {
		var cache tablebase.Cache
		if cfg.BookPath != "" {
			if store, err := book.Open(cfg.BookPath + ".cache"); err == nil {
				defer store.Close()
				cache = store
			} else {
				log.Warnw("failed to open tablebase cache store", "error", err)
			}
		}
		protocol.SetTablebase(tablebase.NewLichessProber(cache))
	}

	if cfg.MetricsListen != "" {
		collector, registry := metrics.NewCollector()
		protocol.SetMetrics(collector)
		server := metrics.NewServer(cfg.MetricsListen, registry)
		errCh := make(chan error, 1)
		server.Start(errCh)
		go func() {
			if err := <-errCh; err != nil {
				log.Warnw("metrics server stopped", "error", err)
			}
		}()
	}

	protocol.Run()
	os.Exit(0)
}
