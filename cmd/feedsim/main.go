// Command feedsim serves a synthetic attendance CSV feed for local
// development. Point the aggregator's feed_url at it:
//
//	feedsim -addr :9081 -players 8 -sessions 12 -grow 30s
//	PIZZA_FEED_URL=http://localhost:9081/ pizzapunten
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pizzapunten/pizzapunten/internal/feedsim"
	"github.com/pizzapunten/pizzapunten/pkg/logger"
)

func main() {
	cfg := feedsim.NewConfig()

	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address for the simulated feed")
	flag.IntVar(&cfg.Players, "players", cfg.Players, "Roster size")
	flag.IntVar(&cfg.Sessions, "sessions", cfg.Sessions, "Number of past sessions to generate")
	grow := flag.Duration("grow", 0, "Append a fresh session at this interval (0 disables)")
	flag.Parse()
	cfg.GrowEvery = *grow

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := feedsim.NewServer(cfg).Run(ctx); err != nil {
		logger.Get().Error(ctx, "feed simulator failed", logger.Error(err))
		os.Exit(1)
	}
}
