package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/infra"
)

const defaultSweepInterval = time.Hour

// Grace period keeps dead sessions around briefly so a freshly expired
// login still shows up when debugging auth issues.
const defaultGracePeriod = 24 * time.Hour

func main() {
	var (
		intervalFlag time.Duration
		graceFlag    time.Duration
		onceFlag     bool
	)

	flag.DurationVar(&intervalFlag, "interval", defaultSweepInterval, "time between sweeps")
	flag.DurationVar(&graceFlag, "grace", defaultGracePeriod, "keep dead sessions this long past expiry")
	flag.BoolVar(&onceFlag, "once", false, "run a single sweep and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "sessiongc").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("sessiongc: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)
	sessions := repo.NewSessionRepository(runner)

	sweep := func() {
		cutoff := time.Now().UTC().Add(-graceFlag)
		deleted, err := sessions.DeleteDeadBefore(ctx, cutoff)
		if err != nil {
			logger.Error().Err(err).Msg("sessiongc: sweep failed")
			return
		}
		logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("sessiongc: sweep complete")
	}

	sweep()
	if onceFlag {
		return
	}

	ticker := time.NewTicker(intervalFlag)
	defer ticker.Stop()

	logger.Info().Dur("interval", intervalFlag).Msg("sessiongc: started")
	for {
		select {
		case <-ctx.Done():
			if !errors.Is(ctx.Err(), context.Canceled) {
				logger.Error().Err(ctx.Err()).Msg("sessiongc: stopped with error")
			}
			logger.Info().Msg("sessiongc: stopped")
			return
		case <-ticker.C:
			sweep()
		}
	}
}
