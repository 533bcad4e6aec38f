package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/metrics"
	"github.com/roomcraft/roomcraft-server/internal/utils/platformerrors"
)

const sweepLockName = "pending-photo-sweeper"

// Locker runs fn under a lock shared by every replica.
type Locker interface {
	WithLock(ctx context.Context, lockName string, ttl time.Duration, fn func(context.Context) error) error
}

// SweeperConfig controls the pending-photo sweep job.
type SweeperConfig struct {
	Enabled bool
	Cron    string
	TTL     time.Duration
	Batch   int
	Timeout time.Duration
}

func SweeperConfigFromService(cfg *config.Config) SweeperConfig {
	return SweeperConfig{
		Enabled: cfg.SweeperEnabled,
		Cron:    cfg.SweeperCron,
		TTL:     cfg.SweeperTTL,
		Batch:   cfg.SweeperBatch,
		Timeout: cfg.SweeperTimeout,
	}
}

// Crontab schedules background maintenance jobs.
type Crontab struct {
	ctab         *crontab.Crontab
	photoService *photo.PhotoService
	locker       Locker
	cfg          SweeperConfig
	log          zerolog.Logger
}

// NewCrontab builds the scheduler. locker may be nil on a single replica.
func NewCrontab(photoService *photo.PhotoService, locker Locker, cfg SweeperConfig, log zerolog.Logger) *Crontab {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Minute
	}
	return &Crontab{
		ctab:         crontab.New(),
		photoService: photoService,
		locker:       locker,
		cfg:          cfg,
		log:          log.With().Str("component", "crontab").Logger(),
	}
}

// Run schedules the jobs and blocks until ctx is done.
func (c *Crontab) Run(ctx context.Context) error {
	if !c.cfg.Enabled {
		c.log.Info().Msg("pending photo sweeper disabled")
		<-ctx.Done()
		return nil
	}

	if err := c.ctab.AddJob(c.cfg.Cron, func() {
		jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.Timeout)
		defer cancel()
		if _, err := c.Sweep(jobCtx); err != nil {
			c.log.Error().Err(err).Msg("pending photo sweep failed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add sweeper job")
	}
	c.log.Info().Str("cron", c.cfg.Cron).Dur("ttl", c.cfg.TTL).Msg("pending photo sweeper scheduled")

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

// Sweep runs one pass, under the shared lock when a locker is configured.
// A lock held by another replica skips the pass.
func (c *Crontab) Sweep(ctx context.Context) (photo.SweepResult, error) {
	var (
		result photo.SweepResult
		ran    bool
	)
	run := func(ctx context.Context) error {
		ran = true
		var err error
		result, err = c.photoService.SweepStalePending(ctx, c.cfg.TTL, c.cfg.Batch)
		metrics.RecordSweep(result.Confirmed, result.Deleted)
		return err
	}

	var err error
	if c.locker == nil {
		err = run(ctx)
	} else {
		err = c.locker.WithLock(ctx, sweepLockName, c.cfg.Timeout, run)
		if err != nil && !ran {
			c.log.Debug().Err(err).Msg("sweep skipped, lock held elsewhere")
			return result, nil
		}
	}
	c.logResult(result, err)
	return result, err
}

func (c *Crontab) logResult(result photo.SweepResult, err error) {
	if err != nil {
		return
	}
	c.log.Info().
		Int("scanned", result.Scanned).
		Int("confirmed", result.Confirmed).
		Int("deleted", result.Deleted).
		Msg("pending photo sweep finished")
}
