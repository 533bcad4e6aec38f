package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/domain"
	"github.com/roomcraft/roomcraft-server/internal/domain/photo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/crontab"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database/repository/photorepo"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/logger"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/storage"
)

var photosCmd = &cobra.Command{
	Use:   "photos",
	Short: "Photo maintenance commands",
}

var photosSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Resolve stale pending photos once",
	Long: `Confirms pending photos whose object exists in storage and deletes the rest.
Only rows older than --ttl are considered.`,
	RunE: runPhotosSweep,
}

func init() {
	photosCmd.AddCommand(photosSweepCmd)

	photosSweepCmd.Flags().Duration("ttl", 0, "Minimum pending age (defaults to SWEEPER_PENDING_TTL)")
	photosSweepCmd.Flags().Int("batch", 0, "Maximum rows per pass (defaults to SWEEPER_BATCH_SIZE)")
}

func runPhotosSweep(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)
	ctx := cmd.Context()

	db, err := database.Connect(infrastructure.DatabaseConfig(cfg), log)
	if err != nil {
		return err
	}
	store, err := storage.NewS3Storage(ctx, cfg, log)
	if err != nil {
		return err
	}
	photoService := photo.NewPhotoService(photorepo.NewPhotoGormRepository(db), store, domain.ProvidePhotoConfig(cfg), log)

	redisCache, err := infrastructure.ProvideRedisCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	if redisCache != nil {
		defer redisCache.Close()
	}

	sweepCfg := crontab.SweeperConfigFromService(cfg)
	if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
		sweepCfg.TTL = ttl
	}
	if batch, _ := cmd.Flags().GetInt("batch"); batch > 0 {
		sweepCfg.Batch = batch
	}

	start := time.Now()
	result, err := crontab.NewCrontab(photoService, infrastructure.ProvideSweepLocker(redisCache), sweepCfg, log).Sweep(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("scanned=%d confirmed=%d deleted=%d took=%s\n",
		result.Scanned, result.Confirmed, result.Deleted, time.Since(start).Round(time.Millisecond))
	return nil
}
