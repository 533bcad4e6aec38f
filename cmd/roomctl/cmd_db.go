package main

import (
	"github.com/spf13/cobra"

	"github.com/roomcraft/roomcraft-server/internal/config"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/database"
	"github.com/roomcraft/roomcraft-server/internal/infrastructure/logger"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database commands",
	Long:  `Apply schema migrations and load the room type dictionary.`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runDBMigrate,
}

var dbSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Upsert the room type dictionary",
	RunE:  runDBSeed,
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbSeedCmd)
}

func runDBMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	db, err := database.Connect(infrastructure.DatabaseConfig(cfg), log)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(cmd.Context(), db, log); err != nil {
		return err
	}
	cmd.Println("migrations applied")
	return nil
}

func runDBSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg)

	db, err := database.Connect(infrastructure.DatabaseConfig(cfg), log)
	if err != nil {
		return err
	}
	if err := database.SeedRoomTypes(cmd.Context(), db, log); err != nil {
		return err
	}
	cmd.Println("room types seeded")
	return nil
}
