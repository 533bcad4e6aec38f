package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/roomcraft/roomcraft-server/internal/infrastructure/observability"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roomctl",
	Short: "Roomcraft operations CLI",
	Long: `roomctl runs maintenance tasks against the roomcraft database and storage.

Examples:
  roomctl db migrate
  roomctl db seed
  roomctl photos sweep --ttl 2h --batch 200
  roomctl config show`,
	Version:       observability.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		if envFile == "" {
			return nil
		}
		if _, err := os.Stat(envFile); err != nil {
			return nil
		}
		return godotenv.Overload(envFile)
	},
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(photosCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file loaded before reading configuration")
}
