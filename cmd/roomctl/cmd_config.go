package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roomcraft/roomcraft-server/internal/config"
)

const redacted = "********"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration with secrets masked",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and validate the configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Load(); err != nil {
			return err
		}
		cmd.Println("configuration is valid")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(maskSecrets(*cfg))
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	return nil
}

func maskSecrets(cfg config.Config) config.Config {
	for _, secret := range []*string{&cfg.AuthJWTSecret, &cfg.S3SecretKey, &cfg.OpenRouterAPIKey} {
		if *secret != "" {
			*secret = redacted
		}
	}
	return cfg
}
