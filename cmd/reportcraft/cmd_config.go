package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reportcraft/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and modify local configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		key, ok, err := env.Store.APIKey()
		if err != nil {
			return fmt.Errorf("reading credential: %w", err)
		}

		fmt.Printf("data dir:  %s\n", config.DataDir())
		fmt.Printf("model:     %s\n", env.Config.GetModel())
		fmt.Printf("theme:     %s\n", env.Config.GetTheme())
		if ok {
			fmt.Printf("api key:   %s\n", maskKey(key))
		} else {
			fmt.Println("api key:   (not set)")
		}
		return nil
	},
}

var configSetKeyCmd = &cobra.Command{
	Use:   "set-key [key]",
	Short: "Store the Gemini API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if key == "" {
			return fmt.Errorf("key must not be empty")
		}

		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.SetAPIKey(key); err != nil {
			return fmt.Errorf("storing credential: %w", err)
		}
		logger.Info("credential stored", zap.String("key", maskKey(key)))
		fmt.Println("API key stored.")
		return nil
	},
}

var configClearKeyCmd = &cobra.Command{
	Use:   "clear-key",
	Short: "Remove the stored Gemini API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.ClearAPIKey(); err != nil {
			return fmt.Errorf("clearing credential: %w", err)
		}
		fmt.Println("API key removed.")
		return nil
	},
}

var configSetModelCmd = &cobra.Command{
	Use:   "set-model [model]",
	Short: "Set the generation model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		env.Config.Model = strings.TrimSpace(args[0])
		if err := env.Config.Save(config.DefaultConfigPath()); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Model set to %s.\n", env.Config.GetModel())
		return nil
	},
}

// maskKey keeps the first and last few characters of a credential for
// display.
func maskKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetKeyCmd)
	configCmd.AddCommand(configClearKeyCmd)
	configCmd.AddCommand(configSetModelCmd)
}
