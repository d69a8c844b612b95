package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the saved draft",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.Store.ClearDraft(); err != nil {
			return fmt.Errorf("clearing draft: %w", err)
		}
		fmt.Println("Draft discarded.")
		return nil
	},
}
