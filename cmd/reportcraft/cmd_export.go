package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reportcraft/internal/report"
)

var (
	exportOut       string
	exportClipboard bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Assemble the saved draft into the final document",
	Long: `Assembles the saved in-progress report into the plain-text document:
title block, sections I through V, and the text bar chart when results
figures were extracted. Prints to stdout unless -o or --clipboard is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		raw, ok, err := env.Store.Draft()
		if err != nil {
			return fmt.Errorf("reading draft: %w", err)
		}
		if !ok {
			return fmt.Errorf("no saved draft; run the wizard first")
		}

		draft, err := report.DecodeDraft(raw)
		if err != nil {
			return err
		}

		doc := report.Assemble(&draft.Report, draft.Chart)
		logger.Info("draft assembled", zap.Int("bytes", len(doc)))

		switch {
		case exportClipboard:
			if err := clipboard.WriteAll(doc); err != nil {
				return fmt.Errorf("copying to clipboard: %w", err)
			}
			fmt.Println("Document copied to clipboard.")
		case exportOut != "":
			if err := os.WriteFile(exportOut, []byte(doc+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", exportOut, err)
			}
			fmt.Printf("Document written to %s.\n", exportOut)
		default:
			fmt.Println(doc)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Write the document to a file")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy the document to the clipboard")
}
