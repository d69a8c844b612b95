package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"reportcraft/internal/config"
	"reportcraft/internal/ledger"
	"reportcraft/internal/store"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users and their credit balances",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv()
		if err != nil {
			return err
		}
		defer env.Close()

		accounts, err := ledger.LoadRegistry(config.DefaultRegistryPath())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tNAME\tCREDITS")
		for _, a := range accounts {
			balance := strconv.Itoa(a.InitialCredits) + " (initial)"
			if raw, ok, err := env.Store.Get(store.CreditKey(a.Username)); err == nil && ok {
				balance = raw
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", a.Username, a.FullName, balance)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d registered users\n", env.Ledger.Count())
		return nil
	},
}
