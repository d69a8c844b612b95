package main

import (
	"fmt"

	"reportcraft/internal/config"
	"reportcraft/internal/ledger"
	"reportcraft/internal/store"
)

// appEnv bundles the long-lived application services the commands share.
type appEnv struct {
	Config *config.UserConfig
	Store  *store.KV
	Ledger *ledger.Ledger
}

// openEnv loads configuration, opens the local store, and builds the
// credit ledger from the identity registry.
func openEnv() (*appEnv, error) {
	cfg, err := config.LoadUserConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	kv, err := store.Open(config.DefaultStorePath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	accounts, err := ledger.LoadRegistry(config.DefaultRegistryPath())
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("loading identity registry: %w", err)
	}

	return &appEnv{
		Config: cfg,
		Store:  kv,
		Ledger: ledger.New(accounts, kv, store.CreditKey),
	}, nil
}

// Close releases the environment's resources.
func (e *appEnv) Close() {
	if e.Store != nil {
		e.Store.Close()
	}
}
