package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/SenasCodes/AA-Projeto/internal/storage"
)

var (
	storeKind string
	storePath string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "aasimctl",
		Short: "Grid-world multi-agent learning testbed",
	}
	rootCommand.PersistentFlags().StringVar(&storeKind, "store", "", "Storage backend: memory or sqlite (default depends on build)")
	rootCommand.PersistentFlags().StringVar(&storePath, "db", "aasim.db", "SQLite database path for the sqlite backend")
	rootCommand.AddCommand(RunCommand())
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(EvolveCommand())
	rootCommand.AddCommand(QTableCommand())
	return rootCommand
}

// openStore builds and initializes the configured storage backend.
func openStore(ctx context.Context) (storage.Store, error) {
	store, err := storage.NewStore(storeKind, storePath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
