package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SenasCodes/AA-Projeto/internal/storage"
)

func QTableCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "qtable <id>",
		Short: "Inspect a stored Q-table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer storage.CloseIfSupported(store)

			record, ok, err := store.GetQTable(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("q-table not found: %s", args[0])
			}

			states := make([]string, 0, len(record.States))
			for state := range record.States {
				states = append(states, state)
			}
			sort.Strings(states)

			cmd.Printf("table %s: %d states\n", record.ID, len(states))
			shown := 0
			for _, state := range states {
				if shown >= limit {
					cmd.Printf("... %d more\n", len(states)-shown)
					break
				}
				row := record.States[state]
				actions := make([]string, 0, len(row))
				for action := range row {
					actions = append(actions, action)
				}
				sort.Strings(actions)
				cmd.Printf("  %s:", state)
				for _, action := range actions {
					cmd.Printf(" %s=%.3f", action, row[action])
				}
				cmd.Println()
				shown++
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of states to print")
	return cmd
}
