package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SenasCodes/AA-Projeto/internal/model"
	"github.com/SenasCodes/AA-Projeto/internal/sim"
	"github.com/SenasCodes/AA-Projeto/internal/stats"
	"github.com/SenasCodes/AA-Projeto/internal/storage"
)

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario.json>",
		Short: "Run a simulation scenario and record its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := sim.LoadSimulationConfig(args[0])
			if err != nil {
				return err
			}
			engine, err := sim.BuildEngine(cfg)
			if err != nil {
				return err
			}
			if err := engine.Run(ctx); err != nil {
				return err
			}

			history := engine.History()
			runID := uuid.NewString()

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer storage.CloseIfSupported(store)

			record := model.RunRecord{
				VersionedRecord: storage.Versions(),
				ID:              runID,
				Scenario:        args[0],
				Environment:     cfg.Environment.Type,
				Episodes:        make([]model.EpisodeRecord, 0, len(history)),
			}
			for _, ep := range history {
				record.Episodes = append(record.Episodes, model.EpisodeRecord{
					Episode:    ep.Episode,
					Steps:      ep.Steps,
					Rewards:    ep.Rewards,
					Terminated: ep.Terminated,
				})
			}
			if err := store.SaveRun(ctx, record); err != nil {
				return fmt.Errorf("save run: %w", err)
			}

			printRunSummary(cmd, runID, stats.SummarizeRun(record.Episodes))
			return nil
		},
	}
	return cmd
}

func printRunSummary(cmd *cobra.Command, runID string, summary stats.RunSummary) {
	cmd.Printf("run %s\n", runID)
	cmd.Printf("episodes: %d  mean steps: %.1f  termination rate: %.0f%%\n",
		summary.Episodes, summary.MeanSteps, summary.TerminationRate*100)
	for _, agent := range summary.Agents {
		cmd.Printf("  %s: mean reward %.2f (std %.2f, min %.2f, max %.2f)\n",
			agent.AgentID, agent.MeanReward, agent.StdReward, agent.MinReward, agent.MaxReward)
	}
}
