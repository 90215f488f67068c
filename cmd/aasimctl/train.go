package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SenasCodes/AA-Projeto/internal/model"
	"github.com/SenasCodes/AA-Projeto/internal/rl"
	"github.com/SenasCodes/AA-Projeto/internal/sim"
	"github.com/SenasCodes/AA-Projeto/internal/storage"
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

func TrainCommand() *cobra.Command {
	var (
		envType   string
		width     int
		height    int
		episodes  int
		steps     int
		seed      int64
		alpha     float64
		gamma     float64
		epsilon   float64
		tablePath string
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a single Q-learning agent and persist its table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			env, err := sim.BuildEnvironment(sim.EnvironmentConfig{
				Type:   envType,
				Width:  width,
				Height: height,
			}, seed)
			if err != nil {
				return err
			}

			qc := rl.DefaultQConfig()
			qc.Alpha = alpha
			qc.Gamma = gamma
			qc.Epsilon = epsilon
			qc.Seed = uint64(seed) + 1
			policy, err := rl.NewQLearning(qc)
			if err != nil {
				return err
			}
			if tablePath != "" {
				if err := policy.LoadTable(tablePath); err != nil {
					return err
				}
			}

			const agentID = "learner"
			engine, err := sim.NewEngine(sim.EngineConfig{
				Env:         env,
				Agents:      []sim.AgentSlot{{ID: agentID, Policy: policy, Start: world.Position{}}},
				Episodes:    episodes,
				StepCeiling: steps,
			})
			if err != nil {
				return err
			}
			if err := engine.Run(ctx); err != nil {
				return err
			}

			if tablePath != "" {
				if err := policy.SaveTable(tablePath); err != nil {
					return err
				}
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer storage.CloseIfSupported(store)

			tableID := uuid.NewString()
			if err := store.SaveQTable(ctx, model.QTableRecord{
				VersionedRecord: storage.Versions(),
				ID:              tableID,
				States:          policy.ExportTable(),
			}); err != nil {
				return fmt.Errorf("save q-table: %w", err)
			}

			history := policy.History()
			cmd.Printf("table %s: %d states after %d episodes\n", tableID, policy.Table().States(), len(history))
			if len(history) > 0 {
				first, last := history[0], history[len(history)-1]
				cmd.Printf("reward: %.2f -> %.2f  epsilon: %.3f -> %.3f\n",
					first.Reward, last.Reward, first.Epsilon, last.Epsilon)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&envType, "env", sim.EnvBeacon, "Environment type: beacon, forage or maze")
	cmd.Flags().IntVar(&width, "width", 10, "Grid width")
	cmd.Flags().IntVar(&height, "height", 10, "Grid height")
	cmd.Flags().IntVar(&episodes, "episodes", 100, "Number of training episodes")
	cmd.Flags().IntVar(&steps, "steps", 200, "Step ceiling per episode")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.1, "Learning rate")
	cmd.Flags().Float64Var(&gamma, "gamma", 0.9, "Discount factor")
	cmd.Flags().Float64Var(&epsilon, "epsilon", 0.3, "Initial exploration rate")
	cmd.Flags().StringVar(&tablePath, "table", "", "Q-table JSON file to load before and save after training")
	return cmd
}
