package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/SenasCodes/AA-Projeto/internal/evo"
	"github.com/SenasCodes/AA-Projeto/internal/model"
	"github.com/SenasCodes/AA-Projeto/internal/sim"
	"github.com/SenasCodes/AA-Projeto/internal/stats"
	"github.com/SenasCodes/AA-Projeto/internal/storage"
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

func EvolveCommand() *cobra.Command {
	var (
		envType       string
		width         int
		height        int
		popSize       int
		generations   int
		stepBudget    int
		genotypeLen   int
		mutationRate  float64
		crossoverRate float64
		noveltyWeight float64
		seed          int64
	)

	cmd := &cobra.Command{
		Use:   "evolve",
		Short: "Run novelty search over genotype agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			envCfg := sim.EnvironmentConfig{Type: envType, Width: width, Height: height}
			factory := func(agentID string) (world.Environment, error) {
				env, err := sim.BuildEnvironment(envCfg, seed)
				if err != nil {
					return nil, err
				}
				if err := env.RegisterAgent(agentID, world.Position{}); err != nil {
					return nil, err
				}
				return env, nil
			}

			cfg := evo.DefaultPopulationConfig()
			cfg.PopulationSize = popSize
			cfg.Generations = generations
			cfg.StepBudget = stepBudget
			cfg.GenotypeLength = genotypeLen
			cfg.MutationRate = mutationRate
			cfg.CrossoverRate = crossoverRate
			cfg.NoveltyWeight = noveltyWeight
			cfg.Seed = seed
			cfg.EnvFactory = factory

			population, err := evo.NewPopulation(cfg)
			if err != nil {
				return err
			}
			result, err := population.Evolve(ctx)
			if err != nil {
				return err
			}

			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer storage.CloseIfSupported(store)

			runID := uuid.NewString()
			metrics := make([]model.GenerationMetrics, 0, len(result.Generations))
			for _, gen := range result.Generations {
				metrics = append(metrics, model.GenerationMetrics{
					Generation:    gen.Generation,
					MeanCombined:  gen.MeanCombined,
					MaxCombined:   gen.MaxCombined,
					MeanNovelty:   gen.MeanNovelty,
					MeanObjective: gen.MeanObjective,
					Diversity:     gen.Diversity,
					ArchiveSize:   gen.ArchiveSize,
				})
				cmd.Printf("gen %3d  max %.2f  mean %.2f  novelty %.3f  diversity %.0f\n",
					gen.Generation, gen.MaxCombined, gen.MeanCombined, gen.MeanNovelty, gen.Diversity)
			}

			genes := make([]string, len(result.Best.Genes))
			for i, gene := range result.Best.Genes {
				genes[i] = gene.String()
			}
			if err := store.SaveGenotype(ctx, model.GenotypeRecord{
				VersionedRecord: storage.Versions(),
				ID:              result.Best.ID,
				Genes:           genes,
				Objective:       result.Best.Objective,
				Novelty:         result.Best.Novelty,
				Combined:        result.Best.Combined,
			}); err != nil {
				return fmt.Errorf("save best genotype: %w", err)
			}
			if err := store.SaveEvolution(ctx, model.EvolutionRecord{
				VersionedRecord: storage.Versions(),
				ID:              runID,
				Environment:     envType,
				BestID:          result.Best.ID,
				Generations:     metrics,
			}); err != nil {
				return fmt.Errorf("save evolution run: %w", err)
			}

			summary := stats.SummarizeEvolution(metrics)
			cmd.Printf("run %s: best %s combined %.2f (objective %.2f)\n",
				runID, result.Best.ID, result.Best.Combined, result.Best.Objective)
			cmd.Printf("max fitness %.2f -> %.2f (peak %.2f), mean diversity %.3f, archive %d\n",
				summary.FirstMax, summary.FinalMax, summary.PeakMax, summary.MeanDiversity, summary.FinalArchive)
			return nil
		},
	}

	cmd.Flags().StringVar(&envType, "env", sim.EnvBeacon, "Environment type: beacon, forage or maze")
	cmd.Flags().IntVar(&width, "width", 15, "Grid width")
	cmd.Flags().IntVar(&height, "height", 15, "Grid height")
	cmd.Flags().IntVar(&popSize, "population", 20, "Population size")
	cmd.Flags().IntVar(&generations, "generations", 30, "Number of generations")
	cmd.Flags().IntVar(&stepBudget, "steps", 200, "Step budget per evaluation")
	cmd.Flags().IntVar(&genotypeLen, "genotype", 50, "Genotype length")
	cmd.Flags().Float64Var(&mutationRate, "mutation", 0.1, "Mutation rate")
	cmd.Flags().Float64Var(&crossoverRate, "crossover", 0.7, "Crossover rate")
	cmd.Flags().Float64Var(&noveltyWeight, "novelty", 0.5, "Novelty weight in combined fitness")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Random seed")
	return cmd
}
