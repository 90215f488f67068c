package evo

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// EnvFactory builds a fresh environment for one evaluation, with the given
// agent already registered at its start position. Seeded factories make
// evaluations repeatable across generations.
type EnvFactory func(agentID string) (world.Environment, error)

// PopulationConfig parameterizes a novelty-search run.
type PopulationConfig struct {
	PopulationSize int
	Generations    int
	StepBudget     int
	GenotypeLength int
	MutationRate   float64
	CrossoverRate  float64
	EliteFraction  float64
	NoveltyWeight  float64
	TournamentSize int
	KNeighbors     int
	Seed           int64
	EnvFactory     EnvFactory
}

func DefaultPopulationConfig() PopulationConfig {
	return PopulationConfig{
		PopulationSize: 20,
		Generations:    30,
		StepBudget:     200,
		GenotypeLength: 50,
		MutationRate:   0.1,
		CrossoverRate:  0.7,
		EliteFraction:  0.1,
		NoveltyWeight:  0.5,
		TournamentSize: 3,
		KNeighbors:     5,
		Seed:           1,
	}
}

func (c PopulationConfig) validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("population size must be at least 2, got %d", c.PopulationSize)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.StepBudget <= 0 {
		return fmt.Errorf("step budget must be positive, got %d", c.StepBudget)
	}
	if c.GenotypeLength <= 0 {
		return fmt.Errorf("genotype length must be positive, got %d", c.GenotypeLength)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be in [0, 1], got %v", c.MutationRate)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("crossover rate must be in [0, 1], got %v", c.CrossoverRate)
	}
	if c.EliteFraction < 0 || c.EliteFraction >= 1 {
		return fmt.Errorf("elite fraction must be in [0, 1), got %v", c.EliteFraction)
	}
	if c.NoveltyWeight < 0 || c.NoveltyWeight > 1 {
		return fmt.Errorf("novelty weight must be in [0, 1], got %v", c.NoveltyWeight)
	}
	if c.TournamentSize < 1 {
		return fmt.Errorf("tournament size must be at least 1, got %d", c.TournamentSize)
	}
	if c.KNeighbors < 1 {
		return fmt.Errorf("k neighbors must be at least 1, got %d", c.KNeighbors)
	}
	if c.EnvFactory == nil {
		return fmt.Errorf("environment factory is required")
	}
	return nil
}

// GenerationStats summarizes one evaluated generation.
type GenerationStats struct {
	Generation    int
	MeanCombined  float64
	MaxCombined   float64
	MeanNovelty   float64
	MeanObjective float64
	Diversity     float64
	ArchiveSize   int
}

// BestIndividual is a detached snapshot of the best genotype seen in a run.
type BestIndividual struct {
	ID        string
	Genes     []world.Direction
	Objective float64
	Novelty   float64
	Combined  float64
}

// RunResult carries the outcome of a full Evolve call.
type RunResult struct {
	Best        BestIndividual
	Generations []GenerationStats
}

// Population manages a generational novelty search: evaluate, rank by
// combined fitness, grow the archive, breed the next generation.
type Population struct {
	cfg         PopulationConfig
	rng         *rand.Rand
	archive     *Archive
	individuals []*Individual
}

// archiveGrowth is how many of the most novel behaviors each generation
// contributes to the archive.
const archiveGrowth = 5

func NewPopulation(cfg PopulationConfig) (*Population, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid population config: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	individuals := make([]*Individual, cfg.PopulationSize)
	for i := range individuals {
		ind, err := NewIndividual(fmt.Sprintf("g0-i%d", i), cfg.GenotypeLength, cfg.MutationRate, rng)
		if err != nil {
			return nil, err
		}
		individuals[i] = ind
	}
	return &Population{
		cfg:         cfg,
		rng:         rng,
		archive:     NewArchive(),
		individuals: individuals,
	}, nil
}

func (p *Population) Archive() *Archive { return p.archive }

// Evolve runs the configured number of generations. The context is checked
// between generations, so cancellation returns the stats gathered so far
// along with the context error.
func (p *Population) Evolve(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}
	haveBest := false

	for gen := 0; gen < p.cfg.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		behaviors, err := p.evaluate(gen)
		if err != nil {
			return result, err
		}

		p.rank()
		result.Generations = append(result.Generations, p.generationStats(gen, behaviors))

		top := p.individuals[0]
		if !haveBest || top.CombinedScore > result.Best.Combined {
			result.Best = BestIndividual{
				ID:        top.ID,
				Genes:     append([]world.Direction(nil), top.Genes...),
				Objective: top.ObjectiveScore,
				Novelty:   top.NoveltyScore,
				Combined:  top.CombinedScore,
			}
			haveBest = true
		}

		p.growArchive(behaviors)

		if gen < p.cfg.Generations-1 {
			p.breed(gen + 1)
		}
	}
	return result, nil
}

// evaluate runs every individual for one episode in a fresh environment and
// fills in its objective, novelty and combined scores. Novelty is measured
// against the archive as it stood before this generation.
func (p *Population) evaluate(gen int) (map[string]Behavior, error) {
	behaviors := make(map[string]Behavior, len(p.individuals))
	for _, ind := range p.individuals {
		ind.Reset()
		env, err := p.cfg.EnvFactory(ind.ID)
		if err != nil {
			return nil, fmt.Errorf("generation %d: build environment for %s: %w", gen, ind.ID, err)
		}

		obs := env.Observe(ind.ID)
		ind.Observe(obs, 0)
		for step := 0; step < p.cfg.StepBudget && !env.Terminated(); step++ {
			action := ind.Decide(obs)
			reward := env.Step(action)
			env.Tick()
			obs = env.Observe(ind.ID)
			ind.Observe(obs, reward)
		}

		behavior := ind.Behavior()
		behaviors[ind.ID] = behavior
		ind.ObjectiveScore = ind.Objective()
		ind.NoveltyScore = Novelty(behavior, p.archive.Entries(), p.cfg.KNeighbors)
		ind.CombinedScore = Combined(ind.NoveltyScore, ind.ObjectiveScore, p.cfg.NoveltyWeight)
	}
	return behaviors, nil
}

// rank orders the population by combined score, best first, with IDs
// breaking ties so runs are reproducible.
func (p *Population) rank() {
	sort.SliceStable(p.individuals, func(i, j int) bool {
		a, b := p.individuals[i], p.individuals[j]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		return a.ID < b.ID
	})
}

func (p *Population) generationStats(gen int, behaviors map[string]Behavior) GenerationStats {
	combined := make([]float64, len(p.individuals))
	novelty := make([]float64, len(p.individuals))
	objective := make([]float64, len(p.individuals))
	for i, ind := range p.individuals {
		combined[i] = ind.CombinedScore
		novelty[i] = ind.NoveltyScore
		objective[i] = ind.ObjectiveScore
	}

	return GenerationStats{
		Generation:    gen,
		MeanCombined:  stat.Mean(combined, nil),
		MaxCombined:   combined[0],
		MeanNovelty:   stat.Mean(novelty, nil),
		MeanObjective: stat.Mean(objective, nil),
		Diversity:     distinctBehaviors(behaviors),
		ArchiveSize:   p.archive.Len(),
	}
}

// distinctBehaviors counts how many different visited-cell sets the
// generation produced: identical behaviors collapse to one.
func distinctBehaviors(behaviors map[string]Behavior) float64 {
	seen := make(map[string]struct{}, len(behaviors))
	for _, behavior := range behaviors {
		seen[encodeBehavior(behavior)] = struct{}{}
	}
	return float64(len(seen))
}

// encodeBehavior builds a canonical key for a visited-cell set.
func encodeBehavior(behavior Behavior) string {
	cells := make([]world.Position, 0, len(behavior))
	for pos := range behavior {
		cells = append(cells, pos)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})

	var sb strings.Builder
	for _, cell := range cells {
		fmt.Fprintf(&sb, "%d,%d;", cell.X, cell.Y)
	}
	return sb.String()
}

// growArchive adds the generation's most novel behaviors to the archive.
func (p *Population) growArchive(behaviors map[string]Behavior) {
	byNovelty := append([]*Individual(nil), p.individuals...)
	sort.SliceStable(byNovelty, func(i, j int) bool {
		if byNovelty[i].NoveltyScore != byNovelty[j].NoveltyScore {
			return byNovelty[i].NoveltyScore > byNovelty[j].NoveltyScore
		}
		return byNovelty[i].ID < byNovelty[j].ID
	})

	limit := archiveGrowth
	if limit > len(byNovelty) {
		limit = len(byNovelty)
	}
	for _, ind := range byNovelty[:limit] {
		p.archive.Add(behaviors[ind.ID])
	}
}

// breed builds the next generation: elite clones of the current best, then
// tournament-selected parents recombined and mutated. The population must
// already be ranked.
func (p *Population) breed(gen int) {
	size := p.cfg.PopulationSize
	next := make([]*Individual, 0, size)

	elites := int(p.cfg.EliteFraction * float64(size))
	for i := 0; i < elites && i < len(p.individuals); i++ {
		next = append(next, p.individuals[i].Clone(fmt.Sprintf("g%d-i%d", gen, len(next))))
	}

	for len(next) < size {
		parentA := Tournament(p.individuals, p.cfg.TournamentSize, p.rng)
		parentB := Tournament(p.individuals, p.cfg.TournamentSize, p.rng)

		idA := fmt.Sprintf("g%d-i%d", gen, len(next))
		idB := fmt.Sprintf("g%d-i%d", gen, len(next)+1)

		var childA, childB *Individual
		if p.rng.Float64() < p.cfg.CrossoverRate {
			childA, childB = Crossover(parentA, parentB, idA, idB, p.rng)
		} else {
			childA, childB = parentA.Clone(idA), parentB.Clone(idB)
		}
		childA.Mutate(p.cfg.MutationRate)
		childB.Mutate(p.cfg.MutationRate)

		next = append(next, childA)
		if len(next) < size {
			next = append(next, childB)
		}
	}
	p.individuals = next
}
