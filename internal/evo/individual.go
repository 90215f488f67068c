package evo

import (
	"fmt"
	"math/rand"

	"github.com/SenasCodes/AA-Projeto/internal/agent"
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// geneAlphabet is the set of values a gene can take.
var geneAlphabet = world.Moves

const (
	// fitnessWindowSize bounds the trailing-fitness window driving the
	// aggressive-mutation trigger.
	fitnessWindowSize = 5
	// aggressiveMutationShare is the fraction of genes rewritten when an
	// episode falls below the trailing mean.
	aggressiveMutationShare = 0.3
	// growthInterval and growthGenes control periodic genotype extension.
	growthInterval = 10
	growthGenes    = 10
)

// Individual is a genotype-driven agent: a fixed sequence of movement genes
// replayed positionally, one gene per decision. Between episodes it adapts
// its own genotype from the fitness trend, so a single individual can
// improve across episodes without a surrounding population.
type Individual struct {
	ID    string
	Genes []world.Direction

	// Scores filled in by the population manager during evaluation.
	ObjectiveScore float64
	NoveltyScore   float64
	CombinedScore  float64

	rng          *rand.Rand
	mutationRate float64

	cursor       int
	behavior     *agent.BehaviorRecord
	reward       float64
	collected    int
	goals        int
	arrived      bool
	lastCarrying int

	episode       int
	fitnessWindow []float64
	prevFitness   float64
	hasPrev       bool
	bestFitness   float64
	bestGenes     []world.Direction
	hasBest       bool
}

// NewIndividual builds an individual with a random genotype of the given
// length.
func NewIndividual(id string, length int, mutationRate float64, rng *rand.Rand) (*Individual, error) {
	if length <= 0 {
		return nil, fmt.Errorf("genotype length must be positive, got %d", length)
	}
	if mutationRate < 0 || mutationRate > 1 {
		return nil, fmt.Errorf("mutation rate must be in [0, 1], got %v", mutationRate)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	genes := make([]world.Direction, length)
	for i := range genes {
		genes[i] = geneAlphabet[rng.Intn(len(geneAlphabet))]
	}
	return &Individual{
		ID:           id,
		Genes:        genes,
		rng:          rng,
		mutationRate: mutationRate,
		behavior:     agent.NewBehaviorRecord(),
	}, nil
}

// Decide replays the gene under the cursor and advances it. Past the end of
// the genotype the individual idles without advancing.
func (ind *Individual) Decide(obs world.Observation) world.Action {
	if ind.cursor >= len(ind.Genes) {
		return world.StayAction()
	}
	gene := ind.Genes[ind.cursor]
	ind.cursor++
	return world.MoveAction(gene)
}

func (ind *Individual) Observe(obs world.Observation, reward float64) {
	ind.reward += reward
	if obs.Position != nil {
		ind.behavior.Visit(*obs.Position)
	}
	if obs.Carrying > ind.lastCarrying {
		ind.collected += obs.Carrying - ind.lastCarrying
	}
	ind.lastCarrying = obs.Carrying
	if obs.Goal != nil && obs.Goal.Reached && !ind.arrived {
		ind.arrived = true
		ind.goals++
	}
}

// Objective scores the finished episode: accumulated reward plus exploration
// and achievement bonuses, with a penalty for pacing in place.
func (ind *Individual) Objective() float64 {
	distinct := ind.behavior.Distinct()
	score := ind.reward + 2*float64(distinct) + 50*float64(ind.collected) + 200*float64(ind.goals)
	if path := ind.behavior.PathLen(); path > 0 && float64(distinct)/float64(path) < 0.3 {
		score -= 100
	}
	return score
}

// Behavior returns an independent copy of the episode's visited-cell set.
func (ind *Individual) Behavior() Behavior {
	return ind.behavior.Snapshot()
}

// EndEpisode adapts the genotype from the fitness trend:
//
//   - an episode below the trailing mean triggers an aggressive rewrite of
//     ~30% of the genes;
//   - otherwise the configured mutation rate applies, doubled after a
//     regression from the previous episode;
//   - falling under half of the best fitness ever seen restores half of the
//     genes from the best genotype;
//   - every 10th episode the genotype grows by 10 genes if the cursor ran
//     near its end, giving the lineage room to act longer.
func (ind *Individual) EndEpisode() {
	fitness := ind.Objective()
	ind.episode++

	if !ind.hasBest || fitness > ind.bestFitness {
		ind.bestFitness = fitness
		ind.bestGenes = append([]world.Direction(nil), ind.Genes...)
		ind.hasBest = true
	}

	if mean, ok := ind.trailingMean(); ok && fitness < mean {
		ind.mutateN(int(aggressiveMutationShare * float64(len(ind.Genes))))
	} else {
		ind.Mutate(ind.episodeRate(fitness))
	}

	if ind.hasBest && ind.bestFitness > 0 && fitness < 0.5*ind.bestFitness {
		ind.restoreFromBest()
	}

	if ind.episode%growthInterval == 0 && ind.cursor >= len(ind.Genes)-5 {
		for i := 0; i < growthGenes; i++ {
			ind.Genes = append(ind.Genes, geneAlphabet[ind.rng.Intn(len(geneAlphabet))])
		}
	}

	ind.fitnessWindow = append(ind.fitnessWindow, fitness)
	if len(ind.fitnessWindow) > fitnessWindowSize {
		ind.fitnessWindow = ind.fitnessWindow[len(ind.fitnessWindow)-fitnessWindowSize:]
	}
	ind.prevFitness = fitness
	ind.hasPrev = true
}

// episodeRate is the mutation rate for a non-aggressive episode: the
// configured rate, doubled (capped at 1) after a regression from the
// previous episode's fitness.
func (ind *Individual) episodeRate(fitness float64) float64 {
	rate := ind.mutationRate
	if ind.hasPrev && ind.prevFitness > fitness {
		rate *= 2
		if rate > 1 {
			rate = 1
		}
	}
	return rate
}

func (ind *Individual) trailingMean() (float64, bool) {
	if len(ind.fitnessWindow) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, f := range ind.fitnessWindow {
		sum += f
	}
	return sum / float64(len(ind.fitnessWindow)), true
}

// Mutate rewrites each gene independently with the given probability.
func (ind *Individual) Mutate(rate float64) {
	for i := range ind.Genes {
		if ind.rng.Float64() < rate {
			ind.Genes[i] = geneAlphabet[ind.rng.Intn(len(geneAlphabet))]
		}
	}
}

// mutateN rewrites n distinct gene positions.
func (ind *Individual) mutateN(n int) {
	if n > len(ind.Genes) {
		n = len(ind.Genes)
	}
	for _, i := range ind.rng.Perm(len(ind.Genes))[:n] {
		ind.Genes[i] = geneAlphabet[ind.rng.Intn(len(geneAlphabet))]
	}
}

// restoreFromBest copies half of the best genotype's genes back into the
// current one, at distinct positions within both genotypes' bounds.
func (ind *Individual) restoreFromBest() {
	limit := len(ind.Genes)
	if len(ind.bestGenes) < limit {
		limit = len(ind.bestGenes)
	}
	if limit == 0 {
		return
	}
	n := limit / 2
	if n == 0 {
		n = 1
	}
	for _, i := range ind.rng.Perm(limit)[:n] {
		ind.Genes[i] = ind.bestGenes[i]
	}
}

// Clone copies the genotype into a fresh individual with no episode history.
func (ind *Individual) Clone(id string) *Individual {
	return &Individual{
		ID:           id,
		Genes:        append([]world.Direction(nil), ind.Genes...),
		rng:          ind.rng,
		mutationRate: ind.mutationRate,
		behavior:     agent.NewBehaviorRecord(),
	}
}

// Reset clears episode state. The genotype, fitness window and best-genotype
// memory persist.
func (ind *Individual) Reset() {
	ind.cursor = 0
	ind.behavior.Reset()
	ind.reward = 0
	ind.collected = 0
	ind.goals = 0
	ind.arrived = false
	ind.lastCarrying = 0
	ind.ObjectiveScore = 0
	ind.NoveltyScore = 0
	ind.CombinedScore = 0
}

// BestFitness reports the best episode objective seen so far.
func (ind *Individual) BestFitness() (float64, bool) {
	return ind.bestFitness, ind.hasBest
}

// Cursor reports how many genes the current episode consumed.
func (ind *Individual) Cursor() int {
	return ind.cursor
}
