package evo

import (
	"math/rand"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// Tournament samples size distinct individuals and returns the one with the
// highest combined score. A tournament larger than the population degrades
// to picking the population's best.
func Tournament(pop []*Individual, size int, rng *rand.Rand) *Individual {
	if size > len(pop) {
		size = len(pop)
	}
	var best *Individual
	for _, i := range rng.Perm(len(pop))[:size] {
		if best == nil || pop[i].CombinedScore > best.CombinedScore {
			best = pop[i]
		}
	}
	return best
}

// Crossover recombines two parents at a single cut point, producing two
// children with swapped tails. Genotypes too short to cut yield plain
// clones. Parents are never mutated.
func Crossover(a, b *Individual, idA, idB string, rng *rand.Rand) (*Individual, *Individual) {
	length := len(a.Genes)
	if len(b.Genes) < length {
		length = len(b.Genes)
	}
	if length < 2 {
		return a.Clone(idA), b.Clone(idB)
	}

	cut := 1 + rng.Intn(length-1)

	childA := a.Clone(idA)
	childB := b.Clone(idB)
	childA.Genes = crossGenes(a.Genes, b.Genes, cut)
	childB.Genes = crossGenes(b.Genes, a.Genes, cut)
	return childA, childB
}

func crossGenes(head, tail []world.Direction, cut int) []world.Direction {
	out := make([]world.Direction, 0, cut+len(tail)-cut)
	out = append(out, head[:cut]...)
	out = append(out, tail[cut:]...)
	return out
}
