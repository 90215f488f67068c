// Package evo implements novelty-search evolution over genotype-driven
// agents: behavior distance metrics, a behavior archive, a self-adapting
// single-lineage individual and a generational population manager.
package evo

import (
	"sort"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// Behavior is the unordered set of cells an agent visited in one episode.
type Behavior = map[world.Position]struct{}

// JaccardDistance measures behavioral dissimilarity as 1 minus the Jaccard
// index of the two visited-cell sets. Two empty behaviors are identical,
// distance 0.
func JaccardDistance(a, b Behavior) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for pos := range a {
		if _, ok := b[pos]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return 1 - float64(intersection)/float64(union)
}

// Novelty scores a behavior as the mean distance to its k nearest neighbors
// in the archive. With an empty archive every non-empty behavior is maximally
// novel; an empty behavior scores 0.
func Novelty(behavior Behavior, archive []Behavior, k int) float64 {
	if len(archive) == 0 {
		if len(behavior) == 0 {
			return 0
		}
		return 1
	}
	if k > len(archive) {
		k = len(archive)
	}
	if k < 1 {
		k = 1
	}

	distances := make([]float64, len(archive))
	for i, other := range archive {
		distances[i] = JaccardDistance(behavior, other)
	}
	sort.Float64s(distances)

	sum := 0.0
	for _, d := range distances[:k] {
		sum += d
	}
	return sum / float64(k)
}

// Combined blends novelty and objective fitness with the given novelty
// weight in [0, 1].
func Combined(novelty, objective, weight float64) float64 {
	return novelty*weight + objective*(1-weight)
}
