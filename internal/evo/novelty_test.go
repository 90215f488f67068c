package evo

import (
	"math"
	"testing"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

func behaviorOf(cells ...world.Position) Behavior {
	b := make(Behavior, len(cells))
	for _, c := range cells {
		b[c] = struct{}{}
	}
	return b
}

func TestJaccardDistanceBoundaries(t *testing.T) {
	a := behaviorOf(world.Position{X: 0, Y: 0}, world.Position{X: 1, Y: 0})
	b := behaviorOf(world.Position{X: 2, Y: 2})

	if got := JaccardDistance(a, a); got != 0 {
		t.Fatalf("identical sets = %v, want 0", got)
	}
	if got := JaccardDistance(a, b); got != 1 {
		t.Fatalf("disjoint sets = %v, want 1", got)
	}
	if got := JaccardDistance(nil, nil); got != 0 {
		t.Fatalf("both empty = %v, want 0", got)
	}

	// One shared cell of three total.
	c := behaviorOf(world.Position{X: 0, Y: 0}, world.Position{X: 5, Y: 5})
	if got := JaccardDistance(a, c); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Fatalf("partial overlap = %v, want 2/3", got)
	}
}

func TestNoveltyAgainstEmptyArchive(t *testing.T) {
	b := behaviorOf(world.Position{X: 1, Y: 1})
	if got := Novelty(b, nil, 3); got != 1 {
		t.Fatalf("non-empty behavior vs empty archive = %v, want 1", got)
	}
	if got := Novelty(nil, nil, 3); got != 0 {
		t.Fatalf("empty behavior vs empty archive = %v, want 0", got)
	}
}

func TestNoveltyUsesKNearestCappedAtArchiveSize(t *testing.T) {
	b := behaviorOf(world.Position{X: 0, Y: 0})
	archive := []Behavior{
		behaviorOf(world.Position{X: 0, Y: 0}),                           // distance 0
		behaviorOf(world.Position{X: 0, Y: 0}, world.Position{X: 1, Y: 0}), // distance 1/2
		behaviorOf(world.Position{X: 9, Y: 9}),                           // distance 1
	}

	if got := Novelty(b, archive, 2); math.Abs(got-0.25) > 1e-12 {
		t.Fatalf("k=2 novelty = %v, want 0.25", got)
	}
	// k larger than the archive uses the whole archive.
	if got := Novelty(b, archive, 10); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("capped novelty = %v, want 0.5", got)
	}
}

func TestCombinedBlending(t *testing.T) {
	if got := Combined(1.0, 10.0, 0.5); got != 5.5 {
		t.Fatalf("combined = %v, want 5.5", got)
	}
	if got := Combined(1.0, 10.0, 0); got != 10.0 {
		t.Fatalf("objective-only combined = %v, want 10", got)
	}
	if got := Combined(1.0, 10.0, 1); got != 1.0 {
		t.Fatalf("novelty-only combined = %v, want 1", got)
	}
}

func TestArchiveAddCopies(t *testing.T) {
	archive := NewArchive()
	b := behaviorOf(world.Position{X: 1, Y: 1})
	archive.Add(b)
	b[world.Position{X: 2, Y: 2}] = struct{}{}

	if len(archive.Entries()[0]) != 1 {
		t.Fatal("archive entry aliases the caller's behavior")
	}
	if archive.Len() != 1 {
		t.Fatalf("archive len = %d, want 1", archive.Len())
	}
}
