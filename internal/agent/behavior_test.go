package agent

import (
	"testing"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

func TestBehaviorRecordCountsDistinctAndPath(t *testing.T) {
	b := NewBehaviorRecord()
	b.Visit(world.Position{X: 0, Y: 0})
	b.Visit(world.Position{X: 1, Y: 0})
	b.Visit(world.Position{X: 0, Y: 0})

	if b.Distinct() != 2 {
		t.Fatalf("distinct = %d, want 2", b.Distinct())
	}
	if b.PathLen() != 3 {
		t.Fatalf("path = %d, want 3", b.PathLen())
	}
}

func TestBehaviorSnapshotIsIndependent(t *testing.T) {
	b := NewBehaviorRecord()
	b.Visit(world.Position{X: 2, Y: 3})
	snap := b.Snapshot()

	b.Reset()
	if len(snap) != 1 {
		t.Fatalf("snapshot changed after reset: %d entries", len(snap))
	}
	if b.Distinct() != 0 || b.PathLen() != 0 {
		t.Fatal("reset did not clear the record")
	}
}
