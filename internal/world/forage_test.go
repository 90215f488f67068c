package world

import (
	"math/rand"
	"testing"
)

func newForage(t *testing.T) *Forage {
	t.Helper()
	f, err := NewForage(10, 10, 5, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("new forage: %v", err)
	}
	return f
}

func TestForageCollectAndDeposit(t *testing.T) {
	f := newForage(t)
	if err := f.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	state := f.agents["a1"]

	// No resource underfoot.
	delete(f.resources, state.pos)
	if got := f.Step(Action{Kind: ActCollect, AgentID: "a1"}); got != -0.2 {
		t.Fatalf("collect on empty cell = %v, want -0.2", got)
	}

	f.resources[state.pos] = true
	if got := f.Step(Action{Kind: ActCollect, AgentID: "a1"}); got != 2.0 {
		t.Fatalf("collect = %v, want 2.0", got)
	}
	if f.resources[state.pos] {
		t.Fatal("collected resource still on grid")
	}

	f.resources[state.pos] = true
	if got := f.Step(Action{Kind: ActCollect, AgentID: "a1"}); got != -0.5 {
		t.Fatalf("collect while loaded = %v, want -0.5", got)
	}

	// Deposit away from the nest, then at it.
	if got := f.Step(Action{Kind: ActDeposit, AgentID: "a1"}); got != -0.2 {
		t.Fatalf("deposit off nest = %v, want -0.2", got)
	}
	state.pos = f.nest
	if got := f.Step(Action{Kind: ActDeposit, AgentID: "a1"}); got != 6.0 {
		t.Fatalf("deposit of one resource = %v, want 6.0", got)
	}
	if got := f.Step(Action{Kind: ActDeposit, AgentID: "a1"}); got != -0.3 {
		t.Fatalf("empty deposit = %v, want -0.3", got)
	}
	if f.Deposited() != 1 {
		t.Fatalf("deposited = %d, want 1", f.Deposited())
	}
}

func TestForageMoveShapingFollowsErrand(t *testing.T) {
	f := newForage(t)
	if err := f.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	state := f.agents["a1"]
	f.obstacles = make(map[Position]bool)

	// Loaded: the nest at the grid center is the target.
	state.carrying = 1
	state.pos = Position{X: 0, Y: 5}
	if got := f.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"}); got != 0.5 {
		t.Fatalf("loaded approach = %v, want 0.5", got)
	}
	if got := f.Step(Action{Kind: ActMove, Direction: West, AgentID: "a1"}); got != -0.2 {
		t.Fatalf("loaded retreat = %v, want -0.2", got)
	}

	// Unloaded with no resources left: every legal move is near-neutral.
	state.carrying = 0
	f.resources = make(map[Position]bool)
	if got := f.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"}); got != 0.01 {
		t.Fatalf("targetless move = %v, want 0.01", got)
	}
}

func TestForageTickRegrowsResources(t *testing.T) {
	f := newForage(t)
	f.resources = make(map[Position]bool)
	f.obstacles = make(map[Position]bool)

	for i := 0; i < 19; i++ {
		f.Tick()
	}
	if len(f.resources) != 0 {
		t.Fatalf("resources regrew before the interval: %d", len(f.resources))
	}
	f.Tick()
	if len(f.resources) != 1 {
		t.Fatalf("resources after regrowth tick = %d, want 1", len(f.resources))
	}
}

func TestForageNeverTerminates(t *testing.T) {
	f := newForage(t)
	if f.Terminated() {
		t.Fatal("forage must run to the step ceiling")
	}
}

func TestForageResetRestoresResources(t *testing.T) {
	f := newForage(t)
	if err := f.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	initial := len(f.resources)

	for pos := range f.resources {
		delete(f.resources, pos)
		break
	}
	f.agents["a1"].carrying = 2
	f.deposited = 3
	f.Reset()

	if len(f.resources) != initial {
		t.Fatalf("reset resources = %d, want %d", len(f.resources), initial)
	}
	if f.agents["a1"].carrying != 0 || f.Deposited() != 0 {
		t.Fatal("reset did not clear agent load and deposit count")
	}
}
