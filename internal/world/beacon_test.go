package world

import (
	"math/rand"
	"testing"
)

// emptyBeacon builds a beacon world and clears every obstacle so reward
// assertions are not layout-dependent.
func emptyBeacon(t *testing.T, width, height int, beacon Position) *Beacon {
	t.Helper()
	b, err := NewBeacon(width, height, beacon, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new beacon: %v", err)
	}
	b.obstacles = make(map[Position]bool)
	return b
}

func TestBeaconRejectsBadConfig(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := NewBeacon(0, 5, Position{}, rng); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := NewBeacon(5, 5, Position{X: 9, Y: 0}, rng); err == nil {
		t.Fatal("expected error for beacon outside grid")
	}
	if _, err := NewBeacon(5, 5, Position{}, nil); err == nil {
		t.Fatal("expected error for nil rng")
	}
}

func TestBeaconApproachAndRetreatRewards(t *testing.T) {
	b := emptyBeacon(t, 10, 10, Position{X: 5, Y: 5})
	if err := b.RegisterAgent("a1", Position{X: 2, Y: 5}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := b.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"}); got != 1.0 {
		t.Fatalf("approach reward = %v, want 1.0", got)
	}
	if got := b.Step(Action{Kind: ActMove, Direction: West, AgentID: "a1"}); got != -0.5 {
		t.Fatalf("retreat reward = %v, want -0.5", got)
	}
}

func TestBeaconArrivalRewardIsOneShot(t *testing.T) {
	b := emptyBeacon(t, 10, 10, Position{X: 3, Y: 5})
	if err := b.RegisterAgent("a1", Position{X: 2, Y: 5}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := b.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"}); got != 10.0 {
		t.Fatalf("arrival reward = %v, want 10.0", got)
	}
	if !b.Terminated() {
		t.Fatal("expected termination after the only agent arrived")
	}
	if got := b.Step(Action{Kind: ActMove, Direction: Stay, AgentID: "a1"}); got == 10.0 {
		t.Fatal("staying on the beacon must not repeat the arrival reward")
	}
}

func TestBeaconBoundaryMoveIsPenalized(t *testing.T) {
	b := emptyBeacon(t, 5, 5, Position{X: 4, Y: 4})
	if err := b.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := b.Step(Action{Kind: ActMove, Direction: North, AgentID: "a1"}); got != -0.2 {
		t.Fatalf("out-of-bounds reward = %v, want -0.2", got)
	}
	obs := b.Observe("a1")
	if obs.Position == nil || *obs.Position != (Position{X: 0, Y: 0}) {
		t.Fatalf("agent moved on a blocked step: %+v", obs.Position)
	}
}

func TestBeaconUnknownAgentStepIsNeutral(t *testing.T) {
	b := emptyBeacon(t, 5, 5, Position{X: 2, Y: 2})
	if got := b.Step(Action{Kind: ActMove, Direction: East, AgentID: "ghost"}); got != 0.0 {
		t.Fatalf("unknown agent reward = %v, want 0.0", got)
	}
}

func TestBeaconResetRestoresAgentsNotTerrain(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b, err := NewBeacon(12, 12, Position{X: 6, Y: 6}, rng)
	if err != nil {
		t.Fatalf("new beacon: %v", err)
	}
	if err := b.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	layout := make(map[Position]bool, len(b.obstacles))
	for pos := range b.obstacles {
		layout[pos] = true
	}

	b.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"})
	b.Tick()
	b.Reset()

	obs := b.Observe("a1")
	if *obs.Position != (Position{X: 0, Y: 0}) {
		t.Fatalf("reset did not restore start: %+v", obs.Position)
	}
	if obs.Step != 0 {
		t.Fatalf("reset did not clear step counter: %d", obs.Step)
	}
	if len(layout) != len(b.obstacles) {
		t.Fatalf("reset changed terrain: %d -> %d obstacles", len(layout), len(b.obstacles))
	}
}

func TestBeaconObserveSensesAdjacentObstacles(t *testing.T) {
	b := emptyBeacon(t, 5, 5, Position{X: 4, Y: 4})
	b.obstacles[Position{X: 2, Y: 1}] = true
	if err := b.RegisterAgent("a1", Position{X: 2, Y: 2}); err != nil {
		t.Fatalf("register: %v", err)
	}

	obs := b.Observe("a1")
	if obs.Obstacles == nil || !obs.Obstacles.North {
		t.Fatalf("expected north obstacle sensed: %+v", obs.Obstacles)
	}
	if obs.Obstacles.South || obs.Obstacles.East || obs.Obstacles.West {
		t.Fatalf("unexpected obstacle senses: %+v", obs.Obstacles)
	}
}
