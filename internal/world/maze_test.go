package world

import (
	"math/rand"
	"testing"
)

func emptyMaze(t *testing.T, width, height int) *Maze {
	t.Helper()
	m, err := NewMaze(width, height, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("new maze: %v", err)
	}
	m.walls = make(map[Position]bool)
	return m
}

func TestMazeExitReward(t *testing.T) {
	m := emptyMaze(t, 5, 5)
	if err := m.RegisterAgent("a1", Position{X: 3, Y: 4}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if got := m.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"}); got != 100.0 {
		t.Fatalf("exit reward = %v, want 100.0", got)
	}
	if !m.Terminated() {
		t.Fatal("expected termination at the exit")
	}
	if got := m.Step(Action{Kind: ActMove, Direction: Stay, AgentID: "a1"}); got == 100.0 {
		t.Fatal("staying at the exit must not repeat the exit reward")
	}
}

func TestMazeWallBump(t *testing.T) {
	m := emptyMaze(t, 5, 5)
	m.walls[Position{X: 1, Y: 0}] = true
	if err := m.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := m.Step(Action{Kind: ActMove, Direction: East, AgentID: "a1"}); got != -0.5 {
		t.Fatalf("wall bump = %v, want -0.5", got)
	}
}

func TestMazeProgressRewards(t *testing.T) {
	m := emptyMaze(t, 5, 5)
	if err := m.RegisterAgent("a1", Position{X: 0, Y: 0}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if got := m.Step(Action{Kind: ActMove, Direction: South, AgentID: "a1"}); got != 2.0 {
		t.Fatalf("progress = %v, want 2.0", got)
	}
	if got := m.Step(Action{Kind: ActMove, Direction: North, AgentID: "a1"}); got != -1.0 {
		t.Fatalf("regress = %v, want -1.0", got)
	}
}

func TestMazeRegisterClearsWallAtStart(t *testing.T) {
	m := emptyMaze(t, 5, 5)
	m.walls[Position{X: 1, Y: 1}] = true
	if err := m.RegisterAgent("a1", Position{X: 1, Y: 1}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if m.walls[Position{X: 1, Y: 1}] {
		t.Fatal("start cell still walled after registration")
	}
	if err := m.RegisterAgent("a1", Position{X: 0, Y: 0}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}
