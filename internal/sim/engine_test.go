package sim

import (
	"context"
	"fmt"
	"testing"

	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// scriptEnv is a minimal deterministic environment for runner tests. It
// rewards every action with 1.0 and terminates after terminateAt steps when
// set.
type scriptEnv struct {
	agents      map[string]world.Position
	stepLog     []string
	ticks       int
	terminateAt int
	resets      int
}

func newScriptEnv(terminateAt int) *scriptEnv {
	return &scriptEnv{agents: make(map[string]world.Position), terminateAt: terminateAt}
}

func (s *scriptEnv) Name() string { return "script" }

func (s *scriptEnv) RegisterAgent(agentID string, start world.Position) error {
	if _, ok := s.agents[agentID]; ok {
		return fmt.Errorf("agent already registered: %s", agentID)
	}
	s.agents[agentID] = start
	return nil
}

func (s *scriptEnv) Observe(agentID string) world.Observation {
	pos, ok := s.agents[agentID]
	if !ok {
		return world.Observation{AgentID: agentID, Step: s.ticks}
	}
	return world.Observation{AgentID: agentID, Step: s.ticks, Position: &pos}
}

func (s *scriptEnv) Step(action world.Action) float64 {
	if _, ok := s.agents[action.AgentID]; !ok {
		return 0.0
	}
	s.stepLog = append(s.stepLog, action.AgentID)
	return 1.0
}

func (s *scriptEnv) Tick() { s.ticks++ }

func (s *scriptEnv) Terminated() bool {
	return s.terminateAt > 0 && s.ticks >= s.terminateAt
}

func (s *scriptEnv) Reset() {
	s.ticks = 0
	s.resets++
}

// countingPolicy records lifecycle calls and optionally stops the engine
// after a number of decisions.
type countingPolicy struct {
	decides     int
	observes    int
	endEpisodes int
	resets      int
	rewardSum   float64

	stopAfter int
	engine    *Engine
}

func (p *countingPolicy) Decide(obs world.Observation) world.Action {
	p.decides++
	if p.stopAfter > 0 && p.decides >= p.stopAfter && p.engine != nil {
		p.engine.Stop()
	}
	return world.StayAction()
}

func (p *countingPolicy) Observe(obs world.Observation, reward float64) {
	p.observes++
	p.rewardSum += reward
}

func (p *countingPolicy) EndEpisode() { p.endEpisodes++ }
func (p *countingPolicy) Reset()      { p.resets++ }

func TestEngineValidatesConfig(t *testing.T) {
	env := newScriptEnv(0)
	policy := &countingPolicy{}

	if _, err := NewEngine(EngineConfig{Agents: []AgentSlot{{ID: "a", Policy: policy}}, Episodes: 1, StepCeiling: 1}); err == nil {
		t.Fatal("expected error for missing environment")
	}
	if _, err := NewEngine(EngineConfig{Env: env, Episodes: 1, StepCeiling: 1}); err == nil {
		t.Fatal("expected error for empty roster")
	}
	if _, err := NewEngine(EngineConfig{
		Env:         env,
		Agents:      []AgentSlot{{ID: "a", Policy: policy}, {ID: "a", Policy: policy}},
		Episodes:    1,
		StepCeiling: 1,
	}); err == nil {
		t.Fatal("expected error for duplicate agent id")
	}
}

func TestEngineKeepsFixedAgentOrder(t *testing.T) {
	env := newScriptEnv(0)
	first := &countingPolicy{}
	second := &countingPolicy{}

	engine, err := NewEngine(EngineConfig{
		Env: env,
		Agents: []AgentSlot{
			{ID: "first", Policy: first},
			{ID: "second", Policy: second},
		},
		Episodes:    1,
		StepCeiling: 3,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"first", "second", "first", "second", "first", "second"}
	if len(env.stepLog) != len(want) {
		t.Fatalf("step log %v", env.stepLog)
	}
	for i := range want {
		if env.stepLog[i] != want[i] {
			t.Fatalf("step log order %v, want %v", env.stepLog, want)
		}
	}
	if env.ticks != 3 {
		t.Fatalf("ticks = %d, want one per step", env.ticks)
	}
}

func TestEngineEpisodeLifecycle(t *testing.T) {
	env := newScriptEnv(0)
	policy := &countingPolicy{}

	engine, err := NewEngine(EngineConfig{
		Env:         env,
		Agents:      []AgentSlot{{ID: "a", Policy: policy}},
		Episodes:    3,
		StepCeiling: 4,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if policy.endEpisodes != 3 || policy.resets != 3 {
		t.Fatalf("lifecycle calls: end=%d reset=%d, want 3/3", policy.endEpisodes, policy.resets)
	}
	// One initial observation plus one per step, per episode.
	if policy.observes != 3*(4+1) {
		t.Fatalf("observes = %d, want 15", policy.observes)
	}
	if env.resets != 2 {
		t.Fatalf("env resets = %d, want between-episode resets only", env.resets)
	}

	history := engine.History()
	if len(history) != 3 {
		t.Fatalf("history = %d episodes, want 3", len(history))
	}
	for _, ep := range history {
		if ep.Steps != 4 || ep.Terminated {
			t.Fatalf("episode record %+v", ep)
		}
		if ep.Rewards["a"] != 4.0 {
			t.Fatalf("episode reward = %v, want 4.0", ep.Rewards["a"])
		}
	}
	if engine.State() != StateFinished {
		t.Fatalf("state = %v, want finished", engine.State())
	}
}

func TestEngineStopsAtTermination(t *testing.T) {
	env := newScriptEnv(2)
	policy := &countingPolicy{}

	engine, err := NewEngine(EngineConfig{
		Env:         env,
		Agents:      []AgentSlot{{ID: "a", Policy: policy}},
		Episodes:    1,
		StepCeiling: 100,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	history := engine.History()
	if history[0].Steps != 2 || !history[0].Terminated {
		t.Fatalf("episode record %+v, want termination after 2 steps", history[0])
	}
}

func TestEngineStopEndsRunEarly(t *testing.T) {
	env := newScriptEnv(0)
	policy := &countingPolicy{stopAfter: 5}

	engine, err := NewEngine(EngineConfig{
		Env:         env,
		Agents:      []AgentSlot{{ID: "a", Policy: policy}},
		Episodes:    10,
		StepCeiling: 100,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	policy.engine = engine

	if err := engine.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(engine.History()) != 1 {
		t.Fatalf("stopped run recorded %d episodes, want 1", len(engine.History()))
	}
	if engine.State() != StateFinished {
		t.Fatalf("state = %v, want finished", engine.State())
	}
}

func TestEngineHonorsContextCancellation(t *testing.T) {
	env := newScriptEnv(0)
	policy := &countingPolicy{}

	engine, err := NewEngine(EngineConfig{
		Env:         env,
		Agents:      []AgentSlot{{ID: "a", Policy: policy}},
		Episodes:    5,
		StepCeiling: 100,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := engine.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
