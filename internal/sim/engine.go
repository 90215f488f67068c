// Package sim drives policies against an environment episode by episode:
// a synchronous stepped runner with pause/stop control and per-episode
// metric records.
package sim

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SenasCodes/AA-Projeto/internal/agent"
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// State is the lifecycle of an Engine.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// AgentSlot binds a policy to its identity and start position. Slot order is
// the fixed turn order within every step.
type AgentSlot struct {
	ID     string
	Policy agent.Policy
	Start  world.Position
}

// EngineConfig wires an environment, its agents and the episode schedule.
type EngineConfig struct {
	Env         world.Environment
	Agents      []AgentSlot
	Episodes    int
	StepCeiling int
}

// EpisodeRecord is the per-episode outcome kept in the run history.
type EpisodeRecord struct {
	Episode    int
	Steps      int
	Rewards    map[string]float64
	Terminated bool
}

// Engine runs a fixed roster of agents through a sequence of episodes. Run
// is single-threaded; Pause, Resume and Stop may be called from other
// goroutines and take effect at the next step boundary.
type Engine struct {
	cfg EngineConfig

	state  atomic.Int32
	stop   atomic.Bool
	paused atomic.Bool

	mu      sync.Mutex
	history []EpisodeRecord
}

// pausePoll is how often a paused Run re-checks its flags.
const pausePoll = time.Millisecond

func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Env == nil {
		return nil, fmt.Errorf("environment is required")
	}
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("at least one agent is required")
	}
	if cfg.Episodes <= 0 {
		return nil, fmt.Errorf("episodes must be positive, got %d", cfg.Episodes)
	}
	if cfg.StepCeiling <= 0 {
		return nil, fmt.Errorf("step ceiling must be positive, got %d", cfg.StepCeiling)
	}

	seen := make(map[string]bool, len(cfg.Agents))
	for _, slot := range cfg.Agents {
		if slot.Policy == nil {
			return nil, fmt.Errorf("agent %s: policy is required", slot.ID)
		}
		if seen[slot.ID] {
			return nil, fmt.Errorf("duplicate agent id: %s", slot.ID)
		}
		seen[slot.ID] = true
		if err := cfg.Env.RegisterAgent(slot.ID, slot.Start); err != nil {
			return nil, fmt.Errorf("register agent %s: %w", slot.ID, err)
		}
	}

	e := &Engine{cfg: cfg}
	e.state.Store(int32(StateIdle))
	return e, nil
}

func (e *Engine) State() State {
	return State(e.state.Load())
}

// Stop requests termination at the next step boundary.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

// Pause suspends the run at the next step boundary until Resume or Stop.
func (e *Engine) Pause() {
	e.paused.Store(true)
}

func (e *Engine) Resume() {
	e.paused.Store(false)
}

// History returns a copy of the per-episode records gathered so far.
func (e *Engine) History() []EpisodeRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]EpisodeRecord, len(e.history))
	copy(out, e.history)
	return out
}

// Run executes the configured episodes in order. It returns early on Stop or
// context cancellation; either way the history reflects every episode that
// completed.
func (e *Engine) Run(ctx context.Context) error {
	e.state.Store(int32(StateRunning))
	defer e.state.Store(int32(StateFinished))

	for episode := 0; episode < e.cfg.Episodes; episode++ {
		if episode > 0 {
			e.cfg.Env.Reset()
		}
		stopped, err := e.runEpisode(ctx, episode)
		for _, slot := range e.cfg.Agents {
			slot.Policy.EndEpisode()
			slot.Policy.Reset()
		}
		if err != nil {
			return err
		}
		if stopped {
			return nil
		}
	}
	return nil
}

func (e *Engine) runEpisode(ctx context.Context, episode int) (stopped bool, err error) {
	env := e.cfg.Env
	lastObs := make(map[string]world.Observation, len(e.cfg.Agents))
	rewards := make(map[string]float64, len(e.cfg.Agents))

	for _, slot := range e.cfg.Agents {
		obs := env.Observe(slot.ID)
		slot.Policy.Observe(obs, 0)
		lastObs[slot.ID] = obs
		rewards[slot.ID] = 0
	}

	steps := 0
	defer func() {
		e.mu.Lock()
		e.history = append(e.history, EpisodeRecord{
			Episode:    episode,
			Steps:      steps,
			Rewards:    rewards,
			Terminated: env.Terminated(),
		})
		e.mu.Unlock()
	}()

	for steps < e.cfg.StepCeiling && !env.Terminated() {
		if done, err := e.checkpoint(ctx); done || err != nil {
			return done, err
		}

		for _, slot := range e.cfg.Agents {
			action := slot.Policy.Decide(lastObs[slot.ID])
			action.AgentID = slot.ID
			reward := env.Step(action)

			obs := env.Observe(slot.ID)
			slot.Policy.Observe(obs, reward)
			lastObs[slot.ID] = obs
			rewards[slot.ID] += reward
		}
		env.Tick()
		steps++
	}
	return false, nil
}

// checkpoint handles stop, pause and cancellation between steps.
func (e *Engine) checkpoint(ctx context.Context) (stopped bool, err error) {
	for {
		if e.stop.Load() {
			return true, nil
		}
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if !e.paused.Load() {
			e.state.Store(int32(StateRunning))
			return false, nil
		}
		e.state.Store(int32(StatePaused))
		time.Sleep(pausePoll)
	}
}
