package rl

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/SenasCodes/AA-Projeto/internal/agent"
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// Mode selects whether the policy updates its table and explores.
type Mode string

const (
	// ModeLearning applies temporal-difference updates and explores with the
	// current epsilon (or temperature).
	ModeLearning Mode = "learning"
	// ModeEvaluation freezes the table and acts greedily.
	ModeEvaluation Mode = "evaluation"
)

// Exploration strategies for learning mode.
const (
	ExploreEpsilonGreedy = "epsilon-greedy"
	ExploreSoftmax       = "softmax"
)

// QConfig holds the Q-learning hyperparameters.
type QConfig struct {
	Alpha        float64
	Gamma        float64
	Epsilon      float64
	EpsilonMin   float64
	EpsilonDecay float64
	Exploration  string
	Temperature  float64
	Seed         uint64
}

func DefaultQConfig() QConfig {
	return QConfig{
		Alpha:        0.1,
		Gamma:        0.9,
		Epsilon:      0.3,
		EpsilonMin:   0.05,
		EpsilonDecay: 0.995,
		Exploration:  ExploreEpsilonGreedy,
		Temperature:  1.0,
		Seed:         1,
	}
}

func (c QConfig) validate() error {
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0, 1], got %v", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must be in [0, 1), got %v", c.Gamma)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0, 1], got %v", c.Epsilon)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf("epsilon_min must be in [0, epsilon], got %v", c.EpsilonMin)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon_decay must be in (0, 1], got %v", c.EpsilonDecay)
	}
	switch c.Exploration {
	case ExploreEpsilonGreedy, ExploreSoftmax:
	default:
		return fmt.Errorf("unknown exploration strategy: %q", c.Exploration)
	}
	if c.Exploration == ExploreSoftmax && c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %v", c.Temperature)
	}
	return nil
}

// EpisodeStats summarizes one finished episode of a QLearning policy.
type EpisodeStats struct {
	Reward  float64
	Steps   int
	Epsilon float64
}

// QLearning is a tabular Q-learning policy over abstracted states. One
// instance drives one agent; the table may be exported, persisted and loaded
// back for evaluation runs.
type QLearning struct {
	cfg   QConfig
	table *QTable
	rng   *rand.Rand
	mode  Mode

	epsilon float64

	// pending is the (state, action) pair awaiting its reward.
	pendingState  string
	pendingAction string
	hasPending    bool

	episodeReward float64
	episodeSteps  int
	history       []EpisodeStats
}

func NewQLearning(cfg QConfig) (*QLearning, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid q-learning config: %w", err)
	}
	return &QLearning{
		cfg:     cfg,
		table:   NewQTable(),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		mode:    ModeLearning,
		epsilon: cfg.Epsilon,
	}, nil
}

// SetMode switches between learning and evaluation. Evaluation pins epsilon
// to 0 so behavior is fully greedy and repeatable.
func (p *QLearning) SetMode(mode Mode) {
	p.mode = mode
	if mode == ModeEvaluation {
		p.epsilon = 0
	}
}

func (p *QLearning) Mode() Mode       { return p.mode }
func (p *QLearning) Epsilon() float64 { return p.epsilon }
func (p *QLearning) Table() *QTable   { return p.table }

func (p *QLearning) History() []EpisodeStats {
	out := make([]EpisodeStats, len(p.history))
	copy(out, p.history)
	return out
}

func (p *QLearning) Decide(obs world.Observation) world.Action {
	if obs.Goal != nil && obs.Goal.Reached {
		p.hasPending = false
		return world.StayAction()
	}

	valid := validMoveNames(obs.Obstacles)
	if len(valid) == 0 {
		p.hasPending = false
		return world.StayAction()
	}

	state := Abstract(obs)
	var actionName string
	if p.mode == ModeLearning && p.cfg.Exploration == ExploreSoftmax {
		actionName = p.softmaxAction(state, valid)
	} else if p.mode == ModeLearning && p.rng.Float64() < p.epsilon {
		actionName = p.exploreAction(obs, valid)
	} else {
		actionName = p.exploitAction(state, valid)
	}

	p.pendingState = state
	p.pendingAction = actionName
	p.hasPending = true

	return world.MoveAction(directionByName(actionName))
}

// exploreAction biases exploration toward the goal: goal-closing directions
// that are unblocked are tried first, then any unblocked move.
func (p *QLearning) exploreAction(obs world.Observation, valid []string) string {
	if obs.Goal != nil {
		for _, dir := range agent.PreferredDirections(obs.Goal.Direction.DX, obs.Goal.Direction.DY) {
			if obs.Obstacles == nil || !obs.Obstacles.Blocked(dir) {
				if p.rng.Float64() < 0.5 {
					return dir.String()
				}
			}
		}
	}
	return valid[p.rng.Intn(len(valid))]
}

func (p *QLearning) exploitAction(state string, valid []string) string {
	name, _ := p.table.MaxAmong(state, valid)
	return name
}

// softmaxAction samples a move with Boltzmann weights exp(Q/temperature)
// over the unblocked moves.
func (p *QLearning) softmaxAction(state string, valid []string) string {
	row := p.table.EnsureRow(state)

	weights := make([]float64, len(valid))
	for i, name := range valid {
		weights[i] = math.Exp(row[name] / p.cfg.Temperature)
	}
	sampler := sampleuv.NewWeighted(weights, p.rng)
	idx, ok := sampler.Take()
	if !ok {
		idx = p.rng.Intn(len(valid))
	}
	return valid[idx]
}

// Observe applies the temporal-difference update for the pending pair. The
// first observation of an episode arrives before any decision and is a
// no-op beyond bookkeeping.
func (p *QLearning) Observe(obs world.Observation, reward float64) {
	if p.hasPending {
		p.episodeReward += reward
		p.episodeSteps++
	}

	if p.mode != ModeLearning || !p.hasPending {
		return
	}

	next := Abstract(obs)
	current := p.table.Get(p.pendingState, p.pendingAction)
	target := reward + p.cfg.Gamma*p.table.Max(next)
	p.table.Set(p.pendingState, p.pendingAction, current+p.cfg.Alpha*(target-current))
	p.hasPending = false
}

func (p *QLearning) EndEpisode() {
	p.history = append(p.history, EpisodeStats{
		Reward:  p.episodeReward,
		Steps:   p.episodeSteps,
		Epsilon: p.epsilon,
	})
	if p.mode == ModeLearning {
		p.epsilon *= p.cfg.EpsilonDecay
		if p.epsilon < p.cfg.EpsilonMin {
			p.epsilon = p.cfg.EpsilonMin
		}
	}
}

func (p *QLearning) Reset() {
	p.hasPending = false
	p.pendingState = ""
	p.pendingAction = ""
	p.episodeReward = 0
	p.episodeSteps = 0
}

// ExportTable returns a deep copy of the learned table.
func (p *QLearning) ExportTable() map[string]map[string]float64 {
	return p.table.Snapshot()
}

// ImportTable replaces the table with a deep copy of values.
func (p *QLearning) ImportTable(values map[string]map[string]float64) {
	p.table.Restore(values)
}

// SaveTable writes the table as JSON to path.
func (p *QLearning) SaveTable(path string) error {
	data, err := json.MarshalIndent(p.table.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode q-table: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write q-table: %w", err)
	}
	return nil
}

// LoadTable reads a JSON table from path. A missing or unreadable file is
// not an error: the policy starts over with an empty table in learning mode.
func (p *QLearning) LoadTable(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		p.table = NewQTable()
		p.SetMode(ModeLearning)
		return nil
	}
	var values map[string]map[string]float64
	if err := json.Unmarshal(data, &values); err != nil {
		p.table = NewQTable()
		p.SetMode(ModeLearning)
		return nil
	}
	p.table.Restore(values)
	return nil
}

// validMoveNames returns the unblocked moves; empty when the agent is boxed
// in, in which case the only sensible action is to stay.
func validMoveNames(sense *world.ObstacleSense) []string {
	out := make([]string, 0, len(world.Moves))
	for _, dir := range world.Moves {
		if sense == nil || !sense.Blocked(dir) {
			out = append(out, dir.String())
		}
	}
	return out
}

func directionByName(name string) world.Direction {
	for _, dir := range world.Moves {
		if dir.String() == name {
			return dir
		}
	}
	return world.Stay
}
