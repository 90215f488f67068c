package sim

import (
	"fmt"
	"math/rand"

	"github.com/SenasCodes/AA-Projeto/internal/agent"
	"github.com/SenasCodes/AA-Projeto/internal/evo"
	"github.com/SenasCodes/AA-Projeto/internal/rl"
	"github.com/SenasCodes/AA-Projeto/internal/world"
)

// BuildEngine assembles an engine from a validated scenario config: the
// environment, one policy per agent entry, and the episode schedule.
func BuildEngine(cfg *SimulationConfig) (*Engine, error) {
	env, err := BuildEnvironment(cfg.Environment, cfg.Seed)
	if err != nil {
		return nil, err
	}

	slots := make([]AgentSlot, 0, len(cfg.Agents))
	for i, ac := range cfg.Agents {
		policy, err := buildPolicy(ac, cfg.Seed+int64(i)+1)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", ac.ID, err)
		}
		slots = append(slots, AgentSlot{
			ID:     ac.ID,
			Policy: policy,
			Start:  world.Position{X: ac.Start.X, Y: ac.Start.Y},
		})
	}

	return NewEngine(EngineConfig{
		Env:         env,
		Agents:      slots,
		Episodes:    cfg.Episodes,
		StepCeiling: cfg.StepCeiling,
	})
}

// BuildEnvironment constructs the environment a scenario names, seeded for
// repeatable terrain.
func BuildEnvironment(ec EnvironmentConfig, seed int64) (world.Environment, error) {
	rng := rand.New(rand.NewSource(seed))
	switch ec.Type {
	case EnvBeacon:
		beacon := world.Position{X: ec.Width / 2, Y: ec.Height / 2}
		if ec.Beacon != nil {
			beacon = world.Position{X: ec.Beacon.X, Y: ec.Beacon.Y}
		}
		return world.NewBeacon(ec.Width, ec.Height, beacon, rng)
	case EnvForage:
		resources := ec.Resources
		if resources == 0 {
			resources = (ec.Width * ec.Height) / 20
		}
		return world.NewForage(ec.Width, ec.Height, resources, rng)
	case EnvMaze:
		return world.NewMaze(ec.Width, ec.Height, rng)
	default:
		return nil, fmt.Errorf("unknown environment type: %q", ec.Type)
	}
}

func buildPolicy(ac AgentConfig, seed int64) (agent.Policy, error) {
	switch ac.Type {
	case AgentQLearning:
		policy, err := buildQLearning(ac, seed)
		if err != nil {
			return nil, err
		}
		return policy, nil
	case AgentReactive:
		return agent.NewReactive(rand.New(rand.NewSource(seed))), nil
	case AgentGenotype:
		length := int(ac.param("genotype_length", 50))
		rate := ac.param("mutation_rate", 0.1)
		individual, err := evo.NewIndividual(ac.ID, length, rate, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return individual, nil
	default:
		return nil, fmt.Errorf("unknown agent type: %q", ac.Type)
	}
}

func buildQLearning(ac AgentConfig, seed int64) (*rl.QLearning, error) {
	qc := rl.DefaultQConfig()
	qc.Alpha = ac.param("alpha", qc.Alpha)
	qc.Gamma = ac.param("gamma", qc.Gamma)
	qc.Epsilon = ac.param("epsilon", qc.Epsilon)
	qc.EpsilonMin = ac.param("epsilon_min", qc.EpsilonMin)
	qc.EpsilonDecay = ac.param("epsilon_decay", qc.EpsilonDecay)
	qc.Temperature = ac.param("temperature", qc.Temperature)
	if ac.Exploration != "" {
		qc.Exploration = ac.Exploration
	}
	qc.Seed = uint64(seed)

	policy, err := rl.NewQLearning(qc)
	if err != nil {
		return nil, err
	}
	if ac.TablePath != "" {
		if err := policy.LoadTable(ac.TablePath); err != nil {
			return nil, fmt.Errorf("load q-table %s: %w", ac.TablePath, err)
		}
	}
	switch ac.Mode {
	case "", string(rl.ModeLearning):
		policy.SetMode(rl.ModeLearning)
	case string(rl.ModeEvaluation):
		policy.SetMode(rl.ModeEvaluation)
	default:
		return nil, fmt.Errorf("unknown mode: %q", ac.Mode)
	}
	return policy, nil
}
