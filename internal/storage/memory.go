package storage

import (
	"context"
	"sync"

	"github.com/SenasCodes/AA-Projeto/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	qtables     map[string]model.QTableRecord
	runs        map[string]model.RunRecord
	genotypes   map[string]model.GenotypeRecord
	evolutions  map[string]model.EvolutionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.qtables = make(map[string]model.QTableRecord)
	s.runs = make(map[string]model.RunRecord)
	s.genotypes = make(map[string]model.GenotypeRecord)
	s.evolutions = make(map[string]model.EvolutionRecord)
	return nil
}

func (s *MemoryStore) SaveQTable(_ context.Context, record model.QTableRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[string]map[string]float64, len(record.States))
	for state, row := range record.States {
		copied := make(map[string]float64, len(row))
		for action, value := range row {
			copied[action] = value
		}
		states[state] = copied
	}
	record.States = states
	s.qtables[record.ID] = record
	return nil
}

func (s *MemoryStore) GetQTable(_ context.Context, id string) (model.QTableRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.qtables[id]
	if !ok {
		return model.QTableRecord{}, false, nil
	}
	states := make(map[string]map[string]float64, len(record.States))
	for state, row := range record.States {
		copied := make(map[string]float64, len(row))
		for action, value := range row {
			copied[action] = value
		}
		states[state] = copied
	}
	record.States = states
	return record, true, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, record model.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Episodes = append([]model.EpisodeRecord(nil), record.Episodes...)
	s.runs[record.ID] = record
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (model.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.runs[id]
	if !ok {
		return model.RunRecord{}, false, nil
	}
	record.Episodes = append([]model.EpisodeRecord(nil), record.Episodes...)
	return record, true, nil
}

func (s *MemoryStore) SaveGenotype(_ context.Context, record model.GenotypeRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Genes = append([]string(nil), record.Genes...)
	s.genotypes[record.ID] = record
	return nil
}

func (s *MemoryStore) GetGenotype(_ context.Context, id string) (model.GenotypeRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.genotypes[id]
	if !ok {
		return model.GenotypeRecord{}, false, nil
	}
	record.Genes = append([]string(nil), record.Genes...)
	return record, true, nil
}

func (s *MemoryStore) SaveEvolution(_ context.Context, record model.EvolutionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.Generations = append([]model.GenerationMetrics(nil), record.Generations...)
	s.evolutions[record.ID] = record
	return nil
}

func (s *MemoryStore) GetEvolution(_ context.Context, id string) (model.EvolutionRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.evolutions[id]
	if !ok {
		return model.EvolutionRecord{}, false, nil
	}
	record.Generations = append([]model.GenerationMetrics(nil), record.Generations...)
	return record, true, nil
}
