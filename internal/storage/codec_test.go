package storage

import (
	"errors"
	"testing"

	"github.com/SenasCodes/AA-Projeto/internal/model"
)

func TestQTableCodecRoundTrip(t *testing.T) {
	input := model.QTableRecord{
		VersionedRecord: Versions(),
		ID:              "q1",
		States: map[string]map[string]float64{
			"E_f_0000": {"N": 0.30000000000000004, "S": 0, "E": -2.5, "W": 1},
		},
	}
	payload, err := EncodeQTable(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeQTable(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.States["E_f_0000"]["N"] != 0.30000000000000004 {
		t.Fatalf("codec lost precision: %v", output.States["E_f_0000"]["N"])
	}
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	stale := model.QTableRecord{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion + 1, CodecVersion: CurrentCodecVersion},
		ID:              "q1",
	}
	payload, err := EncodeQTable(stale)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeQTable(payload); !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected version mismatch, got %v", err)
	}
}

func TestEvolutionCodecRoundTrip(t *testing.T) {
	input := model.EvolutionRecord{
		VersionedRecord: Versions(),
		ID:              "evo-1",
		Environment:     "forage",
		BestID:          "g9-i3",
		Generations: []model.GenerationMetrics{
			{Generation: 2, MaxCombined: 140.5, MeanNovelty: 0.4, ArchiveSize: 10},
		},
	}
	payload, err := EncodeEvolution(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	output, err := DecodeEvolution(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if output.Generations[0].MaxCombined != 140.5 || output.BestID != "g9-i3" {
		t.Fatalf("unexpected record: %+v", output)
	}
}
