package storage

import (
	"encoding/json"
	"errors"

	"github.com/SenasCodes/AA-Projeto/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

// Versions returns the current record version stamp.
func Versions() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

func EncodeQTable(r model.QTableRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeQTable(data []byte) (model.QTableRecord, error) {
	var record model.QTableRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.QTableRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.QTableRecord{}, err
	}
	return record, nil
}

func EncodeRun(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.RunRecord, error) {
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	return record, nil
}

func EncodeGenotype(r model.GenotypeRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeGenotype(data []byte) (model.GenotypeRecord, error) {
	var record model.GenotypeRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.GenotypeRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.GenotypeRecord{}, err
	}
	return record, nil
}

func EncodeEvolution(r model.EvolutionRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeEvolution(data []byte) (model.EvolutionRecord, error) {
	var record model.EvolutionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.EvolutionRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.EvolutionRecord{}, err
	}
	return record, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
