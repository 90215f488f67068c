//go:build sqlite

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/SenasCodes/AA-Projeto/internal/model"

	_ "modernc.org/sqlite"
)

// DefaultStoreKind is the backend used when none is named.
const DefaultStoreKind = "sqlite"

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func newSQLiteStore(path string) (Store, error) {
	return NewSQLiteStore(path), nil
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveQTable(ctx context.Context, record model.QTableRecord) error {
	return s.saveRecord(ctx, "qtables", record.ID, record.VersionedRecord, func() ([]byte, error) {
		return EncodeQTable(record)
	})
}

func (s *SQLiteStore) GetQTable(ctx context.Context, id string) (model.QTableRecord, bool, error) {
	payload, ok, err := s.getPayload(ctx, "qtables", id)
	if err != nil || !ok {
		return model.QTableRecord{}, ok, err
	}
	record, err := DecodeQTable(payload)
	if err != nil {
		return model.QTableRecord{}, false, fmt.Errorf("decode q-table %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, record model.RunRecord) error {
	return s.saveRecord(ctx, "runs", record.ID, record.VersionedRecord, func() ([]byte, error) {
		return EncodeRun(record)
	})
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (model.RunRecord, bool, error) {
	payload, ok, err := s.getPayload(ctx, "runs", id)
	if err != nil || !ok {
		return model.RunRecord{}, ok, err
	}
	record, err := DecodeRun(payload)
	if err != nil {
		return model.RunRecord{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) SaveGenotype(ctx context.Context, record model.GenotypeRecord) error {
	return s.saveRecord(ctx, "genotypes", record.ID, record.VersionedRecord, func() ([]byte, error) {
		return EncodeGenotype(record)
	})
}

func (s *SQLiteStore) GetGenotype(ctx context.Context, id string) (model.GenotypeRecord, bool, error) {
	payload, ok, err := s.getPayload(ctx, "genotypes", id)
	if err != nil || !ok {
		return model.GenotypeRecord{}, ok, err
	}
	record, err := DecodeGenotype(payload)
	if err != nil {
		return model.GenotypeRecord{}, false, fmt.Errorf("decode genotype %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) SaveEvolution(ctx context.Context, record model.EvolutionRecord) error {
	return s.saveRecord(ctx, "evolutions", record.ID, record.VersionedRecord, func() ([]byte, error) {
		return EncodeEvolution(record)
	})
}

func (s *SQLiteStore) GetEvolution(ctx context.Context, id string) (model.EvolutionRecord, bool, error) {
	payload, ok, err := s.getPayload(ctx, "evolutions", id)
	if err != nil || !ok {
		return model.EvolutionRecord{}, ok, err
	}
	record, err := DecodeEvolution(payload)
	if err != nil {
		return model.EvolutionRecord{}, false, fmt.Errorf("decode evolution %s: %w", id, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) saveRecord(ctx context.Context, table, id string, versions model.VersionedRecord, encode func() ([]byte, error)) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := encode()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, schema_version, codec_version, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			schema_version = excluded.schema_version,
			codec_version = excluded.codec_version,
			payload = excluded.payload
	`, table), id, versions.SchemaVersion, versions.CodecVersion, payload)
	return err
}

func (s *SQLiteStore) getPayload(ctx context.Context, table, id string) ([]byte, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx, fmt.Sprintf(`SELECT payload FROM %s WHERE id = ?`, table), id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS qtables (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS genotypes (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS evolutions (
			id TEXT PRIMARY KEY,
			schema_version INTEGER NOT NULL,
			codec_version INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
	`)
	return err
}
