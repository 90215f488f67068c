package storage

import "fmt"

// NewStore builds the named backend. An empty kind selects the build's
// default: sqlite when compiled with -tags sqlite, memory otherwise.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "":
		return NewStore(DefaultStoreKind, sqlitePath)
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// CloseIfSupported closes backends that hold external resources.
func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
