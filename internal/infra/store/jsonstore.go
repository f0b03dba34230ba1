// Package store persists the full ledger snapshot as a JSON document.
// Saves are whole-file replacements; there is no incremental mode. The
// design assumes a single owning process per store location.
package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/boddenberg/bankledger-go/internal/domain"
	"github.com/boddenberg/bankledger-go/internal/infra/observability"
	"github.com/boddenberg/bankledger-go/internal/ledger"
)

// JSONStore reads and writes ledger snapshots at a fixed path.
type JSONStore struct {
	path    string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewJSONStore creates a store bound to the given file path.
func NewJSONStore(path string, logger *zap.Logger, metrics *observability.Metrics) *JSONStore {
	return &JSONStore{path: path, logger: logger, metrics: metrics}
}

// Path returns the configured store location.
func (s *JSONStore) Path() string {
	return s.path
}

// Save serializes the snapshot and replaces any prior content. The document
// is written to a temporary file in the same directory and renamed over the
// target, so a crash mid-write cannot leave a truncated store behind.
func (s *JSONStore) Save(ctx context.Context, snap *ledger.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		s.metrics.IncrSnapshotSave("error")
		return &domain.ErrSerialization{Err: err}
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		s.metrics.IncrSnapshotSave("error")
		return &domain.ErrIO{Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.metrics.IncrSnapshotSave("error")
		return &domain.ErrIO{Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		s.metrics.IncrSnapshotSave("error")
		return &domain.ErrIO{Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.metrics.IncrSnapshotSave("error")
		return &domain.ErrIO{Err: err}
	}

	s.metrics.IncrSnapshotSave("success")
	s.logger.Info("ledger snapshot saved",
		zap.String("path", s.path),
		zap.Int("bytes", len(data)),
		zap.Int("customers", len(snap.Customers)),
	)
	return nil
}

// Load reads and decodes the snapshot at the store path. A missing file
// surfaces as ErrIO and bad JSON as ErrSerialization; the caller decides
// whether that means "start fresh" (it does at startup).
func (s *JSONStore) Load(ctx context.Context) (*ledger.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.metrics.IncrSnapshotLoad("error")
		return nil, &domain.ErrIO{Err: err}
	}

	var snap ledger.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.metrics.IncrSnapshotLoad("error")
		return nil, &domain.ErrSerialization{Err: err}
	}

	s.metrics.IncrSnapshotLoad("success")
	s.logger.Info("ledger snapshot loaded",
		zap.String("path", s.path),
		zap.Int("customers", len(snap.Customers)),
	)
	return &snap, nil
}
