package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pancakescope/internal/model"
)

// JSONStore keeps pool snapshots as indented JSON files under a directory.
type JSONStore struct {
	dir string
	now func() time.Time
	mu  sync.Mutex
}

func NewJSONStore(dir string) *JSONStore {
	if dir == "" {
		dir = "."
	}
	return &JSONStore{dir: dir, now: time.Now}
}

// Path returns the file path for a pass.
func (s *JSONStore) Path(pass model.Pass) string {
	return filepath.Join(s.dir, pass.FileName())
}

// PutPools writes the whole pass result, replacing any previous file.
func (s *JSONStore) PutPools(_ context.Context, pass model.Pass, pools []model.PoolInfo) error {
	return s.WriteFile(s.Path(pass), pools)
}

// WriteFile writes pools to path inside a snapshot envelope.
func (s *JSONStore) WriteFile(path string, pools []model.PoolInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(path, pools)
}

// Load reads the snapshot for a pass. ok is false when the file does not exist.
func (s *JSONStore) Load(pass model.Pass) (model.PoolSnapshot, bool, error) {
	return s.LoadFile(s.Path(pass))
}

// LoadFile reads a snapshot from path. ok is false when the file does not exist.
func (s *JSONStore) LoadFile(path string) (model.PoolSnapshot, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.PoolSnapshot{}, false, nil
		}
		return model.PoolSnapshot{}, false, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot model.PoolSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.PoolSnapshot{}, false, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	return snapshot, true, nil
}

// AppendPool adds pool to the pass file unless a pool with the same address is present.
// An unreadable existing file is replaced.
func (s *JSONStore) AppendPool(pass model.Pass, pool model.PoolInfo) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(pass)
	existing, _, err := s.LoadFile(path)
	if err != nil {
		existing = model.PoolSnapshot{}
	}
	for _, p := range existing.Pools {
		if p.Address == pool.Address {
			return false, nil
		}
	}

	pools := append(existing.Pools, pool)
	if err := s.writeLocked(path, pools); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JSONStore) writeLocked(path string, pools []model.PoolInfo) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if pools == nil {
		pools = []model.PoolInfo{}
	}
	snapshot := model.PoolSnapshot{
		Timestamp:  s.now().UTC().Format(time.RFC3339Nano),
		TotalPools: len(pools),
		Pools:      pools,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot tmp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}
