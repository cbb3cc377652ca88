package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileKV persists the key-value state as a single JSON file. The whole
// map is rewritten on every mutation; the state is a handful of small
// keys so atomic-rename simplicity wins over incremental writes.
type FileKV struct {
	mu   sync.Mutex
	path string
	m    map[string]string
}

// OpenFileKV loads (or creates) the state file at path.
func OpenFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	kv := &FileKV{path: path, m: make(map[string]string)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return kv, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &kv.m); err != nil {
			return nil, fmt.Errorf("parse state file %s: %w", path, err)
		}
	}
	return kv, nil
}

func (s *FileKV) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *FileKV) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return s.flushLocked()
}

func (s *FileKV) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[key]; !ok {
		return nil
	}
	delete(s.m, key)
	return s.flushLocked()
}

// flushLocked writes the map to a temp file and renames it into place
// so a crash mid-write cannot truncate existing state.
func (s *FileKV) flushLocked() error {
	data, err := json.MarshalIndent(s.m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
