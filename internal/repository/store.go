// Package repository persists compliance models as YAML or JSON files.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"docval/pkg/schema"
)

// ErrNotFound is returned when no model file exists for an ID.
var ErrNotFound = errors.New("model not found")

var modelExtensions = []string{".yaml", ".yml", ".json"}

// Store reads and writes compliance models in a directory, one file per model.
// Writes are atomic and serialized by a FileLock.
type Store struct {
	dir   string
	owner string
}

// NewStore creates a store rooted at dir. owner is recorded in the lock file.
func NewStore(dir, owner string) *Store {
	return &Store{dir: dir, owner: owner}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

func validateID(id string) error {
	if id == "" {
		return fmt.Errorf("model id is required")
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." || strings.HasPrefix(id, ".") {
		return fmt.Errorf("invalid model id %q", id)
	}
	return nil
}

// Load reads the model with the given id. Extensions match case-insensitively;
// when several encodings exist the first of .yaml, .yml, .json wins.
func (s *Store) Load(id string) (*schema.ComplianceModel, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	files, err := s.modelFiles(id)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", id, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	path := files[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", id, err)
	}
	m, err := DecodeModel(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parse model %s: %w", id, err)
	}
	if m.ID == "" {
		m.ID = id
	}
	return m, nil
}

// modelFiles returns the paths of every file holding id, ordered by
// modelExtensions preference.
func (s *Store) modelFiles(id string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, want := range modelExtensions {
		for _, e := range entries {
			ext := filepath.Ext(e.Name())
			if e.IsDir() || !strings.EqualFold(ext, want) || strings.TrimSuffix(e.Name(), ext) != id {
				continue
			}
			files = append(files, filepath.Join(s.dir, e.Name()))
		}
	}
	return files, nil
}

// List returns every readable model, newest first. Unreadable files are
// skipped with a warning.
func (s *Store) List() ([]*schema.ComplianceModel, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*schema.ComplianceModel{}, nil
		}
		return nil, fmt.Errorf("read model directory: %w", err)
	}

	seen := make(map[string]bool)
	models := []*schema.ComplianceModel{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ext := filepath.Ext(e.Name())
		if !isModelExtension(ext) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ext)
		if seen[id] {
			continue
		}
		seen[id] = true

		m, err := s.Load(id)
		if err != nil {
			slog.Warn("Skipping unreadable model file", "file", e.Name(), "error", err)
			continue
		}
		models = append(models, m)
	}

	sort.SliceStable(models, func(i, j int) bool {
		return models[i].CreatedAt.After(models[j].CreatedAt)
	})
	return models, nil
}

// Save validates m and writes it as YAML. A missing ID or creation time is
// filled in.
func (s *Store) Save(m *schema.ComplianceModel) error {
	if m.ID == "" {
		id, err := schema.NewModelID()
		if err != nil {
			return fmt.Errorf("generate model id: %w", err)
		}
		m.ID = id
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if err := validateID(m.ID); err != nil {
		return err
	}
	if err := schema.ValidateModel(m); err != nil {
		return fmt.Errorf("invalid model: %w", err)
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	return s.withLock(func() error {
		target := filepath.Join(s.dir, m.ID+".yaml")
		if err := writeFileAtomic(target, data); err != nil {
			return err
		}

		// Drop other encodings of the same id so Load stays unambiguous.
		others, err := s.modelFiles(m.ID)
		if err != nil {
			return fmt.Errorf("list model files: %w", err)
		}
		targetInfo, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("stat model file: %w", err)
		}
		for _, path := range others {
			if info, err := os.Stat(path); err == nil && !os.SameFile(info, targetInfo) {
				_ = os.Remove(path)
			}
		}
		return nil
	})
}

// Delete removes the model with the given id.
func (s *Store) Delete(id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	return s.withLock(func() error {
		files, err := s.modelFiles(id)
		if err != nil {
			return fmt.Errorf("delete model %s: %w", id, err)
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		for _, path := range files {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("delete model %s: %w", id, err)
			}
		}
		return nil
	})
}

func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	lock := NewFileLock(filepath.Join(s.dir, ".lock"), s.owner)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			slog.Warn("Failed to release model store lock", "error", err)
		}
	}()

	return fn()
}

func isModelExtension(ext string) bool {
	for _, e := range modelExtensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// DecodeModel parses a model encoded as JSON (".json") or YAML (anything else).
func DecodeModel(data []byte, ext string) (*schema.ComplianceModel, error) {
	var m schema.ComplianceModel
	if strings.EqualFold(ext, ".json") {
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// writeFileAtomic writes to a temp file and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}

	return nil
}
