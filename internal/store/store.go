package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmoraes/inscrito/internal/model"
)

const (
	eventsFile       = "events.json"
	studentsFile     = "students.json"
	coordinatorsFile = "coordinators.json"
)

// Store reads and writes the three persisted documents under one data
// directory. It holds no in-memory state; every load reads from disk and
// every save overwrites the whole document.
type Store struct {
	dir string
}

// Open prepares a store rooted at dir, creating the directory and seeding
// any missing document with a persisted empty structure.
//
// This function is idempotent - safe to call multiple times.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{dir: dir}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// Dir returns the data directory the store operates on.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) eventsPath() string       { return filepath.Join(s.dir, eventsFile) }
func (s *Store) studentsPath() string     { return filepath.Join(s.dir, studentsFile) }
func (s *Store) coordinatorsPath() string { return filepath.Join(s.dir, coordinatorsFile) }

// seed persists empty documents for any file that does not exist yet.
// Existing files are left untouched, whatever their content.
func (s *Store) seed() error {
	if missing, err := fileMissing(s.eventsPath()); err != nil {
		return err
	} else if missing {
		if err := writeDocument(s.eventsPath(), model.NewEventsDocument()); err != nil {
			return fmt.Errorf("seed events document: %w", err)
		}
	}

	for _, path := range []string{s.studentsPath(), s.coordinatorsPath()} {
		missing, err := fileMissing(path)
		if err != nil {
			return err
		}
		if missing {
			if err := writeDocument(path, model.ProfileMap{}); err != nil {
				return fmt.Errorf("seed profile document %s: %w", filepath.Base(path), err)
			}
		}
	}
	return nil
}

func fileMissing(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if os.IsNotExist(err) {
		return true, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
