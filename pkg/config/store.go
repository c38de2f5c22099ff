package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	msgSaved         = "Your top secret information has been stored. Thank you!"
	msgAlreadySaved  = "Configuration already exists. Nothing to do."
	msgCleared       = "Configuration deleted successfully!"
	msgNothingStored = "There is no stored data. Skipping."
)

// Result describes the outcome of a mutating store operation.
type Result struct {
	Changed bool
	Message string
}

// Store reads and writes the configuration file in a single directory.
// A loaded document is cached for the lifetime of the Store.
type Store struct {
	dir string

	mu     sync.Mutex
	loaded *File
}

// DefaultDir returns ~/.gojira.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", &ConfigurationError{Err: fmt.Errorf("cannot resolve home directory: %w", err)}
	}
	return filepath.Join(home, FolderName), nil
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) ConfigPath() string {
	return filepath.Join(s.dir, ConfigFileName)
}

func (s *Store) CachePath() string {
	return filepath.Join(s.dir, CacheFileName)
}

// Exists reports whether a configuration file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.ConfigPath())
	return err == nil
}

// IsConfigured reports whether the file exists and carries workflow options.
func (s *Store) IsConfigured() bool {
	if !s.Exists() {
		return false
	}
	f, err := s.Load()
	if err != nil {
		return false
	}
	return f.Options.JiraStop.Status != ""
}

// Load returns the configuration, reading it from disk at most once.
// A missing file yields defaults.
func (s *Store) Load() (*File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded != nil {
		return s.loaded, nil
	}

	data, err := os.ReadFile(s.ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return s.defaults(), nil
	}
	if err != nil {
		return nil, &ConfigurationError{Path: s.ConfigPath(), Err: err}
	}

	if err := Validate(data); err != nil {
		return nil, &ConfigurationError{Path: s.ConfigPath(), Err: err}
	}
	f, err := Decode(data)
	if err != nil {
		return nil, &ConfigurationError{Path: s.ConfigPath(), Err: err}
	}

	s.loaded = f
	return f, nil
}

// Save writes f only when no configuration exists yet.
func (s *Store) Save(f *File) (Result, error) {
	if s.Exists() {
		return Result{Message: msgAlreadySaved}, nil
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return Result{}, fmt.Errorf("failed to create config folder: %w", err)
	}

	f.Paths = s.paths()
	data, err := Encode(f)
	if err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(s.ConfigPath(), data, 0600); err != nil {
		return Result{}, fmt.Errorf("failed to write config file: %w", err)
	}

	s.mu.Lock()
	s.loaded = f
	s.mu.Unlock()

	return Result{Changed: true, Message: msgSaved}, nil
}

// Clear removes the configuration and cache files, then the application
// directory if nothing else is left in it.
func (s *Store) Clear() (Result, error) {
	s.mu.Lock()
	s.loaded = nil
	s.mu.Unlock()

	existed := s.Exists()
	for _, path := range []string{s.ConfigPath(), s.CachePath()} {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	// Fails on a non-empty folder, which is left in place.
	_ = os.Remove(s.dir)

	if !existed {
		return Result{Message: msgNothingStored}, nil
	}
	return Result{Changed: true, Message: msgCleared}, nil
}

func (s *Store) paths() Paths {
	return Paths{
		BasePath:   s.dir,
		ConfigPath: s.ConfigPath(),
		CachePath:  s.CachePath(),
	}
}

func (s *Store) defaults() *File {
	return &File{
		Paths:   s.paths(),
		Options: DefaultOptions(),
	}
}
