package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// state is the on-disk document.
type state struct {
	APIKey       string `yaml:"api_key,omitempty"`
	LastResponse string `yaml:"last_response,omitempty"`
}

// File stores values in a single YAML document readable only by its owner.
type File struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*File)(nil)

// NewFile returns a File store at path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) APIKey(ctx context.Context) (string, error) {
	st, err := f.load()
	if err != nil {
		return "", err
	}
	if st.APIKey == "" {
		return "", ErrNotFound
	}
	return st.APIKey, nil
}

func (f *File) SetAPIKey(ctx context.Context, key string) error {
	return f.update(func(st *state) { st.APIKey = key })
}

func (f *File) LastResponse(ctx context.Context) (string, error) {
	st, err := f.load()
	if err != nil {
		return "", err
	}
	if st.LastResponse == "" {
		return "", ErrNotFound
	}
	return st.LastResponse, nil
}

func (f *File) SetLastResponse(ctx context.Context, text string) error {
	return f.update(func(st *state) { st.LastResponse = text })
}

func (f *File) load() (state, error) {
	var st state
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("read store: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("parse store %s: %w", f.path, err)
	}
	return st, nil
}

func (f *File) update(mutate func(*state)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	st, err := f.load()
	if err != nil {
		return err
	}
	mutate(&st)

	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
