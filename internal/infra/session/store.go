// Package session holds the authenticated identity on the client side: the
// in-memory session singleton of the app, made explicit with a defined
// lifecycle, plus the durable on-device cache behind it.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"nearbasket/internal/domain/entity"

	"github.com/pkg/errors"
)

// State is what survives an app restart: the issued tokens and the serialized
// current-user record. The JSON keys keep the storage names the mobile app
// used for its key-value cache.
type State struct {
	AccessToken  string       `json:"nearbasket_token"`
	RefreshToken string       `json:"nearbasket_refresh,omitempty"`
	User         *entity.User `json:"nearbasket_user,omitempty"`
}

// FileStore persists session state as a single JSON file. Writes go through a
// temp file and rename so a concurrent reader never sees a torn write; the
// last writer wins, matching the original app's storage behavior.
type FileStore struct {
	path string
}

// NewFileStore creates a store at path. Parent directories are created on the
// first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted state. A missing file yields an empty state, not an
// error: a fresh install is simply signed out.
func (s *FileStore) Load() (*State, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &State{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read session file")
	}

	state := new(State)
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, errors.Wrap(err, "decode session file")
	}

	return state, nil
}

// Save persists the state atomically.
func (s *FileStore) Save(state *State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode session state")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "create session dir")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "create temp session file")
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return errors.Wrap(err, "write session file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return errors.Wrap(err, "close session file")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())

		return errors.Wrap(err, "replace session file")
	}

	return nil
}

// Clear removes the persisted state. Clearing an absent file is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}

	return nil
}
