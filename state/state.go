// Package state persists small pieces of navshell session state, such as
// the last location shown by the terminal shell.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/navshell/pkg/paths"
	"gopkg.in/yaml.v3"
)

// LastPathKey holds the location the terminal shell was showing on exit.
const LastPathKey = "tui.last_path"

// State is a flat map of key-value pairs stored as YAML.
type State map[string]interface{}

func stateFilePath() string {
	return filepath.Join(paths.StateDir(), "state.yml")
}

// Load loads the state file. A missing file yields an empty state.
func Load() (State, error) {
	data, err := os.ReadFile(stateFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return make(State), nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if state == nil {
		state = make(State)
	}
	return state, nil
}

// Save writes the state file, creating the state directory if needed.
func Save(state State) error {
	path := stateFilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// Get retrieves a value by key.
func Get(key string) (interface{}, bool, error) {
	state, err := Load()
	if err != nil {
		return nil, false, err
	}
	val, ok := state[key]
	return val, ok, nil
}

// GetString returns the string stored under key, or "" when the key is
// missing or holds another type.
func GetString(key string) (string, error) {
	val, ok, err := Get(key)
	if err != nil || !ok {
		return "", err
	}
	str, _ := val.(string)
	return str, nil
}

// Set stores a value.
func Set(key string, value interface{}) error {
	state, err := Load()
	if err != nil {
		return err
	}
	state[key] = value
	return Save(state)
}

// Delete removes a key.
func Delete(key string) error {
	state, err := Load()
	if err != nil {
		return err
	}
	delete(state, key)
	return Save(state)
}
