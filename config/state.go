package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"callstrip/log"
)

const StateFileName = "state.json"

// State holds the view preferences that persist between sessions.
type State struct {
	// Mode is the last active layout mode.
	Mode string `json:"mode"`
	// ChatOpen records whether the chat panel was open on exit.
	ChatOpen bool `json:"chat_open"`
	// FilmstripVisible records whether the filmstrip was shown on exit.
	FilmstripVisible bool `json:"filmstrip_visible"`
}

// DefaultState returns the default state for the given config.
func DefaultState(cfg *Config) *State {
	return &State{
		Mode:             cfg.Mode().String(),
		FilmstripVisible: true,
	}
}

func statePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, StateFileName), nil
}

// LoadState loads the state from disk. If it cannot be done, we return the default state.
// This function acquires a shared lock to allow concurrent reads.
func LoadState(cfg *Config) *State {
	path, err := statePath()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultState(cfg)
	}

	lock := NewFileLock(path)
	if err := lock.RLock(); err != nil {
		// Better to read without the lock than to fail.
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
	} else {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.WarningLog.Printf("failed to get state file: %v", err)
		}
		return DefaultState(cfg)
	}

	state := DefaultState(cfg)
	if err := json.Unmarshal(data, state); err != nil {
		log.ErrorLog.Printf("failed to parse state file: %v", err)
		return DefaultState(cfg)
	}
	return state
}

// SaveState saves the state to disk.
// This function acquires an exclusive lock to prevent concurrent writes.
func SaveState(state *State) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(configDir, StateFileName)
	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// DeleteState removes the persisted state, if any.
func DeleteState() error {
	path, err := statePath()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	lock := NewFileLock(path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	return nil
}
