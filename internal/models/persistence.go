package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrSaveNotFound means no save file exists at the given path.
	ErrSaveNotFound = errors.New("no save file found")
	// ErrCorruptSave means the save file exists but cannot be decoded
	// into a complete snapshot.
	ErrCorruptSave = errors.New("corrupt save file")
)

// requiredFields must all be present in a snapshot for a load to succeed.
var requiredFields = []string{
	"context", "game_memory", "player_stats", "inventory", "difficulty", "equipment",
}

// Save writes the whole state as a single JSON record. The snapshot is
// written to a temporary file first and renamed into place so a crash
// mid-write cannot corrupt an existing save.
func (g *GameState) Save(path string) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Load reads a snapshot back. The caller's state is untouched on failure.
func Load(path string) (*GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("read save: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrCorruptSave, field)
		}
	}

	var state GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	if !state.Difficulty.Valid() {
		return nil, fmt.Errorf("%w: difficulty %d out of range", ErrCorruptSave, state.Difficulty)
	}
	// Older saves may miss slots added later; normalize to the fixed set.
	if state.Equipment == nil {
		state.Equipment = NewEquipment()
	}
	for _, slot := range Slots {
		if _, ok := state.Equipment[slot]; !ok {
			state.Equipment[slot] = ""
		}
	}
	return &state, nil
}

// DeleteSave removes the save file. Deleting a missing save is not an
// error.
func DeleteSave(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete save: %w", err)
	}
	return nil
}
