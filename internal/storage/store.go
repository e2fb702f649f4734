package storage

import (
	"fmt"

	"github.com/julianstephens/softstreaks/internal/logger"
	"github.com/julianstephens/softstreaks/internal/models"
)

// Store loads and saves the application state through a Slot.
type Store struct {
	slot Slot
}

func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Slot returns the underlying slot
func (s *Store) Slot() Slot {
	return s.slot
}

// Load reads the state document. Missing or malformed content yields defaults;
// only failures of the slot itself are returned as errors.
func (s *Store) Load() (models.AppState, error) {
	doc, ok, err := s.slot.Read()
	if err != nil {
		return models.AppState{}, fmt.Errorf("failed to load state: %w", err)
	}
	if !ok {
		logger.Debug("No stored state, using defaults", "location", s.slot.Location())
		return models.DefaultState(), nil
	}

	state, valid := Decode(doc)
	if !valid {
		logger.Warn("Stored state unreadable, using defaults", "location", s.slot.Location())
	}
	return state, nil
}

// Save overwrites the stored document with state.
func (s *Store) Save(state models.AppState) error {
	data, err := state.Encode()
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := s.slot.Write(string(data)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Location describes where the state lives
func (s *Store) Location() string {
	return s.slot.Location()
}
