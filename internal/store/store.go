// Package store persists the app's configuration documents as flat JSON
// files, one document per file. Each document loads with a hardcoded default
// when its file is absent and is always saved as a whole-document overwrite.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"littlestar/internal/models"
)

const (
	profileFile      = "profile.json"
	settingsFile     = "settings.json"
	affirmationsFile = "affirmations.json"
	lessonsFile      = "lessons.json"
	usageFile        = "usage.json"
)

// Store reads and writes the JSON documents under a single data directory.
// The mutex serializes read-modify-write cycles so concurrent sessions
// (e.g. two browser tabs) cannot lose ledger updates.
type Store struct {
	dir string
	mu  sync.Mutex

	// override is overlaid on every Profile read and never written to disk.
	override models.ChildProfile
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// loadJSON reads a document into out, leaving out untouched if the file
// does not exist.
func (s *Store) loadJSON(filename string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return nil
}

// saveJSON writes a document atomically (write temp file, then rename).
func (s *Store) saveJSON(filename string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}

	path := filepath.Join(s.dir, filename)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	return nil
}

// OverrideProfile overlays the non-zero fields of p on every subsequent
// Profile read. The overlay stays in memory only: SaveProfile still writes
// the underlying document, and nothing from p ever reaches disk.
func (s *Store) OverrideProfile(p models.ChildProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = p
}

// Profile loads the child profile, falling back to the default profile, with
// the override overlay applied.
func (s *Store) Profile() (models.ChildProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile := models.DefaultProfile()
	if err := s.loadJSON(profileFile, &profile); err != nil {
		return models.ChildProfile{}, err
	}

	if s.override.Name != "" {
		profile.Name = s.override.Name
	}
	if s.override.Age != 0 {
		profile.Age = s.override.Age
	}
	if s.override.Pronouns != "" {
		profile.Pronouns = s.override.Pronouns
	}
	if len(s.override.Interests) != 0 {
		profile.Interests = s.override.Interests
	}
	return profile, nil
}

// SaveProfile overwrites the profile document.
func (s *Store) SaveProfile(profile models.ChildProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveJSON(profileFile, profile)
}

// Settings loads the settings document, normalized so required fields are
// always present.
func (s *Store) Settings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := models.DefaultSettings()
	if err := s.loadJSON(settingsFile, &settings); err != nil {
		return models.Settings{}, err
	}
	settings.Normalize()
	return settings, nil
}

// SaveSettings overwrites the settings document.
func (s *Store) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings.Normalize()
	return s.saveJSON(settingsFile, settings)
}

// Affirmations loads the affirmations library.
func (s *Store) Affirmations() (models.Affirmations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	affirmations := models.DefaultAffirmations()
	if err := s.loadJSON(affirmationsFile, &affirmations); err != nil {
		return nil, err
	}
	return affirmations, nil
}

// SaveAffirmations overwrites the affirmations library.
func (s *Store) SaveAffirmations(a models.Affirmations) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveJSON(affirmationsFile, a)
}

// Lessons loads the lessons library.
func (s *Store) Lessons() ([]models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lessons := models.DefaultLessons()
	if err := s.loadJSON(lessonsFile, &lessons); err != nil {
		return nil, err
	}
	return lessons, nil
}

// SaveLessons overwrites the lessons library.
func (s *Store) SaveLessons(lessons []models.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveJSON(lessonsFile, lessons)
}

// Usage loads the usage ledger.
func (s *Store) Usage() (models.UsageLedger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsageLocked()
}

func (s *Store) loadUsageLocked() (models.UsageLedger, error) {
	ledger := models.UsageLedger{}
	if err := s.loadJSON(usageFile, &ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

// AddUsageMinutes charges minutes to the day of t, as one serialized
// read-modify-write.
func (s *Store) AddUsageMinutes(t time.Time, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadUsageLocked()
	if err != nil {
		return err
	}
	ledger.Add(t, minutes)
	return s.saveJSON(usageFile, ledger)
}

// ResetUsageDay deletes the ledger entry for the day of t (admin reset).
func (s *Store) ResetUsageDay(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, err := s.loadUsageLocked()
	if err != nil {
		return err
	}
	ledger.ResetDay(t)
	return s.saveJSON(usageFile, ledger)
}
