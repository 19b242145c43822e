// Package file provides the TOML-backed settings store for noteprep.
// Relevance weights and retrieval tuning live in a config file within
// the noteprep config directory, editable by hand between runs.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/JacobKramerDK/noteprep/internal/core/domain"
	"github.com/JacobKramerDK/noteprep/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.WeightsStore = (*Store)(nil)

// fileSettings is the on-disk TOML shape.
type fileSettings struct {
	Weights   *weightsSection   `toml:"weights,omitempty"`
	Retrieval *retrievalSection `toml:"retrieval,omitempty"`
}

type weightsSection struct {
	Title       float64 `toml:"title"`
	Content     float64 `toml:"content"`
	Tags        float64 `toml:"tags"`
	Attendees   float64 `toml:"attendees"`
	SearchBonus float64 `toml:"search_bonus"`
	Recency     float64 `toml:"recency"`
}

type retrievalSection struct {
	MinScore   float64 `toml:"min_score"`
	MaxResults int     `toml:"max_results"`
}

// Store is a file-based settings store using TOML.
type Store struct {
	mu       sync.RWMutex
	filePath string
}

// NewStore creates a settings store under configDir.
// If configDir is empty, defaults to ~/.noteprep/config.toml.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".noteprep")
	}

	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return nil, err
	}

	return &Store{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load returns the stored relevance weights, or domain.ErrNotFound when
// the file does not exist or has no weights section.
func (s *Store) Load() (domain.RelevanceWeights, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, err := s.read()
	if err != nil {
		return domain.RelevanceWeights{}, err
	}
	if settings.Weights == nil {
		return domain.RelevanceWeights{}, domain.ErrNotFound
	}

	return domain.RelevanceWeights{
		Title:       settings.Weights.Title,
		Content:     settings.Weights.Content,
		Tags:        settings.Weights.Tags,
		Attendees:   settings.Weights.Attendees,
		SearchBonus: settings.Weights.SearchBonus,
		Recency:     settings.Weights.Recency,
	}, nil
}

// Save stores the given weights, preserving other settings sections.
func (s *Store) Save(w domain.RelevanceWeights) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.read()
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	settings.Weights = &weightsSection{
		Title:       w.Title,
		Content:     w.Content,
		Tags:        w.Tags,
		Attendees:   w.Attendees,
		SearchBonus: w.SearchBonus,
		Recency:     w.Recency,
	}
	return s.write(settings)
}

// Retrieval returns the stored minimum score and result cap, with ok
// reporting whether a retrieval section exists.
func (s *Store) Retrieval() (minScore float64, maxResults int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, err := s.read()
	if err != nil || settings.Retrieval == nil {
		return 0, 0, false
	}
	return settings.Retrieval.MinScore, settings.Retrieval.MaxResults, true
}

// SaveRetrieval stores retrieval tuning, preserving the weights section.
func (s *Store) SaveRetrieval(minScore float64, maxResults int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.read()
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	settings.Retrieval = &retrievalSection{MinScore: minScore, MaxResults: maxResults}
	return s.write(settings)
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.filePath
}

func (s *Store) read() (fileSettings, error) {
	var settings fileSettings

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, domain.ErrNotFound
		}
		return settings, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse settings: %w", err)
	}
	return settings, nil
}

func (s *Store) write(settings fileSettings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}
