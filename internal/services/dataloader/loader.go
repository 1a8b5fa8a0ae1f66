// Package dataloader serves the dashboard snapshot from the data directory
// when no prediction backend is configured.
package dataloader

import (
	"context"
	"encoding/json"
	"fmt"

	"fincast/internal/models"
	"fincast/internal/services/storage"
)

// SnapshotFile is the name of the offline snapshot in the data directory
const SnapshotFile = "snapshot.json"

// FileSource loads the snapshot from storage
type FileSource struct {
	store *storage.Storage
}

// New creates a FileSource backed by store
func New(store *storage.Storage) *FileSource {
	return &FileSource{store: store}
}

// SampleDashboard reads and decodes the stored snapshot
func (s *FileSource) SampleDashboard(ctx context.Context) (*models.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.store.ReadFile(SnapshotFile)
	if err != nil {
		return nil, fmt.Errorf("dataloader: reading %s: %w", SnapshotFile, err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("dataloader: parsing %s: %w", SnapshotFile, err)
	}
	return &snap, nil
}

// Save writes snap as the stored snapshot
func (s *FileSource) Save(snap *models.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("dataloader: encoding snapshot: %w", err)
	}
	if err := s.store.WriteFile(SnapshotFile, data); err != nil {
		return fmt.Errorf("dataloader: writing %s: %w", SnapshotFile, err)
	}
	return nil
}

// EnsureSample writes the built-in sample snapshot when none is stored yet.
// It reports whether a file was written.
func (s *FileSource) EnsureSample() (bool, error) {
	if s.store.Exists(SnapshotFile) {
		return false, nil
	}
	if err := s.Save(Sample()); err != nil {
		return false, err
	}
	return true, nil
}
