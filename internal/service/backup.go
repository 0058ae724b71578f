package service

import (
	"context"
	"fmt"
	"log/slog"

	"clientdesk/internal/model"
	"clientdesk/internal/repository"
)

// BackupService exports and imports the whole database as one versioned
// JSON snapshot: the system's persisted-collections boundary.
type BackupService struct {
	clients repository.IClientRepository
	merged  repository.IMergedRepository
	marks   repository.IMarkRepository
	log     *slog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(clients repository.IClientRepository, merged repository.IMergedRepository, marks repository.IMarkRepository, log *slog.Logger) *BackupService {
	return &BackupService{clients: clients, merged: merged, marks: marks, log: log}
}

// Export reads every collection into one snapshot.
func (s *BackupService) Export(ctx context.Context) (*model.Snapshot, error) {
	clients, err := s.clients.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	merged, err := s.merged.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	marks, err := s.marks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		Version:      model.SnapshotVersion,
		Clients:      clients,
		MergedPDFs:   merged,
		ControlMarks: marks,
	}, nil
}

// Import replaces every collection with the snapshot's contents. Version 0
// is accepted as the legacy untagged format.
func (s *BackupService) Import(ctx context.Context, snap *model.Snapshot) error {
	if snap.Version > model.SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if err := s.clients.ReplaceAll(ctx, snap.Clients); err != nil {
		return err
	}
	if err := s.merged.ReplaceAll(ctx, snap.MergedPDFs); err != nil {
		return err
	}
	if err := s.marks.ReplaceAll(ctx, snap.ControlMarks); err != nil {
		return err
	}
	s.log.Info("imported snapshot",
		"version", snap.Version,
		"clients", len(snap.Clients),
		"mergedPdfs", len(snap.MergedPDFs),
		"controlMarks", len(snap.ControlMarks),
	)
	return nil
}
