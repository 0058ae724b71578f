package service

import (
	"context"

	"clientdesk/internal/model"
	"clientdesk/internal/repository"
	"clientdesk/pkg/util"
)

// MarkService manages the global control-mark catalog. Clients reference
// marks by id only; deleting a mark does not rewrite clients, so resolution
// has to tolerate dangling selections.
type MarkService struct {
	repo repository.IMarkRepository
}

// NewMarkService creates a new mark service
func NewMarkService(repo repository.IMarkRepository) *MarkService {
	return &MarkService{repo: repo}
}

// List returns the whole catalog.
func (s *MarkService) List(ctx context.Context) ([]*model.ControlMark, error) {
	return s.repo.FindAll(ctx)
}

// Create adds a mark, minting ids for the mark and any sub-marks that
// arrived without one.
func (s *MarkService) Create(ctx context.Context, mark *model.ControlMark) (*model.ControlMark, error) {
	if mark.ID == "" {
		mark.ID = util.NewID()
	}
	if mark.SubMarks == nil {
		mark.SubMarks = []model.SubMark{}
	}
	for i := range mark.SubMarks {
		if mark.SubMarks[i].ID == "" {
			mark.SubMarks[i].ID = util.NewID()
		}
	}
	if err := s.repo.Create(ctx, mark); err != nil {
		return nil, err
	}
	return mark, nil
}

// Update replaces a mark's name, color and sub-marks; stale ids no-op.
func (s *MarkService) Update(ctx context.Context, mark *model.ControlMark) error {
	for i := range mark.SubMarks {
		if mark.SubMarks[i].ID == "" {
			mark.SubMarks[i].ID = util.NewID()
		}
	}
	return s.repo.Replace(ctx, mark)
}

// Delete removes a mark from the catalog. Client selections pointing at it
// become dangling and are skipped on resolution.
func (s *MarkService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Resolve joins a client's selections against the catalog. Selections whose
// mark no longer exists are dropped; a missing sub-mark id drops just the
// sub-mark reference.
func (s *MarkService) Resolve(ctx context.Context, selections []model.MarkSelection) ([]model.ResolvedMark, error) {
	marks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := map[string]*model.ControlMark{}
	for _, m := range marks {
		byID[m.ID] = m
	}

	resolved := []model.ResolvedMark{}
	for _, sel := range selections {
		mark, ok := byID[sel.MarkID]
		if !ok {
			continue
		}
		rm := model.ResolvedMark{Mark: *mark}
		if sel.SubMarkID != "" {
			for i := range mark.SubMarks {
				if mark.SubMarks[i].ID == sel.SubMarkID {
					sub := mark.SubMarks[i]
					rm.SubMark = &sub
					break
				}
			}
		}
		resolved = append(resolved, rm)
	}
	return resolved, nil
}
