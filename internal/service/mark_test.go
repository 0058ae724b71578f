package service

import (
	"context"
	"testing"

	"clientdesk/internal/model"
	"clientdesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarkService() *MarkService {
	return NewMarkService(repository.NewMemoryMarkRepository())
}

func TestMarkCreateMintsIDs(t *testing.T) {
	s := newMarkService()
	ctx := context.Background()

	mark, err := s.Create(ctx, &model.ControlMark{
		Name:  "Declaración IVA",
		Color: "#ff0000",
		SubMarks: []model.SubMark{
			{Name: "Bimestre 1"},
			{ID: "fixed", Name: "Bimestre 2"},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, mark.ID)
	assert.NotEmpty(t, mark.SubMarks[0].ID)
	assert.Equal(t, "fixed", mark.SubMarks[1].ID, "caller-supplied ids are kept")

	marks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, marks, 1)
}

func TestMarkCreateNormalizesNilSubMarks(t *testing.T) {
	s := newMarkService()
	mark, err := s.Create(context.Background(), &model.ControlMark{Name: "Renta"})
	require.NoError(t, err)
	assert.NotNil(t, mark.SubMarks)
	assert.Empty(t, mark.SubMarks)
}

func TestMarkUpdateAndDelete(t *testing.T) {
	s := newMarkService()
	ctx := context.Background()
	mark, err := s.Create(ctx, &model.ControlMark{Name: "Renta", Color: "#00ff00"})
	require.NoError(t, err)

	mark.Name = "Renta Anual"
	mark.SubMarks = []model.SubMark{{Name: "Cuota 1"}}
	require.NoError(t, s.Update(ctx, mark))

	marks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, marks, 1)
	assert.Equal(t, "Renta Anual", marks[0].Name)
	assert.NotEmpty(t, marks[0].SubMarks[0].ID, "update mints missing sub-mark ids too")

	assert.NoError(t, s.Update(ctx, &model.ControlMark{ID: "missing", Name: "x"}), "stale update no-ops")

	require.NoError(t, s.Delete(ctx, mark.ID))
	require.NoError(t, s.Delete(ctx, mark.ID), "stale delete no-ops")
	marks, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, marks)
}

func TestResolveSkipsDanglingSelections(t *testing.T) {
	s := newMarkService()
	ctx := context.Background()
	mark, err := s.Create(ctx, &model.ControlMark{
		Name:     "IVA",
		Color:    "#0000ff",
		SubMarks: []model.SubMark{{ID: "sub1", Name: "Bimestre 1"}},
	})
	require.NoError(t, err)

	selections := []model.MarkSelection{
		{MarkID: mark.ID, SubMarkID: "sub1"},
		{MarkID: mark.ID, SubMarkID: "gone-sub"},
		{MarkID: "gone-mark"},
	}
	resolved, err := s.Resolve(ctx, selections)
	require.NoError(t, err)
	require.Len(t, resolved, 2, "selections for a deleted mark disappear")

	assert.Equal(t, "IVA", resolved[0].Mark.Name)
	require.NotNil(t, resolved[0].SubMark)
	assert.Equal(t, "Bimestre 1", resolved[0].SubMark.Name)

	assert.Equal(t, "IVA", resolved[1].Mark.Name)
	assert.Nil(t, resolved[1].SubMark, "a missing sub-mark drops just the sub-mark reference")
}

func TestResolveEmptySelections(t *testing.T) {
	s := newMarkService()
	resolved, err := s.Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}
