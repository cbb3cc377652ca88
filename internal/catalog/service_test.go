package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	activities []model.Activity
	sports     []string
	locations  []string
	err        error
	filters    []api.ActivityFilters
}

func (f *fakeBackend) ListActivities(ctx context.Context, filters api.ActivityFilters) ([]model.Activity, error) {
	f.filters = append(f.filters, filters)
	if f.err != nil {
		return nil, f.err
	}
	return f.activities, nil
}

func (f *fakeBackend) Sports(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sports, nil
}

func (f *fakeBackend) Locations(ctx context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.locations, nil
}

func TestList(t *testing.T) {
	t.Run("forwards filters and the viewer id", func(t *testing.T) {
		backend := &fakeBackend{activities: []model.Activity{{ID: 1, Sport: "Padel"}}}
		s := New(backend, zap.NewNop())

		viewer := model.Authenticated{ID: 42, LocalID: uuid.New()}
		got := s.List(context.Background(), Filters{Sport: "Padel", Search: "evening"}, viewer)
		require.Len(t, got, 1)

		require.Len(t, backend.filters, 1)
		assert.Equal(t, "Padel", backend.filters[0].Sport)
		assert.Equal(t, "evening", backend.filters[0].Search)
		assert.Equal(t, int64(42), backend.filters[0].UserID)
	})

	t.Run("anonymous viewer sends no user id", func(t *testing.T) {
		backend := &fakeBackend{}
		s := New(backend, zap.NewNop())

		s.List(context.Background(), Filters{}, model.Anonymous{LocalID: uuid.New()})
		require.Len(t, backend.filters, 1)
		assert.Equal(t, int64(0), backend.filters[0].UserID)
	})

	t.Run("a failed fetch degrades to empty", func(t *testing.T) {
		backend := &fakeBackend{err: errors.New("connection refused")}
		s := New(backend, zap.NewNop())

		got := s.List(context.Background(), Filters{}, model.Anonymous{LocalID: uuid.New()})
		assert.Empty(t, got)
	})
}

func TestFilterDomains(t *testing.T) {
	t.Run("ALL is prepended", func(t *testing.T) {
		backend := &fakeBackend{sports: []string{"Padel", "Tennis"}, locations: []string{"Milan"}}
		s := New(backend, zap.NewNop())

		assert.Equal(t, []string{"ALL", "Padel", "Tennis"}, s.Sports(context.Background()))
		assert.Equal(t, []string{"ALL", "Milan"}, s.Locations(context.Background()))
	})

	t.Run("failure degrades to empty without the sentinel", func(t *testing.T) {
		backend := &fakeBackend{err: errors.New("connection refused")}
		s := New(backend, zap.NewNop())

		assert.Empty(t, s.Sports(context.Background()))
		assert.Empty(t, s.Locations(context.Background()))
	})
}
