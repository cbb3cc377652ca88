// Package catalog is the read path over the activity listing: filters,
// the grouped-activity projection and the bookability classification.
// Reads are best-effort: a failed or malformed fetch degrades to an
// empty result, logged for diagnostics but never surfaced as an error.
package catalog

import (
	"context"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"go.uber.org/zap"
)

// Backend is the slice of the API client the catalog needs.
type Backend interface {
	ListActivities(ctx context.Context, f api.ActivityFilters) ([]model.Activity, error)
	Sports(ctx context.Context) ([]string, error)
	Locations(ctx context.Context) ([]string, error)
}

// Filters narrows a catalog listing. Empty values and "ALL" mean no
// constraint on that dimension.
type Filters struct {
	Sport    string
	Location string
	Search   string
}

// Service queries the activity catalog for a viewer.
type Service struct {
	api Backend
	log *zap.Logger
}

// New wires a catalog service.
func New(api Backend, log *zap.Logger) *Service {
	return &Service{api: api, log: log}
}

// List returns the grouped activities matching the filters. The viewer
// identity is forwarded only when authenticated, so the backend can
// mark activities the viewer already booked.
func (s *Service) List(ctx context.Context, f Filters, viewer model.User) []model.Activity {
	req := api.ActivityFilters{
		Sport:    f.Sport,
		Location: f.Location,
		Search:   f.Search,
		UserID:   model.UserID(viewer),
	}
	activities, err := s.api.ListActivities(ctx, req)
	if err != nil {
		s.log.Warn("activity listing failed", zap.Error(err))
		return nil
	}
	return activities
}

// Sports returns the sport filter domain with the "ALL" sentinel
// prepended. A failed fetch yields an empty list.
func (s *Service) Sports(ctx context.Context) []string {
	sports, err := s.api.Sports(ctx)
	if err != nil {
		s.log.Warn("sports listing failed", zap.Error(err))
		return nil
	}
	return append([]string{api.FilterAll}, sports...)
}

// Locations returns the location filter domain with the sentinel.
func (s *Service) Locations(ctx context.Context) []string {
	locations, err := s.api.Locations(ctx)
	if err != nil {
		s.log.Warn("locations listing failed", zap.Error(err))
		return nil
	}
	return append([]string{api.FilterAll}, locations...)
}
