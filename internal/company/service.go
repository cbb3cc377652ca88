// Package company exposes venue profiles and their feedback lists.
package company

import (
	"context"

	"github.com/sportbook-io/sportbook-cli/internal/model"
	"go.uber.org/zap"
)

// Backend is the slice of the API client this package needs.
type Backend interface {
	GetCompany(ctx context.Context, companyID int64) (model.Company, error)
	CompanyFeedbacks(ctx context.Context, companyID int64) ([]model.Feedback, error)
}

type Service struct {
	api Backend
	log *zap.Logger
}

func New(api Backend, log *zap.Logger) *Service {
	return &Service{api: api, log: log}
}

// Get returns the venue profile.
func (s *Service) Get(ctx context.Context, companyID int64) (model.Company, error) {
	return s.api.GetCompany(ctx, companyID)
}

// Feedbacks returns the venue's reviews, empty on a failed read.
func (s *Service) Feedbacks(ctx context.Context, companyID int64) []model.Feedback {
	feedbacks, err := s.api.CompanyFeedbacks(ctx, companyID)
	if err != nil {
		s.log.Warn("feedback listing failed", zap.Int64("companyId", companyID), zap.Error(err))
		return nil
	}
	return feedbacks
}
