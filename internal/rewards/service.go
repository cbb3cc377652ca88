// Package rewards is the loyalty ledger client: catalog, point balance
// and redemption. Points are validated activities minus redemptions,
// computed server-side; this package treats the balance as opaque.
package rewards

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportbook-io/sportbook-cli/internal/model"
	"go.uber.org/zap"
)

// ErrRedeemFailed means the backend refused the redemption, most likely
// for insufficient points; the authoritative check is server-side.
var ErrRedeemFailed = errors.New("could not redeem reward")

// Backend is the slice of the API client the ledger needs.
type Backend interface {
	Rewards(ctx context.Context, userID int64) ([]model.Reward, error)
	RedeemedRewards(ctx context.Context, userID int64) ([]model.RedeemedReward, error)
	UserPoints(ctx context.Context, userID int64) (int, error)
	RedeemReward(ctx context.Context, rewardID, userID int64) (model.RedeemedReward, error)
}

// Service queries and spends loyalty points.
type Service struct {
	api Backend
	log *zap.Logger
}

// New wires a rewards service.
func New(api Backend, log *zap.Logger) *Service {
	return &Service{api: api, log: log}
}

// Catalog returns the reward catalog. Anonymous viewers see it too,
// queried with the neutral viewer id 0.
func (s *Service) Catalog(ctx context.Context, viewer model.User) []model.Reward {
	rewards, err := s.api.Rewards(ctx, model.UserID(viewer))
	if err != nil {
		s.log.Warn("reward catalog failed", zap.Error(err))
		return nil
	}
	return rewards
}

// Redeemed returns the user's redemption receipts.
func (s *Service) Redeemed(ctx context.Context, userID int64) []model.RedeemedReward {
	redeemed, err := s.api.RedeemedRewards(ctx, userID)
	if err != nil {
		s.log.Warn("redeemed listing failed", zap.Error(err))
		return nil
	}
	return redeemed
}

// Points returns the server-computed balance.
func (s *Service) Points(ctx context.Context, userID int64) (int, error) {
	return s.api.UserPoints(ctx, userID)
}

// Redeem spends one point on the reward and returns the receipt with
// its redemption code.
func (s *Service) Redeem(ctx context.Context, rewardID, userID int64) (model.RedeemedReward, error) {
	receipt, err := s.api.RedeemReward(ctx, rewardID, userID)
	if err != nil {
		s.log.Warn("redeem failed", zap.Int64("rewardId", rewardID), zap.Error(err))
		return model.RedeemedReward{}, fmt.Errorf("%w: %v", ErrRedeemFailed, err)
	}
	return receipt, nil
}
