package rewards

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBackend struct {
	rewards     []model.Reward
	redeemed    []model.RedeemedReward
	points      int
	receipt     model.RedeemedReward
	err         error
	catalogIDs  []int64
	redeemCalls [][2]int64
}

func (f *fakeBackend) Rewards(ctx context.Context, userID int64) ([]model.Reward, error) {
	f.catalogIDs = append(f.catalogIDs, userID)
	if f.err != nil {
		return nil, f.err
	}
	return f.rewards, nil
}

func (f *fakeBackend) RedeemedRewards(ctx context.Context, userID int64) ([]model.RedeemedReward, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.redeemed, nil
}

func (f *fakeBackend) UserPoints(ctx context.Context, userID int64) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.points, nil
}

func (f *fakeBackend) RedeemReward(ctx context.Context, rewardID, userID int64) (model.RedeemedReward, error) {
	f.redeemCalls = append(f.redeemCalls, [2]int64{rewardID, userID})
	if f.err != nil {
		return model.RedeemedReward{}, f.err
	}
	return f.receipt, nil
}

func TestCatalog(t *testing.T) {
	t.Run("anonymous viewers browse with the neutral id", func(t *testing.T) {
		backend := &fakeBackend{rewards: []model.Reward{{ID: 1, Description: "Free drink"}}}
		s := New(backend, zap.NewNop())

		got := s.Catalog(context.Background(), model.Anonymous{LocalID: uuid.New()})
		require.Len(t, got, 1)
		assert.Equal(t, []int64{0}, backend.catalogIDs)
	})

	t.Run("authenticated viewers browse with their id", func(t *testing.T) {
		backend := &fakeBackend{}
		s := New(backend, zap.NewNop())

		s.Catalog(context.Background(), model.Authenticated{ID: 42, LocalID: uuid.New()})
		assert.Equal(t, []int64{42}, backend.catalogIDs)
	})

	t.Run("failure degrades to empty", func(t *testing.T) {
		backend := &fakeBackend{err: errors.New("connection refused")}
		s := New(backend, zap.NewNop())

		assert.Empty(t, s.Catalog(context.Background(), model.Anonymous{LocalID: uuid.New()}))
	})
}

func TestRedeem(t *testing.T) {
	t.Run("returns the receipt", func(t *testing.T) {
		backend := &fakeBackend{receipt: model.RedeemedReward{Code: "WIN-123", Description: "Free drink"}}
		s := New(backend, zap.NewNop())

		receipt, err := s.Redeem(context.Background(), 1, 42)
		require.NoError(t, err)
		assert.Equal(t, "WIN-123", receipt.Code)
		assert.Equal(t, [][2]int64{{1, 42}}, backend.redeemCalls)
	})

	t.Run("backend refusal is wrapped", func(t *testing.T) {
		backend := &fakeBackend{err: errors.New("insufficient points")}
		s := New(backend, zap.NewNop())

		_, err := s.Redeem(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrRedeemFailed)
	})
}

func TestPoints(t *testing.T) {
	backend := &fakeBackend{points: 3}
	s := New(backend, zap.NewNop())

	points, err := s.Points(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 3, points)
}
