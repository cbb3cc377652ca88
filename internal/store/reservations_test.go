package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeLinker records link calls and returns a scripted outcome.
type fakeLinker struct {
	result api.LinkResult
	err    error
	calls  [][]int64
	userID int64
}

func (f *fakeLinker) LinkReservations(ctx context.Context, reservationIDs []int64, userID int64) (api.LinkResult, error) {
	f.calls = append(f.calls, reservationIDs)
	f.userID = userID
	if f.err != nil {
		return api.LinkResult{}, f.err
	}
	return f.result, nil
}

func sampleReservation(id int64) model.Reservation {
	return model.Reservation{
		ID:                    id,
		ActivityID:            12,
		CompanyID:             3,
		CompanyName:           "Padel Club",
		Sport:                 "Padel",
		Date:                  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Time:                  "18:00",
		Location:              "Milan",
		MaxParticipants:       10,
		RequestedParticipants: 7,
		Participants:          3,
		SecurityCode:          "a1b2c3",
	}
}

func newTestStore(t *testing.T, linker Linker) *ReservationStore {
	t.Helper()
	if linker == nil {
		linker = &fakeLinker{result: api.LinkResult{Result: "OK"}}
	}
	return NewReservationStore(NewMemKV(), linker, zap.NewNop())
}

func TestReservationStoreRoundTrip(t *testing.T) {
	s := newTestStore(t, nil)

	require.NoError(t, s.Save(sampleReservation(1)))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Padel", got.Sport)
	assert.Equal(t, "18:00", got.Time)
	assert.Equal(t, "a1b2c3", got.SecurityCode)
	// Derived, recomputed on read rather than stored.
	assert.Equal(t, 6, got.AvailableParticipants)
}

func TestReservationStoreUpsert(t *testing.T) {
	s := newTestStore(t, nil)

	require.NoError(t, s.Save(sampleReservation(1)))

	updated := sampleReservation(1)
	updated.Time = "19:30"
	updated.Participants = 2
	require.NoError(t, s.Save(updated))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "19:30", all[0].Time)
	assert.Equal(t, 2, all[0].Participants)
}

func TestReservationStoreRemove(t *testing.T) {
	s := newTestStore(t, nil)

	require.NoError(t, s.Save(sampleReservation(1)))
	require.NoError(t, s.Save(sampleReservation(2)))

	require.NoError(t, s.Remove(1))

	all, err := s.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(2), all[0].ID)

	// Removing an absent id is a no-op.
	require.NoError(t, s.Remove(99))
	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestReservationStoreClear(t *testing.T) {
	s := newTestStore(t, nil)

	require.NoError(t, s.Save(sampleReservation(1)))
	require.NoError(t, s.Clear())

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestLink(t *testing.T) {
	t.Run("success clears the store", func(t *testing.T) {
		linker := &fakeLinker{result: api.LinkResult{Result: "OK"}}
		s := newTestStore(t, linker)
		require.NoError(t, s.Save(sampleReservation(1)))
		require.NoError(t, s.Save(sampleReservation(2)))

		outcome, err := s.Link(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, LinkOutcome{Attempted: 2, Linked: true}, outcome)
		assert.Equal(t, [][]int64{{1, 2}}, linker.calls)
		assert.Equal(t, int64(42), linker.userID)

		count, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("network failure keeps the store", func(t *testing.T) {
		linker := &fakeLinker{err: errors.New("connection refused")}
		s := newTestStore(t, linker)
		require.NoError(t, s.Save(sampleReservation(1)))

		outcome, err := s.Link(context.Background(), 42)
		require.Error(t, err)
		assert.Equal(t, LinkOutcome{Attempted: 1, Linked: false}, outcome)

		count, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("backend rejection keeps the store", func(t *testing.T) {
		linker := &fakeLinker{result: api.LinkResult{Result: "KO"}}
		s := newTestStore(t, linker)
		require.NoError(t, s.Save(sampleReservation(1)))

		_, err := s.Link(context.Background(), 42)
		require.Error(t, err)

		count, err := s.Count()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("empty store skips the request", func(t *testing.T) {
		linker := &fakeLinker{result: api.LinkResult{Result: "OK"}}
		s := newTestStore(t, linker)

		outcome, err := s.Link(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, LinkOutcome{}, outcome)
		assert.Empty(t, linker.calls)
	})
}
