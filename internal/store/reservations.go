package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"go.uber.org/zap"
)

const reservationsKey = "reservations"

// Linker transfers ownership of anonymous reservations to an account.
// *api.Client satisfies it.
type Linker interface {
	LinkReservations(ctx context.Context, reservationIDs []int64, userID int64) (api.LinkResult, error)
}

// ReservationStore keeps the reservations made without authentication.
// While the user is anonymous it is the sole source of truth for "my
// reservations"; after login it is drained into the account via Link.
// All operations are serialized by the store's mutex.
type ReservationStore struct {
	mu     sync.Mutex
	kv     KV
	linker Linker
	log    *zap.Logger
}

// NewReservationStore wires the store over a KV substrate.
func NewReservationStore(kv KV, linker Linker, log *zap.Logger) *ReservationStore {
	return &ReservationStore{kv: kv, linker: linker, log: log}
}

// storedReservation is the persisted shape. AvailableParticipants is
// deliberately absent: it is derived and recomputed on every read.
type storedReservation struct {
	ID                    int64  `json:"id"`
	ActivityID            int64  `json:"activityId"`
	CompanyID             int64  `json:"companyId"`
	CompanyName           string `json:"companyName"`
	Sport                 string `json:"sport"`
	Date                  string `json:"date"`
	Time                  string `json:"time"`
	Location              string `json:"location"`
	MaxParticipants       int    `json:"maxParticipants"`
	RequestedParticipants int    `json:"requestedParticipants"`
	Participants          int    `json:"participants"`
	FeedbackID            *int64 `json:"feedbackId,omitempty"`
	Validated             *bool  `json:"validated,omitempty"`
	SecurityCode          string `json:"securityCode,omitempty"`
}

func toStored(r model.Reservation) storedReservation {
	return storedReservation{
		ID:                    r.ID,
		ActivityID:            r.ActivityID,
		CompanyID:             r.CompanyID,
		CompanyName:           r.CompanyName,
		Sport:                 r.Sport,
		Date:                  r.Date.Format("2006-01-02"),
		Time:                  r.Time,
		Location:              r.Location,
		MaxParticipants:       r.MaxParticipants,
		RequestedParticipants: r.RequestedParticipants,
		Participants:          r.Participants,
		FeedbackID:            r.FeedbackID,
		Validated:             r.Validated,
		SecurityCode:          r.SecurityCode,
	}
}

func (s storedReservation) toModel() model.Reservation {
	date, err := time.Parse("2006-01-02", s.Date)
	if err != nil {
		date = time.Time{}
	}
	r := model.Reservation{
		ID:                    s.ID,
		ActivityID:            s.ActivityID,
		CompanyID:             s.CompanyID,
		CompanyName:           s.CompanyName,
		Sport:                 s.Sport,
		Date:                  date,
		Time:                  s.Time,
		Location:              s.Location,
		MaxParticipants:       s.MaxParticipants,
		RequestedParticipants: s.RequestedParticipants,
		Participants:          s.Participants,
		FeedbackID:            s.FeedbackID,
		Validated:             s.Validated,
		SecurityCode:          s.SecurityCode,
	}
	r.RecomputeAvailability()
	return r
}

// Save upserts a reservation by id.
func (s *ReservationStore) Save(r model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.loadLocked()
	if err != nil {
		return err
	}
	replaced := false
	for i := range stored {
		if stored[i].ID == r.ID {
			stored[i] = toStored(r)
			replaced = true
			break
		}
	}
	if !replaced {
		stored = append(stored, toStored(r))
	}
	return s.flushLocked(stored)
}

// Remove deletes a reservation by id; absent ids are a no-op.
func (s *ReservationStore) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.loadLocked()
	if err != nil {
		return err
	}
	for i := range stored {
		if stored[i].ID == id {
			stored = append(stored[:i], stored[i+1:]...)
			return s.flushLocked(stored)
		}
	}
	return nil
}

// All returns the stored reservations with availability recomputed.
func (s *ReservationStore) All() ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	reservations := make([]model.Reservation, 0, len(stored))
	for _, row := range stored {
		reservations = append(reservations, row.toModel())
	}
	return reservations, nil
}

// Clear wipes the local reservation list.
func (s *ReservationStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(reservationsKey)
}

// LinkOutcome summarizes a Link call.
type LinkOutcome struct {
	// Attempted is the number of reservation ids sent to the backend;
	// zero means the store was empty and no request was made.
	Attempted int
	// Linked reports whether the backend accepted the transfer and the
	// local copies were cleared.
	Linked bool
}

// Link sends every locally stored reservation id to the backend to be
// re-owned by userID. The local list is cleared only on an "OK" result;
// any failure leaves it untouched so a later retry can pick it up.
func (s *ReservationStore) Link(ctx context.Context, userID int64) (LinkOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.loadLocked()
	if err != nil {
		return LinkOutcome{}, err
	}
	if len(stored) == 0 {
		return LinkOutcome{}, nil
	}
	ids := make([]int64, 0, len(stored))
	for _, row := range stored {
		ids = append(ids, row.ID)
	}
	result, err := s.linker.LinkReservations(ctx, ids, userID)
	if err != nil {
		s.log.Warn("link reservations failed", zap.Int64s("ids", ids), zap.Error(err))
		return LinkOutcome{Attempted: len(ids)}, err
	}
	if !result.OK() {
		s.log.Warn("link reservations rejected",
			zap.Int64s("ids", ids), zap.String("result", result.Result))
		return LinkOutcome{Attempted: len(ids)}, fmt.Errorf("link rejected: %s", result.Result)
	}
	if err := s.kv.Delete(reservationsKey); err != nil {
		return LinkOutcome{Attempted: len(ids), Linked: true}, err
	}
	s.log.Info("linked anonymous reservations",
		zap.Int64s("ids", ids), zap.Int64("userId", userID))
	return LinkOutcome{Attempted: len(ids), Linked: true}, nil
}

// Count returns the number of locally stored reservations.
func (s *ReservationStore) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, err := s.loadLocked()
	if err != nil {
		return 0, err
	}
	return len(stored), nil
}

func (s *ReservationStore) loadLocked() ([]storedReservation, error) {
	raw, ok, err := s.kv.Get(reservationsKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	var stored []storedReservation
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("parse stored reservations: %w", err)
	}
	return stored, nil
}

func (s *ReservationStore) flushLocked(stored []storedReservation) error {
	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode reservations: %w", err)
	}
	return s.kv.Set(reservationsKey, string(data))
}
