// Package booking is the reservation lifecycle manager: it creates,
// edits and deletes reservations, resolves bookable time variants and
// keeps the anonymous local store in step with the backend.
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/store"
	"go.uber.org/zap"
)

var (
	// ErrCannotBook means the backend refused the booking; nothing was
	// created and no local state changed.
	ErrCannotBook = errors.New("cannot book this activity")
	// ErrTimeUnavailable means the requested time variant is not in the
	// freshly fetched option set. Edits fail closed on it.
	ErrTimeUnavailable = errors.New("no availability at this time")
	// ErrNoCapacity means the participant count exceeds the slot's
	// remaining places.
	ErrNoCapacity = errors.New("not enough places available")
	// ErrNotFound means no reservation matched the id/security code.
	ErrNotFound = errors.New("reservation not found")
	// ErrFeedbackNotAllowed means the reservation is not validated or
	// already has feedback attached.
	ErrFeedbackNotAllowed = errors.New("feedback not allowed for this reservation")
	// ErrInvalidScore means the feedback score is outside 1..5.
	ErrInvalidScore = errors.New("score must be between 1 and 5")
)

// Backend is the slice of the API client the manager needs.
type Backend interface {
	ActivityOptions(ctx context.Context, activityID, userID int64) ([]model.ActivityOption, error)
	Reserve(ctx context.Context, req api.ReserveRequest) (model.Reservation, error)
	ListReservations(ctx context.Context, f api.ReservationFilters) ([]model.Reservation, error)
	GetReservation(ctx context.Context, id int64) (model.Reservation, error)
	EditReservation(ctx context.Context, req api.EditRequest) error
	DeleteReservation(ctx context.Context, id int64) error
	ReservationOptions(ctx context.Context, reservationID int64) ([]model.ReservationOption, error)
	SendFeedback(ctx context.Context, reservationID int64, score int, message string, userID int64) error
	ReservationByCode(ctx context.Context, id int64, securityCode string) (model.Reservation, error)
}

// Service is the lifecycle manager. For anonymous viewers every
// successful write is mirrored into the local reservation store; for
// authenticated viewers the server list is authoritative and the local
// store stays untouched.
type Service struct {
	api   Backend
	local *store.ReservationStore
	log   *zap.Logger
}

// New wires a booking service.
func New(api Backend, local *store.ReservationStore, log *zap.Logger) *Service {
	return &Service{api: api, local: local, log: log}
}

// Options returns the concrete time variants of a grouped activity.
// Like every listing read it degrades to empty on failure.
func (s *Service) Options(ctx context.Context, activityID int64, viewer model.User) []model.ActivityOption {
	options, err := s.api.ActivityOptions(ctx, activityID, model.UserID(viewer))
	if err != nil {
		s.log.Warn("option listing failed",
			zap.Int64("activityId", activityID), zap.Error(err))
		return nil
	}
	return options
}

// Reserve books participants places on the given option. For anonymous
// rebooking of the same activity, overwriteID carries the prior
// reservation id and the backend upserts instead of duplicating.
func (s *Service) Reserve(ctx context.Context, option model.ActivityOption, participants int, viewer model.User, overwriteID *int64) (model.Reservation, error) {
	if participants < 1 || participants > option.AvailableParticipants {
		return model.Reservation{}, ErrNoCapacity
	}
	req := api.ReserveRequest{
		ActivityID:   option.ActivityID,
		Time:         option.Time,
		Participants: participants,
		OverwriteID:  overwriteID,
	}
	if id := model.UserID(viewer); id != 0 {
		req.UserID = &id
	}
	reservation, err := s.api.Reserve(ctx, req)
	if err != nil {
		s.log.Warn("reserve failed", zap.Int64("activityId", option.ActivityID),
			zap.String("time", option.Time), zap.Error(err))
		return model.Reservation{}, fmt.Errorf("%w: %v", ErrCannotBook, err)
	}
	if _, anonymous := viewer.(model.Anonymous); anonymous {
		if err := s.local.Save(reservation); err != nil {
			// The booking exists server-side; losing the local copy is
			// recoverable through the security code.
			s.log.Error("saving anonymous reservation failed",
				zap.Int64("id", reservation.ID), zap.Error(err))
		}
	}
	return reservation, nil
}

// List returns the viewer's reservations: the server list for
// authenticated users, the local store for anonymous ones.
func (s *Service) List(ctx context.Context, f Filters, viewer model.User) []model.Reservation {
	switch v := viewer.(type) {
	case model.Authenticated:
		reservations, err := s.api.ListReservations(ctx, api.ReservationFilters{
			Sport:    f.Sport,
			Location: f.Location,
			Search:   f.Search,
			UserID:   v.ID,
		})
		if err != nil {
			s.log.Warn("reservation listing failed", zap.Error(err))
			return nil
		}
		return reservations
	default:
		reservations, err := s.local.All()
		if err != nil {
			s.log.Warn("local reservation read failed", zap.Error(err))
			return nil
		}
		return reservations
	}
}

// Filters narrows an authenticated reservation listing.
type Filters struct {
	Sport    string
	Location string
	Search   string
}

// Get fetches one reservation by id.
func (s *Service) Get(ctx context.Context, id int64) (model.Reservation, error) {
	reservation, err := s.api.GetReservation(ctx, id)
	if err != nil {
		var status *api.StatusError
		if errors.As(err, &status) {
			return model.Reservation{}, ErrNotFound
		}
		return model.Reservation{}, err
	}
	return reservation, nil
}

// EditOptions returns the time variants the reservation can move to.
func (s *Service) EditOptions(ctx context.Context, reservationID int64) []model.ReservationOption {
	options, err := s.api.ReservationOptions(ctx, reservationID)
	if err != nil {
		s.log.Warn("reservation option listing failed",
			zap.Int64("reservationId", reservationID), zap.Error(err))
		return nil
	}
	return options
}

// Edit moves a reservation to newTime with the given participant count.
// The option set is re-fetched here: capacity and activity ids may have
// changed since the original booking, so stale option data is never
// trusted. A time absent from the fresh set fails closed.
func (s *Service) Edit(ctx context.Context, reservation model.Reservation, newTime string, participants int, viewer model.User) error {
	options := s.EditOptions(ctx, reservation.ID)
	var target *model.ReservationOption
	for i := range options {
		if options[i].Time == newTime {
			target = &options[i]
			break
		}
	}
	if target == nil {
		return ErrTimeUnavailable
	}
	if participants < 1 || participants > target.AvailableParticipants {
		return ErrNoCapacity
	}
	req := api.EditRequest{
		ReservationID: reservation.ID,
		ActivityID:    target.ActivityID,
		Time:          newTime,
		Participants:  participants,
	}
	if id := model.UserID(viewer); id != 0 {
		req.UserID = &id
	}
	if err := s.api.EditReservation(ctx, req); err != nil {
		s.log.Warn("edit failed", zap.Int64("reservationId", reservation.ID), zap.Error(err))
		return fmt.Errorf("edit reservation %d: %w", reservation.ID, err)
	}
	if _, anonymous := viewer.(model.Anonymous); anonymous {
		s.refreshLocal(ctx, reservation.ID)
	}
	return nil
}

// refreshLocal replaces the local copy with the server's current state
// after an anonymous edit.
func (s *Service) refreshLocal(ctx context.Context, id int64) {
	updated, err := s.api.GetReservation(ctx, id)
	if err != nil {
		s.log.Warn("refreshing local reservation failed", zap.Int64("id", id), zap.Error(err))
		return
	}
	if err := s.local.Remove(id); err != nil {
		s.log.Warn("removing stale local reservation failed", zap.Int64("id", id), zap.Error(err))
		return
	}
	if err := s.local.Save(updated); err != nil {
		s.log.Warn("saving refreshed reservation failed", zap.Int64("id", id), zap.Error(err))
	}
}

// Delete removes a reservation. Deletion is irreversible; confirmation
// is the caller's responsibility.
func (s *Service) Delete(ctx context.Context, id int64, viewer model.User) error {
	if err := s.api.DeleteReservation(ctx, id); err != nil {
		s.log.Warn("delete failed", zap.Int64("reservationId", id), zap.Error(err))
		return fmt.Errorf("delete reservation %d: %w", id, err)
	}
	if _, anonymous := viewer.(model.Anonymous); anonymous {
		if err := s.local.Remove(id); err != nil {
			s.log.Warn("removing local reservation failed", zap.Int64("id", id), zap.Error(err))
		}
	}
	return nil
}

// SubmitFeedback attaches a review to a validated reservation. The
// precondition (validated, no prior feedback) is checked here; the
// backend owns idempotency beyond that.
func (s *Service) SubmitFeedback(ctx context.Context, reservation model.Reservation, score int, message string, userID int64) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	if reservation.Validated == nil || !*reservation.Validated || reservation.FeedbackID != nil {
		return ErrFeedbackNotAllowed
	}
	if err := s.api.SendFeedback(ctx, reservation.ID, score, message, userID); err != nil {
		s.log.Warn("feedback failed", zap.Int64("reservationId", reservation.ID), zap.Error(err))
		return fmt.Errorf("send feedback for %d: %w", reservation.ID, err)
	}
	return nil
}

// Lookup recovers an anonymously created reservation by id and security
// code, stores it locally, and links it immediately when the viewer is
// already authenticated.
func (s *Service) Lookup(ctx context.Context, id int64, securityCode string, viewer model.User) (model.Reservation, error) {
	reservation, err := s.api.ReservationByCode(ctx, id, securityCode)
	if err != nil {
		var status *api.StatusError
		if errors.As(err, &status) {
			return model.Reservation{}, ErrNotFound
		}
		return model.Reservation{}, err
	}
	if err := s.local.Save(reservation); err != nil {
		return model.Reservation{}, err
	}
	if v, ok := viewer.(model.Authenticated); ok {
		if _, err := s.local.Link(ctx, v.ID); err != nil {
			s.log.Warn("linking recovered reservation failed", zap.Error(err))
		}
	}
	return reservation, nil
}
