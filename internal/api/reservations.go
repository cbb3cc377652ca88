package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sportbook-io/sportbook-cli/internal/model"
)

type wireReservation struct {
	ID                    wireInt         `json:"id"`
	ActivityID            wireInt         `json:"activity_id"`
	CompanyID             wireInt         `json:"company_id"`
	CompanyName           string          `json:"company_name"`
	Sport                 string          `json:"sport"`
	Date                  wireDate        `json:"date"`
	Time                  string          `json:"time"`
	Location              string          `json:"location"`
	MaxParticipants       wireInt         `json:"max_partecipants"`
	RequestedParticipants wireInt         `json:"requested_partecipants"`
	Participants          wireInt         `json:"partecipants"`
	FeedbackID            wireInt         `json:"feedbackId"`
	Validated             json.RawMessage `json:"validated"`
	SecurityCode          string          `json:"securityCode"`
}

func (w wireReservation) toModel() (model.Reservation, error) {
	validated, err := optBool(w.Validated)
	if err != nil {
		return model.Reservation{}, err
	}
	r := model.Reservation{
		ID:                    int64(w.ID),
		ActivityID:            int64(w.ActivityID),
		CompanyID:             int64(w.CompanyID),
		CompanyName:           w.CompanyName,
		Sport:                 w.Sport,
		Date:                  w.Date.Time(),
		Time:                  w.Time,
		Location:              w.Location,
		MaxParticipants:       int(w.MaxParticipants),
		RequestedParticipants: int(w.RequestedParticipants),
		Participants:          int(w.Participants),
		FeedbackID:            optInt64(w.FeedbackID),
		Validated:             validated,
		SecurityCode:          w.SecurityCode,
	}
	r.RecomputeAvailability()
	return r, nil
}

// reserveBody is shared by create and edit; the backend upserts when an
// existing reservationId is included.
type reserveBody struct {
	ActivityID    int64  `json:"activityId"`
	Time          string `json:"time"`
	Participants  int    `json:"partecipants"`
	UserID        *int64 `json:"userId"`
	ReservationID *int64 `json:"reservationId"`
}

// ReserveRequest describes a booking of one activity time variant.
// UserID is nil for anonymous bookings; OverwriteID carries the id of a
// prior reservation being rebooked, making the call an upsert.
type ReserveRequest struct {
	ActivityID   int64
	Time         string
	Participants int
	UserID       *int64
	OverwriteID  *int64
}

// Reserve books an activity slot. A non-200 response is returned as a
// *StatusError and no reservation is created.
func (c *Client) Reserve(ctx context.Context, req ReserveRequest) (model.Reservation, error) {
	body := reserveBody{
		ActivityID:    req.ActivityID,
		Time:          req.Time,
		Participants:  req.Participants,
		UserID:        req.UserID,
		ReservationID: req.OverwriteID,
	}
	var row wireReservation
	if err := c.postJSON(ctx, "/reserveActivity", body, &row); err != nil {
		return model.Reservation{}, err
	}
	return row.toModel()
}

// ReservationFilters narrows an authenticated reservation listing.
type ReservationFilters struct {
	Sport    string
	Location string
	Search   string
	UserID   int64
}

// ListReservations returns the server-held reservations for a user.
func (c *Client) ListReservations(ctx context.Context, f ReservationFilters) ([]model.Reservation, error) {
	q := ActivityFilters{Sport: f.Sport, Location: f.Location, Search: f.Search, UserID: f.UserID}.query()
	var rows []wireReservation
	if err := c.getJSON(ctx, "/reservations", q, &rows); err != nil {
		return nil, err
	}
	reservations := make([]model.Reservation, 0, len(rows))
	for _, row := range rows {
		r, err := row.toModel()
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, r)
	}
	return reservations, nil
}

// GetReservation fetches a single reservation by id.
func (c *Client) GetReservation(ctx context.Context, id int64) (model.Reservation, error) {
	var row wireReservation
	if err := c.getJSON(ctx, fmt.Sprintf("/reservations/%d", id), nil, &row); err != nil {
		return model.Reservation{}, err
	}
	return row.toModel()
}

// EditRequest re-targets an existing reservation to a (possibly new)
// time variant and participant count.
type EditRequest struct {
	ReservationID int64
	ActivityID    int64
	Time          string
	Participants  int
	UserID        *int64
}

// EditReservation updates a reservation; success is the 200 status.
func (c *Client) EditReservation(ctx context.Context, req EditRequest) error {
	body := reserveBody{
		ActivityID:    req.ActivityID,
		Time:          req.Time,
		Participants:  req.Participants,
		UserID:        req.UserID,
		ReservationID: &req.ReservationID,
	}
	return c.putJSON(ctx, fmt.Sprintf("/reservations/%d", req.ReservationID), body, nil)
}

// DeleteReservation removes a reservation; success is the 200 status.
func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/reservations/%d", id))
}

// ReservationOptions returns the sibling time variants the reservation
// can be moved to, with fresh capacity figures.
func (c *Client) ReservationOptions(ctx context.Context, reservationID int64) ([]model.ReservationOption, error) {
	var rows []wireOption
	path := fmt.Sprintf("/reservation-options/%d", reservationID)
	if err := c.getJSON(ctx, path, nil, &rows); err != nil {
		return nil, err
	}
	options := make([]model.ReservationOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, model.ReservationOption{
			ActivityID:            int64(row.ID),
			Time:                  row.Time,
			AvailableParticipants: int(row.AvailableParticipants),
			ReservationID:         optInt64(row.ReservationID),
		})
	}
	return options, nil
}

// SendFeedback submits the post-validation review for a reservation.
func (c *Client) SendFeedback(ctx context.Context, reservationID int64, score int, message string, userID int64) error {
	body := map[string]any{
		"score":  score,
		"userId": userID,
	}
	if message != "" {
		body["message"] = message
	} else {
		body["message"] = nil
	}
	return c.postJSON(ctx, fmt.Sprintf("/send-feedback/%d", reservationID), body, nil)
}

// ReservationByCode recovers an anonymously created reservation using
// its id and security code.
func (c *Client) ReservationByCode(ctx context.Context, id int64, securityCode string) (model.Reservation, error) {
	q := url.Values{}
	q.Set("id", strconv.FormatInt(id, 10))
	q.Set("securityCode", securityCode)
	var row wireReservation
	if err := c.getJSON(ctx, "/get-reservation-by-code", q, &row); err != nil {
		return model.Reservation{}, err
	}
	return row.toModel()
}

// LinkResult is the backend's verdict on a link attempt.
type LinkResult struct {
	Result string `json:"result"`
}

// OK reports whether the backend accepted the link.
func (r LinkResult) OK() bool { return r.Result == "OK" }

// LinkReservations transfers ownership of the given reservations to the
// user account.
func (c *Client) LinkReservations(ctx context.Context, reservationIDs []int64, userID int64) (LinkResult, error) {
	body := map[string]any{
		"reservationIds": reservationIDs,
		"userId":         userID,
	}
	var result LinkResult
	if err := c.postJSON(ctx, "/link-reservations", body, &result); err != nil {
		return LinkResult{}, err
	}
	return result, nil
}
