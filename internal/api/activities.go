package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/sportbook-io/sportbook-cli/internal/model"
)

// ActivityFilters narrows an activity listing. Zero values and the "ALL"
// sentinel are treated as "no constraint" and omitted from the query.
type ActivityFilters struct {
	Sport     string
	Location  string
	Search    string
	UserID    int64
	CompanyID int64
}

// FilterAll is the synthetic value meaning "no constraint" on a filter
// dimension. It is never sent to the backend.
const FilterAll = "ALL"

func (f ActivityFilters) query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value == "" || value == FilterAll {
			return
		}
		q.Set(key, value)
	}
	set("sport", f.Sport)
	set("location", f.Location)
	set("search", f.Search)
	if f.UserID != 0 {
		q.Set("userId", strconv.FormatInt(f.UserID, 10))
	}
	if f.CompanyID != 0 {
		q.Set("companyId", strconv.FormatInt(f.CompanyID, 10))
	}
	return q
}

type wireActivity struct {
	ID              wireInt  `json:"id"`
	Sport           string   `json:"sport"`
	Date            wireDate `json:"date"`
	Times           string   `json:"times"`
	MaxParticipants wireInt  `json:"max_partecipants"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	CompanyID       wireInt  `json:"company_id"`
	CompanyName     string   `json:"company_name"`
	AllowAnonymous  wireBool `json:"allowAnonymous"`
	IsBanned        wireBool `json:"isBanned"`
	ReservationID   wireInt  `json:"reservationId"`
}

func (w wireActivity) toModel() model.Activity {
	return model.Activity{
		ID:              int64(w.ID),
		Sport:           w.Sport,
		Date:            w.Date.Time(),
		Times:           splitTimes(w.Times),
		MaxParticipants: int(w.MaxParticipants),
		Description:     w.Description,
		Location:        w.Location,
		CompanyID:       int64(w.CompanyID),
		CompanyName:     w.CompanyName,
		AllowAnonymous:  bool(w.AllowAnonymous),
		IsBanned:        bool(w.IsBanned),
		ReservationID:   optInt64(w.ReservationID),
	}
}

// ListActivities returns the grouped activity catalog for the filters.
func (c *Client) ListActivities(ctx context.Context, f ActivityFilters) ([]model.Activity, error) {
	var rows []wireActivity
	if err := c.getJSON(ctx, "/activities", f.query(), &rows); err != nil {
		return nil, err
	}
	activities := make([]model.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, row.toModel())
	}
	return activities, nil
}

type wireOption struct {
	ID                    wireInt `json:"id"`
	Time                  string  `json:"time"`
	AvailableParticipants wireInt `json:"availablePartecipants"`
	ReservationID         wireInt `json:"reservationId"`
}

// ActivityOptions returns the concrete time variants of a grouped
// activity, each with independent remaining capacity.
func (c *Client) ActivityOptions(ctx context.Context, activityID, userID int64) ([]model.ActivityOption, error) {
	q := url.Values{}
	if userID != 0 {
		q.Set("userId", strconv.FormatInt(userID, 10))
	}
	var rows []wireOption
	path := fmt.Sprintf("/activities/%d", activityID)
	if err := c.getJSON(ctx, path, q, &rows); err != nil {
		return nil, err
	}
	options := make([]model.ActivityOption, 0, len(rows))
	for _, row := range rows {
		options = append(options, model.ActivityOption{
			ActivityID:            int64(row.ID),
			Time:                  row.Time,
			AvailableParticipants: int(row.AvailableParticipants),
			ReservationID:         optInt64(row.ReservationID),
		})
	}
	return options, nil
}

// Sports returns the sport filter domain, without the "ALL" sentinel.
func (c *Client) Sports(ctx context.Context) ([]string, error) {
	var sports []string
	if err := c.getJSON(ctx, "/sports", nil, &sports); err != nil {
		return nil, err
	}
	return sports, nil
}

// Locations returns the location filter domain, without the sentinel.
func (c *Client) Locations(ctx context.Context) ([]string, error) {
	var locations []string
	if err := c.getJSON(ctx, "/locations", nil, &locations); err != nil {
		return nil, err
	}
	return locations, nil
}
