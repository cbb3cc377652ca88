package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, zap.NewNop())
}

func TestActivityFiltersQuery(t *testing.T) {
	tests := []struct {
		name    string
		filters ActivityFilters
		want    string
	}{
		{
			name:    "empty filters send nothing",
			filters: ActivityFilters{},
			want:    "",
		},
		{
			name:    "ALL is never sent",
			filters: ActivityFilters{Sport: FilterAll, Location: FilterAll},
			want:    "",
		},
		{
			name:    "set dimensions are sent",
			filters: ActivityFilters{Sport: "Padel", Location: "Milan", Search: "evening"},
			want:    "location=Milan&search=evening&sport=Padel",
		},
		{
			name:    "anonymous viewer omits userId",
			filters: ActivityFilters{Sport: "Padel", UserID: 0},
			want:    "sport=Padel",
		},
		{
			name:    "authenticated viewer includes userId",
			filters: ActivityFilters{UserID: 42},
			want:    "userId=42",
		},
		{
			name:    "mixed ALL and real value",
			filters: ActivityFilters{Sport: FilterAll, Location: "Rome"},
			want:    "location=Rome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filters.query().Encode())
		})
	}
}

func TestListActivities(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activities", r.URL.Path)
		assert.Equal(t, "Padel", r.URL.Query().Get("sport"))
		w.Header().Set("Content-Type", "application/json")
		// Scalars arrive quoted on some endpoints.
		_, _ = w.Write([]byte(`[{
			"id": "12",
			"sport": "Padel",
			"date": "2026-03-10",
			"times": "18:00; 19:30; 21:00",
			"max_partecipants": "10",
			"description": "Evening games",
			"location": "Milan",
			"company_id": 3,
			"company_name": "Padel Club",
			"allowAnonymous": "true",
			"isBanned": "false",
			"reservationId": 0
		}]`))
	}))

	activities, err := client.ListActivities(context.Background(), ActivityFilters{Sport: "Padel"})
	require.NoError(t, err)
	require.Len(t, activities, 1)

	a := activities[0]
	assert.Equal(t, int64(12), a.ID)
	assert.Equal(t, "Padel", a.Sport)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), a.Date)
	assert.Equal(t, []string{"18:00", "19:30", "21:00"}, a.Times)
	assert.Equal(t, 10, a.MaxParticipants)
	assert.Equal(t, "Milan", a.Location)
	assert.Equal(t, int64(3), a.CompanyID)
	assert.True(t, a.AllowAnonymous)
	assert.False(t, a.IsBanned)
	assert.Nil(t, a.ReservationID)
}

func TestListActivitiesStatusError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListActivities(context.Background(), ActivityFilters{})
	require.Error(t, err)

	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusInternalServerError, status.Code)
}

func TestActivityOptions(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activities/12", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("userId"))
		_, _ = w.Write([]byte(`[
			{"id": 12, "time": "18:00", "availablePartecipants": "4", "reservationId": 0},
			{"id": 12, "time": "19:30", "availablePartecipants": 0, "reservationId": "77"}
		]`))
	}))

	options, err := client.ActivityOptions(context.Background(), 12, 42)
	require.NoError(t, err)
	require.Len(t, options, 2)

	assert.Equal(t, 4, options[0].AvailableParticipants)
	assert.Nil(t, options[0].ReservationID)
	assert.Equal(t, 0, options[1].AvailableParticipants)
	require.NotNil(t, options[1].ReservationID)
	assert.Equal(t, int64(77), *options[1].ReservationID)
}

func TestSports(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports", r.URL.Path)
		_, _ = w.Write([]byte(`["Padel", "Tennis"]`))
	}))

	sports, err := client.Sports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Padel", "Tennis"}, sports)
}
