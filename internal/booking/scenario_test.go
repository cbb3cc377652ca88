package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sportbook-io/sportbook-cli/internal/api"
	"github.com/sportbook-io/sportbook-cli/internal/identity"
	"github.com/sportbook-io/sportbook-cli/internal/model"
	"github.com/sportbook-io/sportbook-cli/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestAnonymousBookingSurvivesLogin walks the full journey: book without
// an account, log in, and find the booking under the account.
func TestAnonymousBookingSurvivesLogin(t *testing.T) {
	var linkedIDs []int64
	var linkedUser int64

	mux := http.NewServeMux()
	mux.HandleFunc("/reserveActivity", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"id": 55, "activity_id": 12, "company_id": 3,
			"company_name": "Padel Club", "sport": "Padel",
			"date": "2026-03-10", "time": "18:00", "location": "Milan",
			"max_partecipants": 10, "requested_partecipants": 7,
			"partecipants": 3, "feedbackId": 0, "validated": null,
			"securityCode": "a1b2c3"
		}`))
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "OK", "user": {"id": 42, "name": "Ada", "surname": "Lovelace"}}`))
	})
	mux.HandleFunc("/link-reservations", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			ReservationIDs []int64 `json:"reservationIds"`
			UserID         int64   `json:"userId"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		linkedIDs = body.ReservationIDs
		linkedUser = body.UserID
		_, _ = w.Write([]byte(`{"result": "OK"}`))
	})
	mux.HandleFunc("/reservations", func(w http.ResponseWriter, r *http.Request) {
		// The booking shows up under the account only once linked.
		if len(linkedIDs) == 0 {
			_, _ = fmt.Fprint(w, `[]`)
			return
		}
		assert.Equal(t, "42", r.URL.Query().Get("userId"))
		_, _ = w.Write([]byte(`[{
			"id": 55, "activity_id": 12, "company_id": 3,
			"company_name": "Padel Club", "sport": "Padel",
			"date": "2026-03-10", "time": "18:00", "location": "Milan",
			"max_partecipants": 10, "requested_partecipants": 7,
			"partecipants": 3, "feedbackId": 0, "validated": null,
			"securityCode": ""
		}]`))
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	log := zap.NewNop()
	client := api.New(server.URL, log)
	kv := store.NewMemKV()
	local := store.NewReservationStore(kv, client, log)
	identities := identity.New(kv, client, local, log)
	bookings := New(client, local, log)

	ctx := context.Background()

	// Start anonymous.
	viewer, err := identities.Current()
	require.NoError(t, err)
	_, anonymous := viewer.(model.Anonymous)
	require.True(t, anonymous)

	// Book without an account; the reservation lands in the local store.
	option := model.ActivityOption{ActivityID: 12, Time: "18:00", AvailableParticipants: 6}
	reservation, err := bookings.Reserve(ctx, option, 3, viewer, nil)
	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", reservation.SecurityCode)

	mine := bookings.List(ctx, Filters{}, viewer)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(55), mine[0].ID)

	// Log in; the local booking transfers before Login returns.
	user, err := identities.Login(ctx, "ada@example.com", "secret-password")
	require.NoError(t, err)
	assert.Equal(t, []int64{55}, linkedIDs)
	assert.Equal(t, int64(42), linkedUser)

	count, err := local.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// The account listing now carries the transferred booking.
	after := bookings.List(ctx, Filters{}, user)
	require.Len(t, after, 1)
	assert.Equal(t, int64(55), after[0].ID)
	assert.Equal(t, 6, after[0].AvailableParticipants)
}
