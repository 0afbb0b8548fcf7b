package flights

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"flynext/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAFS(t *testing.T) *AFSClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"bad key"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/flights":
			q := r.URL.Query()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"origin": q.Get("origin"), "destination": q.Get("destination"), "date": q.Get("date"),
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/flights/F1":
			_, _ = w.Write([]byte(`{"id":"F1","flightNumber":"AC100","status":"DELAYED","price":150}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/bookings":
			var req models.AFSBookingRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(models.AFSBookingResponse{BookingReference: "REF-" + req.FlightIDs[0], Status: "CONFIRMED"})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return NewAFSClient(srv.URL+"/", "secret")
}

func TestAFSClient(t *testing.T) {
	c := newAFS(t)
	ctx := context.Background()

	raw, err := c.Search(ctx, "Toronto", "New York", "2025-02-01")
	require.NoError(t, err)
	assert.JSONEq(t, `{"origin":"Toronto","destination":"New York","date":"2025-02-01"}`, string(raw))

	f, err := c.GetFlight(ctx, "F1")
	require.NoError(t, err)
	assert.Equal(t, "DELAYED", f.Status)
	assert.Equal(t, 150.0, f.Price)

	resp, err := c.Book(ctx, models.AFSBookingRequest{FlightIDs: []string{"F1"}})
	require.NoError(t, err)
	assert.Equal(t, "REF-F1", resp.BookingReference)

	_, err = c.GetFlight(ctx, "missing")
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Status)
}

func TestAFSClientNotConfigured(t *testing.T) {
	c := NewAFSClient("http://127.0.0.1:1", "")
	assert.False(t, c.Configured())
	_, err := c.GetFlight(context.Background(), "F1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSearchValidation(t *testing.T) {
	s := &SearchService{Provider: newAFS(t)}
	ctx := context.Background()

	_, err := s.Search(ctx, models.FlightSearchQuery{Origin: "YYZ", Destination: "yyz", Date: "2025-02-01"})
	assert.EqualError(t, err, "Origin and destination cannot be the same")

	_, err = s.Search(ctx, models.FlightSearchQuery{Origin: "YYZ", Destination: "JFK", Date: "2025-02-01", TripType: models.TripRoundTrip})
	assert.EqualError(t, err, "returnDate is required for round-trip")

	_, err = s.Search(ctx, models.FlightSearchQuery{Origin: "YYZ", Destination: "JFK", Date: "2025-02-05", TripType: models.TripRoundTrip, ReturnDate: "2025-02-01"})
	assert.EqualError(t, err, "returnDate cannot be before date")

	_, err = s.Search(ctx, models.FlightSearchQuery{Origin: "YYZ", Destination: "JFK", Date: "02/01/2025"})
	assert.EqualError(t, err, "Invalid date")

	_, err = s.Search(ctx, models.FlightSearchQuery{Origin: "YYZ", Destination: "JFK", Date: "2025-02-01T00:00:00Z", TripType: models.TripRoundTrip, ReturnDate: "soon"})
	assert.EqualError(t, err, "Invalid returnDate")

	out, err := s.Search(ctx, models.FlightSearchQuery{Origin: "YYZ", Destination: "JFK", Date: "2025-02-01", TripType: models.TripRoundTrip, ReturnDate: "2025-02-08"})
	require.NoError(t, err)
	rt, ok := out.(models.RoundTripResult)
	require.True(t, ok)
	b, err := json.Marshal(rt.Inbound)
	require.NoError(t, err)
	assert.JSONEq(t, `{"origin":"JFK","destination":"YYZ","date":"2025-02-08"}`, string(b))
}
