package bookingapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/bookingapi"
	"seatmap/internal/models"
	"seatmap/internal/seatmap"
)

func newServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *bookingapi.Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, bookingapi.NewClient(server.URL, server.Client())
}

func sampleRecords() []models.BookingRecord {
	return []models.BookingRecord{
		{ID: "b1", Name: "Alice", SeatConfirmed: true, SeatID: 5},
		{ID: "b2", Name: "Bob", SeatConfirmed: false, SeatID: 6},
	}
}

func TestFetchBookingsAcceptsAllThreeShapes(t *testing.T) {
	records := sampleRecords()

	shapes := map[string]interface{}{
		"bare array":    records,
		"data wrapper":  map[string]interface{}{"data": records},
		"users wrapper": map[string]interface{}{"users": records},
	}

	var seatStates [][]models.Seat
	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			payload := body
			_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/bookings", r.URL.Path)
				json.NewEncoder(w).Encode(payload)
			})

			got, err := client.FetchBookings(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, records, got)

			seats := seatmap.Reconcile(seatmap.BuildSeats(seatmap.Capacity, seatmap.RowWidth), got)
			seatStates = append(seatStates, seats)
		})
	}

	// Identical contents must produce identical seat state regardless
	// of the wrapper shape.
	for i := 1; i < len(seatStates); i++ {
		assert.Equal(t, seatStates[0], seatStates[i])
	}
}

func TestFetchBookingsUnexpectedShapeIsEmptyList(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "nothing to see here"}`))
	})

	got, err := client.FetchBookings(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchBookingsInvalidJSONIsError(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("definitely not json"))
	})

	_, err := client.FetchBookings(context.Background())
	assert.Error(t, err)
}

func TestFetchBookingsServerErrorIsError(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.FetchBookings(context.Background())
	assert.Error(t, err)
}

func TestCreateBookingPostsConfirmedRequest(t *testing.T) {
	var received models.BookingRequest
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"id": "srv_42"})
	})

	response, err := client.CreateBooking(context.Background(), models.BookingRequest{
		Name:          "Alice",
		Email:         "a@x.com",
		Phone:         "555",
		PaymentMethod: "card",
		SeatConfirmed: true,
		SeatID:        5,
	})

	assert.NoError(t, err)
	assert.Equal(t, "srv_42", response.ID)
	assert.Equal(t, "Alice", received.Name)
	assert.True(t, received.SeatConfirmed)
	assert.Equal(t, 5, received.SeatID)
}

func TestCreateBookingRejectionSurfacesBodyVerbatim(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte("seat already booked"))
	})

	_, err := client.CreateBooking(context.Background(), models.BookingRequest{SeatID: 5})
	assert.Error(t, err)
	assert.Equal(t, "seat already booked", err.Error())
}

func TestCreateBookingSuccessWithoutIdentifier(t *testing.T) {
	_, client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	response, err := client.CreateBooking(context.Background(), models.BookingRequest{SeatID: 5})
	assert.NoError(t, err)
	assert.Empty(t, response.ID)
}
