package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"seatmap/internal/logger"
	"seatmap/internal/models"
)

// Client talks to the external booking service. The service owns seat
// allocation and conflict prevention; this client only moves records
// back and forth.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *logger.Logger
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, client *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger.NewLogger(),
	}
}

// FetchBookings retrieves the full booking collection. The service
// has been observed to answer with a bare array, with the array under
// a "data" key, or under a "users" key; all three are accepted, and
// any other JSON shape is read as an empty collection rather than an
// error. Transport failures, non-2xx statuses and invalid JSON are
// errors.
func (c *Client) FetchBookings(ctx context.Context) ([]models.BookingRecord, error) {
	url := fmt.Sprintf("%s/bookings", c.baseURL)
	c.logger.Debug("FETCH", fmt.Sprintf("Fetching bookings: %s", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("FETCH", fmt.Sprintf("Failed to create bookings request: %v", err))
		return nil, fmt.Errorf("failed to create bookings request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("FETCH", fmt.Sprintf("Booking service error: %v", err))
		return nil, fmt.Errorf("booking service error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Error("FETCH", fmt.Sprintf("Failed to close bookings response body: %v", err))
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("FETCH", fmt.Sprintf("Booking service returned status: %d", resp.StatusCode))
		return nil, fmt.Errorf("booking service returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("FETCH", fmt.Sprintf("Failed to read bookings response: %v", err))
		return nil, fmt.Errorf("failed to read bookings response: %w", err)
	}

	records, err := decodeBookingList(body)
	if err != nil {
		c.logger.Error("FETCH", fmt.Sprintf("Failed to decode bookings response: %v", err))
		return nil, fmt.Errorf("failed to decode bookings response: %w", err)
	}

	c.logger.Info("FETCH", fmt.Sprintf("Fetched %d booking records", len(records)))
	return records, nil
}

// decodeBookingList handles the three accepted response shapes and
// falls back to an empty list for anything else that is still valid
// JSON. The forgiving fallback is deliberate.
func decodeBookingList(body []byte) ([]models.BookingRecord, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	var list []models.BookingRecord
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}

	var wrapper struct {
		Data  []models.BookingRecord `json:"data"`
		Users []models.BookingRecord `json:"users"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		if wrapper.Data != nil {
			return wrapper.Data, nil
		}
		if wrapper.Users != nil {
			return wrapper.Users, nil
		}
	}

	return []models.BookingRecord{}, nil
}

// CreateBooking posts a confirmed booking for a seat. On a non-2xx
// response the body text is returned verbatim as the error message so
// the user sees exactly what the service said.
func (c *Client) CreateBooking(ctx context.Context, booking models.BookingRequest) (*models.BookingResponse, error) {
	url := fmt.Sprintf("%s/bookings", c.baseURL)
	c.logger.Debug("BOOKING", fmt.Sprintf("Creating booking for seat %d: %s", booking.SeatID, url))

	payload, err := json.Marshal(booking)
	if err != nil {
		c.logger.Error("BOOKING", fmt.Sprintf("Failed to encode booking request: %v", err))
		return nil, fmt.Errorf("failed to encode booking request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("BOOKING", fmt.Sprintf("Failed to create booking request: %v", err))
		return nil, fmt.Errorf("failed to create booking request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("BOOKING", fmt.Sprintf("Booking service error: %v", err))
		return nil, fmt.Errorf("booking service error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.logger.Error("BOOKING", fmt.Sprintf("Failed to close booking response body: %v", err))
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("BOOKING", fmt.Sprintf("Failed to read booking response: %v", err))
		return nil, fmt.Errorf("failed to read booking response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := strings.TrimSpace(string(body))
		if message == "" {
			message = fmt.Sprintf("booking service returned status: %d", resp.StatusCode)
		}
		c.logger.Error("BOOKING", fmt.Sprintf("Booking rejected (%d): %s", resp.StatusCode, message))
		return nil, fmt.Errorf("%s", message)
	}

	// The identifier is optional; an undecodable success body just
	// means no id was returned.
	var response models.BookingResponse
	_ = json.Unmarshal(body, &response)

	c.logger.Info("BOOKING", fmt.Sprintf("Booking created for seat %d (id=%q)", booking.SeatID, response.ID))
	return &response, nil
}
