package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"seatmap/internal/logger"
	"seatmap/internal/models"
	"seatmap/internal/seatmap"
	"seatmap/internal/utils"
)

// BookingAPI is the slice of the external service client the
// controller needs.
type BookingAPI interface {
	FetchBookings(ctx context.Context) ([]models.BookingRecord, error)
	CreateBooking(ctx context.Context, booking models.BookingRequest) (*models.BookingResponse, error)
}

var (
	ErrSubmitInFlight = errors.New("a booking submission is in progress")
	ErrNoSelection    = errors.New("no seat selected")
	ErrUnknownSeat    = errors.New("seat does not exist")
	ErrUnknownField   = errors.New("unknown form field")
	ErrValidation     = errors.New("name, email and phone are required")
)

// SelectResult tells the view what a seat click did.
type SelectResult struct {
	Booked       bool   `json:"booked"`
	SeatID       int    `json:"seatId"`
	Label        string `json:"label"`
	OccupantName string `json:"occupantName,omitempty"`
}

// SubmitResult reports a successful booking back to the view.
type SubmitResult struct {
	Reference string `json:"reference"`
	SeatID    int    `json:"seatId"`
	Label     string `json:"label"`
	Name      string `json:"name"`
}

// Service owns all seat-map state and is the only place it mutates.
// The presentation layer reads snapshots and calls the operations
// below. The fetch cycle and the submission cycle keep independent
// busy flags and do not serialize against each other; if a refresh
// and a submission overlap, the last write to seat state wins and the
// next reconciliation settles it.
type Service struct {
	api         BookingAPI
	logger      *logger.Logger
	resyncDelay time.Duration
	resyncCtx   context.Context

	mu         sync.Mutex
	seats      []models.Seat
	bookings   []models.BookingRecord
	selected   int
	form       models.FormState
	modalOpen  bool
	loading    bool
	refreshing bool
	submitting bool
	fetchErr   string
	notice     string
}

// NewService creates the controller with an all-available seat set.
// resyncCtx is the parent context for the scheduled post-submission
// re-fetch; cancelling it on teardown stops pending re-syncs.
func NewService(resyncCtx context.Context, api BookingAPI, resyncDelay time.Duration) *Service {
	return &Service{
		api:         api,
		logger:      logger.NewLogger(),
		resyncDelay: resyncDelay,
		resyncCtx:   resyncCtx,
		seats:       seatmap.BuildSeats(seatmap.Capacity, seatmap.RowWidth),
		selected:    -1,
		form:        models.DefaultFormState(),
	}
}

// Load runs one fetch cycle: rebuild the canonical seat set, fetch
// the booking collection, filter to confirmed records and reconcile.
// On any transport or decode failure it falls back to an
// all-available seat set with an empty booking list and a user-visible
// banner; the failure is recoverable and never retried automatically.
// The busy indicator is released on every exit path.
func (s *Service) Load(ctx context.Context, manualRefresh bool) error {
	s.mu.Lock()
	if manualRefresh {
		s.refreshing = true
	} else {
		s.loading = true
	}
	s.fetchErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.refreshing = false
		s.mu.Unlock()
	}()

	seats := seatmap.BuildSeats(seatmap.Capacity, seatmap.RowWidth)

	records, err := s.api.FetchBookings(ctx)
	if err != nil {
		s.logger.Error("FETCH", fmt.Sprintf("Load failed, falling back to empty seat map: %v", err))
		s.mu.Lock()
		s.seats = seats
		s.bookings = nil
		s.fetchErr = "Could not load bookings. Showing all seats as available."
		s.mu.Unlock()
		return fmt.Errorf("failed to load bookings: %w", err)
	}

	confirmed := make([]models.BookingRecord, 0, len(records))
	for _, record := range records {
		if record.SeatConfirmed {
			confirmed = append(confirmed, record)
		}
	}

	s.mu.Lock()
	s.bookings = confirmed
	s.seats = seatmap.Reconcile(seats, confirmed)
	s.mu.Unlock()

	s.logger.LogFetch("LOAD", fmt.Sprintf("Reconciled %d confirmed bookings onto %d seats", len(confirmed), len(seats)))
	return nil
}

// SelectSeat handles a seat click. A booked seat never changes the
// selection; the result only carries the occupant's name for display.
// An available seat becomes the pending selection and opens the modal.
func (s *Service) SelectSeat(id int) (*SelectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seat *models.Seat
	for i := range s.seats {
		if s.seats[i].ID == id {
			seat = &s.seats[i]
			break
		}
	}
	if seat == nil {
		return nil, ErrUnknownSeat
	}

	label := fmt.Sprintf("%s%d", seat.Row, seat.Number)

	if seat.Status == models.SeatBooked {
		return &SelectResult{
			Booked:       true,
			SeatID:       seat.ID,
			Label:        label,
			OccupantName: seat.OccupantName,
		}, nil
	}

	s.selected = seat.ID
	s.modalOpen = true
	return &SelectResult{SeatID: seat.ID, Label: label}, nil
}

// UpdateForm sets one form field by name.
func (s *Service) UpdateForm(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case "name":
		s.form.Name = value
	case "email":
		s.form.Email = value
	case "phone":
		s.form.Phone = value
	case "paymentMethod":
		s.form.PaymentMethod = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// CloseModal abandons the pending selection and resets the form. It
// is a rejected no-op while a submission is in flight so a pending
// request is never orphaned.
func (s *Service) CloseModal() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitting {
		return ErrSubmitInFlight
	}

	s.selected = -1
	s.modalOpen = false
	s.form = models.DefaultFormState()
	return nil
}

// Submit validates the form, posts the booking and applies the
// optimistic local update on success. The update may be briefly wrong
// if the request raced another booking for the same seat; the
// re-fetch scheduled afterwards is the sole conflict-resolution
// mechanism. On rejection all state is left untouched and the modal
// stays open.
func (s *Service) Submit(ctx context.Context) (*SubmitResult, error) {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if s.selected < 0 {
		s.mu.Unlock()
		return nil, ErrNoSelection
	}
	form := s.form
	seatID := s.selected
	if form.Name == "" || form.Email == "" || form.Phone == "" {
		s.mu.Unlock()
		return nil, ErrValidation
	}
	s.submitting = true
	s.mu.Unlock()

	response, err := s.api.CreateBooking(ctx, models.BookingRequest{
		Name:          form.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		PaymentMethod: form.PaymentMethod,
		SeatConfirmed: true,
		SeatID:        seatID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.logger.Error("BOOKING", fmt.Sprintf("Submission for seat %d rejected: %v", seatID, err))
		return nil, err
	}

	reference := response.ID
	if reference == "" {
		reference = utils.GenerateBookingRef()
	}

	// Optimistic update: mark the seat and synthesize a record. The
	// scheduled re-fetch replaces both with the server's view.
	for i := range s.seats {
		if s.seats[i].ID == seatID {
			s.seats[i].Status = models.SeatBooked
			s.seats[i].OccupantName = form.Name
			break
		}
	}
	s.bookings = append(s.bookings, models.BookingRecord{
		ID:            reference,
		Name:          form.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		PaymentMethod: form.PaymentMethod,
		SeatConfirmed: true,
		SeatID:        seatID,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	})

	label := seatmap.Label(seatID)
	s.selected = -1
	s.modalOpen = false
	s.form = models.DefaultFormState()
	s.notice = fmt.Sprintf("Seat %s booked for %s", label, form.Name)

	s.logger.LogBooking("CONFIRMED", reference, fmt.Sprintf("Seat %s booked for %s", label, form.Name))
	s.scheduleResync()

	return &SubmitResult{
		Reference: reference,
		SeatID:    seatID,
		Label:     label,
		Name:      form.Name,
	}, nil
}

func (s *Service) scheduleResync() {
	time.AfterFunc(s.resyncDelay, func() {
		if s.resyncCtx.Err() != nil {
			return
		}
		if err := s.Load(s.resyncCtx, false); err != nil {
			s.logger.Error("FETCH", fmt.Sprintf("Post-submission re-sync failed: %v", err))
		}
	})
}

// BookingByRef looks up a booking in the current collection, local
// synthesized records included.
func (s *Service) BookingByRef(reference string) (*models.BookingRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.bookings {
		if record.ID == reference {
			found := record
			return &found, true
		}
	}
	return nil, false
}

// Snapshot returns a copy of the current state for rendering.
func (s *Service) Snapshot() models.SeatMapView {
	s.mu.Lock()
	defer s.mu.Unlock()

	seats := make([]models.Seat, len(s.seats))
	copy(seats, s.seats)
	bookings := make([]models.BookingRecord, len(s.bookings))
	copy(bookings, s.bookings)

	view := models.SeatMapView{
		Seats:       seats,
		Bookings:    bookings,
		ModalOpen:   s.modalOpen,
		Form:        s.form,
		Loading:     s.loading,
		Refreshing:  s.refreshing,
		Submitting:  s.submitting,
		ErrorBanner: s.fetchErr,
		Notice:      s.notice,
	}
	if s.selected >= 0 {
		selected := s.selected
		view.SelectedSeatID = &selected
	}
	return view
}
