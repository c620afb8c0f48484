package booking_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"seatmap/internal/booking"
	"seatmap/internal/booking/confirmqr"
	"seatmap/internal/logger"
	"seatmap/internal/utils"
)

type Handler struct {
	BookingService *booking.Service
	QRGenerator    *confirmqr.Generator
	Logger         *logger.Logger
}

func NewHandler(service *booking.Service) *Handler {
	return &Handler{
		BookingService: service,
		QRGenerator:    confirmqr.NewGenerator(),
		Logger:         logger.NewLogger(),
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload utils.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Failed to encode response: %v", err))
	}
}

// GetSeatMap returns the full view state: seats, flags, banner and
// form contents.
func (h *Handler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("seat map", h.BookingService.Snapshot()))
}

// Refresh runs a manual fetch cycle. A failed fetch is recoverable:
// the snapshot carries the error banner and the all-available
// fallback, so the response is still a 200.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("API", "Refresh: manual refresh requested")

	message := "seat map refreshed"
	if err := h.BookingService.Load(r.Context(), true); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Refresh: %v", err))
		message = "refresh failed, showing fallback seat map"
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse(message, h.BookingService.Snapshot()))
}

// SelectSeat handles a seat click.
func (h *Handler) SelectSeat(w http.ResponseWriter, r *http.Request) {
	seatParam := chi.URLParam(r, "seatID")
	seatID, err := strconv.Atoi(seatParam)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid seat id", seatParam))
		return
	}

	result, err := h.BookingService.SelectSeat(seatID)
	if err != nil {
		h.Logger.Warn("API", fmt.Sprintf("SelectSeat: %v", err))
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("seat not found", err.Error()))
		return
	}

	if result.Booked {
		h.writeJSON(w, http.StatusOK, utils.SuccessResponse(
			fmt.Sprintf("Seat %s is booked by %s", result.Label, result.OccupantName), result))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse(
		fmt.Sprintf("Seat %s selected", result.Label), result))
}

// UpdateForm sets a single form field by name.
func (h *Handler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	if err := h.BookingService.UpdateForm(body.Field, body.Value); err != nil {
		h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("could not update form", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("form updated", nil))
}

// CloseModal abandons the pending selection unless a submission is in
// flight.
func (h *Handler) CloseModal(w http.ResponseWriter, r *http.Request) {
	if err := h.BookingService.CloseModal(); err != nil {
		h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("cannot close booking form", err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, utils.SuccessResponse("booking form closed", nil))
}

// SubmitBooking posts the pending booking to the external service.
func (h *Handler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("API", "SubmitBooking: received request")

	result, err := h.BookingService.Submit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrValidation), errors.Is(err, booking.ErrNoSelection):
			h.writeJSON(w, http.StatusBadRequest, utils.ErrorResponse("booking not submitted", err.Error()))
		case errors.Is(err, booking.ErrSubmitInFlight):
			h.writeJSON(w, http.StatusConflict, utils.ErrorResponse("booking not submitted", err.Error()))
		default:
			// The service's rejection message travels verbatim.
			h.writeJSON(w, http.StatusBadGateway, utils.ErrorResponse("booking rejected", err.Error()))
		}
		return
	}

	h.Logger.Info("API", fmt.Sprintf("SubmitBooking: booking %s confirmed", result.Reference))
	h.writeJSON(w, http.StatusCreated, utils.SuccessResponse(
		fmt.Sprintf("Seat %s booked for %s", result.Label, result.Name), result))
}

// BookingQR renders the confirmation QR for a booking reference.
func (h *Handler) BookingQR(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "bookingID")

	record, ok := h.BookingService.BookingByRef(reference)
	if !ok {
		h.writeJSON(w, http.StatusNotFound, utils.ErrorResponse("booking not found", reference))
		return
	}

	png, err := h.QRGenerator.Generate(*record)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("BookingQR: failed to generate QR: %v", err))
		h.writeJSON(w, http.StatusInternalServerError, utils.ErrorResponse("could not generate QR", err.Error()))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("API", fmt.Sprintf("BookingQR: failed to write image: %v", err))
	}
}
