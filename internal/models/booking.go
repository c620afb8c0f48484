package models

// BookingRecord is a booking as reported by the external booking
// service. The service owns the data; this process never persists it.
type BookingRecord struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	SeatConfirmed bool   `json:"seatConfirmed"`
	SeatID        int    `json:"seatId"`
	CreatedAt     string `json:"createdAt"`
}

// BookingRequest is the body posted to the booking-confirmation
// endpoint. SeatConfirmed is always true on submission.
type BookingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	SeatConfirmed bool   `json:"seatConfirmed"`
	SeatID        int    `json:"seatId"`
}

// BookingResponse is the success body of the confirmation endpoint.
// The identifier is optional; a missing one gets a local placeholder.
type BookingResponse struct {
	ID string `json:"id"`
}

// FormState holds the in-flight contact and payment details. It is
// transient: reset on modal close and after a successful submission.
type FormState struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
}

// DefaultFormState returns the form defaults used on reset.
func DefaultFormState() FormState {
	return FormState{PaymentMethod: "card"}
}
