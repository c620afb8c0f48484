package models

const (
	SeatAvailable = "available"
	SeatBooked    = "booked"
)

// Seat is one bookable unit. Seats are rebuilt from scratch on every
// fetch cycle; Row and Number are derived from ID and carry no
// independent state.
type Seat struct {
	ID           int    `json:"id"`
	Row          string `json:"row"`
	Number       int    `json:"number"`
	Status       string `json:"status"`
	OccupantName string `json:"occupantName,omitempty"`
}

// SeatMapView is the read-only snapshot handed to the presentation
// layer. Mutation happens only through the controller operations.
type SeatMapView struct {
	Seats          []Seat          `json:"seats"`
	Bookings       []BookingRecord `json:"bookings"`
	SelectedSeatID *int            `json:"selectedSeatId,omitempty"`
	ModalOpen      bool            `json:"modalOpen"`
	Form           FormState       `json:"form"`
	Loading        bool            `json:"loading"`
	Refreshing     bool            `json:"refreshing"`
	Submitting     bool            `json:"submitting"`
	ErrorBanner    string          `json:"errorBanner,omitempty"`
	Notice         string          `json:"notice,omitempty"`
}
