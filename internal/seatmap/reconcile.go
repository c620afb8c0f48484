package seatmap

import "seatmap/internal/models"

// Reconcile overlays the service's booking records onto a freshly
// built seat set and returns the result as a new slice; the input is
// never mutated. Only confirmed records count. Records apply in slice
// order, so if the service ever reports two confirmed bookings for
// the same seat the last one wins; records referencing a seat outside
// the layout are skipped. Conflict enforcement belongs to the
// service, not here.
func Reconcile(seats []models.Seat, bookings []models.BookingRecord) []models.Seat {
	reconciled := make([]models.Seat, len(seats))
	copy(reconciled, seats)

	index := make(map[int]int, len(reconciled))
	for i, seat := range reconciled {
		index[seat.ID] = i
	}

	for _, record := range bookings {
		if !record.SeatConfirmed {
			continue
		}
		i, ok := index[record.SeatID]
		if !ok {
			continue
		}
		reconciled[i].Status = models.SeatBooked
		reconciled[i].OccupantName = record.Name
	}

	return reconciled
}
