package seatmap

import (
	"fmt"

	"seatmap/internal/models"
)

// Theater dimensions. The layout is fixed: 8 rows of 10 seats.
const (
	Capacity = 80
	RowWidth = 10
)

// BuildSeats produces the canonical seat set for a theater of the
// given capacity: ids 0..capacity-1, all available, addressed row by
// row. It is called at the start of every fetch cycle and its output
// replaced wholesale, so seats never carry state between cycles.
func BuildSeats(capacity, rowWidth int) []models.Seat {
	seats := make([]models.Seat, 0, capacity)
	for id := 0; id < capacity; id++ {
		seats = append(seats, models.Seat{
			ID:     id,
			Row:    rowLetter(id / rowWidth),
			Number: id%rowWidth + 1,
			Status: models.SeatAvailable,
		})
	}
	return seats
}

// Label renders a seat id as its row/number address, e.g. "A5".
func Label(id int) string {
	return fmt.Sprintf("%s%d", rowLetter(id/RowWidth), id%RowWidth+1)
}

func rowLetter(rowIndex int) string {
	return string(rune('A' + rowIndex))
}
