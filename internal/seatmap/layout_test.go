package seatmap_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/models"
	"seatmap/internal/seatmap"
)

func TestBuildSeatsProducesFullAvailableSet(t *testing.T) {
	seats := seatmap.BuildSeats(seatmap.Capacity, seatmap.RowWidth)

	assert.Len(t, seats, seatmap.Capacity)

	seen := make(map[int]bool)
	for _, seat := range seats {
		assert.False(t, seen[seat.ID], "duplicate seat id %d", seat.ID)
		seen[seat.ID] = true
		assert.Equal(t, models.SeatAvailable, seat.Status)
		assert.Empty(t, seat.OccupantName)
	}
	for id := 0; id < seatmap.Capacity; id++ {
		assert.True(t, seen[id], "missing seat id %d", id)
	}
}

func TestBuildSeatsAddressingRoundTrip(t *testing.T) {
	cases := []struct {
		capacity int
		rowWidth int
	}{
		{80, 10},
		{12, 4},
		{9, 3},
		{30, 6},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%dx%d", tc.capacity, tc.rowWidth), func(t *testing.T) {
			seats := seatmap.BuildSeats(tc.capacity, tc.rowWidth)
			assert.Len(t, seats, tc.capacity)

			for _, seat := range seats {
				rowIndex := int(seat.Row[0] - 'A')
				assert.Equal(t, seat.ID, rowIndex*tc.rowWidth+seat.Number-1,
					"seat %d does not round-trip through %s%d", seat.ID, seat.Row, seat.Number)
			}
		})
	}
}

func TestBuildSeatsRowAndNumber(t *testing.T) {
	seats := seatmap.BuildSeats(seatmap.Capacity, seatmap.RowWidth)

	assert.Equal(t, "A", seats[0].Row)
	assert.Equal(t, 1, seats[0].Number)
	assert.Equal(t, "A", seats[9].Row)
	assert.Equal(t, 10, seats[9].Number)
	assert.Equal(t, "B", seats[10].Row)
	assert.Equal(t, 1, seats[10].Number)
	assert.Equal(t, "H", seats[79].Row)
	assert.Equal(t, 10, seats[79].Number)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "A1", seatmap.Label(0))
	assert.Equal(t, "A6", seatmap.Label(5))
	assert.Equal(t, "H10", seatmap.Label(79))
}
