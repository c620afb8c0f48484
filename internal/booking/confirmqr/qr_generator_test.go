package confirmqr_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"seatmap/internal/booking/confirmqr"
	"seatmap/internal/models"
)

func TestGenerateProducesPNG(t *testing.T) {
	generator := confirmqr.NewGenerator()

	png, err := generator.Generate(models.BookingRecord{
		ID:        "bk_1",
		Name:      "Alice",
		SeatID:    5,
		CreatedAt: "2026-08-31T12:00:00Z",
	})

	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "expected PNG output")
}
