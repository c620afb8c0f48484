package confirmqr

import (
	"encoding/json"

	"github.com/skip2/go-qrcode"

	"seatmap/internal/models"
	"seatmap/internal/seatmap"
)

// payload is what the scanner sees: enough to identify the booking at
// the door without another lookup.
type payload struct {
	Reference string `json:"reference"`
	Seat      string `json:"seat"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: 256}
}

// Generate renders a booking confirmation as a QR PNG.
func (g *Generator) Generate(record models.BookingRecord) ([]byte, error) {
	data, err := json.Marshal(payload{
		Reference: record.ID,
		Seat:      seatmap.Label(record.SeatID),
		Name:      record.Name,
		CreatedAt: record.CreatedAt,
	})
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(string(data), qrcode.Medium, g.size)
}
