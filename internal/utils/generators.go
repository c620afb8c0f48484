package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateBookingRef creates a placeholder booking reference for the
// optimistic local record when the service response carries no id.
func GenerateBookingRef() string {
	timestamp := time.Now().Unix()
	return fmt.Sprintf("bk_%d_%s", timestamp, uuid.NewString()[:8])
}
