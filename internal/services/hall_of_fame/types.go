package hall_of_fame

import (
	"github.com/KirkDiggler/dejavu/internal/models"
)

// MaxShareImages caps the images attached to one share
const MaxShareImages = 10

// Image is a downloaded attachment ready to upload
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ShareInput identifies the entry to share
type ShareInput struct {
	MessageID string
}

// ShareOutput is what gets reposted
type ShareOutput struct {
	Entry   *models.HallOfFameEntry
	Content string
	Images  []*Image

	// Live is true when the content came from the current message
	Live bool

	// Skipped counts images that could not be downloaded
	Skipped int
}
