// model/report.go
package model

import "time"

type ReportStatus string

const (
	ReportPending    ReportStatus = "pending"
	ReportVerified   ReportStatus = "verified"
	ReportInProgress ReportStatus = "in_progress"
	ReportCollected  ReportStatus = "collected"
	ReportRejected   ReportStatus = "rejected"
)

// Report is a citizen waste report. Amount is kept as the free-text
// value the reporter typed ("25 kg", "about 3kg"); the first decimal
// number is extracted when the report is verified.
type Report struct {
	ID          int64        `json:"id"`
	UserID      int64        `json:"user_id"`
	Location    string       `json:"location"`
	WasteType   string       `json:"waste_type"`
	Amount      string       `json:"amount"`
	ImageURL    *string      `json:"image_url,omitempty"`
	Status      ReportStatus `json:"status"`
	CollectorID *int64       `json:"collector_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
