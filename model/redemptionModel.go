// model/redemption.go
package model

import "time"

type RedemptionStatus string

const (
	RedemptionPending  RedemptionStatus = "pending"
	RedemptionApproved RedemptionStatus = "approved"
	RedemptionRejected RedemptionStatus = "rejected"
)

// RedemptionRequest converts points into a bank payout. It is resolved
// exactly once by an admin; approved and rejected are terminal.
type RedemptionRequest struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"user_id"`
	Points          int              `json:"points"`
	BankName        string           `json:"bank_name"`
	AccountNumber   string           `json:"account_number"`
	AccountHolder   string           `json:"account_holder"`
	Status          RedemptionStatus `json:"status"`
	Reason          *string          `json:"reason,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`
}
