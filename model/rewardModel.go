// model/reward.go
package model

import "time"

// Reward is a per-user point balance row. UserID 0 is reserved for
// admin-issued catalog rewards that do not belong to a citizen.
type Reward struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Points         int       `json:"points"`
	Level          int       `json:"level"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	CollectionInfo string    `json:"collection_info"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TransactionType string

const (
	TxEarned   TransactionType = "earned"
	TxRedeemed TransactionType = "redeemed"
)

// Transaction is an append-only ledger entry. Every balance mutation
// writes exactly one of these in the same database transaction.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}
