package redemption

type CreateRedemptionReq struct {
	Points        int    `json:"points" validate:"required,gt=0"`
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountHolder string `json:"account_holder" validate:"required"`
	Reason        string `json:"reason"`
}

type RejectRedemptionReq struct {
	RejectionReason string `json:"rejection_reason"`
}
