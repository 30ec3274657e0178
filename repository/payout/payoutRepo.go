package payoutrepo

import "errors"

// ErrBadCallbackToken means the webhook token header did not match the
// configured callback token.
var ErrBadCallbackToken = errors.New("payout: bad callback token")

type CreateDisbursementReq struct {
	ExternalID    string
	Amount        int
	BankName      string
	AccountNumber string
	AccountHolder string
	Description   string
}

type CreateDisbursementResp struct {
	DisbursementID string
	Status         string
}

type Repo interface {
	CreateDisbursement(req CreateDisbursementReq) (*CreateDisbursementResp, error)
	VerifyCallbackToken(tokenHeader string) error
}
