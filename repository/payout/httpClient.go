package payoutrepo

import (
	"bytes"
	"crypto/hmac"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rameez-hub125/treasure-to-trash/util/httpx"
)

type httpRepo struct {
	apiKey        string
	baseURL       string
	callbackToken string
	client        *http.Client
}

func NewHTTP(apiKey, baseURL, callbackToken string) Repo {
	return &httpRepo{apiKey: apiKey, baseURL: baseURL, callbackToken: callbackToken, client: httpx.Client()}
}

func (r *httpRepo) CreateDisbursement(req CreateDisbursementReq) (*CreateDisbursementResp, error) {
	body := map[string]any{
		"external_id":         req.ExternalID,
		"amount":              req.Amount,
		"bank_code":           req.BankName,
		"account_number":      req.AccountNumber,
		"account_holder_name": req.AccountHolder,
		"description":         req.Description,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequest("POST", r.baseURL+"/disbursements", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(r.apiKey, "")
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("payout create disbursement failed: %s", resp.Status)
	}

	var out struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, errors.New("payout: empty disbursement id")
	}
	return &CreateDisbursementResp{DisbursementID: out.ID, Status: out.Status}, nil
}

func (r *httpRepo) VerifyCallbackToken(tokenHeader string) error {
	if r.callbackToken == "" {
		return errors.New("payout: callback token not configured")
	}
	if !hmac.Equal([]byte(tokenHeader), []byte(r.callbackToken)) {
		return ErrBadCallbackToken
	}
	return nil
}
