package redemptionsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	payoutrepo "github.com/rameez-hub125/treasure-to-trash/repository/payout"
)

// errors used by controllers

type ErrCode string

const (
	ErrUserNotFound        ErrCode = "USER_NOT_FOUND"
	ErrRequestNotFound     ErrCode = "REQUEST_NOT_FOUND"
	ErrAlreadyResolved     ErrCode = "ALREADY_RESOLVED"
	ErrInsufficientBalance ErrCode = "INSUFFICIENT_BALANCE"
	ErrInvalidAmount       ErrCode = "INVALID_AMOUNT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// BankDetails is the payout destination supplied by the requester.
type BankDetails struct {
	BankName      string
	AccountNumber string
	AccountHolder string
}

type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repo interface {
	Insert(ctx context.Context, req *model.RedemptionRequest) error
	ByID(ctx context.Context, id int64) (*model.RedemptionRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.RedemptionRequest, error)
	ListAll(ctx context.Context) ([]model.RedemptionRequest, error)
	ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.RedemptionRequest, error)
	MarkApproved(ctx context.Context, tx pgx.Tx, id int64, approvedAt time.Time) error
	MarkRejected(ctx context.Context, tx pgx.Tx, id int64, reason string) error
}

type RewardRepo interface {
	BalanceByUser(ctx context.Context, userID int64) (*model.Reward, error)
	ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	// Request validates the amount against the current balance and
	// creates a pending request. Points are not reserved; the balance
	// is only touched at approval.
	Request(ctx context.Context, userID int64, pts int, bank BankDetails, reason string) (*model.RedemptionRequest, error)

	// Approve resolves a pending request: creates the bank
	// disbursement, deducts the points (clamped at zero) and writes
	// the redeemed ledger entry, atomically.
	Approve(ctx context.Context, requestID int64) (*model.RedemptionRequest, error)

	// Reject resolves a pending request without touching the balance.
	Reject(ctx context.Context, requestID int64, reason string) (*model.RedemptionRequest, error)

	MyRequests(ctx context.Context, userID int64) ([]model.RedemptionRequest, error)
	AllRequests(ctx context.Context) ([]model.RedemptionRequest, error)
}

type service struct {
	db Beginner
	r  Repo
	rw RewardRepo
	ur UserRepo
	po payoutrepo.Repo
}

func New(db Beginner, r Repo, rw RewardRepo, ur UserRepo, po payoutrepo.Repo) Service {
	return &service{db: db, r: r, rw: rw, ur: ur, po: po}
}

const defaultRejectionReason = "Request rejected by admin"

func (s *service) Request(ctx context.Context, userID int64, pts int, bank BankDetails, reason string) (*model.RedemptionRequest, error) {
	if pts <= 0 {
		return nil, makeErr(ErrInvalidAmount)
	}
	if _, err := s.ur.ByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrUserNotFound)
		}
		return nil, err
	}

	// Sufficiency is checked against the balance as of now. Nothing is
	// reserved, so two pending requests can both pass this check; the
	// zero clamp at approval keeps the balance non-negative.
	balance, err := s.rw.BalanceByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance == nil || balance.Points < pts {
		return nil, makeErr(ErrInsufficientBalance)
	}

	req := &model.RedemptionRequest{
		UserID:        userID,
		Points:        pts,
		BankName:      bank.BankName,
		AccountNumber: bank.AccountNumber,
		AccountHolder: bank.AccountHolder,
		Status:        model.RedemptionPending,
	}
	if reason != "" {
		req.Reason = &reason
	}
	if err := s.r.Insert(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) Approve(ctx context.Context, requestID int64) (req *model.RedemptionRequest, err error) {
	req, err = s.r.ByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrRequestNotFound)
		}
		return nil, err
	}
	if req.Status != model.RedemptionPending {
		return nil, makeErr(ErrAlreadyResolved)
	}

	// Gateway call happens before the local transaction, the same way
	// invoices are created before booking state is committed.
	_, err = s.po.CreateDisbursement(payoutrepo.CreateDisbursementReq{
		ExternalID:    fmt.Sprintf("redemption:%d:%d", req.ID, req.UserID),
		Amount:        req.Points,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		Description:   "Reward points redemption",
	})
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Re-check under the row lock; a concurrent admin may have
	// resolved it between the read above and here.
	locked, err := s.r.ByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrRequestNotFound)
		}
		return nil, err
	}
	if locked.Status != model.RedemptionPending {
		return nil, makeErr(ErrAlreadyResolved)
	}

	now := time.Now().UTC()
	if err = s.r.MarkApproved(ctx, tx, requestID, now); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("Coin redemption approved: %d points transferred to %s account %s",
		locked.Points, locked.BankName, locked.AccountNumber)
	if _, err = s.rw.ApplyDelta(ctx, tx, locked.UserID, -locked.Points, model.TxRedeemed, desc); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	locked.Status = model.RedemptionApproved
	locked.ApprovedAt = &now
	return locked, nil
}

func (s *service) Reject(ctx context.Context, requestID int64, reason string) (req *model.RedemptionRequest, err error) {
	if reason == "" {
		reason = defaultRejectionReason
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	locked, err := s.r.ByIDForUpdate(ctx, tx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrRequestNotFound)
		}
		return nil, err
	}
	if locked.Status != model.RedemptionPending {
		return nil, makeErr(ErrAlreadyResolved)
	}

	if err = s.r.MarkRejected(ctx, tx, requestID, reason); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	locked.Status = model.RedemptionRejected
	locked.RejectionReason = &reason
	return locked, nil
}

func (s *service) MyRequests(ctx context.Context, userID int64) ([]model.RedemptionRequest, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) AllRequests(ctx context.Context) ([]model.RedemptionRequest, error) {
	return s.r.ListAll(ctx)
}
