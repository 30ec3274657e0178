package ledgersvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	rewardrepo "github.com/rameez-hub125/treasure-to-trash/repository/reward"
	"github.com/rameez-hub125/treasure-to-trash/service/points"
)

// errors used by controllers

type ErrCode string

const (
	ErrUserNotFound   ErrCode = "USER_NOT_FOUND"
	ErrRewardNotFound ErrCode = "REWARD_NOT_FOUND"
	ErrBadInput       ErrCode = "BAD_INPUT"
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

type RewardPatch = rewardrepo.RewardPatch

// Beginner starts database transactions; pgxpool.Pool satisfies it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repo interface {
	BalanceByUser(ctx context.Context, userID int64) (*model.Reward, error)
	ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
	ListRewards(ctx context.Context) ([]model.Reward, error)
	InsertReward(ctx context.Context, rw *model.Reward) error
	UpdateReward(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error)
	DeleteReward(ctx context.Context, id int64) (bool, error)
}

type UserRepo interface {
	List(ctx context.Context) ([]model.User, error)
}

// BalanceSnapshot is the outward view of a balance, including the
// display tier name.
type BalanceSnapshot struct {
	UserID int64  `json:"user_id"`
	Points int    `json:"points"`
	Level  int    `json:"level"`
	Tier   string `json:"tier"`
}

// UserWithBalance joins a user with their balance for admin listings.
type UserWithBalance struct {
	model.User
	Reward *model.Reward `json:"reward,omitempty"`
}

type Service interface {
	// ApplyAward credits a computed award and writes the breakdown to
	// the ledger, atomically.
	ApplyAward(ctx context.Context, userID int64, calc points.Calculation) (*model.Reward, error)

	// AdjustTokens applies a signed admin adjustment; the resulting
	// balance is clamped at zero.
	AdjustTokens(ctx context.Context, userID int64, amount int) (*model.Reward, error)

	Balance(ctx context.Context, userID int64) (*BalanceSnapshot, error)
	UsersWithBalances(ctx context.Context) ([]UserWithBalance, error)
	TransactionsByUser(ctx context.Context, userID int64) ([]model.Transaction, error)
	AllTransactions(ctx context.Context) ([]model.Transaction, error)

	ListRewards(ctx context.Context) ([]model.Reward, error)
	CreateReward(ctx context.Context, name, description string, pts int, collectionInfo string, isAvailable bool) (*model.Reward, error)
	UpdateReward(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error)
	DeleteReward(ctx context.Context, id int64) error
}

type service struct {
	db Beginner
	r  Repo
	ur UserRepo
}

func New(db Beginner, r Repo, ur UserRepo) Service { return &service{db: db, r: r, ur: ur} }

// AwardDescription renders the human-readable breakdown stored on the
// earned ledger entry.
func AwardDescription(calc points.Calculation) string {
	return fmt.Sprintf("Waste report verified: %d base + %d quantity + %d frequency = %d points",
		calc.BasePoints, calc.QuantityBonusPoints, calc.FrequencyBonusPoints, calc.TotalPoints)
}

func (s *service) ApplyAward(ctx context.Context, userID int64, calc points.Calculation) (*model.Reward, error) {
	return s.applyDelta(ctx, userID, calc.TotalPoints, model.TxEarned, AwardDescription(calc))
}

func (s *service) AdjustTokens(ctx context.Context, userID int64, amount int) (*model.Reward, error) {
	txType := model.TxEarned
	desc := "Admin token adjustment (added)"
	if amount < 0 {
		txType = model.TxRedeemed
		desc = "Admin token adjustment (removed)"
	}
	return s.applyDelta(ctx, userID, amount, txType, desc)
}

func (s *service) applyDelta(ctx context.Context, userID int64, delta int, txType model.TransactionType, desc string) (rw *model.Reward, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rw, err = s.r.ApplyDelta(ctx, tx, userID, delta, txType, desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrUserNotFound)
		}
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rw, nil
}

func (s *service) Balance(ctx context.Context, userID int64) (*BalanceSnapshot, error) {
	rw, err := s.r.BalanceByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if rw == nil {
		// No award yet; report the empty first-tier balance.
		return &BalanceSnapshot{UserID: userID, Points: 0, Level: 1, Tier: points.LevelName(1)}, nil
	}
	return &BalanceSnapshot{UserID: rw.UserID, Points: rw.Points, Level: rw.Level, Tier: points.LevelName(rw.Level)}, nil
}

func (s *service) UsersWithBalances(ctx context.Context) ([]UserWithBalance, error) {
	users, err := s.ur.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserWithBalance, 0, len(users))
	for _, u := range users {
		rw, err := s.r.BalanceByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, UserWithBalance{User: u, Reward: rw})
	}
	return out, nil
}

func (s *service) TransactionsByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return s.r.ListTransactionsByUser(ctx, userID)
}

func (s *service) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.r.ListTransactions(ctx)
}

func (s *service) ListRewards(ctx context.Context) ([]model.Reward, error) {
	return s.r.ListRewards(ctx)
}

func (s *service) CreateReward(ctx context.Context, name, description string, pts int, collectionInfo string, isAvailable bool) (*model.Reward, error) {
	if name == "" || collectionInfo == "" || pts <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	// Admin-issued rewards belong to the system pool, user 0.
	rw := &model.Reward{
		UserID:         0,
		Points:         pts,
		Level:          1,
		Name:           name,
		Description:    description,
		CollectionInfo: collectionInfo,
		IsAvailable:    isAvailable,
	}
	if err := s.r.InsertReward(ctx, rw); err != nil {
		return nil, err
	}
	return rw, nil
}

func (s *service) UpdateReward(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error) {
	rw, err := s.r.UpdateReward(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if rw == nil {
		return nil, makeErr(ErrRewardNotFound)
	}
	return rw, nil
}

func (s *service) DeleteReward(ctx context.Context, id int64) error {
	ok, err := s.r.DeleteReward(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrRewardNotFound)
	}
	return nil
}
