package ledgersvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/service/points"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

type fakeDB struct{ tx *fakeTx }

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

type mockRepo struct {
	balanceByUserFn func(ctx context.Context, userID int64) (*model.Reward, error)
	applyDeltaFn    func(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)
	updateRewardFn  func(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error)
	deleteRewardFn  func(ctx context.Context, id int64) (bool, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) BalanceByUser(ctx context.Context, userID int64) (*model.Reward, error) {
	if m.balanceByUserFn == nil {
		return nil, nil
	}
	return m.balanceByUserFn(ctx, userID)
}

func (m *mockRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
	if m.applyDeltaFn == nil {
		return &model.Reward{UserID: userID, Points: delta}, nil
	}
	return m.applyDeltaFn(ctx, tx, userID, delta, txType, description)
}

func (m *mockRepo) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return nil, nil
}

func (m *mockRepo) ListTransactionsByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return nil, nil
}

func (m *mockRepo) ListRewards(ctx context.Context) ([]model.Reward, error) { return nil, nil }

func (m *mockRepo) InsertReward(ctx context.Context, rw *model.Reward) error {
	rw.ID = 1
	return nil
}

func (m *mockRepo) UpdateReward(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error) {
	if m.updateRewardFn == nil {
		return nil, nil
	}
	return m.updateRewardFn(ctx, id, patch)
}

func (m *mockRepo) DeleteReward(ctx context.Context, id int64) (bool, error) {
	if m.deleteRewardFn == nil {
		return false, nil
	}
	return m.deleteRewardFn(ctx, id)
}

type mockUserRepo struct {
	listFn func(ctx context.Context) ([]model.User, error)
}

func (m *mockUserRepo) List(ctx context.Context) ([]model.User, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

// --- tests ---

func TestAwardDescription(t *testing.T) {
	calc := points.Calculate(points.Input{
		WasteType:       points.FoodWaste,
		Amount:          50,
		SubmissionCount: 5,
	})
	require.Equal(t,
		"Waste report verified: 500 base + 50 quantity + 25 frequency = 575 points",
		AwardDescription(calc))
}

func TestApplyAward_CreditsAndCommits(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}

	var gotDelta int
	var gotType model.TransactionType
	var gotDesc string
	m := &mockRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			require.Same(t, tx, txArg)
			gotDelta = delta
			gotType = txType
			gotDesc = description
			return &model.Reward{UserID: userID, Points: delta, Level: 2}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m, &mockUserRepo{})

	calc := points.Calculate(points.Input{WasteType: points.FoodWaste, Amount: 50, SubmissionCount: 5})
	rw, err := svc.ApplyAward(ctx, 7, calc)
	require.NoError(t, err)
	require.NotNil(t, rw)
	require.Equal(t, 575, gotDelta)
	require.Equal(t, model.TxEarned, gotType)
	require.Equal(t, AwardDescription(calc), gotDesc)
	require.True(t, tx.committed)
	require.False(t, tx.rolledBack)
}

func TestApplyAward_UserMissing(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := New(&fakeDB{tx: tx}, m, &mockUserRepo{})

	_, err := svc.ApplyAward(ctx, 99, points.Calculate(points.Input{WasteType: points.Other, Amount: 1, SubmissionCount: 1}))
	require.Error(t, err)
	require.Equal(t, ErrUserNotFound, Code(err))
	require.True(t, tx.rolledBack)
	require.False(t, tx.committed)
}

func TestAdjustTokens_Added(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	var gotType model.TransactionType
	var gotDesc string
	m := &mockRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			gotType = txType
			gotDesc = description
			return &model.Reward{UserID: userID, Points: delta}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m, &mockUserRepo{})

	_, err := svc.AdjustTokens(ctx, 3, 100)
	require.NoError(t, err)
	require.Equal(t, model.TxEarned, gotType)
	require.Equal(t, "Admin token adjustment (added)", gotDesc)
}

func TestAdjustTokens_Removed(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	var gotDelta int
	var gotType model.TransactionType
	var gotDesc string
	m := &mockRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			gotDelta = delta
			gotType = txType
			gotDesc = description
			return &model.Reward{UserID: userID, Points: 0}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m, &mockUserRepo{})

	_, err := svc.AdjustTokens(ctx, 3, -250)
	require.NoError(t, err)
	require.Equal(t, -250, gotDelta)
	require.Equal(t, model.TxRedeemed, gotType)
	require.Equal(t, "Admin token adjustment (removed)", gotDesc)
	require.True(t, tx.committed)
}

func TestBalance_NoAwardYet(t *testing.T) {
	ctx := context.Background()
	svc := New(&fakeDB{tx: &fakeTx{}}, &mockRepo{}, &mockUserRepo{})

	snap, err := svc.Balance(ctx, 12)
	require.NoError(t, err)
	require.Equal(t, int64(12), snap.UserID)
	require.Equal(t, 0, snap.Points)
	require.Equal(t, 1, snap.Level)
	require.Equal(t, "Bronze", snap.Tier)
}

func TestBalance_Existing(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		balanceByUserFn: func(ctx context.Context, userID int64) (*model.Reward, error) {
			return &model.Reward{UserID: userID, Points: 1600, Level: 3}, nil
		},
	}
	svc := New(&fakeDB{tx: &fakeTx{}}, m, &mockUserRepo{})

	snap, err := svc.Balance(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, 1600, snap.Points)
	require.Equal(t, 3, snap.Level)
	require.Equal(t, "Gold", snap.Tier)
}

func TestUsersWithBalances(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		balanceByUserFn: func(ctx context.Context, userID int64) (*model.Reward, error) {
			if userID == 1 {
				return &model.Reward{UserID: 1, Points: 30, Level: 1}, nil
			}
			return nil, nil
		},
	}
	ur := &mockUserRepo{
		listFn: func(ctx context.Context) ([]model.User, error) {
			return []model.User{{ID: 1, Email: "a@gmail.com"}, {ID: 2, Email: "b@gmail.com"}}, nil
		},
	}
	svc := New(&fakeDB{tx: &fakeTx{}}, m, ur)

	out, err := svc.UsersWithBalances(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.NotNil(t, out[0].Reward)
	require.Nil(t, out[1].Reward)
}

func TestCreateReward_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&fakeDB{tx: &fakeTx{}}, &mockRepo{}, &mockUserRepo{})

	_, err := svc.CreateReward(ctx, "", "desc", 10, "pickup", true)
	require.Equal(t, ErrBadInput, Code(err))

	_, err = svc.CreateReward(ctx, "Tote bag", "desc", 0, "pickup", true)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestCreateReward_SystemPool(t *testing.T) {
	ctx := context.Background()
	svc := New(&fakeDB{tx: &fakeTx{}}, &mockRepo{}, &mockUserRepo{})

	rw, err := svc.CreateReward(ctx, "Tote bag", "Reusable bag", 150, "Collect at city hall", true)
	require.NoError(t, err)
	require.Equal(t, int64(0), rw.UserID)
	require.Equal(t, 150, rw.Points)
}

func TestUpdateReward_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&fakeDB{tx: &fakeTx{}}, &mockRepo{}, &mockUserRepo{})

	_, err := svc.UpdateReward(ctx, 404, RewardPatch{})
	require.Equal(t, ErrRewardNotFound, Code(err))
}

func TestDeleteReward_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&fakeDB{tx: &fakeTx{}}, &mockRepo{}, &mockUserRepo{})

	err := svc.DeleteReward(ctx, 404)
	require.Equal(t, ErrRewardNotFound, Code(err))
}

func TestCode_PlainError(t *testing.T) {
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
