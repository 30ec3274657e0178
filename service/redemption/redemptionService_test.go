package redemptionsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/rameez-hub125/treasure-to-trash/model"
	payoutrepo "github.com/rameez-hub125/treasure-to-trash/repository/payout"
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
	insertFn        func(ctx context.Context, req *model.RedemptionRequest) error
	byIDFn          func(ctx context.Context, id int64) (*model.RedemptionRequest, error)
	byIDForUpdateFn func(ctx context.Context, tx pgx.Tx, id int64) (*model.RedemptionRequest, error)
	markApprovedFn  func(ctx context.Context, tx pgx.Tx, id int64, approvedAt time.Time) error
	markRejectedFn  func(ctx context.Context, tx pgx.Tx, id int64, reason string) error
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, req *model.RedemptionRequest) error {
	if m.insertFn == nil {
		req.ID = 1
		return nil
	}
	return m.insertFn(ctx, req)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
	if m.byIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]model.RedemptionRequest, error) {
	return nil, nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]model.RedemptionRequest, error) {
	return nil, nil
}

func (m *mockRepo) ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.RedemptionRequest, error) {
	if m.byIDForUpdateFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDForUpdateFn(ctx, tx, id)
}

func (m *mockRepo) MarkApproved(ctx context.Context, tx pgx.Tx, id int64, approvedAt time.Time) error {
	if m.markApprovedFn == nil {
		return nil
	}
	return m.markApprovedFn(ctx, tx, id, approvedAt)
}

func (m *mockRepo) MarkRejected(ctx context.Context, tx pgx.Tx, id int64, reason string) error {
	if m.markRejectedFn == nil {
		return nil
	}
	return m.markRejectedFn(ctx, tx, id, reason)
}

type mockRewardRepo struct {
	balanceByUserFn func(ctx context.Context, userID int64) (*model.Reward, error)
	applyDeltaFn    func(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)
}

func (m *mockRewardRepo) BalanceByUser(ctx context.Context, userID int64) (*model.Reward, error) {
	if m.balanceByUserFn == nil {
		return nil, nil
	}
	return m.balanceByUserFn(ctx, userID)
}

func (m *mockRewardRepo) ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
	if m.applyDeltaFn == nil {
		return &model.Reward{UserID: userID}, nil
	}
	return m.applyDeltaFn(ctx, tx, userID, delta, txType, description)
}

type mockUserRepo struct {
	byIDFn func(ctx context.Context, id int64) (*model.User, error)
}

func (m *mockUserRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return &model.User{ID: id}, nil
	}
	return m.byIDFn(ctx, id)
}

type mockPayout struct {
	createFn func(req payoutrepo.CreateDisbursementReq) (*payoutrepo.CreateDisbursementResp, error)
}

var _ payoutrepo.Repo = (*mockPayout)(nil)

func (m *mockPayout) CreateDisbursement(req payoutrepo.CreateDisbursementReq) (*payoutrepo.CreateDisbursementResp, error) {
	if m.createFn == nil {
		return &payoutrepo.CreateDisbursementResp{DisbursementID: "disb-1", Status: "PENDING"}, nil
	}
	return m.createFn(req)
}

func (m *mockPayout) VerifyCallbackToken(tokenHeader string) error { return nil }

func newSvc(tx *fakeTx, r *mockRepo, rw *mockRewardRepo, ur *mockUserRepo, po *mockPayout) Service {
	return New(&fakeDB{tx: tx}, r, rw, ur, po)
}

// --- tests ---

func TestRequest_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})

	_, err := svc.Request(ctx, 1, 0, BankDetails{}, "")
	require.Equal(t, ErrInvalidAmount, Code(err))

	_, err = svc.Request(ctx, 1, -50, BankDetails{}, "")
	require.Equal(t, ErrInvalidAmount, Code(err))
}

func TestRequest_UserNotFound(t *testing.T) {
	ctx := context.Background()
	ur := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, ur, &mockPayout{})

	_, err := svc.Request(ctx, 404, 100, BankDetails{}, "")
	require.Equal(t, ErrUserNotFound, Code(err))
}

func TestRequest_InsufficientBalance(t *testing.T) {
	ctx := context.Background()

	// Never awarded: no balance row at all.
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})
	_, err := svc.Request(ctx, 1, 100, BankDetails{}, "")
	require.Equal(t, ErrInsufficientBalance, Code(err))

	// Balance below the requested amount.
	rw := &mockRewardRepo{
		balanceByUserFn: func(ctx context.Context, userID int64) (*model.Reward, error) {
			return &model.Reward{UserID: userID, Points: 99}, nil
		},
	}
	svc = newSvc(&fakeTx{}, &mockRepo{}, rw, &mockUserRepo{}, &mockPayout{})
	_, err = svc.Request(ctx, 1, 100, BankDetails{}, "")
	require.Equal(t, ErrInsufficientBalance, Code(err))
}

func TestRequest_CreatesPending(t *testing.T) {
	ctx := context.Background()
	rw := &mockRewardRepo{
		balanceByUserFn: func(ctx context.Context, userID int64) (*model.Reward, error) {
			return &model.Reward{UserID: userID, Points: 500}, nil
		},
	}
	svc := newSvc(&fakeTx{}, &mockRepo{}, rw, &mockUserRepo{}, &mockPayout{})

	req, err := svc.Request(ctx, 7, 300, BankDetails{
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountHolder: "Siti",
	}, "")
	require.NoError(t, err)
	require.Equal(t, model.RedemptionPending, req.Status)
	require.Equal(t, 300, req.Points)
	require.Equal(t, "BCA", req.BankName)
	require.Nil(t, req.Reason)
}

func TestRequest_ExactBalanceAllowed(t *testing.T) {
	ctx := context.Background()
	rw := &mockRewardRepo{
		balanceByUserFn: func(ctx context.Context, userID int64) (*model.Reward, error) {
			return &model.Reward{UserID: userID, Points: 300}, nil
		},
	}
	svc := newSvc(&fakeTx{}, &mockRepo{}, rw, &mockUserRepo{}, &mockPayout{})

	req, err := svc.Request(ctx, 7, 300, BankDetails{BankName: "BCA"}, "school fees")
	require.NoError(t, err)
	require.NotNil(t, req.Reason)
	require.Equal(t, "school fees", *req.Reason)
}

func TestApprove_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})

	_, err := svc.Approve(ctx, 404)
	require.Equal(t, ErrRequestNotFound, Code(err))
}

func TestApprove_AlreadyResolved(t *testing.T) {
	ctx := context.Background()
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, Status: model.RedemptionApproved}, nil
		},
	}
	svc := newSvc(&fakeTx{}, r, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})

	_, err := svc.Approve(ctx, 5)
	require.Equal(t, ErrAlreadyResolved, Code(err))
}

func TestApprove_Success(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}

	pending := func() *model.RedemptionRequest {
		return &model.RedemptionRequest{
			ID:            5,
			UserID:        7,
			Points:        300,
			BankName:      "BCA",
			AccountNumber: "1234567890",
			AccountHolder: "Siti",
			Status:        model.RedemptionPending,
		}
	}

	var marked bool
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
			return pending(), nil
		},
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.RedemptionRequest, error) {
			require.Same(t, tx, txArg)
			return pending(), nil
		},
		markApprovedFn: func(ctx context.Context, txArg pgx.Tx, id int64, approvedAt time.Time) error {
			marked = true
			return nil
		},
	}

	var gotDelta int
	var gotType model.TransactionType
	var gotDesc string
	rw := &mockRewardRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			require.Equal(t, int64(7), userID)
			gotDelta = delta
			gotType = txType
			gotDesc = description
			return &model.Reward{UserID: userID, Points: 0}, nil
		},
	}

	var gotExternalID string
	po := &mockPayout{
		createFn: func(req payoutrepo.CreateDisbursementReq) (*payoutrepo.CreateDisbursementResp, error) {
			gotExternalID = req.ExternalID
			require.Equal(t, 300, req.Amount)
			return &payoutrepo.CreateDisbursementResp{DisbursementID: "disb-5", Status: "PENDING"}, nil
		},
	}

	svc := newSvc(tx, r, rw, &mockUserRepo{}, po)

	out, err := svc.Approve(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "redemption:5:7", gotExternalID)
	require.True(t, marked)
	require.Equal(t, -300, gotDelta)
	require.Equal(t, model.TxRedeemed, gotType)
	require.Equal(t, "Coin redemption approved: 300 points transferred to BCA account 1234567890", gotDesc)
	require.True(t, tx.committed)
	require.Equal(t, model.RedemptionApproved, out.Status)
	require.NotNil(t, out.ApprovedAt)
}

func TestApprove_RaceResolvedUnderLock(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, UserID: 7, Points: 100, Status: model.RedemptionPending}, nil
		},
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, UserID: 7, Points: 100, Status: model.RedemptionRejected}, nil
		},
	}
	svc := newSvc(tx, r, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})

	_, err := svc.Approve(ctx, 5)
	require.Equal(t, ErrAlreadyResolved, Code(err))
	require.True(t, tx.rolledBack)
	require.False(t, tx.committed)
}

func TestApprove_GatewayFailure(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, UserID: 7, Points: 100, Status: model.RedemptionPending}, nil
		},
	}
	po := &mockPayout{
		createFn: func(req payoutrepo.CreateDisbursementReq) (*payoutrepo.CreateDisbursementResp, error) {
			return nil, errors.New("gateway down")
		},
	}
	svc := newSvc(tx, r, &mockRewardRepo{}, &mockUserRepo{}, po)

	_, err := svc.Approve(ctx, 5)
	require.Error(t, err)
	require.False(t, tx.committed)
}

func TestReject_DefaultReason(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	var gotReason string
	r := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, UserID: 7, Points: 100, Status: model.RedemptionPending}, nil
		},
		markRejectedFn: func(ctx context.Context, txArg pgx.Tx, id int64, reason string) error {
			gotReason = reason
			return nil
		},
	}
	svc := newSvc(tx, r, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})

	out, err := svc.Reject(ctx, 5, "")
	require.NoError(t, err)
	require.Equal(t, "Request rejected by admin", gotReason)
	require.Equal(t, model.RedemptionRejected, out.Status)
	require.NotNil(t, out.RejectionReason)
	require.Equal(t, "Request rejected by admin", *out.RejectionReason)
	require.True(t, tx.committed)
}

func TestReject_KeepsBalanceUntouched(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, UserID: 7, Points: 100, Status: model.RedemptionPending}, nil
		},
	}
	rw := &mockRewardRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			t.Fatal("reject must not touch the balance")
			return nil, nil
		},
	}
	svc := newSvc(tx, r, rw, &mockUserRepo{}, &mockPayout{})

	_, err := svc.Reject(ctx, 5, "blurry photo")
	require.NoError(t, err)
}

func TestReject_AlreadyResolved(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.RedemptionRequest, error) {
			return &model.RedemptionRequest{ID: id, Status: model.RedemptionApproved}, nil
		},
	}
	svc := newSvc(tx, r, &mockRewardRepo{}, &mockUserRepo{}, &mockPayout{})

	_, err := svc.Reject(ctx, 5, "")
	require.Equal(t, ErrAlreadyResolved, Code(err))
	require.True(t, tx.rolledBack)
}
