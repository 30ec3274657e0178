package reportsvc

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/rameez-hub125/treasure-to-trash/model"
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
	insertFn        func(ctx context.Context, rep *model.Report) error
	byIDForUpdateFn func(ctx context.Context, tx pgx.Tx, id int64) (*model.Report, error)
	updateStatusFn  func(ctx context.Context, tx pgx.Tx, id int64, status model.ReportStatus) error
	assignFn        func(ctx context.Context, tx pgx.Tx, id, collectorID int64) (*model.Report, error)
	countVerifiedFn func(ctx context.Context, tx pgx.Tx, userID int64) (int, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Insert(ctx context.Context, rep *model.Report) error {
	if m.insertFn == nil {
		rep.ID = 1
		return nil
	}
	return m.insertFn(ctx, rep)
}

func (m *mockRepo) ListByUser(ctx context.Context, userID int64) ([]model.Report, error) {
	return nil, nil
}

func (m *mockRepo) ListWithUsers(ctx context.Context) ([]ReportWithUser, error) { return nil, nil }

func (m *mockRepo) ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Report, error) {
	if m.byIDForUpdateFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.byIDForUpdateFn(ctx, tx, id)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.ReportStatus) error {
	if m.updateStatusFn == nil {
		return nil
	}
	return m.updateStatusFn(ctx, tx, id, status)
}

func (m *mockRepo) Assign(ctx context.Context, tx pgx.Tx, id, collectorID int64) (*model.Report, error) {
	if m.assignFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.assignFn(ctx, tx, id, collectorID)
}

func (m *mockRepo) CountVerifiedByUser(ctx context.Context, tx pgx.Tx, userID int64) (int, error) {
	if m.countVerifiedFn == nil {
		return 1, nil
	}
	return m.countVerifiedFn(ctx, tx, userID)
}

type mockRewardRepo struct {
	applyDeltaFn func(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)
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

type mockNotificationRepo struct {
	insertFn func(ctx context.Context, n *model.Notification) error
}

func (m *mockNotificationRepo) Insert(ctx context.Context, n *model.Notification) error {
	if m.insertFn == nil {
		return nil
	}
	return m.insertFn(ctx, n)
}

func newSvc(tx *fakeTx, r *mockRepo, rw *mockRewardRepo, ur *mockUserRepo, nr *mockNotificationRepo) Service {
	return New(&fakeDB{tx: tx}, r, rw, ur, nr)
}

// --- tests ---

func TestSubmit_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, &mockUserRepo{}, &mockNotificationRepo{})

	_, err := svc.Submit(ctx, 1, "", "Foodwaste", "5kg", nil)
	require.Equal(t, ErrBadInput, Code(err))

	_, err = svc.Submit(ctx, 1, "Jl. Sudirman 10", "Foodwaste", "", nil)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestSubmit_StartsPending(t *testing.T) {
	ctx := context.Background()
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, &mockUserRepo{}, &mockNotificationRepo{})

	rep, err := svc.Submit(ctx, 7, "Jl. Sudirman 10", "Foodwaste", "about 5 kg", nil)
	require.NoError(t, err)
	require.Equal(t, model.ReportPending, rep.Status)
	require.Equal(t, int64(7), rep.UserID)
}

func TestParseWasteAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"about 2.5 kg", 2.5},
		{"60kg", 60},
		{"3 bags, roughly 12 kg", 3}, // first number wins
		{"a pile of leaves", 10},     // default
		{"", 10},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, parseWasteAmount(tc.in), "input %q", tc.in)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	svc := newSvc(tx, &mockRepo{}, &mockRewardRepo{}, &mockUserRepo{}, &mockNotificationRepo{})

	_, err := svc.UpdateStatus(ctx, 404, model.ReportVerified)
	require.Equal(t, ErrReportNotFound, Code(err))
	require.True(t, tx.rolledBack)
}

func TestUpdateStatus_VerifyAwardsInSameTx(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}

	r := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.Report, error) {
			return &model.Report{
				ID:        id,
				UserID:    7,
				Location:  "Jl. Sudirman 10",
				WasteType: "other",
				Amount:    "60kg",
				Status:    model.ReportPending,
			}, nil
		},
		countVerifiedFn: func(ctx context.Context, txArg pgx.Tx, userID int64) (int, error) {
			return 6, nil
		},
	}

	var gotDelta int
	var gotDesc string
	rw := &mockRewardRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			require.Same(t, tx, txArg)
			require.Equal(t, int64(7), userID)
			require.Equal(t, model.TxEarned, txType)
			gotDelta = delta
			gotDesc = description
			return &model.Reward{UserID: userID, Points: delta}, nil
		},
	}

	svc := newSvc(tx, r, rw, &mockUserRepo{}, &mockNotificationRepo{})

	rep, err := svc.UpdateStatus(ctx, 1, model.ReportVerified)
	require.NoError(t, err)
	require.Equal(t, model.ReportVerified, rep.Status)
	require.Equal(t, 414, gotDelta)
	require.Equal(t,
		"Waste report verified: 360 base + 36 quantity + 18 frequency = 414 points",
		gotDesc)
	require.True(t, tx.committed)
}

func TestUpdateStatus_ReVerifyDoesNotAwardAgain(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.Report, error) {
			return &model.Report{ID: id, UserID: 7, WasteType: "Foodwaste", Amount: "5kg", Status: model.ReportVerified}, nil
		},
	}
	rw := &mockRewardRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			t.Fatal("re-verifying must not award points again")
			return nil, nil
		},
	}
	svc := newSvc(tx, r, rw, &mockUserRepo{}, &mockNotificationRepo{})

	rep, err := svc.UpdateStatus(ctx, 1, model.ReportVerified)
	require.NoError(t, err)
	require.Equal(t, model.ReportVerified, rep.Status)
	require.True(t, tx.committed)
}

func TestUpdateStatus_NonVerifyNeverAwards(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		byIDForUpdateFn: func(ctx context.Context, txArg pgx.Tx, id int64) (*model.Report, error) {
			return &model.Report{ID: id, UserID: 7, WasteType: "Foodwaste", Amount: "5kg", Status: model.ReportVerified}, nil
		},
	}
	rw := &mockRewardRepo{
		applyDeltaFn: func(ctx context.Context, txArg pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
			t.Fatal("status moves other than to verified must not award")
			return nil, nil
		},
	}
	svc := newSvc(tx, r, rw, &mockUserRepo{}, &mockNotificationRepo{})

	rep, err := svc.UpdateStatus(ctx, 1, model.ReportCollected)
	require.NoError(t, err)
	require.Equal(t, model.ReportCollected, rep.Status)
}

func TestAssign_CollectorMissing(t *testing.T) {
	ctx := context.Background()
	ur := &mockUserRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := newSvc(&fakeTx{}, &mockRepo{}, &mockRewardRepo{}, ur, &mockNotificationRepo{})

	_, err := svc.Assign(ctx, 1, 404)
	require.Equal(t, ErrCollectorNotFound, Code(err))
}

func TestAssign_NotifiesCollector(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	r := &mockRepo{
		assignFn: func(ctx context.Context, txArg pgx.Tx, id, collectorID int64) (*model.Report, error) {
			cid := collectorID
			return &model.Report{ID: id, UserID: 7, Location: "Jl. Sudirman 10", CollectorID: &cid, Status: model.ReportInProgress}, nil
		},
	}
	var gotNote *model.Notification
	nr := &mockNotificationRepo{
		insertFn: func(ctx context.Context, n *model.Notification) error {
			gotNote = n
			return nil
		},
	}
	svc := newSvc(tx, r, &mockRewardRepo{}, &mockUserRepo{}, nr)

	rep, err := svc.Assign(ctx, 1, 9)
	require.NoError(t, err)
	require.Equal(t, model.ReportInProgress, rep.Status)
	require.True(t, tx.committed)
	require.NotNil(t, gotNote)
	require.Equal(t, int64(9), gotNote.UserID)
	require.Equal(t, "You have been assigned to collect waste at Jl. Sudirman 10", gotNote.Message)
}
