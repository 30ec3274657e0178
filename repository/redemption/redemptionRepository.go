package redemptionrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

type Repo interface {
	Insert(ctx context.Context, req *model.RedemptionRequest) error
	ByID(ctx context.Context, id int64) (*model.RedemptionRequest, error)
	ListByUser(ctx context.Context, userID int64) ([]model.RedemptionRequest, error)
	ListAll(ctx context.Context) ([]model.RedemptionRequest, error)

	// ByIDForUpdate locks the request row so two admins cannot resolve
	// it at the same time.
	ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.RedemptionRequest, error)
	MarkApproved(ctx context.Context, tx pgx.Tx, id int64, approvedAt time.Time) error
	MarkRejected(ctx context.Context, tx pgx.Tx, id int64, reason string) error
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const requestCols = `id, user_id, points, bank_name, account_number, account_holder, status, reason, rejection_reason, created_at, approved_at`

func scanRequest(row pgx.Row) (*model.RedemptionRequest, error) {
	req := &model.RedemptionRequest{}
	err := row.Scan(&req.ID, &req.UserID, &req.Points, &req.BankName, &req.AccountNumber,
		&req.AccountHolder, &req.Status, &req.Reason, &req.RejectionReason, &req.CreatedAt, &req.ApprovedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) Insert(ctx context.Context, req *model.RedemptionRequest) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO redemption_requests (user_id, points, bank_name, account_number, account_holder, status, reason)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, created_at`,
		req.UserID, req.Points, req.BankName, req.AccountNumber, req.AccountHolder, req.Status, req.Reason,
	).Scan(&req.ID, &req.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
	return scanRequest(r.db.Pool.QueryRow(ctx, `
SELECT `+requestCols+`
FROM redemption_requests
WHERE id=$1`, id))
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.RedemptionRequest, error) {
	return scanRequest(tx.QueryRow(ctx, `
SELECT `+requestCols+`
FROM redemption_requests
WHERE id=$1
FOR UPDATE`, id))
}

func (r *repo) list(ctx context.Context, sql string, args ...any) ([]model.RedemptionRequest, error) {
	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RedemptionRequest
	for rows.Next() {
		var req model.RedemptionRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.Points, &req.BankName, &req.AccountNumber,
			&req.AccountHolder, &req.Status, &req.Reason, &req.RejectionReason, &req.CreatedAt, &req.ApprovedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.RedemptionRequest, error) {
	return r.list(ctx, `
SELECT `+requestCols+`
FROM redemption_requests
WHERE user_id=$1
ORDER BY created_at DESC`, userID)
}

func (r *repo) ListAll(ctx context.Context) ([]model.RedemptionRequest, error) {
	return r.list(ctx, `
SELECT `+requestCols+`
FROM redemption_requests
ORDER BY created_at DESC`)
}

func (r *repo) MarkApproved(ctx context.Context, tx pgx.Tx, id int64, approvedAt time.Time) error {
	tag, err := tx.Exec(ctx, `
UPDATE redemption_requests SET status='approved', approved_at=$2
WHERE id=$1 AND status='pending'`, id, approvedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repo) MarkRejected(ctx context.Context, tx pgx.Tx, id int64, reason string) error {
	tag, err := tx.Exec(ctx, `
UPDATE redemption_requests SET status='rejected', rejection_reason=$2
WHERE id=$1 AND status='pending'`, id, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
