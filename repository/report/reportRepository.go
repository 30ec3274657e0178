package reportrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

// ReportWithUser carries the reporter (and assigned collector, when
// set) alongside the report for admin listings.
type ReportWithUser struct {
	model.Report
	UserName       string  `json:"user_name"`
	UserEmail      string  `json:"user_email"`
	CollectorName  *string `json:"collector_name,omitempty"`
	CollectorEmail *string `json:"collector_email,omitempty"`
}

type Repo interface {
	Insert(ctx context.Context, rep *model.Report) error
	ByID(ctx context.Context, id int64) (*model.Report, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Report, error)
	ListWithUsers(ctx context.Context) ([]ReportWithUser, error)

	// ByIDForUpdate locks the report row for the verification flow.
	ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Report, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.ReportStatus) error
	Assign(ctx context.Context, tx pgx.Tx, id, collectorID int64) (*model.Report, error)

	// CountVerifiedByUser counts inside the verification transaction,
	// so the report just flipped to verified is included.
	CountVerifiedByUser(ctx context.Context, tx pgx.Tx, userID int64) (int, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const reportCols = `id, user_id, location, waste_type, amount, image_url, status, collector_id, created_at`

func scanReport(row pgx.Row) (*model.Report, error) {
	rep := &model.Report{}
	err := row.Scan(&rep.ID, &rep.UserID, &rep.Location, &rep.WasteType, &rep.Amount,
		&rep.ImageURL, &rep.Status, &rep.CollectorID, &rep.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *repo) Insert(ctx context.Context, rep *model.Report) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO reports (user_id, location, waste_type, amount, image_url, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING id, created_at`,
		rep.UserID, rep.Location, rep.WasteType, rep.Amount, rep.ImageURL, rep.Status,
	).Scan(&rep.ID, &rep.CreatedAt)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Report, error) {
	return scanReport(r.db.Pool.QueryRow(ctx, `
SELECT `+reportCols+`
FROM reports
WHERE id=$1`, id))
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Report, error) {
	return scanReport(tx.QueryRow(ctx, `
SELECT `+reportCols+`
FROM reports
WHERE id=$1
FOR UPDATE`, id))
}

func (r *repo) ListByUser(ctx context.Context, userID int64) ([]model.Report, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+reportCols+`
FROM reports
WHERE user_id=$1
ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Report
	for rows.Next() {
		var rep model.Report
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Location, &rep.WasteType, &rep.Amount,
			&rep.ImageURL, &rep.Status, &rep.CollectorID, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *repo) ListWithUsers(ctx context.Context) ([]ReportWithUser, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT r.id, r.user_id, r.location, r.waste_type, r.amount, r.image_url, r.status, r.collector_id, r.created_at,
       u.name, u.email, c.name, c.email
FROM reports r
JOIN users u ON u.id = r.user_id
LEFT JOIN users c ON c.id = r.collector_id
ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReportWithUser
	for rows.Next() {
		var rep ReportWithUser
		if err := rows.Scan(&rep.ID, &rep.UserID, &rep.Location, &rep.WasteType, &rep.Amount,
			&rep.ImageURL, &rep.Status, &rep.CollectorID, &rep.CreatedAt,
			&rep.UserName, &rep.UserEmail, &rep.CollectorName, &rep.CollectorEmail); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *repo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.ReportStatus) error {
	tag, err := tx.Exec(ctx, `UPDATE reports SET status=$2 WHERE id=$1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repo) Assign(ctx context.Context, tx pgx.Tx, id, collectorID int64) (*model.Report, error) {
	rep, err := scanReport(tx.QueryRow(ctx, `
UPDATE reports SET collector_id=$2, status='in_progress'
WHERE id=$1
RETURNING `+reportCols, id, collectorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, pgx.ErrNoRows
	}
	return rep, err
}

func (r *repo) CountVerifiedByUser(ctx context.Context, tx pgx.Tx, userID int64) (int, error) {
	var n int
	err := tx.QueryRow(ctx, `
SELECT COUNT(*) FROM reports WHERE user_id=$1 AND status='verified'`, userID).Scan(&n)
	return n, err
}
