package rewardrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/service/points"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

// RewardPatch carries optional catalog fields for partial updates.
type RewardPatch struct {
	Name           *string
	Description    *string
	Points         *int
	CollectionInfo *string
	IsAvailable    *bool
}

type Repo interface {
	// BalanceByUser returns the user's balance row, or nil when the
	// user has never earned points.
	BalanceByUser(ctx context.Context, userID int64) (*model.Reward, error)

	// ApplyDelta is the only mutation path for balance points. Inside
	// the caller's transaction it locks the row (creating it lazily),
	// clamps the new total at zero, recomputes the level and writes
	// the paired ledger transaction.
	ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)

	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	ListTransactionsByUser(ctx context.Context, userID int64) ([]model.Transaction, error)

	// Catalog rewards (admin-issued, user_id 0).
	ListRewards(ctx context.Context) ([]model.Reward, error)
	InsertReward(ctx context.Context, rw *model.Reward) error
	UpdateReward(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error)
	DeleteReward(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const rewardCols = `id, user_id, points, level, name, COALESCE(description,''), collection_info, is_available, created_at, updated_at`

func scanReward(row pgx.Row) (*model.Reward, error) {
	rw := &model.Reward{}
	err := row.Scan(&rw.ID, &rw.UserID, &rw.Points, &rw.Level, &rw.Name,
		&rw.Description, &rw.CollectionInfo, &rw.IsAvailable, &rw.CreatedAt, &rw.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rw, nil
}

func (r *repo) BalanceByUser(ctx context.Context, userID int64) (*model.Reward, error) {
	rw, err := scanReward(r.db.Pool.QueryRow(ctx, `
SELECT `+rewardCols+`
FROM rewards
WHERE user_id=$1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rw, nil
}

func (r *repo) ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error) {
	var rw *model.Reward

	var id int64
	var current int
	err := tx.QueryRow(ctx,
		`SELECT id, points FROM rewards WHERE user_id=$1 FOR UPDATE`, userID,
	).Scan(&id, &current)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// Lazy creation on first award or adjustment. The INSERT..SELECT
		// from users also catches awards for users that do not exist.
		pts := delta
		if pts < 0 {
			pts = 0
		}
		rw, err = scanReward(tx.QueryRow(ctx, `
INSERT INTO rewards (user_id, points, level, name, collection_info, is_available)
SELECT u.id, $2, $3, u.name || '''s Reward', 'User reward balance', true
FROM users u WHERE u.id=$1
RETURNING `+rewardCols, userID, pts, points.Level(pts)))
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		newPoints := current + delta
		if newPoints < 0 {
			newPoints = 0
		}
		rw, err = scanReward(tx.QueryRow(ctx, `
UPDATE rewards SET points=$2, level=$3, updated_at=NOW()
WHERE id=$1
RETURNING `+rewardCols, id, newPoints, points.Level(newPoints)))
		if err != nil {
			return nil, err
		}
	}

	// Paired ledger entry in the same transaction.
	amount := delta
	if amount < 0 {
		amount = -amount
	}
	_, err = tx.Exec(ctx, `
INSERT INTO transactions (user_id, type, amount, description)
VALUES ($1,$2,$3,$4)`, userID, txType, amount, description)
	if err != nil {
		return nil, err
	}
	return rw, nil
}

func listTransactions(ctx context.Context, q interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}, sql string, args ...any) ([]model.Transaction, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.Date); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *repo) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return listTransactions(ctx, r.db.Pool, `
SELECT id, user_id, type, amount, description, date
FROM transactions
ORDER BY date DESC`)
}

func (r *repo) ListTransactionsByUser(ctx context.Context, userID int64) ([]model.Transaction, error) {
	return listTransactions(ctx, r.db.Pool, `
SELECT id, user_id, type, amount, description, date
FROM transactions
WHERE user_id=$1
ORDER BY date DESC`, userID)
}

func (r *repo) ListRewards(ctx context.Context) ([]model.Reward, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+rewardCols+`
FROM rewards
ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reward
	for rows.Next() {
		rw := model.Reward{}
		if err := rows.Scan(&rw.ID, &rw.UserID, &rw.Points, &rw.Level, &rw.Name,
			&rw.Description, &rw.CollectionInfo, &rw.IsAvailable, &rw.CreatedAt, &rw.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

func (r *repo) InsertReward(ctx context.Context, rw *model.Reward) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO rewards (user_id, points, level, name, description, collection_info, is_available)
VALUES ($1,$2,$3,$4,$5,$6,$7)
RETURNING id, created_at, updated_at`,
		rw.UserID, rw.Points, rw.Level, rw.Name, rw.Description, rw.CollectionInfo, rw.IsAvailable,
	).Scan(&rw.ID, &rw.CreatedAt, &rw.UpdatedAt)
}

func (r *repo) UpdateReward(ctx context.Context, id int64, patch RewardPatch) (*model.Reward, error) {
	rw, err := scanReward(r.db.Pool.QueryRow(ctx, `
UPDATE rewards SET
	name            = COALESCE($2, name),
	description     = COALESCE($3, description),
	points          = COALESCE($4, points),
	collection_info = COALESCE($5, collection_info),
	is_available    = COALESCE($6, is_available),
	updated_at      = NOW()
WHERE id=$1
RETURNING `+rewardCols,
		id, patch.Name, patch.Description, patch.Points, patch.CollectionInfo, patch.IsAvailable))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rw, nil
}

func (r *repo) DeleteReward(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM rewards WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
