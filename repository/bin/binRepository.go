package binrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

// BinPatch carries optional fields for partial updates.
type BinPatch struct {
	Location  *string
	Latitude  *string
	Longitude *string
	Capacity  *string
	Status    *string
}

type Repo interface {
	Insert(ctx context.Context, b *model.Bin) error
	List(ctx context.Context) ([]model.Bin, error)
	Update(ctx context.Context, id int64, patch BinPatch) (*model.Bin, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const binCols = `id, location, latitude, longitude, capacity, status, created_at`

func (r *repo) Insert(ctx context.Context, b *model.Bin) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO bins (location, latitude, longitude, capacity, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at`,
		b.Location, b.Latitude, b.Longitude, b.Capacity, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Bin, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT `+binCols+`
FROM bins
ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Bin
	for rows.Next() {
		var b model.Bin
		if err := rows.Scan(&b.ID, &b.Location, &b.Latitude, &b.Longitude, &b.Capacity, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, patch BinPatch) (*model.Bin, error) {
	b := &model.Bin{}
	err := r.db.Pool.QueryRow(ctx, `
UPDATE bins SET
	location  = COALESCE($2, location),
	latitude  = COALESCE($3, latitude),
	longitude = COALESCE($4, longitude),
	capacity  = COALESCE($5, capacity),
	status    = COALESCE($6, status)
WHERE id=$1
RETURNING `+binCols,
		id, patch.Location, patch.Latitude, patch.Longitude, patch.Capacity, patch.Status,
	).Scan(&b.ID, &b.Location, &b.Latitude, &b.Longitude, &b.Capacity, &b.Status, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM bins WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
