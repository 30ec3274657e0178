package adminrepo

import (
	"context"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

type Repo interface {
	Create(ctx context.Context, a *model.Admin) error
	ByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, a *model.Admin) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO admins(email, name, password)
		VALUES ($1,$2,$3)
		RETURNING id, created_at`,
		a.Email, a.Name, a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := r.db.Pool.QueryRow(ctx, `
        SELECT id, email, name, password, created_at
        FROM admins
        WHERE lower(email) = lower($1)`, email,
	).Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}
