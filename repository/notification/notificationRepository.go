package notificationrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

// NotificationWithUser carries recipient info for admin listings.
type NotificationWithUser struct {
	model.Notification
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

type Repo interface {
	Insert(ctx context.Context, n *model.Notification) error
	InsertBulk(ctx context.Context, ns []model.Notification) (int, error)
	ListWithUsers(ctx context.Context) ([]NotificationWithUser, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, n *model.Notification) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO notifications (user_id, message, type)
VALUES ($1,$2,$3)
RETURNING id, is_read, created_at`,
		n.UserID, n.Message, n.Type,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
}

// InsertBulk uses a pgx batch so a broadcast is one round trip.
func (r *repo) InsertBulk(ctx context.Context, ns []model.Notification) (int, error) {
	if len(ns) == 0 {
		return 0, nil
	}
	batch := &pgx.Batch{}
	for _, n := range ns {
		batch.Queue(`INSERT INTO notifications (user_id, message, type) VALUES ($1,$2,$3)`,
			n.UserID, n.Message, n.Type)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for range ns {
		if _, err := br.Exec(); err != nil {
			return 0, err
		}
	}
	return len(ns), nil
}

func (r *repo) ListWithUsers(ctx context.Context) ([]NotificationWithUser, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT n.id, n.user_id, n.message, n.type, n.is_read, n.created_at, u.name, u.email
FROM notifications n
JOIN users u ON u.id = n.user_id
ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NotificationWithUser
	for rows.Next() {
		var n NotificationWithUser
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt, &n.UserName, &n.UserEmail); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
