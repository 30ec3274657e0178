package statsrepo

import (
	"context"

	"github.com/rameez-hub125/treasure-to-trash/util/database"
)

// Raw holds the pieces of the dashboard before any parsing; the stats
// service turns the collected amount strings into kilograms.
type Raw struct {
	TotalUsers       int
	TotalReports     int
	PendingReports   int
	CollectedAmounts []string
	TokensEarned     int
}

type Repo interface {
	Dashboard(ctx context.Context) (*Raw, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Dashboard(ctx context.Context) (*Raw, error) {
	raw := &Raw{}

	err := r.db.Pool.QueryRow(ctx, `
SELECT
  (SELECT COUNT(*) FROM users),
  (SELECT COUNT(*) FROM reports),
  (SELECT COUNT(*) FROM reports WHERE status='pending'),
  (SELECT COALESCE(SUM(CASE WHEN type='earned' THEN amount ELSE 0 END), 0) FROM transactions)`,
	).Scan(&raw.TotalUsers, &raw.TotalReports, &raw.PendingReports, &raw.TokensEarned)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Pool.Query(ctx, `SELECT amount FROM reports WHERE status='collected'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var amt string
		if err := rows.Scan(&amt); err != nil {
			return nil, err
		}
		raw.CollectedAmounts = append(raw.CollectedAmounts, amt)
	}
	return raw, rows.Err()
}
