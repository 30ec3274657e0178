package reportsvc

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/rameez-hub125/treasure-to-trash/model"
	reportrepo "github.com/rameez-hub125/treasure-to-trash/repository/report"
	ledgersvc "github.com/rameez-hub125/treasure-to-trash/service/ledger"
	"github.com/rameez-hub125/treasure-to-trash/service/points"
)

// errors used by controllers

type ErrCode string

const (
	ErrReportNotFound    ErrCode = "REPORT_NOT_FOUND"
	ErrCollectorNotFound ErrCode = "COLLECTOR_NOT_FOUND"
	ErrBadInput          ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type ReportWithUser = reportrepo.ReportWithUser

type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repo interface {
	Insert(ctx context.Context, rep *model.Report) error
	ListByUser(ctx context.Context, userID int64) ([]model.Report, error)
	ListWithUsers(ctx context.Context) ([]ReportWithUser, error)
	ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Report, error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.ReportStatus) error
	Assign(ctx context.Context, tx pgx.Tx, id, collectorID int64) (*model.Report, error)
	CountVerifiedByUser(ctx context.Context, tx pgx.Tx, userID int64) (int, error)
}

type RewardRepo interface {
	ApplyDelta(ctx context.Context, tx pgx.Tx, userID int64, delta int, txType model.TransactionType, description string) (*model.Reward, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
}

type NotificationRepo interface {
	Insert(ctx context.Context, n *model.Notification) error
}

type Service interface {
	Submit(ctx context.Context, userID int64, location, wasteType, amount string, imageURL *string) (*model.Report, error)
	MyReports(ctx context.Context, userID int64) ([]model.Report, error)
	AllReports(ctx context.Context) ([]ReportWithUser, error)

	// UpdateStatus changes a report's status. Flipping to verified
	// triggers the award flow: the status change, the point credit and
	// the ledger entry commit together or not at all.
	UpdateStatus(ctx context.Context, reportID int64, status model.ReportStatus) (*model.Report, error)

	// Assign routes collection to a collector and notifies them.
	Assign(ctx context.Context, reportID, collectorID int64) (*model.Report, error)
}

type service struct {
	db Beginner
	r  Repo
	rw RewardRepo
	ur UserRepo
	nr NotificationRepo
}

func New(db Beginner, r Repo, rw RewardRepo, ur UserRepo, nr NotificationRepo) Service {
	return &service{db: db, r: r, rw: rw, ur: ur, nr: nr}
}

func (s *service) Submit(ctx context.Context, userID int64, location, wasteType, amount string, imageURL *string) (*model.Report, error) {
	if location == "" || wasteType == "" || amount == "" {
		return nil, makeErr(ErrBadInput)
	}
	rep := &model.Report{
		UserID:    userID,
		Location:  location,
		WasteType: wasteType,
		Amount:    amount,
		ImageURL:  imageURL,
		Status:    model.ReportPending,
	}
	if err := s.r.Insert(ctx, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *service) MyReports(ctx context.Context, userID int64) ([]model.Report, error) {
	return s.r.ListByUser(ctx, userID)
}

func (s *service) AllReports(ctx context.Context) ([]ReportWithUser, error) {
	return s.r.ListWithUsers(ctx)
}

var amountRe = regexp.MustCompile(`\d+(\.\d+)?`)

// parseWasteAmount extracts the first decimal number from the
// free-text amount field, defaulting to 10 kg when none is found.
func parseWasteAmount(s string) float64 {
	m := amountRe.FindString(s)
	if m == "" {
		return 10
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 10
	}
	return f
}

func (s *service) UpdateStatus(ctx context.Context, reportID int64, status model.ReportStatus) (rep *model.Report, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rep, err = s.r.ByIDForUpdate(ctx, tx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrReportNotFound)
		}
		return nil, err
	}

	// Re-verifying an already verified report must not award twice.
	award := status == model.ReportVerified && rep.Status != model.ReportVerified

	if err = s.r.UpdateStatus(ctx, tx, reportID, status); err != nil {
		return nil, err
	}
	rep.Status = status

	if award {
		// Count inside the transaction so it includes this report.
		count, cerr := s.r.CountVerifiedByUser(ctx, tx, rep.UserID)
		if cerr != nil {
			err = cerr
			return nil, err
		}

		calc := points.Calculate(points.Input{
			WasteType:       points.ParseWasteType(rep.WasteType),
			Amount:          parseWasteAmount(rep.Amount),
			SubmissionCount: count,
		})

		if _, err = s.rw.ApplyDelta(ctx, tx, rep.UserID, calc.TotalPoints, model.TxEarned,
			ledgersvc.AwardDescription(calc)); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rep, nil
}

func (s *service) Assign(ctx context.Context, reportID, collectorID int64) (rep *model.Report, err error) {
	if _, err := s.ur.ByID(ctx, collectorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrCollectorNotFound)
		}
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	rep, err = s.r.Assign(ctx, tx, reportID, collectorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrReportNotFound)
		}
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Best effort; a lost notification should not undo the assignment.
	_ = s.nr.Insert(ctx, &model.Notification{
		UserID:  collectorID,
		Message: "You have been assigned to collect waste at " + rep.Location,
		Type:    "info",
	})
	return rep, nil
}
