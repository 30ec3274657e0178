package notificationsvc

import (
	"context"
	"errors"

	"github.com/rameez-hub125/treasure-to-trash/model"
	notificationrepo "github.com/rameez-hub125/treasure-to-trash/repository/notification"
)

type ErrCode string

const (
	ErrUserNotFound ErrCode = "USER_NOT_FOUND"
	ErrNoRecipients ErrCode = "NO_RECIPIENTS"
	ErrBadInput     ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type NotificationWithUser = notificationrepo.NotificationWithUser

type Repo interface {
	Insert(ctx context.Context, n *model.Notification) error
	InsertBulk(ctx context.Context, ns []model.Notification) (int, error)
	ListWithUsers(ctx context.Context) ([]NotificationWithUser, error)
}

type UserRepo interface {
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type Service interface {
	// Send targets a single user.
	Send(ctx context.Context, userID int64, message, typ string) (*model.Notification, error)

	// Broadcast fans the message out to every registered user and
	// returns the recipient count.
	Broadcast(ctx context.Context, message, typ string) (int, error)

	ListAll(ctx context.Context) ([]NotificationWithUser, error)
}

type service struct {
	r  Repo
	ur UserRepo
}

func New(r Repo, ur UserRepo) Service { return &service{r: r, ur: ur} }

func (s *service) Send(ctx context.Context, userID int64, message, typ string) (*model.Notification, error) {
	if message == "" || typ == "" {
		return nil, makeErr(ErrBadInput)
	}
	if _, err := s.ur.ByID(ctx, userID); err != nil {
		return nil, makeErr(ErrUserNotFound)
	}
	n := &model.Notification{UserID: userID, Message: message, Type: typ}
	if err := s.r.Insert(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) Broadcast(ctx context.Context, message, typ string) (int, error) {
	if message == "" || typ == "" {
		return 0, makeErr(ErrBadInput)
	}
	users, err := s.ur.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(users) == 0 {
		return 0, makeErr(ErrNoRecipients)
	}

	ns := make([]model.Notification, 0, len(users))
	for _, u := range users {
		ns = append(ns, model.Notification{UserID: u.ID, Message: message, Type: typ})
	}
	return s.r.InsertBulk(ctx, ns)
}

func (s *service) ListAll(ctx context.Context) ([]NotificationWithUser, error) {
	return s.r.ListWithUsers(ctx)
}
