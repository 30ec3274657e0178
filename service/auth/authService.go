package authsvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rameez-hub125/treasure-to-trash/model"
	"github.com/rameez-hub125/treasure-to-trash/util/hash"
	jwtutil "github.com/rameez-hub125/treasure-to-trash/util/jwt"
)

var (
	ErrInvalidCreds = errors.New("invalid credentials")
	ErrBadInput     = errors.New("bad input")
)

type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
}

type AdminRepo interface {
	Create(ctx context.Context, a *model.Admin) error
	ByEmail(ctx context.Context, email string) (*model.Admin, error)
}

type Service interface {
	// UserLogin signs a citizen in, registering them on first contact.
	UserLogin(ctx context.Context, req model.UserLoginReq) (*model.User, string, error)

	AdminLogin(ctx context.Context, req model.AdminLoginReq) (*model.Admin, string, error)

	// SeedAdmin creates the default admin account if none exists.
	SeedAdmin(ctx context.Context, email, password, name string) error
}

type service struct {
	ur     UserRepo
	ar     AdminRepo
	secret string
}

func New(ur UserRepo, ar AdminRepo, secret string) Service {
	return &service{ur: ur, ar: ar, secret: secret}
}

func (s *service) UserLogin(ctx context.Context, req model.UserLoginReq) (*model.User, string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		u = &model.User{Email: req.Email, Name: req.Name}
		if err := s.ur.Create(ctx, u); err != nil {
			// Another login for the same address can win the race;
			// fall back to the row it created.
			if isUniqueViolation(err) {
				u, err = s.ur.ByEmail(ctx, req.Email)
				if err != nil {
					return nil, "", err
				}
			} else {
				return nil, "", err
			}
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, "user", 24)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) AdminLogin(ctx context.Context, req model.AdminLoginReq) (*model.Admin, string, error) {
	a, err := s.ar.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(a.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}
	token, err := jwtutil.Issue(s.secret, a.ID, "admin", 24)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

func (s *service) SeedAdmin(ctx context.Context, email, password, name string) error {
	if email == "" || password == "" {
		return ErrBadInput
	}
	if _, err := s.ar.ByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashed, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	err = s.ar.Create(ctx, &model.Admin{Email: email, Name: name, PasswordHash: hashed})
	if isUniqueViolation(err) {
		return nil
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
