package binsvc

import (
	"context"
	"errors"

	"github.com/rameez-hub125/treasure-to-trash/model"
	binrepo "github.com/rameez-hub125/treasure-to-trash/repository/bin"
)

type ErrCode string

const (
	ErrBinNotFound ErrCode = "BIN_NOT_FOUND"
	ErrBadInput    ErrCode = "BAD_INPUT"
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

type BinPatch = binrepo.BinPatch

type Repo interface {
	Insert(ctx context.Context, b *model.Bin) error
	List(ctx context.Context) ([]model.Bin, error)
	Update(ctx context.Context, id int64, patch BinPatch) (*model.Bin, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, location, latitude, longitude, capacity, status string) (*model.Bin, error)
	List(ctx context.Context) ([]model.Bin, error)
	Update(ctx context.Context, id int64, patch BinPatch) (*model.Bin, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Create(ctx context.Context, location, latitude, longitude, capacity, status string) (*model.Bin, error) {
	if location == "" || latitude == "" || longitude == "" || capacity == "" {
		return nil, makeErr(ErrBadInput)
	}
	if status == "" {
		status = "active"
	}
	b := &model.Bin{
		Location:  location,
		Latitude:  latitude,
		Longitude: longitude,
		Capacity:  capacity,
		Status:    status,
	}
	if err := s.r.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]model.Bin, error) { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, id int64, patch BinPatch) (*model.Bin, error) {
	b, err := s.r.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrBinNotFound)
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrBinNotFound)
	}
	return nil
}
