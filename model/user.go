package model

import "time"

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserLoginReq represents the citizen login-or-register payload.
// Gmail-only, mirroring what the mobile client sends.
// swagger:model UserLoginReq
type UserLoginReq struct {
	Email string `json:"email" validate:"required,email,endswith=@gmail.com"`
	Name  string `json:"name" validate:"required,min=2"`
}
