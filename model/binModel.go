package model

import "time"

type Bin struct {
	ID        int64     `json:"id"`
	Location  string    `json:"location"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	Capacity  string    `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
