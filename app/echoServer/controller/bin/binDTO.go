package bin

type CreateBinReq struct {
	Location  string `json:"location" validate:"required"`
	Latitude  string `json:"latitude" validate:"required"`
	Longitude string `json:"longitude" validate:"required"`
	Capacity  string `json:"capacity" validate:"required"`
	Status    string `json:"status"`
}

type UpdateBinReq struct {
	Location  *string `json:"location,omitempty"`
	Latitude  *string `json:"latitude,omitempty"`
	Longitude *string `json:"longitude,omitempty"`
	Capacity  *string `json:"capacity,omitempty"`
	Status    *string `json:"status,omitempty"`
}
