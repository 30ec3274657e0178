package reward

type AdjustTokensReq struct {
	Amount int `json:"amount" validate:"required"`
}

type CreateRewardReq struct {
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	Points         int    `json:"points" validate:"required,gt=0"`
	CollectionInfo string `json:"collection_info" validate:"required"`
	IsAvailable    *bool  `json:"is_available,omitempty"`
}

type UpdateRewardReq struct {
	Name           *string `json:"name,omitempty"`
	Description    *string `json:"description,omitempty"`
	Points         *int    `json:"points,omitempty" validate:"omitempty,gt=0"`
	CollectionInfo *string `json:"collection_info,omitempty"`
	IsAvailable    *bool   `json:"is_available,omitempty"`
}
