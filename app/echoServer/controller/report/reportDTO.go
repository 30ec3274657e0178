package report

type CreateReportReq struct {
	Location  string  `json:"location" validate:"required"`
	WasteType string  `json:"waste_type" validate:"required"`
	Amount    string  `json:"amount" validate:"required"`
	ImageURL  *string `json:"image_url,omitempty"`
}

type UpdateReportReq struct {
	Status string `json:"status" validate:"required,oneof=pending verified in_progress collected rejected"`
}

type AssignReportReq struct {
	CollectorID int64 `json:"collector_id" validate:"required,gt=0"`
}
