package notification

// SendNotificationReq creates a notification for one user when UserID
// is set, or broadcasts to every user when it is omitted.
type SendNotificationReq struct {
	UserID  *int64 `json:"user_id"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required"`
}
