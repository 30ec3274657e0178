package notification

import (
	"log/slog"
	"net/http"

	notificationsvc "github.com/rameez-hub125/treasure-to-trash/service/notification"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc notificationsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Send creates a notification for one user or broadcasts to all (admin)
// @Summary Send notification
// @Tags admin
// @Success 201 {object} map[string]any
// @Failure 400,404,500
// @Router /v1/admin/notifications [post]
func (ct *Controller) Send(c echo.Context) error {
	var req SendNotificationReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "message and type are required")
	}

	if req.UserID != nil {
		n, err := ct.Svc.Send(c.Request().Context(), *req.UserID, req.Message, req.Type)
		if err != nil {
			switch notificationsvc.Code(err) {
			case notificationsvc.ErrUserNotFound:
				return echo.NewHTTPError(http.StatusNotFound, "user not found")
			case notificationsvc.ErrBadInput:
				return echo.NewHTTPError(http.StatusBadRequest, "message and type are required")
			default:
				ct.Log.Error("send notification failed", "err", err, "user_id", *req.UserID)
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to send notification")
			}
		}
		return c.JSON(http.StatusCreated, n)
	}

	sent, err := ct.Svc.Broadcast(c.Request().Context(), req.Message, req.Type)
	if err != nil {
		switch notificationsvc.Code(err) {
		case notificationsvc.ErrNoRecipients:
			return echo.NewHTTPError(http.StatusNotFound, "no users to notify")
		case notificationsvc.ErrBadInput:
			return echo.NewHTTPError(http.StatusBadRequest, "message and type are required")
		default:
			ct.Log.Error("broadcast notification failed", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to broadcast notification")
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"sent": sent})
}

// List returns all notifications with their recipients (admin)
// @Summary List notifications
// @Tags admin
// @Success 200 {array} notificationsvc.NotificationWithUser
// @Router /v1/admin/notifications [get]
func (ct *Controller) List(c echo.Context) error {
	ns, err := ct.Svc.ListAll(c.Request().Context())
	if err != nil {
		ct.Log.Error("list notifications failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch notifications")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": ns})
}
