package payout

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	payoutrepo "github.com/rameez-hub125/treasure-to-trash/repository/payout"
	payoutsvc "github.com/rameez-hub125/treasure-to-trash/service/payout"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc payoutsvc.Service
	Log *slog.Logger
}

// Webhook receives disbursement status callbacks from the payout gateway
// @Summary Payout gateway webhook
// @Tags payout
// @Success 200 {object} map[string]any
// @Failure 400,401
// @Router /v1/payout/webhook [post]
func (ct *Controller) Webhook(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read body")
	}

	token := c.Request().Header.Get("X-Callback-Token")
	if err := ct.Svc.HandleCallback(c.Request().Context(), token, raw); err != nil {
		if errors.Is(err, payoutrepo.ErrBadCallbackToken) {
			ct.Log.Warn("webhook with bad callback token")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid callback token")
		}
		ct.Log.Error("payout webhook failed", "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "cannot process event")
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
