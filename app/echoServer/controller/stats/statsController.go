package stats

import (
	"log/slog"
	"net/http"

	statssvc "github.com/rameez-hub125/treasure-to-trash/service/stats"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc statssvc.Service
	Log *slog.Logger
}

// Dashboard returns platform-wide aggregates
// @Summary Platform statistics
// @Tags stats
// @Success 200 {object} statssvc.Dashboard
// @Router /v1/stats [get]
func (ct *Controller) Dashboard(c echo.Context) error {
	d, err := ct.Svc.Dashboard(c.Request().Context())
	if err != nil {
		ct.Log.Error("stats dashboard failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch statistics")
	}
	return c.JSON(http.StatusOK, d)
}
