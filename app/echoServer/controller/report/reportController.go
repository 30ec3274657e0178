package report

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rameez-hub125/treasure-to-trash/model"
	reportsvc "github.com/rameez-hub125/treasure-to-trash/service/report"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reportsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create files a new waste report
// @Summary Submit waste report
// @Tags reports
// @Success 201 {object} model.Report
// @Failure 400,401,500
// @Router /v1/reports [post]
func (ct *Controller) Create(c echo.Context) error {
	var req CreateReportReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	userID := c.Get("user_id").(int64)
	rep, err := ct.Svc.Submit(c.Request().Context(), userID, req.Location, req.WasteType, req.Amount, req.ImageURL)
	if err != nil {
		if reportsvc.Code(err) == reportsvc.ErrBadInput {
			return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
		}
		ct.Log.Error("create report failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create report")
	}
	return c.JSON(http.StatusCreated, rep)
}

// My lists the caller's reports
// @Summary My reports
// @Tags reports
// @Success 200 {array} model.Report
// @Router /v1/reports/my [get]
func (ct *Controller) My(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	reps, err := ct.Svc.MyReports(c.Request().Context(), userID)
	if err != nil {
		ct.Log.Error("list my reports failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch reports")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reps})
}

// List returns every report with reporter info (admin)
// @Summary List reports
// @Tags admin
// @Success 200 {array} reportsvc.ReportWithUser
// @Router /v1/admin/reports [get]
func (ct *Controller) List(c echo.Context) error {
	reps, err := ct.Svc.AllReports(c.Request().Context())
	if err != nil {
		ct.Log.Error("list reports failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch reports")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reps})
}

// UpdateStatus moves a report through its lifecycle; verifying awards
// points to the reporter
// @Summary Update report status
// @Tags admin
// @Success 200 {object} model.Report
// @Failure 400,404,500
// @Router /v1/admin/reports/{id}/status [patch]
func (ct *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	var req UpdateReportReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	rep, err := ct.Svc.UpdateStatus(c.Request().Context(), id, model.ReportStatus(req.Status))
	if err != nil {
		switch reportsvc.Code(err) {
		case reportsvc.ErrReportNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		default:
			ct.Log.Error("update report failed", "err", err, "report_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update report")
		}
	}
	return c.JSON(http.StatusOK, rep)
}

// Assign routes a report to a collector
// @Summary Assign collector
// @Tags admin
// @Success 200 {object} model.Report
// @Failure 400,404,500
// @Router /v1/admin/reports/{id}/assign [patch]
func (ct *Controller) Assign(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	var req AssignReportReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	rep, err := ct.Svc.Assign(c.Request().Context(), id, req.CollectorID)
	if err != nil {
		switch reportsvc.Code(err) {
		case reportsvc.ErrReportNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "report not found")
		case reportsvc.ErrCollectorNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "collector not found")
		default:
			ct.Log.Error("assign collector failed", "err", err, "report_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to assign collector")
		}
	}
	return c.JSON(http.StatusOK, rep)
}
