package bin

import (
	"log/slog"
	"net/http"
	"strconv"

	binsvc "github.com/rameez-hub125/treasure-to-trash/service/bin"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc binsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// List returns all collection bins
// @Summary List bins
// @Tags bins
// @Success 200 {array} model.Bin
// @Router /v1/bins [get]
func (ct *Controller) List(c echo.Context) error {
	bins, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("list bins failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch bins")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": bins})
}

// Create adds a collection bin (admin)
// @Summary Create bin
// @Tags admin
// @Success 201 {object} model.Bin
// @Failure 400,500
// @Router /v1/admin/bins [post]
func (ct *Controller) Create(c echo.Context) error {
	var req CreateBinReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
	}

	b, err := ct.Svc.Create(c.Request().Context(), req.Location, req.Latitude, req.Longitude, req.Capacity, req.Status)
	if err != nil {
		if binsvc.Code(err) == binsvc.ErrBadInput {
			return echo.NewHTTPError(http.StatusBadRequest, "missing required fields")
		}
		ct.Log.Error("create bin failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create bin")
	}
	return c.JSON(http.StatusCreated, b)
}

// Update patches a bin (admin)
// @Summary Update bin
// @Tags admin
// @Success 200 {object} model.Bin
// @Failure 400,404,500
// @Router /v1/admin/bins/{id} [patch]
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bin id")
	}

	var req UpdateBinReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	b, err := ct.Svc.Update(c.Request().Context(), id, binsvc.BinPatch{
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Capacity:  req.Capacity,
		Status:    req.Status,
	})
	if err != nil {
		switch binsvc.Code(err) {
		case binsvc.ErrBinNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "bin not found")
		default:
			ct.Log.Error("update bin failed", "err", err, "bin_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update bin")
		}
	}
	return c.JSON(http.StatusOK, b)
}

// Delete removes a bin (admin)
// @Summary Delete bin
// @Tags admin
// @Success 200 {object} map[string]any
// @Failure 404,500
// @Router /v1/admin/bins/{id} [delete]
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bin id")
	}

	if err := ct.Svc.Delete(c.Request().Context(), id); err != nil {
		switch binsvc.Code(err) {
		case binsvc.ErrBinNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "bin not found")
		default:
			ct.Log.Error("delete bin failed", "err", err, "bin_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete bin")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
