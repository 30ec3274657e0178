package redemption

import (
	"log/slog"
	"net/http"
	"strconv"

	redemptionsvc "github.com/rameez-hub125/treasure-to-trash/service/redemption"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc redemptionsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Create makes a redemption request against the caller's balance
// @Summary Request redemption
// @Tags redemptions
// @Success 201 {object} model.RedemptionRequest
// @Failure 400,404,500
// @Router /v1/redemptions [post]
func (ct *Controller) Create(c echo.Context) error {
	var req CreateRedemptionReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	userID := c.Get("user_id").(int64)
	request, err := ct.Svc.Request(c.Request().Context(), userID, req.Points, redemptionsvc.BankDetails{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
	}, req.Reason)
	if err != nil {
		switch redemptionsvc.Code(err) {
		case redemptionsvc.ErrInvalidAmount:
			return echo.NewHTTPError(http.StatusBadRequest, "points must be positive")
		case redemptionsvc.ErrInsufficientBalance:
			return echo.NewHTTPError(http.StatusBadRequest, "insufficient points to redeem")
		case redemptionsvc.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		default:
			ct.Log.Error("create redemption failed", "err", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to create redemption request")
		}
	}
	return c.JSON(http.StatusCreated, request)
}

// My lists the caller's redemption requests
// @Summary My redemption requests
// @Tags redemptions
// @Success 200 {array} model.RedemptionRequest
// @Router /v1/redemptions/my [get]
func (ct *Controller) My(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	reqs, err := ct.Svc.MyRequests(c.Request().Context(), userID)
	if err != nil {
		ct.Log.Error("list redemptions failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch redemption requests")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reqs})
}

// List returns every redemption request (admin)
// @Summary List redemption requests
// @Tags admin
// @Success 200 {array} model.RedemptionRequest
// @Router /v1/admin/redemptions [get]
func (ct *Controller) List(c echo.Context) error {
	reqs, err := ct.Svc.AllRequests(c.Request().Context())
	if err != nil {
		ct.Log.Error("list redemptions failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch redemption requests")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reqs})
}

// Approve resolves a pending request and pays it out
// @Summary Approve redemption
// @Tags admin
// @Success 200 {object} map[string]any
// @Failure 404,409,500
// @Router /v1/admin/redemptions/{id}/approve [patch]
func (ct *Controller) Approve(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	request, err := ct.Svc.Approve(c.Request().Context(), id)
	if err != nil {
		switch redemptionsvc.Code(err) {
		case redemptionsvc.ErrRequestNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "request not found")
		case redemptionsvc.ErrAlreadyResolved:
			return echo.NewHTTPError(http.StatusConflict, "request already resolved")
		default:
			ct.Log.Error("approve redemption failed", "err", err, "request_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to approve redemption")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Redemption approved and coins transferred",
		"request": request,
	})
}

// Reject resolves a pending request without paying out
// @Summary Reject redemption
// @Tags admin
// @Success 200 {object} map[string]any
// @Failure 404,409,500
// @Router /v1/admin/redemptions/{id}/reject [patch]
func (ct *Controller) Reject(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}

	var req RejectRedemptionReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	request, err := ct.Svc.Reject(c.Request().Context(), id, req.RejectionReason)
	if err != nil {
		switch redemptionsvc.Code(err) {
		case redemptionsvc.ErrRequestNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "request not found")
		case redemptionsvc.ErrAlreadyResolved:
			return echo.NewHTTPError(http.StatusConflict, "request already resolved")
		default:
			ct.Log.Error("reject redemption failed", "err", err, "request_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to reject redemption")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Redemption rejected",
		"request": request,
	})
}
