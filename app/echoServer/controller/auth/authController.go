// app/echoServer/controller/auth/authController.go
package auth

import (
	"log/slog"
	"net/http"

	"github.com/rameez-hub125/treasure-to-trash/model"
	authsvc "github.com/rameez-hub125/treasure-to-trash/service/auth"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// UserLogin signs a citizen in, creating the account on first login
// @Summary      User login-or-register
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.UserLoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/users/login [post]
func (ct *Controller) UserLogin(c echo.Context) error {
	var req model.UserLoginReq

	if err := c.Bind(&req); err != nil {
		if ct.Log != nil {
			ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		if ct.Log != nil {
			ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	u, token, err := ct.Svc.UserLogin(c.Request().Context(), req)
	if err != nil {
		if ct.Log != nil {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			ct.Log.Error("user login failed", "err", err, "req_id", rid, "path", c.Path())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  u,
		"token": token,
	})
}

// AdminLogin
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        payload  body  model.AdminLoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/admin/login [post]
func (ct *Controller) AdminLogin(c echo.Context) error {
	var req model.AdminLoginReq

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		if ct.Log != nil {
			ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	a, token, err := ct.Svc.AdminLogin(c.Request().Context(), req)
	if err != nil {
		if err == authsvc.ErrInvalidCreds {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		if ct.Log != nil {
			ct.Log.Error("admin login failed", "err", err, "path", c.Path())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"admin": a,
		"token": token,
	})
}
