package reward

import (
	"log/slog"
	"net/http"
	"strconv"

	ledgersvc "github.com/rameez-hub125/treasure-to-trash/service/ledger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc ledgersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// MyBalance returns the caller's point balance and tier
// @Summary My reward balance
// @Tags rewards
// @Success 200 {object} ledgersvc.BalanceSnapshot
// @Router /v1/rewards/balance [get]
func (ct *Controller) MyBalance(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	snap, err := ct.Svc.Balance(c.Request().Context(), userID)
	if err != nil {
		ct.Log.Error("balance failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch rewards")
	}
	return c.JSON(http.StatusOK, snap)
}

// MyTransactions lists the caller's ledger entries
// @Summary My transactions
// @Tags rewards
// @Success 200 {array} model.Transaction
// @Router /v1/rewards/transactions [get]
func (ct *Controller) MyTransactions(c echo.Context) error {
	userID := c.Get("user_id").(int64)
	txs, err := ct.Svc.TransactionsByUser(c.Request().Context(), userID)
	if err != nil {
		ct.Log.Error("transactions failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch transactions")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": txs})
}

// Users lists every user with their balance (admin)
// @Summary Users with balances
// @Tags admin
// @Success 200 {array} ledgersvc.UserWithBalance
// @Router /v1/admin/users [get]
func (ct *Controller) Users(c echo.Context) error {
	users, err := ct.Svc.UsersWithBalances(c.Request().Context())
	if err != nil {
		ct.Log.Error("list users failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch users")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

// AdjustTokens applies a signed admin point adjustment
// @Summary Adjust user tokens
// @Tags admin
// @Success 200 {object} map[string]any
// @Failure 400,404,500
// @Router /v1/admin/users/{id}/tokens [post]
func (ct *Controller) AdjustTokens(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req AdjustTokensReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be a number")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	rw, err := ct.Svc.AdjustTokens(c.Request().Context(), userID, req.Amount)
	if err != nil {
		switch ledgersvc.Code(err) {
		case ledgersvc.ErrUserNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		default:
			ct.Log.Error("adjust tokens failed", "err", err, "user_id", userID)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to adjust tokens")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "reward": rw})
}

// ListRewards lists catalog rewards
// @Summary List rewards
// @Tags rewards
// @Success 200 {array} model.Reward
// @Router /v1/rewards [get]
func (ct *Controller) ListRewards(c echo.Context) error {
	rws, err := ct.Svc.ListRewards(c.Request().Context())
	if err != nil {
		ct.Log.Error("list rewards failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch rewards")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rws})
}

// CreateReward adds a catalog reward (admin)
// @Summary Create reward
// @Tags admin
// @Success 201 {object} model.Reward
// @Failure 400,500
// @Router /v1/admin/rewards [post]
func (ct *Controller) CreateReward(c echo.Context) error {
	var req CreateRewardReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "name, points, and collection info are required")
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	rw, err := ct.Svc.CreateReward(c.Request().Context(), req.Name, req.Description, req.Points, req.CollectionInfo, available)
	if err != nil {
		if ledgersvc.Code(err) == ledgersvc.ErrBadInput {
			return echo.NewHTTPError(http.StatusBadRequest, "name, points, and collection info are required")
		}
		ct.Log.Error("create reward failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create reward")
	}
	return c.JSON(http.StatusCreated, rw)
}

// UpdateReward patches a catalog reward (admin)
// @Summary Update reward
// @Tags admin
// @Success 200 {object} model.Reward
// @Failure 400,404,500
// @Router /v1/admin/rewards/{id} [patch]
func (ct *Controller) UpdateReward(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reward id")
	}

	var req UpdateRewardReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	rw, err := ct.Svc.UpdateReward(c.Request().Context(), id, ledgersvc.RewardPatch{
		Name:           req.Name,
		Description:    req.Description,
		Points:         req.Points,
		CollectionInfo: req.CollectionInfo,
		IsAvailable:    req.IsAvailable,
	})
	if err != nil {
		switch ledgersvc.Code(err) {
		case ledgersvc.ErrRewardNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		default:
			ct.Log.Error("update reward failed", "err", err, "reward_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update reward")
		}
	}
	return c.JSON(http.StatusOK, rw)
}

// DeleteReward removes a catalog reward (admin)
// @Summary Delete reward
// @Tags admin
// @Success 200 {object} map[string]any
// @Failure 404,500
// @Router /v1/admin/rewards/{id} [delete]
func (ct *Controller) DeleteReward(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid reward id")
	}

	if err := ct.Svc.DeleteReward(c.Request().Context(), id); err != nil {
		switch ledgersvc.Code(err) {
		case ledgersvc.ErrRewardNotFound:
			return echo.NewHTTPError(http.StatusNotFound, "reward not found")
		default:
			ct.Log.Error("delete reward failed", "err", err, "reward_id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete reward")
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Transactions lists every ledger entry (admin)
// @Summary List transactions
// @Tags admin
// @Success 200 {array} model.Transaction
// @Router /v1/admin/transactions [get]
func (ct *Controller) Transactions(c echo.Context) error {
	txs, err := ct.Svc.AllTransactions(c.Request().Context())
	if err != nil {
		ct.Log.Error("list transactions failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch transactions")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": txs})
}
