package echoServer

import (
	"net/http"

	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/auth"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/bin"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/notification"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/payout"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/redemption"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/report"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/reward"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/stats"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth         *auth.Controller
	Report       *report.Controller
	Reward       *reward.Controller
	Redemption   *redemption.Controller
	Bin          *bin.Controller
	Notification *notification.Controller
	Payout       *payout.Controller
	Stats        *stats.Controller
	JWTSecret    string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/login", c.Auth.UserLogin)
	pub.POST("/admin/login", c.Auth.AdminLogin)
	pub.GET("/bins", c.Bin.List)
	pub.GET("/stats", c.Stats.Dashboard)

	// payout gateway callbacks
	pub.POST("/payout/webhook", c.Payout.Webhook)

	// Authenticated users
	user := e.Group("/v1")
	user.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id extraction from the verified token
	user.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token, ok := ctx.Get("user").(*jwt.Token)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			ctx.Set("user_id", int64(sub))
			return next(ctx)
		}
	})

	// Reports
	user.POST("/reports", c.Report.Create)
	user.GET("/reports/my", c.Report.My)

	// Rewards
	user.GET("/rewards/balance", c.Reward.MyBalance)
	user.GET("/rewards/transactions", c.Reward.MyTransactions)
	user.GET("/rewards", c.Reward.ListRewards)

	// Redemptions
	user.POST("/redemptions", c.Redemption.Create)
	user.GET("/redemptions/my", c.Redemption.My)

	// Admin
	adm := e.Group("/v1/admin")
	adm.Use(AdminAuth(c.JWTSecret))

	adm.GET("/reports", c.Report.List)
	adm.PATCH("/reports/:id/status", c.Report.UpdateStatus)
	adm.PATCH("/reports/:id/assign", c.Report.Assign)

	adm.GET("/users", c.Reward.Users)
	adm.POST("/users/:id/tokens", c.Reward.AdjustTokens)
	adm.GET("/transactions", c.Reward.Transactions)

	adm.POST("/rewards", c.Reward.CreateReward)
	adm.PATCH("/rewards/:id", c.Reward.UpdateReward)
	adm.DELETE("/rewards/:id", c.Reward.DeleteReward)

	adm.GET("/redemptions", c.Redemption.List)
	adm.PATCH("/redemptions/:id/approve", c.Redemption.Approve)
	adm.PATCH("/redemptions/:id/reject", c.Redemption.Reject)

	adm.POST("/bins", c.Bin.Create)
	adm.PATCH("/bins/:id", c.Bin.Update)
	adm.DELETE("/bins/:id", c.Bin.Delete)

	adm.POST("/notifications", c.Notification.Send)
	adm.GET("/notifications", c.Notification.List)

	adm.GET("/stats", c.Stats.Dashboard)
}
