// Package main waste reporting rewards API.
//
// @title           Trash to Treasure API
// @version         1.0
// @description     Waste reporting and rewards service (reports, reward tokens, redemptions, bins).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/rameez-hub125/treasure-to-trash/app/echoServer"
	authctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/auth"
	binctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/bin"
	notificationctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/notification"
	payoutctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/payout"
	redemptionctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/redemption"
	reportctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/report"
	rewardctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/reward"
	statsctrl "github.com/rameez-hub125/treasure-to-trash/app/echoServer/controller/stats"
	"github.com/rameez-hub125/treasure-to-trash/app/echoServer/validation"
	"github.com/rameez-hub125/treasure-to-trash/config"
	adminrepo "github.com/rameez-hub125/treasure-to-trash/repository/admin"
	binrepo "github.com/rameez-hub125/treasure-to-trash/repository/bin"
	notificationrepo "github.com/rameez-hub125/treasure-to-trash/repository/notification"
	payoutrepo "github.com/rameez-hub125/treasure-to-trash/repository/payout"
	redemptionrepo "github.com/rameez-hub125/treasure-to-trash/repository/redemption"
	reportrepo "github.com/rameez-hub125/treasure-to-trash/repository/report"
	rewardrepo "github.com/rameez-hub125/treasure-to-trash/repository/reward"
	statsrepo "github.com/rameez-hub125/treasure-to-trash/repository/stats"
	userrepo "github.com/rameez-hub125/treasure-to-trash/repository/user"
	authsvc "github.com/rameez-hub125/treasure-to-trash/service/auth"
	binsvc "github.com/rameez-hub125/treasure-to-trash/service/bin"
	ledgersvc "github.com/rameez-hub125/treasure-to-trash/service/ledger"
	notificationsvc "github.com/rameez-hub125/treasure-to-trash/service/notification"
	payoutsvc "github.com/rameez-hub125/treasure-to-trash/service/payout"
	redemptionsvc "github.com/rameez-hub125/treasure-to-trash/service/redemption"
	reportsvc "github.com/rameez-hub125/treasure-to-trash/service/report"
	statssvc "github.com/rameez-hub125/treasure-to-trash/service/stats"
	"github.com/rameez-hub125/treasure-to-trash/util/database"
	"github.com/rameez-hub125/treasure-to-trash/util/idempotency"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: pgx pool
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// webhook dedup store
	dedup, err := idempotency.New(cfg.IdempotencyPath)
	if err != nil {
		log.Error("idempotency store open failed", "err", err)
		os.Exit(1)
	}
	defer dedup.Close()

	// repos
	ur := userrepo.New(db)
	ar := adminrepo.New(db)
	rr := reportrepo.New(db)
	rw := rewardrepo.New(db)
	rd := redemptionrepo.New(db)
	br := binrepo.New(db)
	nr := notificationrepo.New(db)
	sr := statsrepo.New(db)
	po := payoutrepo.NewHTTP(cfg.PayoutAPIKey, cfg.PayoutBaseURL, cfg.PayoutCallback)

	// services
	as := authsvc.New(ur, ar, cfg.JWTSecret)
	ls := ledgersvc.New(db.Pool, rw, ur)
	rs := reportsvc.New(db.Pool, rr, rw, ur, nr)
	rds := redemptionsvc.New(db.Pool, rd, rw, ur, po)
	bs := binsvc.New(br)
	ns := notificationsvc.New(nr, ur)
	ss := statssvc.New(sr)
	ps := payoutsvc.New(po, dedup, nr)

	if err := as.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, "Admin"); err != nil {
		log.Error("admin seed failed", "err", err)
		os.Exit(1)
	}

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: rs, V: v, Log: log}
	rewardC := &rewardctrl.Controller{Svc: ls, V: v, Log: log}
	redemptionC := &redemptionctrl.Controller{Svc: rds, V: v, Log: log}
	binC := &binctrl.Controller{Svc: bs, V: v, Log: log}
	notificationC := &notificationctrl.Controller{Svc: ns, V: v, Log: log}
	payoutC := &payoutctrl.Controller{Svc: ps, Log: log}
	statsC := &statsctrl.Controller{Svc: ss, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:         authC,
		Report:       reportC,
		Reward:       rewardC,
		Redemption:   redemptionC,
		Bin:          binC,
		Notification: notificationC,
		Payout:       payoutC,
		Stats:        statsC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "chosen_port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
