package main

import (
	"context"

	"textmagic/app"
	"textmagic/config"
	"textmagic/internal/account"
	"textmagic/internal/sms"
	"textmagic/pkg/metrics"
	"textmagic/pkg/tracing"
)

func main() {
	app.Init()

	ctx := context.Background()
	shutdown, err := tracing.Init(ctx, config.AppName)
	if err != nil {
		app.Logger.Warn("tracing disabled", "err", err)
	} else {
		defer func() { _ = shutdown(ctx) }()
	}

	app.Echo.Use(metrics.EchoMiddleware())

	// Handlers
	// sms
	app.Echo.POST("/sms/send", sms.SendHandler)
	app.Echo.GET("/sms/status", sms.StatusHandler)
	app.Echo.GET("/sms/inbox", sms.InboxHandler)
	app.Echo.DELETE("/sms/reply", sms.DeleteHandler)
	app.Echo.GET("/sms/price", sms.PriceHandler)

	// account
	app.Echo.GET("/account/balance", account.BalanceHandler)

	// metrics
	app.Echo.GET("/metrics", metrics.Handler())

	if err := app.Echo.Start(config.AppListenAddr); err != nil {
		panic(err)
	}
}
