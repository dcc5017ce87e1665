package app

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"textmagic/config"
	"textmagic/pkg/textmagic"

	"github.com/labstack/echo/v4"
)

var (
	Echo    *echo.Echo
	Logger  *slog.Logger
	Gateway *textmagic.Client
)

func Init() {
	config.Init()
	initLogger()
	initGateway()
	initEcho()
}

func initLogger() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{})
	Logger = slog.New(handler)
}

func initGateway() {
	Gateway = textmagic.New(textmagic.Config{
		Username: config.GatewayUsername,
		Password: config.GatewayPassword,
		BaseURL:  config.GatewayURL,
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.GatewayTimeoutSec) * time.Second,
		},
		Logger: Logger,
	})
}

func initEcho() {
	Echo = echo.New()
}
