package account

import (
	"net/http"

	"textmagic/app"
	"textmagic/internal/relay"

	"github.com/labstack/echo/v4"
)

func BalanceHandler(c echo.Context) error {
	info, err := app.Gateway.Account(c.Request().Context())
	if err != nil {
		app.Logger.Error("account balance failed", "err", err)
		return relay.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"balance": info.Balance})
}
