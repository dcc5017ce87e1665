// Package relay holds pieces shared by the relay's HTTP handler packages.
package relay

import (
	"errors"
	"net/http"

	"textmagic/pkg/textmagic"

	"github.com/labstack/echo/v4"
)

// HTTPError translates a gateway client error into the echo error the
// relay returns. Local validation codes become 400s, credential failures
// 401, an exhausted balance 402; anything else the gateway reported is a
// 502 because the fault is upstream of the relay.
func HTTPError(err error) error {
	var apiErr *textmagic.Error
	if !errors.As(err, &apiErr) {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	switch apiErr.Code {
	case textmagic.CodeInvalidCredentials:
		return echo.NewHTTPError(http.StatusUnauthorized, apiErr.Message)
	case textmagic.CodeLowBalance:
		return echo.NewHTTPError(http.StatusPaymentRequired, apiErr.Message)
	case textmagic.CodeEmptyText,
		textmagic.CodeInsufficientParameters,
		textmagic.CodeInvalidCharacters,
		textmagic.CodeTextTooLong,
		textmagic.CodeInvalidPhoneFormat,
		textmagic.CodeWrongParameterValue:
		return echo.NewHTTPError(http.StatusBadRequest, apiErr.Message)
	default:
		return echo.NewHTTPError(http.StatusBadGateway, apiErr.Message)
	}
}
