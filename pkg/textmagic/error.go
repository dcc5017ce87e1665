package textmagic

import "fmt"

// Error codes assigned locally, before any request is dispatched. Remote
// failures reuse whatever code the gateway reports in error_code, so a
// caller always branches on Code regardless of where the failure happened.
const (
	CodeEmptyText              = 1
	CodeLowBalance             = 2
	CodeUndefinedCommand       = 3
	CodeInsufficientParameters = 4
	CodeInvalidCredentials     = 5
	CodeInvalidCharacters      = 6
	CodeTextTooLong            = 7
	CodeInvalidPhoneFormat     = 9
	CodeWrongParameterValue    = 10
)

// Error is the single error type surfaced by this package, for both local
// validation failures and errors reported by the gateway. The json tags
// match the gateway's error payload.
type Error struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

func newError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}
