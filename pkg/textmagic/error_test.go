package textmagic

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := newError(CodeTextTooLong, "message too long")
	if got, want := err.Error(), "message too long (7)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorFromPayload(t *testing.T) {
	var apiErr Error
	if err := json.Unmarshal([]byte(`{"error_code":5,"error_message":"Invalid username & password combination"}`), &apiErr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if apiErr.Code != 5 {
		t.Errorf("Code = %d, want 5", apiErr.Code)
	}
	if apiErr.Message != "Invalid username & password combination" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestErrorAs(t *testing.T) {
	var wrapped error = newError(CodeEmptyText, "message text is empty")
	var apiErr *Error
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("errors.As failed")
	}
	if apiErr.Code != CodeEmptyText {
		t.Errorf("Code = %d, want %d", apiErr.Code, CodeEmptyText)
	}
}
