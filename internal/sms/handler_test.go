package sms

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"textmagic/app"
	"textmagic/pkg/textmagic"
	"textmagic/testutil"

	"github.com/labstack/echo/v4"
)

func setup(t *testing.T, responses map[string]string) *testutil.GatewayServer {
	t.Helper()
	gw := testutil.Gateway(t, responses)
	app.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	app.Gateway = textmagic.New(textmagic.Config{
		Username: "fred",
		Password: "secret",
		BaseURL:  gw.URL,
		Logger:   app.Logger,
	})
	return gw
}

func request(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("error %v is not an *echo.HTTPError", err)
	}
	return httpErr.Code
}

func TestSendHandler(t *testing.T) {
	gw := setup(t, map[string]string{
		"send": `{"message_id":{"141421":"999314159265"},"sent_text":"Hi Vilma","parts_count":1}`,
	})

	c, rec := request(http.MethodPost, "/sms/send", `{"text":"Hi Vilma","recipients":["999314159265"]}`)
	if err := SendHandler(c); err != nil {
		t.Fatalf("SendHandler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp SendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RequestID == "" {
		t.Error("request_id is empty")
	}
	if len(resp.MessageIDs) != 1 || resp.MessageIDs[0] != "141421" {
		t.Errorf("message_ids = %v", resp.MessageIDs)
	}
	if resp.Phones["999314159265"] != "141421" {
		t.Errorf("phones = %v", resp.Phones)
	}

	if got := gw.LastRequest().Get("text"); got != "Hi Vilma" {
		t.Errorf("gateway text = %q", got)
	}
}

func TestSendHandler_ForcedUnicode(t *testing.T) {
	gw := setup(t, map[string]string{
		"send": `{"message_id":{"1":"999314159265"},"sent_text":"Hi","parts_count":1}`,
	})

	c, _ := request(http.MethodPost, "/sms/send", `{"text":"Hi","recipients":["999314159265"],"unicode":true}`)
	if err := SendHandler(c); err != nil {
		t.Fatalf("SendHandler: %v", err)
	}
	if got := gw.LastRequest().Get("unicode"); got != "1" {
		t.Errorf("gateway unicode = %q, want 1", got)
	}
}

func TestSendHandler_InvalidJSON(t *testing.T) {
	setup(t, nil)

	c, _ := request(http.MethodPost, "/sms/send", `{not json`)
	if got := httpStatus(t, SendHandler(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestSendHandler_ZeroRecipients(t *testing.T) {
	gw := setup(t, nil)

	c, _ := request(http.MethodPost, "/sms/send", `{"text":"Hi","recipients":[]}`)
	if got := httpStatus(t, SendHandler(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
	if len(gw.Requests()) != 0 {
		t.Errorf("gateway saw %d requests, want 0", len(gw.Requests()))
	}
}

func TestSendHandler_ValidationRejectedLocally(t *testing.T) {
	gw := setup(t, nil)

	c, _ := request(http.MethodPost, "/sms/send", `{"text":"Hi","recipients":["not a phone"]}`)
	if got := httpStatus(t, SendHandler(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
	if len(gw.Requests()) != 0 {
		t.Errorf("gateway saw %d requests, want 0", len(gw.Requests()))
	}
}

func TestSendHandler_LowBalance(t *testing.T) {
	setup(t, map[string]string{
		"send": `{"error_code":2,"error_message":"not enough credits"}`,
	})

	c, _ := request(http.MethodPost, "/sms/send", `{"text":"Hi","recipients":["999314159265"]}`)
	if got := httpStatus(t, SendHandler(c)); got != http.StatusPaymentRequired {
		t.Errorf("status = %d, want 402", got)
	}
}

func TestStatusHandler(t *testing.T) {
	gw := setup(t, map[string]string{
		"message_status": `{"141421":{"text":"Hi","status":"d","created_time":1242979818,"completed_time":1242979838,"credits_cost":0.5}}`,
	})

	c, rec := request(http.MethodGet, "/sms/status?ids=141421", "")
	if err := StatusHandler(c); err != nil {
		t.Fatalf("StatusHandler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var out map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	entry := out["141421"]
	if entry["status"] != "d" {
		t.Errorf("status = %v", entry["status"])
	}
	if entry["completed_time"] != float64(1242979838) {
		t.Errorf("completed_time = %v", entry["completed_time"])
	}
	if got := gw.LastRequest().Get("ids"); got != "141421" {
		t.Errorf("gateway ids = %q", got)
	}
}

func TestStatusHandler_PendingOmitsCompletedTime(t *testing.T) {
	setup(t, map[string]string{
		"message_status": `{"141421":{"text":"Hi","status":"a","created_time":1242979818,"completed_time":null,"credits_cost":0}}`,
	})

	c, rec := request(http.MethodGet, "/sms/status?ids=141421", "")
	if err := StatusHandler(c); err != nil {
		t.Fatalf("StatusHandler: %v", err)
	}

	var out map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if _, ok := out["141421"]["completed_time"]; ok {
		t.Error("completed_time should be omitted while pending")
	}
}

func TestStatusHandler_MissingIDs(t *testing.T) {
	setup(t, nil)

	c, _ := request(http.MethodGet, "/sms/status", "")
	if got := httpStatus(t, StatusHandler(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestInboxHandler(t *testing.T) {
	gw := setup(t, map[string]string{
		"receive": `{"messages":[{"message_id":"1414214","from":"441234567890","timestamp":1242987175,"text":"Hi Fred"}],"unread":1}`,
	})

	c, rec := request(http.MethodGet, "/sms/inbox?last_retrieved_id=1414213", "")
	if err := InboxHandler(c); err != nil {
		t.Fatalf("InboxHandler: %v", err)
	}

	var out struct {
		Messages []map[string]any `json:"messages"`
		Unread   int              `json:"unread"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Unread != 1 || len(out.Messages) != 1 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Messages[0]["text"] != "Hi Fred" {
		t.Errorf("text = %v", out.Messages[0]["text"])
	}
	if got := gw.LastRequest().Get("last_retrieved_id"); got != "1414213" {
		t.Errorf("gateway last_retrieved_id = %q", got)
	}
}

func TestDeleteHandler(t *testing.T) {
	gw := setup(t, map[string]string{
		"delete_reply": `{"deleted":["1414213","1414214"]}`,
	})

	c, rec := request(http.MethodDelete, "/sms/reply?ids=1414213,1414214", "")
	if err := DeleteHandler(c); err != nil {
		t.Fatalf("DeleteHandler: %v", err)
	}

	var out struct {
		Deleted []string `json:"deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Deleted) != 2 {
		t.Errorf("deleted = %v", out.Deleted)
	}
	if got := gw.LastRequest().Get("ids"); got != "1414213,1414214" {
		t.Errorf("gateway ids = %q", got)
	}
}

func TestDeleteHandler_MissingIDs(t *testing.T) {
	setup(t, nil)

	c, _ := request(http.MethodDelete, "/sms/reply", "")
	if got := httpStatus(t, DeleteHandler(c)); got != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", got)
	}
}

func TestPriceHandler(t *testing.T) {
	setup(t, map[string]string{
		"check_number": `{"447624800500":{"price":0.8,"country":"GB"}}`,
	})

	c, rec := request(http.MethodGet, "/sms/price?phone=447624800500", "")
	if err := PriceHandler(c); err != nil {
		t.Fatalf("PriceHandler: %v", err)
	}

	var out map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out["447624800500"]["country"] != "GB" {
		t.Errorf("country = %v", out["447624800500"]["country"])
	}
}

func TestSplitParam(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"1", 1},
		{"1,2,3", 3},
		{" 1 , 2 ", 2},
		{",,", 0},
	}
	for _, c := range cases {
		if got := splitParam(c.raw); len(got) != c.want {
			t.Errorf("splitParam(%q) = %v, want %d entries", c.raw, got, c.want)
		}
	}
}
