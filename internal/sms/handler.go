package sms

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"textmagic/app"
	"textmagic/internal/relay"
	"textmagic/pkg/textmagic"
	"textmagic/pkg/tracing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type SendRequest struct {
	Text       string   `json:"text"`
	Recipients []string `json:"recipients"`
	Unicode    *bool    `json:"unicode,omitempty"`
	MaxParts   int      `json:"max_parts,omitempty"`
	SendTime   int64    `json:"send_time,omitempty"` // epoch seconds
}

type SendResponse struct {
	RequestID  string            `json:"request_id"`
	MessageIDs []string          `json:"message_ids"`
	Phones     map[string]string `json:"phones"`
	SentText   string            `json:"sent_text"`
	PartsCount int               `json:"parts_count"`
}

func SendHandler(c echo.Context) error {
	var req SendRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		app.Logger.Error("invalid input", "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid input")
	}
	if len(req.Recipients) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "zero recipients")
	}

	requestID := uuid.NewString()
	ctx := tracing.WithRequestID(c.Request().Context(), requestID)

	opts := &textmagic.SendOptions{MaxParts: req.MaxParts}
	if req.Unicode != nil {
		if *req.Unicode {
			opts.Unicode = textmagic.UnicodeYes
		} else {
			opts.Unicode = textmagic.UnicodeNo
		}
	}
	if req.SendTime > 0 {
		opts.SendAt = time.Unix(req.SendTime, 0)
	}

	result, err := app.Gateway.Send(ctx, req.Text, req.Recipients, opts)
	if err != nil {
		app.Logger.Error("send failed", "request_id", requestID, "err", err)
		return relay.HTTPError(err)
	}

	app.Logger.Info("sms sent", "request_id", requestID, "ids", result.IDs, "parts", result.PartsCount)

	return c.JSON(http.StatusOK, SendResponse{
		RequestID:  requestID,
		MessageIDs: result.IDs,
		Phones:     result.Phones,
		SentText:   result.SentText,
		PartsCount: result.PartsCount,
	})
}

func StatusHandler(c echo.Context) error {
	ids := splitParam(c.QueryParam("ids"))
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids is required")
	}

	statuses, err := app.Gateway.MessageStatus(c.Request().Context(), ids...)
	if err != nil {
		app.Logger.Error("message status failed", "ids", ids, "err", err)
		return relay.HTTPError(err)
	}

	out := make(map[string]any, len(statuses))
	for id, s := range statuses {
		entry := map[string]any{
			"text":         s.Text,
			"status":       s.Status,
			"reply_number": s.ReplyNumber,
			"created_time": s.CreatedTime.Unix(),
			"credits_cost": s.CreditsCost,
		}
		if !s.CompletedTime.IsZero() {
			entry["completed_time"] = s.CompletedTime.Unix()
		}
		out[id] = entry
	}
	return c.JSON(http.StatusOK, out)
}

func InboxHandler(c echo.Context) error {
	result, err := app.Gateway.Receive(c.Request().Context(), c.QueryParam("last_retrieved_id"))
	if err != nil {
		app.Logger.Error("receive failed", "err", err)
		return relay.HTTPError(err)
	}

	messages := make([]map[string]any, 0, len(result.Messages))
	for _, m := range result.Messages {
		messages = append(messages, map[string]any{
			"message_id": m.MessageID,
			"from":       m.From,
			"text":       m.Text,
			"timestamp":  m.Timestamp.Unix(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"messages": messages,
		"unread":   result.Unread,
	})
}

func DeleteHandler(c echo.Context) error {
	ids := splitParam(c.QueryParam("ids"))
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids is required")
	}

	result, err := app.Gateway.DeleteReply(c.Request().Context(), ids...)
	if err != nil {
		app.Logger.Error("delete reply failed", "ids", ids, "err", err)
		return relay.HTTPError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deleted": result.Deleted})
}

func PriceHandler(c echo.Context) error {
	phones := splitParam(c.QueryParam("phone"))
	if len(phones) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "phone is required")
	}

	infos, err := app.Gateway.CheckNumber(c.Request().Context(), phones...)
	if err != nil {
		app.Logger.Error("check number failed", "phones", phones, "err", err)
		return relay.HTTPError(err)
	}

	out := make(map[string]any, len(infos))
	for phone, info := range infos {
		out[phone] = map[string]any{"price": info.Price, "country": info.Country}
	}
	return c.JSON(http.StatusOK, out)
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
