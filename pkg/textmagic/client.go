// Package textmagic is a client for the legacy TextMagic bulk SMS HTTP
// gateway. Every operation validates its input locally, performs exactly
// one gateway round trip through an Executor, and reshapes the raw JSON
// into a typed result. Failures, local or remote, surface as *Error.
package textmagic

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"textmagic/pkg/gsm"
	"textmagic/pkg/metrics"
	"textmagic/pkg/tracing"
)

// Config carries everything a Client needs. Username and Password are the
// gateway credentials; the rest is optional.
type Config struct {
	Username string
	Password string

	// BaseURL overrides the production gateway endpoint.
	BaseURL string
	// HTTPClient is used by the default executor.
	HTTPClient *http.Client
	// Executor replaces the HTTP transport entirely, mainly for tests.
	Executor Executor
	Logger   *slog.Logger
}

// Client is a stateless gateway client. Instances with different
// credentials can be used concurrently; a Client itself is safe for
// concurrent use since it holds no mutable state.
type Client struct {
	username string
	password string
	exec     Executor
	log      *slog.Logger
}

func New(cfg Config) *Client {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	exec := cfg.Executor
	if exec == nil {
		httpExec := NewHTTPExecutor(cfg.BaseURL, cfg.HTTPClient)
		httpExec.Logger = log
		exec = httpExec
	}
	return &Client{
		username: cfg.Username,
		password: cfg.Password,
		exec:     exec,
		log:      log,
	}
}

// Unicode selects the message encoding for a send.
type Unicode int

const (
	UnicodeAuto Unicode = iota // detect from the text
	UnicodeYes                 // force unicode encoding
	UnicodeNo                  // force GSM 03.38 encoding
)

// SendOptions are the optional send parameters.
type SendOptions struct {
	Unicode Unicode
	// MaxParts limits how many concatenated parts the gateway may split
	// the message into, 1 to 3. Zero leaves it to the gateway default of 3.
	MaxParts int
	// SendAt schedules the message instead of sending immediately.
	SendAt time.Time
}

// Account returns the account balance.
func (c *Client) Account(ctx context.Context) (*AccountInfo, error) {
	body, err := c.execute(ctx, "account", url.Values{})
	if err != nil {
		return nil, err
	}
	return decodeAccount(body)
}

// Send delivers text to one or more phone numbers. Validation happens
// before the gateway is contacted: empty text, unresolvable unicode flag,
// text outside the chosen alphabet, over-length text, an empty phone list
// and malformed phone numbers are all rejected locally.
func (c *Client) Send(ctx context.Context, text string, phones []string, opts *SendOptions) (*SendResult, error) {
	if opts == nil {
		opts = &SendOptions{}
	}
	if text == "" {
		return nil, newError(CodeEmptyText, "message text is empty")
	}

	needsUnicode := gsm.IsUnicode(text)
	flag, err := resolveUnicode(opts.Unicode, needsUnicode)
	if err != nil {
		return nil, err
	}
	if needsUnicode && flag == 0 {
		// Forcing GSM encoding would silently corrupt these characters.
		return nil, newError(CodeInvalidCharacters, "message contains characters outside of GSM 03.38 charset")
	}

	parts := opts.MaxParts
	if parts == 0 {
		parts = 3
	}
	if parts < 1 || parts > 3 {
		return nil, newError(CodeWrongParameterValue, fmt.Sprintf("wrong parameter value %d for parameter max_length", opts.MaxParts))
	}
	if !gsm.ValidateTextLength(text, flag == 1, parts) {
		return nil, newError(CodeTextTooLong, "message too long")
	}

	if len(phones) == 0 {
		return nil, newError(CodeInsufficientParameters, "insufficient parameters: phone")
	}
	if !ValidatePhones(phones...) {
		return nil, newError(CodeInvalidPhoneFormat, "invalid phone number format")
	}

	params := url.Values{}
	params.Set("text", text)
	params.Set("phone", strings.Join(phones, ","))
	params.Set("unicode", strconv.Itoa(flag))
	if opts.MaxParts != 0 {
		params.Set("max_length", strconv.Itoa(opts.MaxParts))
	}
	if !opts.SendAt.IsZero() {
		params.Set("send_time", strconv.FormatInt(opts.SendAt.Unix(), 10))
	}

	body, err := c.execute(ctx, "send", params)
	if err != nil {
		return nil, err
	}
	return decodeSend(body)
}

// MessageStatus looks up the delivery state of the given message ids.
// At least one id is required.
func (c *Client) MessageStatus(ctx context.Context, ids ...string) (MessageStatuses, error) {
	if len(ids) == 0 {
		return nil, newError(CodeInsufficientParameters, "insufficient parameters: ids")
	}
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	body, err := c.execute(ctx, "message_status", params)
	if err != nil {
		return nil, err
	}
	return decodeMessageStatus(body)
}

// Receive retrieves unread replies. A non-empty lastRetrievedID asks the
// gateway for messages after that id only.
func (c *Client) Receive(ctx context.Context, lastRetrievedID string) (*ReceiveResult, error) {
	params := url.Values{}
	if lastRetrievedID != "" {
		params.Set("last_retrieved_id", lastRetrievedID)
	}
	body, err := c.execute(ctx, "receive", params)
	if err != nil {
		return nil, err
	}
	return decodeReceive(body)
}

// DeleteReply deletes the given replies. At least one id is required.
func (c *Client) DeleteReply(ctx context.Context, ids ...string) (*DeleteResult, error) {
	if len(ids) == 0 {
		return nil, newError(CodeInsufficientParameters, "insufficient parameters: ids")
	}
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	body, err := c.execute(ctx, "delete_reply", params)
	if err != nil {
		return nil, err
	}
	return decodeDeleteReply(body)
}

// CheckNumber returns the sending price and country for the given phone
// numbers. At least one phone is required.
func (c *Client) CheckNumber(ctx context.Context, phones ...string) (NumberInfos, error) {
	if len(phones) == 0 {
		return nil, newError(CodeInsufficientParameters, "insufficient parameters: phone")
	}
	params := url.Values{}
	params.Set("phone", strings.Join(phones, ","))
	body, err := c.execute(ctx, "check_number", params)
	if err != nil {
		return nil, err
	}
	return decodeCheckNumber(body)
}

// resolveUnicode turns the caller's tri-state choice into the 0/1 flag the
// gateway expects. By the time a request is dispatched the flag is always
// exactly 0 or 1.
func resolveUnicode(u Unicode, needsUnicode bool) (int, error) {
	switch u {
	case UnicodeAuto:
		if needsUnicode {
			return 1, nil
		}
		return 0, nil
	case UnicodeYes:
		return 1, nil
	case UnicodeNo:
		return 0, nil
	default:
		return 0, newError(CodeWrongParameterValue, fmt.Sprintf("wrong parameter value %d for parameter unicode", int(u)))
	}
}

func (c *Client) execute(ctx context.Context, cmd string, params url.Values) ([]byte, error) {
	ctx, span := tracing.Start(ctx, "textmagic."+cmd, tracing.Attr("gateway.command", cmd))
	defer span.End()

	var body []byte
	call := metrics.CommandObserver(cmd, func(ctx context.Context) error {
		var err error
		body, err = c.exec.Execute(ctx, cmd, c.username, c.password, params)
		return err
	})
	if err := call(ctx); err != nil {
		c.log.Error("gateway command failed", "cmd", cmd, "err", err)
		return nil, err
	}
	return body, nil
}
