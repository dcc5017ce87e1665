package textmagic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production gateway endpoint. The api path is
// appended by the executor.
const DefaultBaseURL = "https://www.textmagic.com/app"

// Executor performs a single gateway command round trip and returns the
// raw JSON body. An error payload in the response (non-empty error_code)
// is returned as *Error; transport failures are returned as-is.
type Executor interface {
	Execute(ctx context.Context, cmd, username, password string, params url.Values) ([]byte, error)
}

// HTTPExecutor talks to the gateway over HTTP, sending every command as a
// form POST to <BaseURL>/api.
type HTTPExecutor struct {
	BaseURL string
	Client  *http.Client
	Logger  *slog.Logger
}

func NewHTTPExecutor(baseURL string, client *http.Client) *HTTPExecutor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPExecutor{BaseURL: baseURL, Client: client}
}

func (e *HTTPExecutor) Execute(ctx context.Context, cmd, username, password string, params url.Values) ([]byte, error) {
	if cmd == "" {
		return nil, newError(CodeUndefinedCommand, "command is undefined")
	}
	if username == "" || password == "" {
		return nil, newError(CodeInvalidCredentials, "invalid username & password combination")
	}

	// Empty keys and values are dropped before transmission; the gateway
	// treats a present-but-empty parameter as malformed.
	form := url.Values{}
	for key, values := range params {
		if key == "" {
			continue
		}
		for _, value := range values {
			if value != "" {
				form.Add(key, value)
			}
		}
	}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("cmd", cmd)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.BaseURL+"/api", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading gateway response: %w", err)
	}
	if e.Logger != nil {
		e.Logger.Debug("gateway round trip", "cmd", cmd, "status", resp.StatusCode, "duration", time.Since(start))
	}

	// An error payload wins over the HTTP status: the gateway reports
	// failures with error_code in an otherwise 200 response.
	var apiErr Error
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Code != 0 {
		return nil, &apiErr
	}
	if !json.Valid(body) {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("gateway returned invalid JSON")
	}
	return body, nil
}
