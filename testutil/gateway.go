package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

// GatewayServer is an in-process stand-in for the bulk SMS gateway. It
// answers POST /api with canned JSON keyed by the cmd form parameter and
// records every request it sees.
type GatewayServer struct {
	URL string

	mu        sync.Mutex
	requests  []url.Values
	responses map[string]string
}

// Gateway starts a fake gateway that serves the given per-command bodies.
// Commands without a canned body answer with the gateway's "command is
// undefined" error payload. The server is torn down with the test.
func Gateway(t *testing.T, responses map[string]string) *GatewayServer {
	t.Helper()
	g := &GatewayServer{responses: responses}

	e := echo.New()
	e.POST("/api", g.handle)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	g.URL = srv.URL
	return g
}

func (g *GatewayServer) handle(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return err
	}
	g.mu.Lock()
	g.requests = append(g.requests, params)
	g.mu.Unlock()

	body, ok := g.responses[c.FormValue("cmd")]
	if !ok {
		body = `{"error_code":3,"error_message":"command is undefined"}`
	}
	return c.JSONBlob(http.StatusOK, []byte(body))
}

// Requests returns a copy of every request received so far.
func (g *GatewayServer) Requests() []url.Values {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]url.Values, len(g.requests))
	copy(out, g.requests)
	return out
}

// LastRequest returns the most recent request, or nil when none arrived.
func (g *GatewayServer) LastRequest() url.Values {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.requests) == 0 {
		return nil
	}
	return g.requests[len(g.requests)-1]
}
