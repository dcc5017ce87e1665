package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"textmagic/pkg/env"
	"textmagic/pkg/textmagic"
)

// smscli runs a single gateway command from the shell. Credentials come
// from flags or from GATEWAY_USERNAME / GATEWAY_PASSWORD (a .env file in
// the working directory works too).
func main() {
	var (
		cmd      = flag.String("cmd", "", "gateway command: account|send|status|receive|delete|check")
		username = flag.String("username", env.Default("GATEWAY_USERNAME", ""), "gateway username")
		password = flag.String("password", env.Default("GATEWAY_PASSWORD", ""), "gateway password")
		baseURL  = flag.String("base-url", env.Default("GATEWAY_URL", textmagic.DefaultBaseURL), "gateway base URL")
		timeout  = flag.Duration("timeout", 30*time.Second, "HTTP client timeout")

		text    = flag.String("text", "", "message text (send)")
		phones  = flag.String("phones", "", "comma separated phone numbers (send, check)")
		ids     = flag.String("ids", "", "comma separated message ids (status, delete)")
		last    = flag.String("last", "", "last retrieved id (receive)")
		unicode = flag.String("unicode", "auto", "encoding: auto|on|off (send)")
		parts   = flag.Int("parts", 0, "max message parts 1..3, 0 for gateway default (send)")
		sendAt  = flag.Int64("send-at", 0, "scheduled send time as epoch seconds (send)")
	)
	flag.Parse()

	if *cmd == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *username == "" || *password == "" {
		fatal("missing credentials: set -username/-password or GATEWAY_USERNAME/GATEWAY_PASSWORD")
	}

	client := textmagic.New(textmagic.Config{
		Username:   *username,
		Password:   *password,
		BaseURL:    *baseURL,
		HTTPClient: &http.Client{Timeout: *timeout},
		Logger:     slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var (
		result any
		err    error
	)
	switch *cmd {
	case "account":
		result, err = client.Account(ctx)
	case "send":
		opts := &textmagic.SendOptions{MaxParts: *parts}
		switch *unicode {
		case "auto":
			opts.Unicode = textmagic.UnicodeAuto
		case "on":
			opts.Unicode = textmagic.UnicodeYes
		case "off":
			opts.Unicode = textmagic.UnicodeNo
		default:
			fatal("invalid -unicode value: " + *unicode)
		}
		if *sendAt > 0 {
			opts.SendAt = time.Unix(*sendAt, 0)
		}
		result, err = client.Send(ctx, *text, split(*phones), opts)
	case "status":
		result, err = client.MessageStatus(ctx, split(*ids)...)
	case "receive":
		result, err = client.Receive(ctx, *last)
	case "delete":
		result, err = client.DeleteReply(ctx, split(*ids)...)
	case "check":
		result, err = client.CheckNumber(ctx, split(*phones)...)
	default:
		fatal("unknown command: " + *cmd)
	}
	if err != nil {
		fatal(err.Error())
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fatal(err.Error())
	}
	fmt.Println(string(out))
}

func split(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, "smscli:", msg)
	os.Exit(1)
}
