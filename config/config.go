package config

import (
	"textmagic/pkg/env"
	"textmagic/pkg/textmagic"
)

var (
	AppName       string
	AppListenAddr string

	GatewayURL      string
	GatewayUsername string
	GatewayPassword string

	// Capacity knobs
	GatewayTimeoutSec int
)

func Init() {
	AppName = env.Default("APP_NAME", "sms-relay")
	AppListenAddr = env.RequiredNotEmpty("LISTEN_ADDR")

	GatewayURL = env.Default("GATEWAY_URL", textmagic.DefaultBaseURL)
	GatewayUsername = env.RequiredNotEmpty("GATEWAY_USERNAME")
	GatewayPassword = env.RequiredNotEmpty("GATEWAY_PASSWORD")

	GatewayTimeoutSec = env.DefaultInt("GATEWAY_TIMEOUT_SEC", 30)
}
