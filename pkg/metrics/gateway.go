package metrics

import (
	"context"

	prom "github.com/prometheus/client_golang/prometheus"
)

var (
	gatewayCommands = prom.NewCounterVec(
		prom.CounterOpts{
			Name: "gateway_commands_total",
			Help: "Count of bulk SMS gateway command executions",
		},
		[]string{"command", "result"},
	)
	gatewayDuration = prom.NewHistogramVec(
		prom.HistogramOpts{
			Name:    "gateway_command_duration_seconds",
			Help:    "Duration of bulk SMS gateway commands",
			Buckets: prom.DefBuckets,
		},
		[]string{"command"},
	)
)

func init() {
	prom.MustRegister(gatewayCommands, gatewayDuration)
}

func CommandObserver(command string, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) error {
		timer := prom.NewTimer(gatewayDuration.WithLabelValues(command))
		err := fn(ctx)
		timer.ObserveDuration()
		result := "success"
		if err != nil {
			result = "error"
		}
		gatewayCommands.WithLabelValues(command, result).Inc()
		return err
	}
}
