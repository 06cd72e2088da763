package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/primera-data/primera/internal/config"
	"github.com/primera-data/primera/internal/platform/logging"
)

// InitUptrace configures the global OpenTelemetry providers. Without a DSN
// the pipeline runs untraced; usecase spans become no-ops.
func InitUptrace(cfg *config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if strings.TrimSpace(cfg.UptraceDSN) == "" {
		logger.Info("uptrace disabled", "reason", "UPTRACE_DSN empty")
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithDeploymentEnvironment(cfg.Env),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"environment", cfg.Env)
	return uptrace.Shutdown, nil
}
