package observability

import (
	"strings"

	"github.com/grafana/pyroscope-go"

	"github.com/primera-data/primera/internal/config"
	"github.com/primera-data/primera/internal/platform/logging"
)

// InitPyroscope starts continuous profiling when a server address is set.
func InitPyroscope(cfg *config.Config, logger *logging.Logger) (func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if strings.TrimSpace(cfg.PyroscopeAddress) == "" {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ADDRESS empty")
		return func() error { return nil }, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ServiceName,
		ServerAddress:   cfg.PyroscopeAddress,
		Tags: map[string]string{
			"env":     cfg.Env,
			"service": cfg.ServiceName,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeAddress)
	return profiler.Stop, nil
}
