package config

import "time"

const (
	envPort         = "PORT"
	envMinDelay     = "SIM_MIN_DELAY"
	envMaxDelay     = "SIM_MAX_DELAY"
	envHighlight    = "HIGHLIGHT_DURATION"
	envSeedFile     = "SEED_FILE"
	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel     = "LOG_LEVEL"
	envLogFormat    = "LOG_FORMAT"
	envAdminToken   = "ADMIN_TOKEN"

	defaultPort = "4000"
	// Score updates land somewhere between 15 and 30 seconds apart.
	defaultMinDelay    = 15 * Duration(time.Second)
	defaultMaxDelay    = 30 * Duration(time.Second)
	defaultHighlight   = 600 * Duration(time.Millisecond)
	defaultMetricsPort = "9090"
	defaultServiceName = "live-scores-service"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)
