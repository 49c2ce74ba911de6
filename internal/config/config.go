package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/match-ingest/internal/platform/logging"
)

// Config stores runtime configuration for the API and the ingest CLI.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string

	DBURL             string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	PprofEnabled    bool
	PprofAddr       string

	AdminUploadToken string
	UploadMaxBytes   int64

	IngestEventBatchSize        int
	IngestTimeout               time.Duration
	IngestWorkers               int
	TeamNameSimilarityThreshold float64
	SeasonFormLength            int

	UptraceEnabled         bool
	UptraceDSN             string
	UptraceLogsEnabled     bool
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration

	LogLevel  logging.Level
	LogFormat logging.Format
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:           appEnv,
		ServiceName:      strings.TrimSpace(getEnv("SERVICE_NAME", "match-ingest")),
		ServiceVersion:   strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:         strings.TrimSpace(getEnv("HTTP_ADDR", ":8080")),
		DBURL:            strings.TrimSpace(getEnv("DB_URL", "")),
		AdminUploadToken: strings.TrimSpace(getEnv("ADMIN_UPLOAD_TOKEN", "")),
		LogLevel:         parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		LogFormat:        parseLogFormat(getEnv("APP_LOG_FORMAT", string(logging.FormatJSON))),
	}
	if appEnv == EnvProd && cfg.AdminUploadToken == "" {
		return Config{}, fmt.Errorf("ADMIN_UPLOAD_TOKEN is required when APP_ENV=%s", EnvProd)
	}

	if cfg.DBMaxOpenConns, err = positiveInt("DB_MAX_OPEN_CONNS", 20); err != nil {
		return Config{}, err
	}
	if cfg.DBMaxIdleConns, err = getEnvAsInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_IDLE_CONNS: %w", err)
	}
	if cfg.DBMaxIdleConns < 0 {
		return Config{}, fmt.Errorf("DB_MAX_IDLE_CONNS must be >= 0")
	}
	if cfg.DBConnMaxLifetime, err = positiveDuration("DB_CONN_MAX_LIFETIME", "30m"); err != nil {
		return Config{}, err
	}

	if cfg.ReadTimeout, err = positiveDuration("APP_READ_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = positiveDuration("APP_WRITE_TIMEOUT", "2m"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = positiveDuration("APP_SHUTDOWN_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}

	if cfg.PprofEnabled, err = strconv.ParseBool(getEnv("PPROF_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	cfg.PprofAddr = strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))

	uploadMaxBytes, err := positiveInt("UPLOAD_MAX_BYTES", 32<<20)
	if err != nil {
		return Config{}, err
	}
	cfg.UploadMaxBytes = int64(uploadMaxBytes)

	if cfg.IngestEventBatchSize, err = positiveInt("INGEST_EVENT_BATCH_SIZE", 500); err != nil {
		return Config{}, err
	}
	if cfg.IngestTimeout, err = positiveDuration("INGEST_TIMEOUT", "90s"); err != nil {
		return Config{}, err
	}
	if cfg.IngestWorkers, err = positiveInt("INGEST_WORKERS", 4); err != nil {
		return Config{}, err
	}
	if cfg.SeasonFormLength, err = positiveInt("SEASON_FORM_LENGTH", 5); err != nil {
		return Config{}, err
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(getEnv("TEAM_NAME_SIMILARITY_THRESHOLD", "0.8")), 64)
	if err != nil {
		return Config{}, fmt.Errorf("parse TEAM_NAME_SIMILARITY_THRESHOLD: %w", err)
	}
	if threshold <= 0 || threshold > 1 {
		return Config{}, fmt.Errorf("TEAM_NAME_SIMILARITY_THRESHOLD must be in (0, 1]")
	}
	cfg.TeamNameSimilarityThreshold = threshold

	if cfg.UptraceEnabled, err = strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true")); err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	if cfg.PyroscopeEnabled, err = strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false")); err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	cfg.PyroscopeAuthToken = strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", ""))
	if cfg.PyroscopeUploadRate, err = positiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// RequireDB fails when no database URL is configured.
func (c Config) RequireDB() error {
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseLogFormat(v string) logging.Format {
	if strings.EqualFold(strings.TrimSpace(v), string(logging.FormatConsole)) {
		return logging.FormatConsole
	}
	return logging.FormatJSON
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func positiveInt(key string, fallback int) (int, error) {
	value, err := getEnvAsInt(key, fallback)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return value, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
