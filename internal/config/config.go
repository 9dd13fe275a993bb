package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hoopboard/draftboard/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv         string
	ServiceName    string
	ServiceVersion string
	HTTPAddr       string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	LogLevel       logging.Level

	// DBURL is optional; an empty value keeps snapshots in memory only.
	DBURL                   string
	DBDisablePreparedBinary bool

	CORSAllowedOrigins []string
	SwaggerEnabled     bool
	InternalJobToken   string

	TankathonURL          string
	NBADraftNetURL        string
	ESPNURL               string
	DraftRoomURL          string
	PlayerPageBaseURL     string
	PlayerPageConcurrency int
	SeasonYear            int
	SnapshotRetention     int

	PlayerImageBasePath string

	FirecrawlBaseURL               string
	FirecrawlAPIKey                string
	FirecrawlTimeout               time.Duration
	FirecrawlMaxRetries            int
	FirecrawlCircuitEnabled        bool
	FirecrawlCircuitFailureCount   int
	FirecrawlCircuitOpenTimeout    time.Duration
	FirecrawlCircuitHalfOpenMaxReq int

	BarttorvikBaseURL               string
	BarttorvikTimeout               time.Duration
	BarttorvikMaxRetries            int
	BarttorvikCircuitEnabled        bool
	BarttorvikCircuitFailureCount   int
	BarttorvikCircuitOpenTimeout    time.Duration
	BarttorvikCircuitHalfOpenMaxReq int

	QStashEnabled               bool
	QStashBaseURL               string
	QStashToken                 string
	QStashTargetBaseURL         string
	QStashRetries               int
	QStashTimeout               time.Duration
	QStashCircuitEnabled        bool
	QStashCircuitFailureCount   int
	QStashCircuitOpenTimeout    time.Duration
	QStashCircuitHalfOpenMaxReq int

	KVUploadEnabled bool
	KVBaseURL       string
	KVAccountID     string
	KVNamespaceID   string
	KVAPIToken      string
	KVSnapshotKey   string
	KVTimeout       time.Duration

	UptraceEnabled     bool
	UptraceDSN         string
	UptraceLogsEnabled bool

	PprofEnabled bool
	PprofAddr    string

	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}

	seasonYear, err := getEnvAsInt("SEASON_YEAR", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse SEASON_YEAR: %w", err)
	}
	if seasonYear < 0 {
		return Config{}, fmt.Errorf("SEASON_YEAR must be >= 0")
	}

	snapshotRetention, err := getEnvAsInt("SNAPSHOT_RETENTION", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_RETENTION: %w", err)
	}
	if snapshotRetention < 1 {
		return Config{}, fmt.Errorf("SNAPSHOT_RETENTION must be >= 1")
	}

	playerPageConcurrency, err := getEnvAsInt("PLAYER_PAGE_CONCURRENCY", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse PLAYER_PAGE_CONCURRENCY: %w", err)
	}
	if playerPageConcurrency < 1 {
		return Config{}, fmt.Errorf("PLAYER_PAGE_CONCURRENCY must be >= 1")
	}

	firecrawlTimeout, err := time.ParseDuration(getEnv("FIRECRAWL_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIRECRAWL_TIMEOUT: %w", err)
	}
	if firecrawlTimeout <= 0 {
		return Config{}, fmt.Errorf("FIRECRAWL_TIMEOUT must be > 0")
	}
	firecrawlMaxRetries, err := getEnvAsInt("FIRECRAWL_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse FIRECRAWL_MAX_RETRIES: %w", err)
	}
	if firecrawlMaxRetries < 0 {
		return Config{}, fmt.Errorf("FIRECRAWL_MAX_RETRIES must be >= 0")
	}
	firecrawlCircuitEnabled, firecrawlFailureCount, firecrawlOpenTimeout, firecrawlHalfOpenMaxReq, err := loadCircuitEnv("FIRECRAWL")
	if err != nil {
		return Config{}, err
	}
	firecrawlAPIKey := strings.TrimSpace(getEnv("FIRECRAWL_API_KEY", ""))
	if firecrawlAPIKey == "" {
		return Config{}, fmt.Errorf("FIRECRAWL_API_KEY is required")
	}

	barttorvikTimeout, err := time.ParseDuration(getEnv("BARTTORVIK_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BARTTORVIK_TIMEOUT: %w", err)
	}
	if barttorvikTimeout <= 0 {
		return Config{}, fmt.Errorf("BARTTORVIK_TIMEOUT must be > 0")
	}
	barttorvikMaxRetries, err := getEnvAsInt("BARTTORVIK_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse BARTTORVIK_MAX_RETRIES: %w", err)
	}
	if barttorvikMaxRetries < 0 {
		return Config{}, fmt.Errorf("BARTTORVIK_MAX_RETRIES must be >= 0")
	}
	barttorvikCircuitEnabled, barttorvikFailureCount, barttorvikOpenTimeout, barttorvikHalfOpenMaxReq, err := loadCircuitEnv("BARTTORVIK")
	if err != nil {
		return Config{}, err
	}

	qstashEnabled, err := strconv.ParseBool(getEnv("QSTASH_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_ENABLED: %w", err)
	}
	qstashRetries, err := getEnvAsInt("QSTASH_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_RETRIES: %w", err)
	}
	if qstashRetries < 0 {
		return Config{}, fmt.Errorf("QSTASH_RETRIES must be >= 0")
	}
	qstashTimeout, err := time.ParseDuration(getEnv("QSTASH_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse QSTASH_TIMEOUT: %w", err)
	}
	if qstashTimeout <= 0 {
		return Config{}, fmt.Errorf("QSTASH_TIMEOUT must be > 0")
	}
	qstashCircuitEnabled, qstashFailureCount, qstashOpenTimeout, qstashHalfOpenMaxReq, err := loadCircuitEnv("QSTASH")
	if err != nil {
		return Config{}, err
	}
	qstashToken := strings.TrimSpace(getEnv("QSTASH_TOKEN", ""))
	qstashTargetBaseURL := strings.TrimSpace(getEnv("QSTASH_TARGET_BASE_URL", ""))
	internalJobToken := strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	if qstashEnabled {
		if qstashToken == "" {
			return Config{}, fmt.Errorf("QSTASH_TOKEN is required when QSTASH_ENABLED=true")
		}
		if qstashTargetBaseURL == "" {
			return Config{}, fmt.Errorf("QSTASH_TARGET_BASE_URL is required when QSTASH_ENABLED=true")
		}
		if internalJobToken == "" {
			return Config{}, fmt.Errorf("INTERNAL_JOB_TOKEN is required when QSTASH_ENABLED=true")
		}
	}

	kvUploadEnabled, err := strconv.ParseBool(getEnv("KV_UPLOAD_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KV_UPLOAD_ENABLED: %w", err)
	}
	kvTimeout, err := time.ParseDuration(getEnv("KV_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KV_TIMEOUT: %w", err)
	}
	if kvTimeout <= 0 {
		return Config{}, fmt.Errorf("KV_TIMEOUT must be > 0")
	}
	kvAccountID := strings.TrimSpace(getEnv("CF_ACCOUNT_ID", ""))
	kvNamespaceID := strings.TrimSpace(getEnv("KV_NAMESPACE_ID", ""))
	kvAPIToken := strings.TrimSpace(getEnv("CF_API_TOKEN", ""))
	if kvUploadEnabled {
		if kvAccountID == "" {
			return Config{}, fmt.Errorf("CF_ACCOUNT_ID is required when KV_UPLOAD_ENABLED=true")
		}
		if kvNamespaceID == "" {
			return Config{}, fmt.Errorf("KV_NAMESPACE_ID is required when KV_UPLOAD_ENABLED=true")
		}
		if kvAPIToken == "" {
			return Config{}, fmt.Errorf("CF_API_TOKEN is required when KV_UPLOAD_ENABLED=true")
		}
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	cfg := Config{
		AppEnv:                  appEnv,
		ServiceName:             getEnv("APP_SERVICE_NAME", "draftboard-api"),
		ServiceVersion:          getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                getEnv("APP_HTTP_ADDR", ":8080"),
		ReadTimeout:             readTimeout,
		WriteTimeout:            writeTimeout,
		LogLevel:                parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
		DBURL:                   strings.TrimSpace(getEnv("DB_URL", "")),
		DBDisablePreparedBinary: dbDisablePreparedBinary,
		CORSAllowedOrigins:      splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:          swaggerEnabled,
		InternalJobToken:        internalJobToken,

		TankathonURL:          strings.TrimSpace(getEnv("SOURCE_TANKATHON_URL", "")),
		NBADraftNetURL:        strings.TrimSpace(getEnv("SOURCE_NBADRAFTNET_URL", "")),
		ESPNURL:               strings.TrimSpace(getEnv("SOURCE_ESPN_URL", "")),
		DraftRoomURL:          strings.TrimSpace(getEnv("SOURCE_DRAFTROOM_URL", "")),
		PlayerPageBaseURL:     strings.TrimSpace(getEnv("PLAYER_PAGE_BASE_URL", "")),
		PlayerPageConcurrency: playerPageConcurrency,
		SeasonYear:            seasonYear,
		SnapshotRetention:     snapshotRetention,

		PlayerImageBasePath: strings.TrimSpace(getEnv("PLAYER_IMAGE_BASE_PATH", "/players")),

		FirecrawlBaseURL:               strings.TrimSpace(getEnv("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev")),
		FirecrawlAPIKey:                firecrawlAPIKey,
		FirecrawlTimeout:               firecrawlTimeout,
		FirecrawlMaxRetries:            firecrawlMaxRetries,
		FirecrawlCircuitEnabled:        firecrawlCircuitEnabled,
		FirecrawlCircuitFailureCount:   firecrawlFailureCount,
		FirecrawlCircuitOpenTimeout:    firecrawlOpenTimeout,
		FirecrawlCircuitHalfOpenMaxReq: firecrawlHalfOpenMaxReq,

		BarttorvikBaseURL:               strings.TrimSpace(getEnv("BARTTORVIK_BASE_URL", "https://barttorvik.com")),
		BarttorvikTimeout:               barttorvikTimeout,
		BarttorvikMaxRetries:            barttorvikMaxRetries,
		BarttorvikCircuitEnabled:        barttorvikCircuitEnabled,
		BarttorvikCircuitFailureCount:   barttorvikFailureCount,
		BarttorvikCircuitOpenTimeout:    barttorvikOpenTimeout,
		BarttorvikCircuitHalfOpenMaxReq: barttorvikHalfOpenMaxReq,

		QStashEnabled:               qstashEnabled,
		QStashBaseURL:               strings.TrimSpace(getEnv("QSTASH_BASE_URL", "https://qstash.upstash.io")),
		QStashToken:                 qstashToken,
		QStashTargetBaseURL:         qstashTargetBaseURL,
		QStashRetries:               qstashRetries,
		QStashTimeout:               qstashTimeout,
		QStashCircuitEnabled:        qstashCircuitEnabled,
		QStashCircuitFailureCount:   qstashFailureCount,
		QStashCircuitOpenTimeout:    qstashOpenTimeout,
		QStashCircuitHalfOpenMaxReq: qstashHalfOpenMaxReq,

		KVUploadEnabled: kvUploadEnabled,
		KVBaseURL:       strings.TrimSpace(getEnv("KV_BASE_URL", "https://api.cloudflare.com/client/v4")),
		KVAccountID:     kvAccountID,
		KVNamespaceID:   kvNamespaceID,
		KVAPIToken:      kvAPIToken,
		KVSnapshotKey:   strings.TrimSpace(getEnv("KV_SNAPSHOT_KEY", "draft-data")),
		KVTimeout:       kvTimeout,

		UptraceEnabled:     uptraceEnabled,
		UptraceDSN:         uptraceDSN,
		UptraceLogsEnabled: uptraceLogsEnabled,

		PprofEnabled: pprofEnabled,
		PprofAddr:    pprofAddr,

		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func loadCircuitEnv(prefix string) (bool, int, time.Duration, int, error) {
	enabled, err := strconv.ParseBool(getEnv(prefix+"_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return false, 0, 0, 0, fmt.Errorf("parse %s_CIRCUIT_ENABLED: %w", prefix, err)
	}

	failureCount, err := getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return false, 0, 0, 0, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if failureCount < 1 {
		return false, 0, 0, 0, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}

	openTimeout, err := time.ParseDuration(getEnv(prefix+"_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return false, 0, 0, 0, fmt.Errorf("parse %s_CIRCUIT_OPEN_TIMEOUT: %w", prefix, err)
	}
	if openTimeout <= 0 {
		return false, 0, 0, 0, fmt.Errorf("%s_CIRCUIT_OPEN_TIMEOUT must be > 0", prefix)
	}

	halfOpenMaxReq, err := getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return false, 0, 0, 0, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if halfOpenMaxReq < 1 {
		return false, 0, 0, 0, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}

	return enabled, failureCount, openTimeout, halfOpenMaxReq, nil
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

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
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
