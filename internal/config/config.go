package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/pplp-engine/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	ConsumerName   string        `mapstructure:"consumer_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
	AckWait        time.Duration `mapstructure:"ack_wait"`
	MaxDeliver     int           `mapstructure:"max_deliver"`
}

// TemporalConfig holds Temporal configuration
type TemporalConfig struct {
	HostPort                           string  `mapstructure:"host_port"`
	Namespace                          string  `mapstructure:"namespace"`
	SettlementTaskQueue                string  `mapstructure:"settlement_task_queue"`
	MaxConcurrentActivityExecutionSize int     `mapstructure:"max_concurrent_activity_execution_size"`
	WorkerActivitiesPerSecond          float64 `mapstructure:"worker_activities_per_second"`
	MaxConcurrentActivityTaskPollers   int     `mapstructure:"max_concurrent_activity_task_pollers"`
}

// LedgerConfig holds the settlement ledger configuration
type LedgerConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"`
	ChainID         domain.Chain  `mapstructure:"chain_id"`
	ContractAddress string        `mapstructure:"contract_address"`
	OperatorKey     string        `mapstructure:"operator_key"`     // hex secp256k1 private key of the submitting account
	GasLimit        uint64        `mapstructure:"gas_limit"`        // 0 estimates per transaction
	Confirmations   uint64        `mapstructure:"confirmations"`    // blocks on top of the receipt before it is final
	RPCMaxElapsed   time.Duration `mapstructure:"rpc_max_elapsed"`  // total retry budget for a transient RPC failure
	RPCInitialDelay time.Duration `mapstructure:"rpc_initial_delay"` // first retry delay for a transient RPC failure
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds the per-actor submission limiter configuration
type RateLimitConfig struct {
	Enabled                 bool    `mapstructure:"enabled"`
	SubmissionsPerMinute    int     `mapstructure:"submissions_per_minute"`
	Burst                   int     `mapstructure:"burst"`
	KeyPrefix               string  `mapstructure:"key_prefix"`
	EnableLocalFallback     bool    `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64 `mapstructure:"local_fallback_multiplier"`
}

// KafkaConfig holds the audit stream configuration
type KafkaConfig struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	ClientID     string        `mapstructure:"client_id"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// EvidenceConfig holds the evidence payload store configuration
type EvidenceConfig struct {
	Bucket             string `mapstructure:"bucket"`
	Region             string `mapstructure:"region"`
	Endpoint           string `mapstructure:"endpoint"` // optional S3-compatible endpoint
	Prefix             string `mapstructure:"prefix"`
	AuditArchivePrefix string `mapstructure:"audit_archive_prefix"`
	MaxPayloadBytes    int64  `mapstructure:"max_payload_bytes"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// CORSOrigins lists the browser origins allowed to call the API. Empty allows any origin.
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// SettlementConfig holds the settlement workflow timing
type SettlementConfig struct {
	PollInitialInterval time.Duration `mapstructure:"poll_initial_interval"`
	PollMaxInterval     time.Duration `mapstructure:"poll_max_interval"`
	PollTimeout         time.Duration `mapstructure:"poll_timeout"`
}

// MetricsConfig holds OpenTelemetry metric export configuration
type MetricsConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	OTLPEndpoint   string        `mapstructure:"otlp_endpoint"`
	Insecure       bool          `mapstructure:"insecure"`
	ExportInterval time.Duration `mapstructure:"export_interval"`
}

// PoolConfig holds worker pool configuration
type PoolConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	QueueSize int `mapstructure:"queue_size"`
}

// PendingActionSweeperConfig holds configuration for the pending action sweeper
type PendingActionSweeperConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Interval    time.Duration `mapstructure:"interval"`
	GracePeriod time.Duration `mapstructure:"grace_period"`
	BatchSize   int           `mapstructure:"batch_size"`
	Worker      PoolConfig    `mapstructure:"worker"`
}

// StuckRequestSweeperConfig holds configuration for the stuck mint request sweeper
type StuckRequestSweeperConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Interval   time.Duration `mapstructure:"interval"`
	StuckAfter time.Duration `mapstructure:"stuck_after"`
	BatchSize  int           `mapstructure:"batch_size"`
	Worker     PoolConfig    `mapstructure:"worker"`
}

// AuditStreamerConfig holds configuration for the audit trail streamer
type AuditStreamerConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	BatchSize int           `mapstructure:"batch_size"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Auth       AuthConfig      `mapstructure:"auth"`
	Redis      RedisConfig     `mapstructure:"redis"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
	Evidence   EvidenceConfig  `mapstructure:"evidence"`
	Ledger     LedgerConfig    `mapstructure:"ledger"`
	Metrics    MetricsConfig   `mapstructure:"metrics"`
}

// WorkerConfig holds configuration for the settlement worker
type WorkerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Temporal   TemporalConfig   `mapstructure:"temporal"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	Settlement SettlementConfig `mapstructure:"settlement"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// EventBridgeConfig holds configuration for event-bridge
type EventBridgeConfig struct {
	BaseConfig `mapstructure:",squash"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Temporal   TemporalConfig `mapstructure:"temporal"`
}

// SweeperConfig holds configuration for the sweeper program
type SweeperConfig struct {
	BaseConfig           `mapstructure:",squash"`
	Database             DatabaseConfig             `mapstructure:"database"`
	NATS                 NATSConfig                 `mapstructure:"nats"`
	Temporal             TemporalConfig             `mapstructure:"temporal"`
	Kafka                KafkaConfig                `mapstructure:"kafka"`
	Evidence             EvidenceConfig             `mapstructure:"evidence"`
	PendingActionSweeper PendingActionSweeperConfig `mapstructure:"pending_action_sweeper"`
	StuckRequestSweeper  StuckRequestSweeperConfig  `mapstructure:"stuck_request_sweeper"`
	AuditStreamer        AuditStreamerConfig        `mapstructure:"audit_streamer"`
	Metrics              MetricsConfig              `mapstructure:"metrics"`
}

// PolicyCtlConfig holds configuration for the policy administration tool
type PolicyCtlConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Actor      string         `mapstructure:"actor"`
}

// setDatabaseDefaults sets the defaults shared by every database-backed binary
func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

// setTemporalDefaults sets the defaults shared by every Temporal client
func setTemporalDefaults(v *viper.Viper) {
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.settlement_task_queue", "pplp-settlement")
}

// setNATSDefaults sets the defaults shared by every NATS client
func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "PPLP_EVENTS")
}

// setMetricsDefaults sets the defaults of the OTLP metric exporter
func setMetricsDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.otlp_endpoint", "localhost:4317")
	v.SetDefault("metrics.export_interval", "30s")
}

// readConfig reads the config file, tolerating its absence so env-only deployments work
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// validateDatabase checks the required database fields
func validateDatabase(db DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.submissions_per_minute", 30)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("rate_limit.key_prefix", "pplp:submissions:")
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 0.5)
	v.SetDefault("evidence.prefix", "evidence/")
	v.SetDefault("evidence.max_payload_bytes", 10*1024*1024) // 10MB
	v.SetDefault("ledger.chain_id", string(domain.ChainEthereumSepolia))
	setMetricsDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Enabled && cfg.Redis.Addr == "" && !cfg.RateLimit.EnableLocalFallback {
		return nil, errors.New("redis.addr is required when rate limiting without local fallback")
	}

	return &cfg, nil
}

// LoadWorkerConfig loads configuration for the settlement worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerConfig, error) {
	v := configureViper("worker", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("temporal.max_concurrent_activity_execution_size", 50)
	v.SetDefault("temporal.worker_activities_per_second", 50)
	v.SetDefault("temporal.max_concurrent_activity_task_pollers", 10)
	v.SetDefault("ledger.chain_id", string(domain.ChainEthereumSepolia))
	v.SetDefault("ledger.confirmations", 2)
	v.SetDefault("ledger.rpc_max_elapsed", "1m")
	v.SetDefault("ledger.rpc_initial_delay", "500ms")
	v.SetDefault("settlement.poll_initial_interval", "5s")
	v.SetDefault("settlement.poll_max_interval", "1m")
	v.SetDefault("settlement.poll_timeout", "30m")
	setMetricsDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg WorkerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.Ledger.RPCURL == "" {
		return nil, errors.New("ledger.rpc_url is required")
	}
	if cfg.Ledger.ContractAddress == "" {
		return nil, errors.New("ledger.contract_address is required")
	}
	if cfg.Ledger.OperatorKey == "" {
		return nil, errors.New("ledger.operator_key is required")
	}

	return &cfg, nil
}

// LoadEventBridgeConfig loads configuration for event-bridge
func LoadEventBridgeConfig(configFile string, envPath string) (*EventBridgeConfig, error) {
	v := configureViper("event-bridge", configFile, envPath)

	// Set defaults
	setNATSDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("nats.consumer_name", "event-bridge")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 5)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg EventBridgeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &cfg, nil
}

// LoadSweeperConfig loads configuration for the sweeper program
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	setTemporalDefaults(v)
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("kafka.topic", "pplp.policy-audit")
	v.SetDefault("kafka.client_id", "pplp-sweeper")
	v.SetDefault("kafka.write_timeout", "10s")
	v.SetDefault("evidence.audit_archive_prefix", "audit/policy-changes/")
	v.SetDefault("pending_action_sweeper.enabled", true)
	v.SetDefault("pending_action_sweeper.interval", "1m")
	v.SetDefault("pending_action_sweeper.grace_period", "2m")
	v.SetDefault("pending_action_sweeper.batch_size", 100)
	v.SetDefault("pending_action_sweeper.worker.pool_size", 10)
	v.SetDefault("pending_action_sweeper.worker.queue_size", 100)
	v.SetDefault("stuck_request_sweeper.enabled", true)
	v.SetDefault("stuck_request_sweeper.interval", "5m")
	v.SetDefault("stuck_request_sweeper.stuck_after", "10m")
	v.SetDefault("stuck_request_sweeper.batch_size", 100)
	v.SetDefault("stuck_request_sweeper.worker.pool_size", 5)
	v.SetDefault("stuck_request_sweeper.worker.queue_size", 100)
	v.SetDefault("audit_streamer.enabled", true)
	v.SetDefault("audit_streamer.interval", "30s")
	v.SetDefault("audit_streamer.batch_size", 100)
	setMetricsDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.AuditStreamer.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return nil, errors.New("kafka.brokers is required when the audit streamer is enabled")
	}

	return &cfg, nil
}

// LoadPolicyCtlConfig loads configuration for policyctl
func LoadPolicyCtlConfig(configFile string, envPath string) (*PolicyCtlConfig, error) {
	v := configureViper("policyctl", configFile, envPath)

	setDatabaseDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg PolicyCtlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if cfg.Actor == "" {
		cfg.Actor = os.Getenv("USER")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/sweeper/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix("PPLP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		"actor",
		// Database
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		// Temporal
		"temporal.host_port",
		"temporal.namespace",
		"temporal.settlement_task_queue",
		"temporal.max_concurrent_activity_execution_size",
		"temporal.worker_activities_per_second",
		"temporal.max_concurrent_activity_task_pollers",
		// Ledger
		"ledger.rpc_url",
		"ledger.chain_id",
		"ledger.contract_address",
		"ledger.operator_key",
		"ledger.gas_limit",
		"ledger.confirmations",
		"ledger.rpc_max_elapsed",
		"ledger.rpc_initial_delay",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.submissions_per_minute",
		"rate_limit.burst",
		"rate_limit.key_prefix",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		// Kafka
		"kafka.brokers",
		"kafka.topic",
		"kafka.client_id",
		"kafka.write_timeout",
		// Evidence
		"evidence.bucket",
		"evidence.region",
		"evidence.endpoint",
		"evidence.prefix",
		"evidence.audit_archive_prefix",
		"evidence.max_payload_bytes",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Settlement
		"settlement.poll_initial_interval",
		"settlement.poll_max_interval",
		"settlement.poll_timeout",
		// Sweepers
		"pending_action_sweeper.enabled",
		"pending_action_sweeper.interval",
		"pending_action_sweeper.grace_period",
		"pending_action_sweeper.batch_size",
		"pending_action_sweeper.worker.pool_size",
		"pending_action_sweeper.worker.queue_size",
		"stuck_request_sweeper.enabled",
		"stuck_request_sweeper.interval",
		"stuck_request_sweeper.stuck_after",
		"stuck_request_sweeper.batch_size",
		"stuck_request_sweeper.worker.pool_size",
		"stuck_request_sweeper.worker.queue_size",
		"audit_streamer.enabled",
		"audit_streamer.interval",
		"audit_streamer.batch_size",
		// Metrics
		"metrics.enabled",
		"metrics.otlp_endpoint",
		"metrics.insecure",
		"metrics.export_interval",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}
