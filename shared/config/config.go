// shared/config/config.go
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. SCOUT_LISTEN_ADDR.
	EnvPrefix = "SCOUT_"
	// FileEnv names the optional YAML file loaded beneath the environment.
	FileEnv = "SCOUT_CONFIG"
)

// Store backends for PlayerServiceConfig.StoreBackend.
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// CommonConfig holds configuration fields that are shared across multiple services.
type CommonConfig struct {
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
	// LogFile enables a rotated copy of the log when set.
	LogFile string `koanf:"log_file"`

	RedisAddrs              []string      `koanf:"redis_addrs"`
	RedisPassword           string        `koanf:"redis_password"`
	RegistryEnabled         bool          `koanf:"registry_enabled"`
	HeartbeatInterval       time.Duration `koanf:"heartbeat_interval"`
	HeartbeatTTL            time.Duration `koanf:"heartbeat_ttl"`
	RegistryCleanupInterval time.Duration `koanf:"registry_cleanup_interval"`
	ServiceIP               string        `koanf:"service_ip"` // advertised to the registry
	ServicePort             int           `koanf:"service_port"`
}

// PlayerServiceConfig holds configuration specific to the scout-service.
type PlayerServiceConfig struct {
	CommonConfig `koanf:",squash"`

	ListenAddr               string        `koanf:"listen_addr"`
	APIPrefix                string        `koanf:"api_prefix"`
	StoreBackend             string        `koanf:"store_backend"`
	MongoDBConnStr           string        `koanf:"mongodb_conn_str"`
	MongoDBDatabase          string        `koanf:"mongodb_database"`
	MongoDBPlayersCollection string        `koanf:"mongodb_players_collection"`
	RequestTimeout           time.Duration `koanf:"request_timeout"`
	StatsTimeout             time.Duration `koanf:"stats_timeout"`
	ShutdownTimeout          time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins              []string      `koanf:"cors_origins"`
}

func defaultCommonConfig() CommonConfig {
	return CommonConfig{
		LogLevel:                "info",
		LogFormat:               "json",
		RedisAddrs:              []string{"localhost:6379"},
		HeartbeatInterval:       5 * time.Second,
		HeartbeatTTL:            15 * time.Second,
		RegistryCleanupInterval: 30 * time.Second,
	}
}

// DefaultPlayerServiceConfig returns the configuration used when nothing overrides it.
func DefaultPlayerServiceConfig() *PlayerServiceConfig {
	return &PlayerServiceConfig{
		CommonConfig:             defaultCommonConfig(),
		ListenAddr:               ":5000",
		APIPrefix:                "/api",
		StoreBackend:             StoreMongo,
		MongoDBConnStr:           "mongodb://localhost:27017",
		MongoDBDatabase:          "naijascout",
		MongoDBPlayersCollection: "players",
		RequestTimeout:           5 * time.Second,
		StatsTimeout:             30 * time.Second,
		ShutdownTimeout:          10 * time.Second,
	}
}

// LoadCommonConfig loads the shared settings on their own, for tools such as the seeder.
func LoadCommonConfig() (CommonConfig, error) {
	cfg := defaultCommonConfig()
	if err := load(&cfg); err != nil {
		return cfg, err
	}
	resolveServiceIP(&cfg)
	return cfg, cfg.validate()
}

// LoadPlayerServiceConfig layers defaults, the optional SCOUT_CONFIG file and
// SCOUT_ environment variables, in increasing precedence.
func LoadPlayerServiceConfig() (*PlayerServiceConfig, error) {
	cfg := DefaultPlayerServiceConfig()
	if err := load(cfg); err != nil {
		return nil, err
	}
	resolveServiceIP(&cfg.CommonConfig)

	if cfg.ServicePort == 0 {
		port, err := extractPort(cfg.ListenAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to extract port from listen_addr '%s': %w", cfg.ListenAddr, err)
		}
		cfg.ServicePort = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *PlayerServiceConfig) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr must not be empty")
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return fmt.Errorf("api_prefix must start with '/' (got %q)", c.APIPrefix)
	}
	switch c.StoreBackend {
	case StoreMongo:
		if c.MongoDBConnStr == "" || c.MongoDBDatabase == "" || c.MongoDBPlayersCollection == "" {
			return errors.New("mongodb_conn_str, mongodb_database and mongodb_players_collection are required for the mongo store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store_backend %q (want %q or %q)", c.StoreBackend, StoreMongo, StoreMemory)
	}
	if c.RequestTimeout <= 0 || c.StatsTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("request_timeout, stats_timeout and shutdown_timeout must be positive")
	}
	return c.CommonConfig.validate()
}

func (c CommonConfig) validate() error {
	if !c.RegistryEnabled {
		return nil
	}
	if len(c.RedisAddrs) == 0 {
		return errors.New("redis_addrs must not be empty when the registry is enabled")
	}
	if c.HeartbeatInterval <= 0 || c.HeartbeatTTL <= c.HeartbeatInterval {
		return fmt.Errorf("heartbeat_ttl (%s) must exceed a positive heartbeat_interval (%s)", c.HeartbeatTTL, c.HeartbeatInterval)
	}
	return nil
}

func load(target interface{}) error {
	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// SCOUT_MONGODB_CONN_STR -> mongodb_conn_str; the delimiter is never
	// produced so keys stay flat.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}

	if err := k.UnmarshalWithConf("", target, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// resolveServiceIP falls back to the Kubernetes-injected POD_IP, then loopback.
func resolveServiceIP(c *CommonConfig) {
	if c.ServiceIP != "" {
		return
	}
	if ip := os.Getenv("POD_IP"); ip != "" {
		c.ServiceIP = ip
		return
	}
	c.ServiceIP = "127.0.0.1"
}

// extractPort extracts the numeric port from a listen address (e.g., ":8082" -> 8082, "0.0.0.0:8082" -> 8082)
func extractPort(listenAddr string) (int, error) {
	_, portStr, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return 0, fmt.Errorf("invalid listen address: %w", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number '%s': %w", portStr, err)
	}
	return port, nil
}
