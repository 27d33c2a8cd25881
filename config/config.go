package config

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	defaultServerAddress       = ":8080"
	defaultDatabaseDSN         = ""
	defaultCarrierAddress      = "http://localhost:8181"
	defaultCarrierAPIKey       = ""
	defaultCarrierName         = "courier"
	defaultCarrierRequestDelay = 2500 * time.Millisecond
	defaultReconcileInterval   = 5 * time.Minute
	defaultAuthTokenKey        = ""
	defaultLogLevel            = "debug"

	minAuthTokenKeyLen = 16
)

type Config struct {
	ServerAddr          string
	DatabaseDSN         string
	CarrierAddr         string
	CarrierAPIKey       string
	CarrierName         string
	CarrierRequestDelay time.Duration
	ReconcileInterval   time.Duration
	AuthTokenKey        []byte
	LogLevel            string
}

var (
	once      sync.Once
	singleton *Config
	initErr   error
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		singleton, initErr = parse(flag.CommandLine, os.Args[1:], os.Getenv)
	})

	return singleton, initErr
}

func parse(fs *flag.FlagSet, args []string, getenv func(string) string) (*Config, error) {
	cfg := Config{}
	var tokenKey string

	// initialize flags
	fs.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "server address")
	fs.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "database DSN")
	fs.StringVar(&cfg.CarrierAddr, "r", defaultCarrierAddress, "carrier API address")
	fs.StringVar(&cfg.CarrierAPIKey, "k", defaultCarrierAPIKey, "carrier API key")
	fs.StringVar(&cfg.CarrierName, "c", defaultCarrierName, "carrier name stored on labels")
	fs.DurationVar(&cfg.CarrierRequestDelay, "t", defaultCarrierRequestDelay, "delay between carrier requests")
	fs.DurationVar(&cfg.ReconcileInterval, "i", defaultReconcileInterval, "reconciliation interval")
	fs.StringVar(&tokenKey, "s", defaultAuthTokenKey, "auth token key, hex")
	fs.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// if environment variable is set, then using it
	if v := getenv("RUN_ADDRESS"); v != "" {
		cfg.ServerAddr = v
	}
	if v := getenv("DATABASE_URI"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := getenv("CARRIER_ADDRESS"); v != "" {
		cfg.CarrierAddr = v
	}
	if v := getenv("CARRIER_API_KEY"); v != "" {
		cfg.CarrierAPIKey = v
	}
	if v := getenv("CARRIER_NAME"); v != "" {
		cfg.CarrierName = v
	}
	if v := getenv("CARRIER_REQUEST_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CARRIER_REQUEST_DELAY: %w", err)
		}
		cfg.CarrierRequestDelay = d
	}
	if v := getenv("RECONCILE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("RECONCILE_INTERVAL: %w", err)
		}
		cfg.ReconcileInterval = d
	}
	if v := getenv("AUTH_TOKEN_KEY"); v != "" {
		tokenKey = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if tokenKey == "" {
		return nil, errors.New("auth token key is required, set -s or AUTH_TOKEN_KEY")
	}
	key, err := hex.DecodeString(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("auth token key: %w", err)
	}
	if len(key) < minAuthTokenKeyLen {
		return nil, fmt.Errorf("auth token key must be at least %d bytes, got %d", minAuthTokenKeyLen, len(key))
	}
	cfg.AuthTokenKey = key

	if cfg.CarrierRequestDelay <= 0 {
		return nil, fmt.Errorf("carrier request delay must be positive, got %s", cfg.CarrierRequestDelay)
	}
	if cfg.ReconcileInterval <= 0 {
		return nil, fmt.Errorf("reconcile interval must be positive, got %s", cfg.ReconcileInterval)
	}

	return &cfg, nil
}
