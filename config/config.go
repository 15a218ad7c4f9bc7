// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds the node's runtime configuration the way the
// teacher's own config package does: a pflag.FlagSet bound into a
// viper.Viper so every setting can come from a flag, an environment
// variable, or a default, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func lookupEnv(key string) (string, bool) { return os.LookupEnv(key) }

const envPrefix = "LEDGERCORE"

// Flag keys, also used as viper keys.
const (
	ServerHostKey       = "server-host"
	ServerPortKey        = "server-port"
	MetricsPortKey       = "metrics-port"
	DBPathKey            = "db-path"
	DBEngineKey          = "db-engine"
	MnemonicPathKey      = "mnemonic-path"
	ValidatorKeyPathKey  = "validator-key-path"
	KeepHistKey          = "keep-hist"
	BlockCapacityKey     = "block-capacity"
	LogLevelKey          = "log-level"
)

// Config is the fully resolved set of values the node needs to start,
// mirroring the environment variables the original implementation's
// submission server read directly: SERVER_HOST, SERVER_PORT, the
// mnemonic and validator key paths, and KEEP_HIST.
type Config struct {
	ServerHost      string
	ServerPort      int
	MetricsPort     int
	DBPath          string
	DBEngine        string
	MnemonicPath    string
	ValidatorKeyPath string
	KeepHist        uint64
	BlockCapacity   int
	LogLevel        string
}

// BuildFlagSet declares every flag the node accepts, with the same
// defaults GetConfig falls back to when neither a flag nor an
// environment variable is set.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ledgercore", pflag.ContinueOnError)

	fs.String(ServerHostKey, "0.0.0.0", "address the submission HTTP server binds to")
	fs.Int(ServerPortKey, 8669, "port the submission HTTP server listens on")
	fs.Int(MetricsPortKey, 9090, "port the prometheus /metrics endpoint listens on")
	fs.String(DBPathKey, "./data", "directory holding the ledger store's on-disk database")
	fs.String(DBEngineKey, "pebble", "storage engine backing the ledger store: pebble, leveldb, or memory")
	fs.String(MnemonicPathKey, "", "path to the file holding this node's submission-signing mnemonic")
	fs.String(ValidatorKeyPathKey, "", "path to the file holding this node's validator staking key")
	fs.Uint64(KeepHistKey, 100, "staking history setting, parsed into Config.KeepHist; no component reads it, and ApiCache keeps every history entry")
	fs.Int(BlockCapacityKey, 0, "maximum in-flight transactions per block; 0 uses block.DefaultCapacity")
	fs.String(LogLevelKey, "info", "zap log level: debug, info, warn, error")

	return fs
}

// BuildViper binds fs into a Viper that also reads LEDGERCORE_-prefixed
// environment variables (e.g. LEDGERCORE_SERVER_PORT), then parses args
// against fs. Flags take precedence over environment variables, which take
// precedence over the flag defaults.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: binding flags: %w", err)
	}
	return v, nil
}

// GetConfig resolves a Config from v, applying the legacy SERVER_HOST,
// SERVER_PORT, and KEEP_HIST environment variable names the original
// implementation's submission server read directly, so operators
// upgrading an existing deployment do not need to rename anything. These
// are written into v with Set, so a legacy variable that is present
// overrides the matching flag as well as its LEDGERCORE_ variable.
func GetConfig(v *viper.Viper) (Config, error) {
	for legacyEnv, key := range map[string]string{
		"SERVER_HOST": ServerHostKey,
		"SERVER_PORT": ServerPortKey,
		"KEEP_HIST":   KeepHistKey,
	} {
		if val, ok := lookupEnv(legacyEnv); ok {
			v.Set(key, val)
		}
	}

	cfg := Config{
		ServerHost:       v.GetString(ServerHostKey),
		ServerPort:       v.GetInt(ServerPortKey),
		MetricsPort:      v.GetInt(MetricsPortKey),
		DBPath:           v.GetString(DBPathKey),
		DBEngine:         v.GetString(DBEngineKey),
		MnemonicPath:     v.GetString(MnemonicPathKey),
		ValidatorKeyPath: v.GetString(ValidatorKeyPathKey),
		KeepHist:         v.GetUint64(KeepHistKey),
		BlockCapacity:    v.GetInt(BlockCapacityKey),
		LogLevel:         v.GetString(LogLevelKey),
	}

	switch cfg.DBEngine {
	case "pebble", "leveldb", "memory":
	default:
		return Config{}, fmt.Errorf("config: unknown db engine %q", cfg.DBEngine)
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return Config{}, fmt.Errorf("config: invalid server port %d", cfg.ServerPort)
	}
	return cfg, nil
}
