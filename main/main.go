// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/findora-network/ledgercore/apicache"
	"github.com/findora-network/ledgercore/config"
	"github.com/findora-network/ledgercore/consensus"
	"github.com/findora-network/ledgercore/database"
	"github.com/findora-network/ledgercore/database/leveldb"
	"github.com/findora-network/ledgercore/database/memdb"
	"github.com/findora-network/ledgercore/database/pebbledb"
	"github.com/findora-network/ledgercore/ledgerstore"
	"github.com/findora-network/ledgercore/metrics"
	"github.com/findora-network/ledgercore/staking"
	"github.com/findora-network/ledgercore/staking/reward"
	"github.com/findora-network/ledgercore/submission"
	"github.com/findora-network/ledgercore/txs"
)

// buildHash and buildDate are overridden at link time via -ldflags, the
// way the teacher stamps its own build metadata.
var (
	buildHash = "dev"
	buildDate = "unknown"
)

func main() {
	fs := config.BuildFlagSet()
	v, err := config.BuildViper(fs, os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't parse flags: %s\n", err)
		os.Exit(1)
	}

	cfg, err := config.GetConfig(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't load config: %s\n", err)
		os.Exit(1)
	}

	log, err := buildLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "couldn't build logger: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("node exited", zap.Error(err))
	}
}

func buildLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("main: parsing log level: %w", err)
	}
	return zapCfg.Build()
}

func openDatabase(cfg config.Config) (database.Database, error) {
	switch cfg.DBEngine {
	case "pebble":
		return pebbledb.New(cfg.DBPath)
	case "leveldb":
		return leveldb.New(cfg.DBPath)
	case "memory":
		return memdb.New(), nil
	default:
		return nil, fmt.Errorf("main: unknown db engine %q", cfg.DBEngine)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("main: opening database: %w", err)
	}

	codecManager, err := txs.NewCodec()
	if err != nil {
		return fmt.Errorf("main: building codec: %w", err)
	}

	stakingCfg := staking.DefaultConfig()
	calc := reward.NewCalculator(reward.Config{MaxRateNum: 150_000, MinRateNum: 20_000})

	store := ledgerstore.New(db, codecManager, txs.CodecVersion, stakingCfg, calc)
	cache := apicache.New()

	sub := submission.New(store, codecManager, txs.CodecVersion, cfg.BlockCapacity, log.Named("submission"))
	sub.SetCache(cache)

	registry := prometheus.NewRegistry()
	m, err := metrics.New("ledgercore", registry)
	if err != nil {
		return fmt.Errorf("main: registering metrics: %w", err)
	}

	adapter := consensus.NewInProcess(sub, store, consensus.ManagerCodec{Manager: codecManager}, log.Named("consensus"), m)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	go func() {
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		log.Info("metrics server listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()

	// A single-node deployment drives its own block cadence; a
	// multi-validator deployment replaces this goroutine with a real
	// ABCI/gRPC bridge calling the same consensus.Adapter interface.
	go func() {
		ctx := context.Background()
		if err := consensus.RunLoop(ctx, adapter, sub, store.CurrentHeight(), 2*time.Second, log.Named("consensus")); err != nil {
			log.Error("consensus loop stopped", zap.Error(err))
		}
	}()

	router := submission.NewRouter(sub, submission.BuildInfo{Hash: buildHash, Date: buildDate})
	addr := fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
	return submission.Serve(addr, router, log.Named("http"))
}
