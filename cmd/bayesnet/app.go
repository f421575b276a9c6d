package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/michal-shasha/bayesnet"
	"github.com/michal-shasha/bayesnet/internal/config"
	"github.com/michal-shasha/bayesnet/internal/logging"
	"github.com/michal-shasha/bayesnet/pkg/adapters/memory"
	"github.com/michal-shasha/bayesnet/pkg/adapters/redis"
	"github.com/michal-shasha/bayesnet/pkg/ports"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app holds what every command needs: the resolved config and a logger.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if network, _ := cmd.Flags().GetString("network"); network != "" {
		cfg.Network = network
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if asJSON, _ := cmd.Flags().GetBool("log-json"); asJSON {
		cfg.LogFormat = "json"
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.NewWithWriter(os.Stderr, level, cfg.LogFormat == "json")
	slog.SetDefault(logger)

	return &app{cfg: cfg, logger: logger}, nil
}

// networkPath returns the network to load, preferring a positional argument.
func (a *app) networkPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.Network == "" {
		return "", errors.New("no network given: use --network or set 'network' in the config file")
	}
	return a.cfg.Network, nil
}

// openCache builds the configured result cache. The returned close function is never nil.
func (a *app) openCache(ctx context.Context) (ports.ResultCache, func() error, error) {
	noop := func() error { return nil }

	switch a.cfg.Cache.Backend {
	case config.CacheNone:
		return nil, noop, nil
	case config.CacheRedis:
		ttl, err := a.cfg.Cache.TTLDuration()
		if err != nil {
			return nil, noop, err
		}
		opts := []redis.Option{redis.WithTTL(ttl)}
		if a.cfg.Cache.Prefix != "" {
			opts = append(opts, redis.WithPrefix(a.cfg.Cache.Prefix))
		}
		cache := redis.New(a.cfg.Cache.RedisAddr, a.cfg.Cache.RedisPassword, a.cfg.Cache.RedisDB, opts...)

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := cache.Ping(pingCtx); err != nil {
			_ = cache.Close()
			return nil, noop, fmt.Errorf("redis cache unavailable at %s: %w", a.cfg.Cache.RedisAddr, err)
		}
		a.logger.Debug("using redis cache", "addr", a.cfg.Cache.RedisAddr, "ttl", ttl)
		return cache, cache.Close, nil
	default:
		return memory.NewCache(), noop, nil
	}
}

// engineOptions returns the options shared by every engine the command creates.
func (a *app) engineOptions(cache ports.ResultCache, extra ...bayesnet.Option) []bayesnet.Option {
	opts := []bayesnet.Option{bayesnet.WithLogger(a.logger)}
	if cache != nil {
		opts = append(opts, bayesnet.WithCache(cache))
	}
	return append(opts, extra...)
}

// openEngine loads the network and builds an engine over it.
func (a *app) openEngine(ctx context.Context, args []string, extra ...bayesnet.Option) (*bayesnet.Engine, func() error, error) {
	path, err := a.networkPath(args)
	if err != nil {
		return nil, nil, err
	}

	cache, closeCache, err := a.openCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	engine, err := bayesnet.Open(path, a.engineOptions(cache, extra...)...)
	if err != nil {
		_ = closeCache()
		return nil, nil, err
	}
	a.logger.Debug("network loaded", "path", path, "variables", engine.Network().Len())
	return engine, closeCache, nil
}

// interactive reports whether the command writes to a terminal.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminalFile(f)
}

func isTerminalFile(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
