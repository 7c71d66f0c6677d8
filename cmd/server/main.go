package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/matiasolis/impostor-party/internal/api"
	"github.com/matiasolis/impostor-party/internal/factory"
	"github.com/matiasolis/impostor-party/internal/model"
	redisstorage "github.com/matiasolis/impostor-party/internal/storage/redis"
)

type config struct {
	bind      string
	port      int
	storage   string
	redisURL  string
	wordsFile string
	verbose   bool
}

func newCmd(cfg *config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("IMPOSTORPARTY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:   "impostord",
		Short: "Real-time server for the word impostor party game",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.bind, "bind", "b", "", "address to bind to (env: IMPOSTORPARTY_BIND)")
	fs.IntVarP(&cfg.port, "port", "p", 3001, "port to listen on (env: IMPOSTORPARTY_PORT)")
	fs.StringVar(&cfg.storage, "storage", factory.StorageTypeMemory, "storage backend, memory or redis (env: IMPOSTORPARTY_STORAGE)")
	fs.StringVar(&cfg.redisURL, "redis-url", "", "redis connection URL, required with --storage redis (env: IMPOSTORPARTY_REDIS_URL)")
	fs.StringVar(&cfg.wordsFile, "words-file", "", "optional word list file, one word per line (env: IMPOSTORPARTY_WORDS_FILE)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "debug logging (env: IMPOSTORPARTY_VERBOSE)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	return cmd
}

func run(ctx context.Context, cfg *config) error {
	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.storage,
	}
	if cfg.storage == factory.StorageTypeRedis {
		if cfg.redisURL == "" {
			return fmt.Errorf("--redis-url required when --storage is redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.redisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	if cfg.wordsFile != "" {
		if err := app.WordsService.LoadFromFile(ctx, cfg.wordsFile); err != nil {
			logger.Warn("could not load word list, using built-in pool",
				slog.String("path", cfg.wordsFile),
				slog.String("error", err.Error()))
		}
	} else if err := app.WordsService.LoadFromStorage(ctx); err != nil {
		// A pool persisted by an earlier --words-file run survives restarts
		// on the redis backend; no stored pool just means the built-in one
		if !errors.Is(err, model.ErrWordPoolEmpty) {
			logger.Warn("could not load stored word list, using built-in pool",
				slog.String("error", err.Error()))
		}
	}

	serverCfg := api.DefaultServerConfig()
	serverCfg.Host = cfg.bind
	serverCfg.Port = cfg.port
	server := api.NewServer(app.Router, serverCfg, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}

func main() {
	cfg := &config{}
	cobra.CheckErr(newCmd(cfg).ExecuteContext(context.Background()))
}
