package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"loan-fee/config"
	httpLayer "loan-fee/http"
	"loan-fee/logger"
	"loan-fee/repository"
	"loan-fee/service"
)

const (
	redisPingTimeout = 2 * time.Second
	shutdownTimeout  = 10 * time.Second
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			format := logger.FormatText
			if cfg.IsProduction() {
				format = logger.FormatJSON
			}
			log := logger.New(os.Stderr, logger.Config{Format: format, Debug: cfg.Debug})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, opts, log)
		},
	}

	c.Flags().StringVar(&addr, "addr", "", "Listen address (overrides HTTP_ADDR)")
	return c
}

type storage struct {
	quotes  repository.QuoteRepository
	cache   repository.CacheRepository
	closers []func() error
}

func (s *storage) Close() {
	for _, closeFn := range s.closers {
		_ = closeFn()
	}
}

// openStorage connects Redis and Postgres when configured. An unreachable
// Redis falls back to the in-memory cache; a broken database is fatal.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*storage, error) {
	s := &storage{
		quotes: repository.NewQuoteRepositoryMemory(),
		cache:  repository.NewMemoryCache(),
	}

	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "err", err)
			_ = redisCache.Close()
		} else {
			s.cache = redisCache
			s.closers = append(s.closers, redisCache.Close)
			log.Info("quote cache", "backend", "redis", "addr", cfg.RedisAddr)
		}
	}

	if cfg.DatabaseURL != "" {
		repo, err := repository.NewQuoteRepositoryPostgres(cfg.DatabaseURL)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.quotes = repo
		s.closers = append(s.closers, repo.Close)
		log.Info("quote store", "backend", "postgres")
	}

	return s, nil
}

func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func serve(ctx context.Context, cfg *config.Config, opts *rootOptions, log *slog.Logger) error {
	table, err := opts.loadTable(cfg.FeeTablePath)
	if err != nil {
		return err
	}
	log.Info("fee table loaded", "min_term", table.MinTerm(), "max_term", table.MaxTerm())

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	handler := httpLayer.NewRouter(httpLayer.RouterDeps{
		LoanService:        service.NewLoanService(table, store.quotes, store.cache, log),
		TermService:        service.NewTermRecommendationService(table, log),
		RateLimiter:        rateLimiter,
		CORSAllowedOrigins: cfg.CORSOrigins,
		Logger:             log,
	})
	server := newServer(cfg, handler)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("api listening", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
		return err
	}

	log.Info("server exited")
	return nil
}
