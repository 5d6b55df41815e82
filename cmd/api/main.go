package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "hotel_admin/internal/adapters/http_server"
	"hotel_admin/internal/adapters/observability"
	redisad "hotel_admin/internal/adapters/redis"
	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/shared"
	"hotel_admin/internal/storage/memory"
	mysqlrepo "hotel_admin/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// deps
	repo, closeRepo := openRepo(cfg)
	defer closeRepo()

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// reads fall through to the store when redis is down
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, running uncached")
	}
	svc := app.NewAdminService(repo, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.APIRPS)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.Store).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// openRepo picks the store named by STORE.
func openRepo(cfg shared.Config) (domain.HotelRepository, func()) {
	if cfg.Store == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return memory.New(domain.HotelSettings{
			ID:      "00000000-0000-0000-0000-000000000001",
			Name:    "Grand Hotel",
			Address: "123 Main St",
			Phone:   "+1 234 567 8900",
			Email:   "info@hotel.com",
		}), func() {}
	}

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	return mysqlrepo.New(db), func() { _ = db.Close() }
}
