// @title Livestock API
// @version 1.0
// @description API de gestión ganadera: animales, sanidad, praderas y analítica.
// @BasePath /api/v1
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livestock-api/internal/adapters/storage/postgres"
	platformauth "livestock-api/internal/auth"
	"livestock-api/internal/config"
	"livestock-api/internal/platform/cache"
	"livestock-api/internal/platform/logger"
	"livestock-api/internal/platform/metrics"
	"livestock-api/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.NewFromEnv()

	var repos router.Repos
	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Error("base de datos no disponible", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	if db != nil {
		repos = router.NewPostgresRepos(db)
		defer db.Close()
	} else {
		log.Warn("DB_DSN no configurado; usando almacenamiento en memoria", nil)
		repos = router.NewMemoryRepos()
	}

	var resultCache cache.Cache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr)
		if err != nil {
			log.Error("redis no disponible", map[string]any{"addr": cfg.RedisAddr, "error": err.Error()})
			os.Exit(1)
		}
		resultCache = redisCache
		log.Info("caché redis conectado", map[string]any{"addr": cfg.RedisAddr})
	} else {
		resultCache = cache.NewMemory()
	}

	authMgr := platformauth.NewManager(platformauth.Options{
		Secret:       cfg.JWTSecret,
		AccessTTL:    cfg.AccessTokenTTL,
		RefreshTTL:   cfg.RefreshTokenTTL,
		CookieDomain: cfg.JWTCookieDomain,
		CookieSecure: cfg.JWTCookieSecure,
	})

	handler := router.New(router.Options{
		Config:  cfg,
		Log:     log,
		Repos:   repos,
		Cache:   resultCache,
		Auth:    authMgr,
		DB:      db,
		Metrics: metrics.NewRegistry(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("servidor iniciado", map[string]any{"port": cfg.Port, "env": string(cfg.Env)})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("error del servidor", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("apagando servidor", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("apagado forzado", map[string]any{"error": err.Error()})
	}
}

// openDatabase conecta y migra si corresponde. Devuelve nil sin error cuando
// no hay DSN configurado (arranque en memoria).
func openDatabase(cfg config.Config, log logger.Logger) (*sql.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, nil
	}
	db, err := postgres.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if cfg.MigrateOnStart {
		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		log.Info("migraciones aplicadas", nil)
	}
	return db, nil
}
