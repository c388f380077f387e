package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/riadhbennourdine/pharmia/config"
	"github.com/riadhbennourdine/pharmia/internal/api/handler"
	"github.com/riadhbennourdine/pharmia/internal/api/router"
	"github.com/riadhbennourdine/pharmia/internal/repository"
	"github.com/riadhbennourdine/pharmia/internal/service"
	"github.com/riadhbennourdine/pharmia/pkg/database"
	"github.com/riadhbennourdine/pharmia/pkg/gemini"
	"github.com/riadhbennourdine/pharmia/pkg/jwt"
	applogger "github.com/riadhbennourdine/pharmia/pkg/logger"
	"github.com/riadhbennourdine/pharmia/pkg/redis"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "chargement de la configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialisation du logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("démarrage de l'application",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Database
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("connexion à la base de données", zap.Error(err))
	}
	logger.Info("base de données connectée")

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("accès au sql.DB sous-jacent", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migration de la base de données", zap.Error(err))
	}

	// 4. Redis (optional: on failure the server degrades, no logout
	// blacklist and no rate limits)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("connexion Redis impossible, fonctionnement dégradé", zap.Error(err))
		rdb = nil
	}

	// 5. JWT manager and Gemini client
	jwtMgr := jwt.NewManager(&cfg.Auth)
	generator := gemini.NewClient(&cfg.Gemini)
	if !generator.Configured() {
		logger.Warn("clé API Gemini absente, le coach IA répondra 503")
	}

	// 6. Dependency chain: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, generator, logger)
	h := handler.NewHandler(svc)

	// 7. Router
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("serveur HTTP démarré", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("serveur HTTP", zap.Error(err))
		}
	}()

	// 9. Signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("signal reçu, arrêt en cours", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("arrêt du serveur", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("serveur arrêté")
}
