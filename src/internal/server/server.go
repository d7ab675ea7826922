package server

import (
	"context"
	"docbridge-svc/src/clients"
	"docbridge-svc/src/internal/config"
	"docbridge-svc/src/internal/dependency"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg  *config.Configuration
	deps *dependency.Manager
}

func New(cfg *config.Configuration) *Server {
	gin.SetMode(cfg.Server.Mode)

	mongodb, err := clients.NewMongoDB(&cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize MongoDB client")
	}

	redisClient, err := clients.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize Redis client")
	}

	rabbitMQ, err := clients.NewRabbitMQ(&cfg.Queue)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize RabbitMQ client")
	}

	if err := rabbitMQ.SetupQueue(); err != nil {
		log.WithError(err).Fatal("Failed to set up RabbitMQ exchange")
	}

	router := gin.New()
	router.Use(gin.Recovery())

	deps := dependency.NewDependencyManager(router, mongodb, redisClient, rabbitMQ, cfg)
	SetupRoutes(deps)

	return &Server{cfg: cfg, deps: deps}
}

func (s *Server) Start() error {
	httpServer := &http.Server{
		Addr:         ":" + s.cfg.Server.Port,
		Handler:      s.deps.Router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	go s.deps.SessionSweeper.Run(sweeperCtx)

	errCh := make(chan error, 1)
	go func() {
		log.Infof("HTTP server listening on :%s", s.cfg.Server.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		stopSweeper()
		return err
	case sig := <-quit:
		log.Infof("Received signal %s, shutting down", sig)
	}

	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
		return err
	}

	s.deps.RabbitMQ.Close()
	s.deps.Redis.Close()
	s.deps.Mongodb.Close(shutdownCtx)

	log.Info("Server stopped")
	return nil
}
