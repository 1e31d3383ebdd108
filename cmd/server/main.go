package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/database"
	"github.com/LeDuoc95/BE-FEDUU/internal/grpc"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/internal/route"

	"go.uber.org/zap"
)

// @title Course Market API
// @version 1.0
// @description Course catalogue, activation keys and accounts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	docs := flag.Bool("docs", false, "regenerate swagger docs and exit")
	flag.Parse()

	// 1. configuration and logging
	config.MustLoad(*configPath)
	log := logger.New(config.Conf.Log)
	logger.Init(log)
	defer log.Sync()

	if *docs {
		if err := generateDocs(); err != nil {
			log.Fatal("swagger generation failed", zap.Error(err))
		}
		return
	}

	// 2. storage
	database.InitDatabase()
	defer database.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. gRPC health endpoint
	var grpcServer *grpc.Server
	if port := config.Conf.GRPC.Port; port > 0 {
		var err error
		grpcServer, err = grpc.NewServer(port, config.Conf.JWT.Secret)
		if err != nil {
			log.Fatal("grpc listen failed", zap.Error(err))
		}
		go func() {
			log.Info("grpc server started", zap.String("addr", grpcServer.GetAddr()))
			if err := grpcServer.Start(); err != nil {
				log.Error("grpc server stopped", zap.Error(err))
			}
		}()
	}

	// 4. HTTP API
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port),
		Handler:      route.SetupRouter(),
		ReadTimeout:  config.Conf.Server.ReadTimeout,
		WriteTimeout: config.Conf.Server.WriteTimeout,
	}

	go func() {
		log.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if grpcServer != nil {
		grpcServer.Stop()
	}
}
