package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fireguard/cms-api/controllers"
	"github.com/fireguard/cms-api/initializers"
	"github.com/fireguard/cms-api/routes"
	"github.com/fireguard/cms-api/utils"
	"github.com/gin-gonic/gin"
)

func init() {
	initializers.LoadEnv()
	initializers.InitLogger(initializers.Config.Environment)
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	defer initializers.SyncLogger()

	if env := initializers.Config.Environment; env == "prod" || env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if initializers.Config.JWTSecret == "" {
		initializers.Log.Fatalw("JWT_SECRET must be set")
	}

	controllers.ConfigureBuilder(initializers.Config.BuilderSessionTTL)

	if bucket := initializers.Config.PublishBucket; bucket != "" {
		publisher, err := utils.NewS3Publisher(context.Background(), bucket, initializers.Config.PublishPrefix)
		if err != nil {
			initializers.Log.Fatalw("Failed to configure page publishing", "bucket", bucket, "error", err)
		}
		controllers.SetPublisher(publisher)
		initializers.Log.Infow("Page publishing enabled", "bucket", bucket, "prefix", initializers.Config.PublishPrefix)
	}

	srv := &http.Server{
		Addr:              ":" + initializers.Config.Port,
		Handler:           routes.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		initializers.Log.Infow("Server listening", "addr", srv.Addr, "env", initializers.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			initializers.Log.Fatalw("Server stopped", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		initializers.Log.Errorw("Graceful shutdown failed", "error", err)
	}
	controllers.ShutdownBuilder()
	initializers.Log.Infow("Server stopped")
}
