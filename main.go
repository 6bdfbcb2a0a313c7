// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/staffhub/staff-admin-service/client"
	"github.com/staffhub/staff-admin-service/config"
	"github.com/staffhub/staff-admin-service/controller"
	"github.com/staffhub/staff-admin-service/metrics"
	"github.com/staffhub/staff-admin-service/middleware"
	"github.com/staffhub/staff-admin-service/security"
	"github.com/staffhub/staff-admin-service/service"
	"github.com/staffhub/staff-admin-service/utils"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg.Logging)
	utils.PrintConfig(*cfg)

	if cfg.Technical.InstanceId == "" {
		cfg.Technical.InstanceId = uuid.NewString()
	}
	log.Infof("Starting staff-admin-service instance %s", cfg.Technical.InstanceId)

	ctx := context.Background()
	tokenSource, err := client.NewServiceAccountTokenSource(ctx, cfg.Identity.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to init service account credentials: %v", err)
	}

	identityClient := client.NewIdentityClient(cfg.Identity.BaseUrl, cfg.Identity.ProjectId, tokenSource)
	directoryClient := client.NewDirectoryClient(cfg.Directory.BaseUrl, cfg.Identity.ProjectId,
		cfg.Directory.DatabaseId, cfg.Directory.Collection, tokenSource)

	listingService := service.NewUserListingService(identityClient, cfg.Identity.PageSize)
	provisioningService := service.NewUserProvisioningService(identityClient, directoryClient, cfg.Directory.Collection)

	healthController := controller.NewHealthController()
	userController := controller.NewUserController(listingService, provisioningService)

	security.SetupGoGuardian(cfg.Security.ApiToken)

	r := mux.NewRouter()
	r.Use(middleware.RequestIdMiddleware)
	if cfg.Monitoring.Enabled {
		metrics.RegisterAllPrometheusApplicationMetrics()
		r.Use(middleware.PrometheusMiddleware)
		r.Path("/metrics").Handler(promhttp.Handler())
	}

	r.HandleFunc("/", security.NoSecure(healthController.HandleRootRequest)).Methods(http.MethodGet)
	r.HandleFunc("/live", security.NoSecure(healthController.HandleLiveRequest)).Methods(http.MethodGet)
	r.HandleFunc("/ready", security.NoSecure(healthController.HandleReadyRequest)).Methods(http.MethodGet)
	r.HandleFunc("/auth-users", security.Secure(userController.GetAuthUsers)).Methods(http.MethodGet)
	r.HandleFunc("/create-user", security.Secure(userController.CreateStaffUser)).Methods(http.MethodPost)

	corsOptions := []handlers.CORSOption{
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsOptions = append(corsOptions, handlers.AllowedOrigins(cfg.Security.AllowedOrigins))
	}

	srv := &http.Server{
		Handler:      handlers.CompressHandler(handlers.CORS(corsOptions...)(r)),
		Addr:         cfg.Technical.ListenAddress,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	utils.SafeAsync(func() {
		log.Infof("Server is listening on %s", cfg.Technical.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}

func setupLogging(cfg config.LoggingConfig) {
	log.SetFormatter(&prefixed.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File != "" {
		log.SetOutput(io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
		}))
	}
}
