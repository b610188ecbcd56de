package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hsz/sarees-api/controllers"
	"github.com/hsz/sarees-api/initializers"
	"github.com/hsz/sarees-api/messaging"
	"github.com/hsz/sarees-api/routes"
	"github.com/hsz/sarees-api/telemetry"
	"github.com/hsz/sarees-api/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName    = "sarees-api"
	serviceVersion = "1.0.0"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	logger := initializers.Logger
	cfg := initializers.Config
	ctx := context.Background()

	if cfg.OtelEnabled {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, cfg.OtelEndpoint, serviceName, serviceVersion)
		if err != nil {
			logger.Error("failed to init tracer provider", "error", err)
			os.Exit(1)
		}
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(serviceName, serviceVersion)
	if err != nil {
		logger.Error("failed to init meter provider", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(context.Background()) }()

	if len(cfg.KafkaBrokers) > 0 {
		events := messaging.NewOrderEvents(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		defer func() { _ = events.Close() }()
		controllers.Events = events
	}

	if cfg.RedisURL != "" {
		store, err := utils.NewRedisRevocationStore(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", "error", err)
			os.Exit(1)
		}
		if err := store.Ping(ctx); err != nil {
			logger.Warn("redis unreachable, token revocation checks will fail", "error", err)
		}
		defer func() { _ = store.Close() }()
		utils.Revocations = store
	}

	if cfg.S3Bucket != "" {
		store, err := utils.NewS3ImageStore(ctx, cfg.S3Bucket)
		if err != nil {
			logger.Error("failed to load AWS config", "error", err)
			os.Exit(1)
		}
		controllers.Images = store
	}

	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		controllers.Payments = utils.NewRazorpayClient(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	controllers.Mail = utils.MailConfig{
		From:         cfg.FromEmail,
		FromPassword: cfg.FromEmailPassword,
		SMTPHost:     cfg.FromEmailSMTP,
		SMTPAddress:  cfg.SMTPAddress,
	}

	gin.SetMode(cfg.GinMode)
	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.GET("/metrics", gin.WrapH(metricsHandler))
	routes.Register(server)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(server, serviceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
