package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/ai"
	"github.com/wkclabs/go-ai-orderflow/internal/aws"
	"github.com/wkclabs/go-ai-orderflow/internal/config"
	"github.com/wkclabs/go-ai-orderflow/internal/handlers"
	"github.com/wkclabs/go-ai-orderflow/internal/middleware"
)

func setupRouter(cfg config.Config, hc handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RequestLogger(hc.Logger))

	handlers.RegisterRoutes(r, hc)

	return r
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	ctx := context.Background()

	clients, err := aws.NewAWSClients(ctx)
	if err != nil {
		logger.WithError(err).Fatal("Failed to init AWS clients")
	}

	generator, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.WithError(err).Fatal("Failed to init Gemini client")
	}
	defer generator.Close()

	hc := handlers.HandlerConfig{
		DynamoDBClient:   clients.DynamoDB,
		SQSClient:        clients.SQS,
		CloudWatchClient: clients.CloudWatch,
		Generator:        generator,
		OrdersTable:      cfg.OrdersTable,
		ProductsTable:    cfg.ProductsTable,
		QueueURL:         cfg.OrderEventsQueue,
		MetricsNamespace: cfg.MetricsNamespace,
		Logger:           logger,
	}

	r := setupRouter(cfg, hc)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		runLocal(r, cfg.Port, logger)
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}

// runLocal serves plain HTTP for development, draining in-flight requests on
// SIGTERM.
func runLocal(r *gin.Engine, port string, logger *logrus.Logger) {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// Model calls can take tens of seconds; keep the write window generous.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", port).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server gracefully stopped")
}
