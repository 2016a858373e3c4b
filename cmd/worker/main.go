package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/aws"
	"github.com/wkclabs/go-ai-orderflow/internal/config"
)

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

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.WithError(err).Fatal("Failed to init AWS clients")
	}

	p := NewProcessor(clients, cfg.OrdersTable, cfg.MetricsNamespace, logger)

	// If RUN_LOCAL=true, simulate a single SQS event for local testing.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"event_type":"order.created","order_id":"local-order-1","user_id":"local-user-1","status":"pending"}`
		}
		ev := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: body},
			},
		}
		if err := p.Handle(context.Background(), ev); err != nil {
			logger.WithError(err).Fatal("Local handler error")
		}
		return
	}

	lambda.Start(p.Handle)
}
