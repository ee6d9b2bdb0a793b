package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/runhub-checkout/cmd/config"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/rabbitmq"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"go.uber.org/zap"
)

// The worker consumes delayed payment expiration messages and asks the API to
// cancel orders that were never paid.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Options{Environment: cfg.Environment, Level: cfg.LogLevel, Service: cfg.ServiceName + "-worker"}); err != nil {
		panic(err)
	}
	defer logger.Close()

	consumer, err := rabbitmq.NewConsumer(
		cfg.RabbitMQ.Host,
		cfg.RabbitMQ.Port,
		cfg.RabbitMQ.User,
		cfg.RabbitMQ.Password,
		cfg.Internal.BaseURL,
		cfg.Internal.APIKey,
	)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}
	logger.Info("payment expiration worker running")

	<-ctx.Done()
	logger.Info("worker shutting down")
}
