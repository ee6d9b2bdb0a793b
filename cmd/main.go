package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	checkoutapp "github.com/muhammadheryan/runhub-checkout/application/checkout"
	inventoryapp "github.com/muhammadheryan/runhub-checkout/application/inventory"
	orderapp "github.com/muhammadheryan/runhub-checkout/application/order"
	paymentapp "github.com/muhammadheryan/runhub-checkout/application/payment"
	productapp "github.com/muhammadheryan/runhub-checkout/application/product"
	"github.com/muhammadheryan/runhub-checkout/cmd/config"
	redisclient "github.com/muhammadheryan/runhub-checkout/cmd/redis"
	_ "github.com/muhammadheryan/runhub-checkout/docs"
	eventRepo "github.com/muhammadheryan/runhub-checkout/repository/event"
	"github.com/muhammadheryan/runhub-checkout/repository/migration"
	orderRepo "github.com/muhammadheryan/runhub-checkout/repository/order"
	productRepo "github.com/muhammadheryan/runhub-checkout/repository/product"
	redisRepo "github.com/muhammadheryan/runhub-checkout/repository/redis"
	registrationRepo "github.com/muhammadheryan/runhub-checkout/repository/registration"
	transactionRepo "github.com/muhammadheryan/runhub-checkout/repository/transaction"
	txRepo "github.com/muhammadheryan/runhub-checkout/repository/tx"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/kafka"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/momo"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/rabbitmq"
	"github.com/muhammadheryan/runhub-checkout/thirdparty/stripepay"
	"github.com/muhammadheryan/runhub-checkout/transport"
	"github.com/muhammadheryan/runhub-checkout/utils/logger"
	"go.uber.org/zap"
)

// @title RUNHUB CHECKOUT API
// @version 1.0
// @description Checkout and payment reconciliation API for the RunHub portal
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := logger.Init(logger.Options{Environment: cfg.Environment, Level: cfg.LogLevel, Service: cfg.ServiceName}); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := migration.Run(db, cfg.Database.MigrationPath); err != nil {
		logger.Fatal("err run migrations", zap.Error(err))
	}

	// callback locks and cached results degrade to the processed_transaction guard without Redis
	if err := redisclient.New(cfg); err != nil {
		logger.Warn("redis unavailable, callback locks disabled", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	var expiration rabbitmq.ExpirationPublisher
	rabbitPublisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Warn("rabbitmq unavailable, payment expiry disabled", zap.Error(err))
	} else {
		expiration = rabbitPublisher
		defer rabbitPublisher.Close()
	}

	var events kafka.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		events = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer events.Close()
	} else {
		logger.Info("KAFKA_BROKERS not set, event publishing disabled")
	}

	momoGateway, err := momo.NewClient(momo.Config{
		PartnerCode: cfg.Momo.PartnerCode,
		AccessKey:   cfg.Momo.AccessKey,
		SecretKey:   cfg.Momo.SecretKey,
		Endpoint:    cfg.Momo.Endpoint,
		RedirectURL: cfg.Momo.RedirectURL,
		IPNURL:      cfg.Momo.IPNURL,
		RequestType: cfg.Momo.RequestType,
		Timeout:     cfg.Momo.Timeout,
	})
	if err != nil {
		logger.Fatal("err init momo", zap.Error(err))
	}
	stripeSessions := stripepay.NewSessionCreator(cfg.Stripe.SecretKey)

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	RegistrationRepo := registrationRepo.NewRegistrationRepository(db)
	EventRepo := eventRepo.NewEventRepository(db)
	TransactionRepo := transactionRepo.NewTransactionRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	InventoryApp := inventoryapp.NewInventoryApp(OrderRepo, ProductRepo)
	CheckoutApp := checkoutapp.NewCheckoutApp(checkoutapp.Deps{
		Config:           cfg,
		TxRepo:           TxRepo,
		ProductRepo:      ProductRepo,
		OrderRepo:        OrderRepo,
		RegistrationRepo: RegistrationRepo,
		EventRepo:        EventRepo,
		InventoryApp:     InventoryApp,
		Momo:             momoGateway,
		Stripe:           stripeSessions,
		Expiration:       expiration,
		Events:           events,
	})
	PaymentApp := paymentapp.NewPaymentApp(paymentapp.Deps{
		TxRepo:           TxRepo,
		OrderRepo:        OrderRepo,
		RegistrationRepo: RegistrationRepo,
		TransactionRepo:  TransactionRepo,
		RedisRepo:        RedisRepo,
		InventoryApp:     InventoryApp,
		Momo:             momoGateway,
		Events:           events,
	})
	OrderApp := orderapp.NewOrderApp(orderapp.Deps{
		TxRepo:       TxRepo,
		OrderRepo:    OrderRepo,
		InventoryApp: InventoryApp,
		Events:       events,
	})
	ProductApp := productapp.NewProductApp(ProductRepo)

	httpTransport := transport.NewTransport(cfg, CheckoutApp, PaymentApp, OrderApp, ProductApp)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", zap.Error(err))
	}
}
