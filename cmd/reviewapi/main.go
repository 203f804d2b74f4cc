package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/restory/restory/internal/accountservice"
	"github.com/restory/restory/internal/common"
	"github.com/restory/restory/internal/mailservice"
	"github.com/restory/restory/internal/reviewservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	accountService *accountservice.AccountService
	reviewService  *reviewservice.ReviewService
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)

	app := &application{
		config:         cfg,
		logger:         logger,
		accountService: accountservice.NewAccountService(db, broker, cfg.Auth.CodeSecret, cfg.Auth.JWTSecret, cfg.Auth.JWTTTL),
		reviewService:  reviewservice.NewReviewService(db, cache),
		broker:         broker,
		mailService:    mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger),
	}

	app.mailService.SendVerificationCode()
	defer app.mailService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
