package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/mail"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/token"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "food-order-api",
		Env:     cfg.GoEnv,
		Level:   os.Getenv("LOG_LEVEL"),
	})

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.MenuItem{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.ContactMessage{},
		&model.AuditLog{},
	); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	contactRepo := infraRepo.NewContactMessageGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//セッショントークン
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	//通知メール。SMTP未設定ならログに残すだけ
	var mailer mail.Sender
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			Username: cfg.MailUsername,
			Password: cfg.MailPassword,
			From:     cfg.MailFrom,
		})
	} else {
		mailer = mail.NewLogSender(log)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, codec, validator.NewAuthValidator(userRepo))
	menuUC := usecase.NewMenuUsecase(menuRepo, auditRepo, log)
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, menuRepo)
	orderUC := usecase.NewOrderUsecase(txManager, auditRepo, mailer, log, cfg.AdminEmail)
	contactUC := usecase.NewContactUsecase(contactRepo, mailer, log, cfg.AdminEmail)
	auditUC := usecase.NewAuditUsecase(auditRepo)

	//Handler生成
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC, cfg.TokenTTL, cfg.IsProd()),
		Menu:     handler.NewMenuHandler(menuUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Contact:  handler.NewContactHandler(contactUC),
		AuditLog: handler.NewAuditLogHandler(auditUC),
	}

	e := server.New(cfg, log)
	server.RegisterRoutes(e, h, codec, userRepo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx, e, ":"+cfg.Port, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
