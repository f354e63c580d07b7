package auth

import (
	"database/sql"

	"go.uber.org/zap"

	"kingflex/internal/auth/controller"
	"kingflex/internal/auth/middleware"
	"kingflex/internal/auth/repository"
	"kingflex/internal/auth/service"
	"kingflex/internal/auth/usecase"
	"kingflex/internal/config"
	"kingflex/internal/infrastructure/mail"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger, mailer *mail.Mailer) (*controller.AuthController, *middleware.Middleware) {
	repo := repository.NewMySQLUserRepository(db)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	uc := usecase.NewAuthUseCase(
		repo,
		mailer,
		tokens,
		logger,
		cfg.Auth.CodeTTL,
		cfg.Auth.AdminRegistrationCode,
	)

	secureCookies := cfg.Server.Env == "production"
	ctrl := controller.NewAuthController(uc, logger, secureCookies, cfg.Auth.TokenTTL)

	return ctrl, middleware.New(tokens)
}
