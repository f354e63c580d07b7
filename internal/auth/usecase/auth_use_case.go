package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
	"kingflex/internal/infrastructure/mail"
)

type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateVerificationCode(ctx context.Context, id uint, code *string, expires *time.Time) error
	MarkVerified(ctx context.Context, id uint) error
	UpdateResetCode(ctx context.Context, id uint, code *string, expires *time.Time) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type Transport interface {
	Send(to, subject, htmlBody string, attachments ...mail.Attachment) error
}

type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
}

type AuthUseCase struct {
	users     UserRepository
	transport Transport
	tokens    TokenIssuer
	logger    *zap.Logger
	codeTTL   time.Duration
	adminCode string
	now       func() time.Time
}

func NewAuthUseCase(
	users UserRepository,
	transport Transport,
	tokens TokenIssuer,
	logger *zap.Logger,
	codeTTL time.Duration,
	adminCode string,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		transport: transport,
		tokens:    tokens,
		logger:    logger,
		codeTTL:   codeTTL,
		adminCode: adminCode,
		now:       time.Now,
	}
}

// Register creates an unverified user and mails a one-time verification code.
func (uc *AuthUseCase) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("hashing password", err)
	}

	code, err := generateCode()
	if err != nil {
		return nil, apperrors.NewInternalError("generating verification code", err)
	}
	expires := uc.now().Add(uc.codeTTL)

	user, err := uc.users.Insert(ctx, &domain.User{
		Username:                req.Username,
		Email:                   req.Email,
		PasswordHash:            string(hash),
		CompanyName:             req.CompanyName,
		Role:                    domain.UserRoleUser,
		IsVerified:              false,
		VerificationCode:        &code,
		VerificationCodeExpires: &expires,
	})
	if err != nil {
		return nil, err
	}

	subject, body := mail.VerificationEmail(code)
	if err := uc.transport.Send(user.Email, subject, body); err != nil {
		return nil, apperrors.NewInternalError("sending verification email", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token. An unverified user gets a
// fresh verification code instead of a token.
func (uc *AuthUseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewUnauthorizedError("wrong email or password")
		}
		return nil, err
	}

	if !user.IsVerified {
		if err := uc.reissueVerificationCode(ctx, user); err != nil {
			return nil, err
		}
		return &dto.LoginResult{User: user, RequireVerification: true}, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("wrong email or password")
	}

	token, err := uc.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternalError("generating token", err)
	}

	return &dto.LoginResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID uint) (*domain.User, error) {
	return uc.users.FindByID(ctx, userID)
}

func (uc *AuthUseCase) SendVerificationEmail(ctx context.Context, email string) error {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return apperrors.NewValidationError("user already verified")
	}

	return uc.reissueVerificationCode(ctx, user)
}

func (uc *AuthUseCase) VerifyEmail(ctx context.Context, email, code string) (*dto.LoginResult, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil || !user.VerificationCodeValid(code, uc.now()) {
		return nil, apperrors.NewValidationError("invalid or expired verification code")
	}

	if err := uc.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.IsVerified = true

	token, err := uc.tokens.Generate(user)
	if err != nil {
		return nil, apperrors.NewInternalError("generating token", err)
	}

	return &dto.LoginResult{User: user, Token: token}, nil
}

func (uc *AuthUseCase) CheckVerificationStatus(ctx context.Context, email string) (verified, expired bool, err error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		return false, false, err
	}

	if user.IsVerified {
		return true, false, nil
	}

	expired = user.VerificationCodeExpires == nil || user.VerificationCodeExpires.Before(uc.now())
	return false, expired, nil
}

func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return apperrors.NewNotFoundError("this email address cannot be found")
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.NewInternalError("generating reset code", err)
	}
	expires := uc.now().Add(uc.codeTTL)

	if err := uc.users.UpdateResetCode(ctx, user.ID, &code, &expires); err != nil {
		return err
	}

	subject, body := mail.PasswordResetEmail(code)
	if err := uc.transport.Send(user.Email, subject, body); err != nil {
		return apperrors.NewInternalError("sending reset email", err)
	}

	return nil
}

func (uc *AuthUseCase) VerifyResetCode(ctx context.Context, email, code string) error {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil || !user.ResetCodeValid(code, uc.now()) {
		return apperrors.NewValidationError("invalid or expired reset code")
	}
	return nil
}

func (uc *AuthUseCase) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	user, err := uc.users.FindByEmail(ctx, req.Email)
	if err != nil || !user.ResetCodeValid(req.ResetCode, uc.now()) {
		return apperrors.NewValidationError("invalid or expired reset code")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.NewInternalError("hashing password", err)
	}

	return uc.users.UpdatePassword(ctx, user.ID, string(hash))
}

// RegisterAdmin is gated by the environment admin registration code and
// creates a pre-verified admin account with an immediate token.
func (uc *AuthUseCase) RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*dto.LoginResult, error) {
	if uc.adminCode == "" || req.AdminCode != uc.adminCode {
		return nil, apperrors.NewForbiddenError("invalid admin registration code")
	}
	if len(req.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters long")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("hashing password", err)
	}

	admin, err := uc.users.Insert(ctx, &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CompanyName:  req.CompanyName,
		Role:         domain.UserRoleAdmin,
		IsVerified:   true,
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.Generate(admin)
	if err != nil {
		return nil, apperrors.NewInternalError("generating token", err)
	}

	return &dto.LoginResult{User: admin, Token: token}, nil
}

func (uc *AuthUseCase) reissueVerificationCode(ctx context.Context, user *domain.User) error {
	code, err := generateCode()
	if err != nil {
		return apperrors.NewInternalError("generating verification code", err)
	}
	expires := uc.now().Add(uc.codeTTL)

	if err := uc.users.UpdateVerificationCode(ctx, user.ID, &code, &expires); err != nil {
		return err
	}

	subject, body := mail.VerificationEmail(code)
	if err := uc.transport.Send(user.Email, subject, body); err != nil {
		return apperrors.NewInternalError("sending verification email", err)
	}

	return nil
}

// generateCode returns a 6-digit one-time code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
