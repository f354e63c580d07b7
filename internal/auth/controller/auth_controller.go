package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kingflex/internal/auth/middleware"
	"kingflex/internal/domain"
	"kingflex/internal/dto"
	apperrors "kingflex/internal/errors"
)

type AuthUseCase interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	CurrentUser(ctx context.Context, userID uint) (*domain.User, error)
	SendVerificationEmail(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) (*dto.LoginResult, error)
	CheckVerificationStatus(ctx context.Context, email string) (verified, expired bool, err error)
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error
	RegisterAdmin(ctx context.Context, req dto.RegisterAdminRequest) (*dto.LoginResult, error)
}

type AuthController struct {
	useCase       AuthUseCase
	logger        *zap.Logger
	secureCookies bool
	tokenTTL      time.Duration
}

func NewAuthController(useCase AuthUseCase, logger *zap.Logger, secureCookies bool, tokenTTL time.Duration) *AuthController {
	return &AuthController{
		useCase:       useCase,
		logger:        logger,
		secureCookies: secureCookies,
		tokenTTL:      tokenTTL,
	}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.RegisterRequest
	if !c.decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := c.useCase.Register(r.Context(), req)
	if err != nil {
		c.handleError(w, err, logger, "Registration failed")
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":             "Registration successful. Please check your email to verify your account.",
		"requireVerification": true,
		"email":               user.Email,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.LoginRequest
	if !c.decode(w, r, &req) {
		return
	}

	result, err := c.useCase.Login(r.Context(), req)
	if err != nil {
		c.handleError(w, err, logger, "Login failed")
		return
	}

	if result.RequireVerification {
		c.writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"message":             "Please verify your email before logging in",
			"requireVerification": true,
			"email":               result.User.Email,
		})
		return
	}

	c.setTokenCookie(w, result.Token)
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successfully",
		"user":    dto.NewUserDTO(result.User),
	})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	c.clearTokenCookie(w)
	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	actor := middleware.UserFromContext(r.Context())
	if actor == nil {
		c.writeError(w, http.StatusUnauthorized, "Please login first")
		return
	}

	user, err := c.useCase.CurrentUser(r.Context(), actor.ID)
	if err != nil {
		c.handleError(w, err, logger, "Failed to obtain user information")
		return
	}

	c.writeJSON(w, http.StatusOK, dto.NewUserDTO(user))
}

func (c *AuthController) SendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.EmailRequest
	if !c.decode(w, r, &req) {
		return
	}

	if err := c.useCase.SendVerificationEmail(r.Context(), req.Email); err != nil {
		c.handleError(w, err, logger, "Failed to send verification email")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":             "Verification email sent",
		"requireVerification": true,
		"email":               req.Email,
	})
}

func (c *AuthController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.VerifyEmailRequest
	if !c.decode(w, r, &req) {
		return
	}

	result, err := c.useCase.VerifyEmail(r.Context(), req.Email, req.VerificationCode)
	if err != nil {
		c.handleError(w, err, logger, "Email verification failed")
		return
	}

	c.setTokenCookie(w, result.Token)
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email verification successful",
		"user":    dto.NewUserDTO(result.User),
	})
}

func (c *AuthController) CheckVerificationStatus(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.EmailRequest
	if !c.decode(w, r, &req) {
		return
	}

	verified, expired, err := c.useCase.CheckVerificationStatus(r.Context(), req.Email)
	if err != nil {
		c.handleError(w, err, logger, "Failed to check verification status")
		return
	}

	c.writeJSON(w, http.StatusOK, dto.VerificationStatusResponse{
		Verified: verified,
		Expired:  expired,
	})
}

func (c *AuthController) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.EmailRequest
	if !c.decode(w, r, &req) {
		return
	}

	if err := c.useCase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		c.handleError(w, err, logger, "Failed to send reset code")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset code has been sent to your email",
		"email":   req.Email,
	})
}

func (c *AuthController) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.VerifyResetCodeRequest
	if !c.decode(w, r, &req) {
		return
	}

	if err := c.useCase.VerifyResetCode(r.Context(), req.Email, req.ResetCode); err != nil {
		c.handleError(w, err, logger, "Verification failed")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Reset code verified successfully"})
}

func (c *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.ResetPasswordRequest
	if !c.decode(w, r, &req) {
		return
	}

	if err := c.useCase.ResetPassword(r.Context(), req); err != nil {
		c.handleError(w, err, logger, "Password reset failed")
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

func (c *AuthController) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger()

	var req dto.RegisterAdminRequest
	if !c.decode(w, r, &req) {
		return
	}

	result, err := c.useCase.RegisterAdmin(r.Context(), req)
	if err != nil {
		c.handleError(w, err, logger, "Admin registration failed")
		return
	}

	c.setTokenCookie(w, result.Token)
	c.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Admin registration successful",
		"user":    dto.NewUserDTO(result.User),
	})
}

func (c *AuthController) requestLogger() *zap.Logger {
	return c.logger.With(zap.String("traceId", uuid.New().String()))
}

func (c *AuthController) decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return false
	}
	return true
}

func (c *AuthController) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.tokenTTL.Seconds()),
	})
}

func (c *AuthController) clearTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (c *AuthController) handleError(w http.ResponseWriter, err error, logger *zap.Logger, fallback string) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		c.writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	if _, ok := apperrors.IsForbiddenError(err); ok {
		c.writeError(w, http.StatusForbidden, err.Error())
		return
	}
	if _, ok := apperrors.IsConflictError(err); ok {
		c.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, fallback)
}

func (c *AuthController) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]string{"message": message})
}

func (c *AuthController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
