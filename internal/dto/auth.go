package dto

import "kingflex/internal/domain"

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
}

type RegisterAdminRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName"`
	AdminCode   string `json:"adminCode"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserDTO struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Role        string `json:"role"`
}

func NewUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		CompanyName: user.CompanyName,
		Role:        string(user.Role),
	}
}

// LoginResult carries either an issued token or a pending-verification marker
// for users who have not confirmed their email yet.
type LoginResult struct {
	User                *domain.User
	Token               string
	RequireVerification bool
}

// AuthenticatedUser is the verified identity extracted from a request token.
type AuthenticatedUser struct {
	ID    uint
	Email string
	Role  domain.UserRole
}

type EmailRequest struct {
	Email string `json:"email"`
}

type VerifyEmailRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

type VerifyResetCodeRequest struct {
	Email     string `json:"email"`
	ResetCode string `json:"resetCode"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	ResetCode   string `json:"resetCode"`
	NewPassword string `json:"newPassword"`
}

type VerificationStatusResponse struct {
	Verified bool `json:"verified"`
	Expired  bool `json:"expired,omitempty"`
}
