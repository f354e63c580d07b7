package domain

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	CompanyName  string
	Role         UserRole
	IsVerified   bool

	// One-time codes, both valid for a limited window after issuance.
	VerificationCode        *string
	VerificationCodeExpires *time.Time
	ResetPasswordCode       *string
	ResetPasswordExpires    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// VerificationCodeValid reports whether the stored verification code matches
// and has not expired at the given instant.
func (u *User) VerificationCodeValid(code string, now time.Time) bool {
	return u.VerificationCode != nil && *u.VerificationCode == code &&
		u.VerificationCodeExpires != nil && u.VerificationCodeExpires.After(now)
}

// ResetCodeValid reports whether the stored password reset code matches and
// has not expired at the given instant.
func (u *User) ResetCodeValid(code string, now time.Time) bool {
	return u.ResetPasswordCode != nil && *u.ResetPasswordCode == code &&
		u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now)
}
