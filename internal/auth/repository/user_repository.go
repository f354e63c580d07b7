package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"kingflex/internal/domain"
	apperrors "kingflex/internal/errors"
)

const mysqlDuplicateEntry = 1062

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

const selectUser = `
	SELECT id, username, email, passwordHash, companyName, role, isVerified,
	       verificationCode, verificationCodeExpires,
	       resetPasswordCode, resetPasswordExpires,
	       createdAt, updatedAt
	FROM Users`

func (r *MySQLUserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO Users (username, email, passwordHash, companyName, role, isVerified,
		                   verificationCode, verificationCodeExpires)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.CompanyName,
		string(user.Role), user.IsVerified,
		user.VerificationCode, user.VerificationCodeExpires,
	)
	if err != nil {
		if isDuplicateEntry(err) {
			return nil, apperrors.NewConflictError("username or email has been used")
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}

	return r.FindByID(ctx, uint(id))
}

func (r *MySQLUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := r.scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE id = ?`, id))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
		}
		return nil, err
	}
	return user, nil
}

func (r *MySQLUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.scanUser(r.db.QueryRowContext(ctx, selectUser+` WHERE email = ?`, email))
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (r *MySQLUserRepository) UpdateVerificationCode(ctx context.Context, id uint, code *string, expires *time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE Users SET verificationCode = ?, verificationCodeExpires = ? WHERE id = ?`,
		code, expires, id)
	if err != nil {
		return fmt.Errorf("updating verification code: %w", err)
	}
	return nil
}

func (r *MySQLUserRepository) MarkVerified(ctx context.Context, id uint) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE Users
		SET isVerified = 1, verificationCode = NULL, verificationCodeExpires = NULL
		WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking user verified: %w", err)
	}
	return nil
}

func (r *MySQLUserRepository) UpdateResetCode(ctx context.Context, id uint, code *string, expires *time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE Users SET resetPasswordCode = ?, resetPasswordExpires = ? WHERE id = ?`,
		code, expires, id)
	if err != nil {
		return fmt.Errorf("updating reset code: %w", err)
	}
	return nil
}

func (r *MySQLUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE Users
		SET passwordHash = ?, resetPasswordCode = NULL, resetPasswordExpires = NULL
		WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

func (r *MySQLUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CompanyName,
		&role, &user.IsVerified,
		&user.VerificationCode, &user.VerificationCodeExpires,
		&user.ResetPasswordCode, &user.ResetPasswordExpires,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user row: %w", err)
	}

	user.Role = domain.UserRole(role)
	return &user, nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
