package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campushub/campushub/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PasswordResetTokenRepository handles database operations for password
// reset tokens. Tokens are single use; Consume marks them used.
type PasswordResetTokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPasswordResetTokenRepository creates a new PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *pgxpool.Pool) *PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateToken creates a new password reset token for a user
func (r *PasswordResetTokenRepository) CreateToken(ctx context.Context, userID int64, token string, expiryDate time.Time) error {
	sql, args, err := r.sb.Insert("password_reset_tokens").
		Columns("user_id", "token", "expiry_date", "is_used").
		Values(userID, token, expiryDate, false).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create reset token query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error creating password reset token: %w", err)
	}
	return nil
}

// GetTokenInfo retrieves the owning user for a valid, unused token
func (r *PasswordResetTokenRepository) GetTokenInfo(ctx context.Context, token string) (int64, error) {
	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_used").
		From("password_reset_tokens").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get reset token query: %w", err)
	}

	var userID int64
	var expiryDate time.Time
	var isUsed bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&userID, &expiryDate, &isUsed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrInvalidPasswordResetToken
		}
		return 0, fmt.Errorf("error getting reset token info: %w", err)
	}

	if isUsed {
		return 0, apperrors.ErrPasswordResetTokenUsed
	}
	if expiryDate.Before(time.Now()) {
		return 0, apperrors.ErrInvalidPasswordResetToken
	}

	return userID, nil
}

// Consume marks a token as used
func (r *PasswordResetTokenRepository) Consume(ctx context.Context, token string) error {
	sql, args, err := r.sb.Update("password_reset_tokens").
		Set("is_used", true).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build consume reset token query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error consuming reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInvalidPasswordResetToken
	}
	return nil
}

// DeleteExpiredTokens deletes all expired tokens
func (r *PasswordResetTokenRepository) DeleteExpiredTokens(ctx context.Context) error {
	sql, args, err := r.sb.Delete("password_reset_tokens").
		Where(squirrel.Lt{"expiry_date": time.Now()}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete expired reset tokens query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting expired reset tokens: %w", err)
	}
	return nil
}
