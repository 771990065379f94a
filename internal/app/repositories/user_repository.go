package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/gradebook/internal/app/models"
	"github.com/yigit/gradebook/internal/db"
	"github.com/yigit/gradebook/internal/pkg/apperrors"
	"github.com/yigit/gradebook/internal/pkg/dberrors"
	"github.com/yigit/gradebook/internal/pkg/logger"
)

var userColumns = []string{"id", "username", "email", "hashed_password", "is_active"}

// UserRepository handles user persistence
type UserRepository struct {
	DB db.Database
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database db.Database) *UserRepository {
	return &UserRepository{
		DB: database,
		sb: db.StatementBuilder(database.Dialect()),
	}
}

// Create inserts a user and sets its ID. Uniqueness of username and email is
// enforced by the database, so concurrent registrations cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "email", "hashed_password", "is_active").
		Values(user.Username, user.Email, user.HashedPassword, user.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create user SQL")
		return err
	}

	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		switch {
		case dberrors.IsDuplicateOn(err, "users", "username"):
			return apperrors.ErrUsernameTaken
		case dberrors.IsDuplicateOn(err, "users", "email"):
			return apperrors.ErrEmailTaken
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return apperrors.Unavailable(err)
	}

	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get user SQL")
		return nil, err
	}

	user := &models.User{}
	err = r.DB.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.IsActive)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error executing get user query")
		return nil, apperrors.Unavailable(err)
	}

	return user, nil
}

// UsernameExists checks if a username is already registered
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	sql, args, err := r.sb.Select("COUNT(*)").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		logger.Error().Err(err).Msg("Error checking username")
		return false, apperrors.Unavailable(err)
	}

	return count > 0, nil
}
