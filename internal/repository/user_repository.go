package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/ferdian3456/virdanfeed/internal/util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UserRepository struct {
	Log     *zap.Logger
	DB      *pgxpool.Pool
	DBCache *redis.Client
}

func NewUserRepository(zap *zap.Logger, db *pgxpool.Pool, dbCache *redis.Client) *UserRepository {
	return &UserRepository{
		Log:     zap,
		DB:      db,
		DBCache: dbCache,
	}
}

func (repository *UserRepository) GetUserAuth(ctx context.Context, username string) (uuid.UUID, string, error) {
	query := "SELECT id, password FROM users WHERE username = $1"

	var (
		id       uuid.UUID
		password string
	)

	err := repository.DB.QueryRow(ctx, query, username).Scan(&id, &password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return id, password, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Username or password is incorrect",
				Param:   "username",
			}
		}
		return id, password, err
	}

	return id, password, nil
}

func (repository *UserRepository) GetUserInfo(ctx context.Context, id uuid.UUID) (model.UserResponse, error) {
	query := `SELECT id, username, first_name, last_name, profile_picture, is_premium, subscription_type
			FROM users
			WHERE id = $1
			LIMIT 1`

	user := model.UserResponse{}

	var userId uuid.UUID
	err := repository.DB.QueryRow(ctx, query, id).Scan(&userId, &user.Username, &user.FirstName, &user.LastName, &user.ProfilePicture, &user.IsPremium, &user.SubscriptionType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user, &model.ValidationError{
				Code:    constant.ERR_NOT_FOUND_ERROR,
				Message: "User not found",
				Param:   "userId",
			}
		}
		return user, err
	}

	user.Id = userId.String()

	return user, nil
}

// Redis - Cache
func (repository *UserRepository) SetAccessTokenInCache(ctx context.Context, accessToken string, userId uuid.UUID, ttl time.Duration) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)

	err := repository.DBCache.Set(ctx, accessTokenKey, util.HashToken(accessToken), ttl).Err()
	if err != nil {
		return err
	}

	return nil
}

func (repository *UserRepository) GetAccessTokenInCache(ctx context.Context, userId uuid.UUID) (string, error) {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)

	hashedToken, err := repository.DBCache.Get(ctx, accessTokenKey).Result()
	if err == redis.Nil {
		return hashedToken, &model.ValidationError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR,
			Message: "Authorization token not found or expired",
			Param:   "accessToken",
		}
	} else if err != nil {
		return hashedToken, err
	}

	return hashedToken, nil
}

func (repository *UserRepository) RemoveAccessToken(ctx context.Context, userId uuid.UUID) error {
	accessTokenKey := fmt.Sprintf("auth:accessToken:%s", userId)

	err := repository.DBCache.Del(ctx, accessTokenKey).Err()
	if err != nil {
		return err
	}

	return nil
}
