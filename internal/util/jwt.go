package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	BearerPrefix            = "Bearer "
	TokenIssuer             = "github.com/ferdian3456/virdanfeed"
	AccessTokenDuration     = 60 * time.Minute
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
)

// HashToken hashes a token using SHA256 for secure storage
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func GenerateAccessToken(userId uuid.UUID, username string, jwtSecretKey string) (model.TokenResponse, error) {
	if jwtSecretKey == "" {
		return model.TokenResponse{}, errors.New("jwt secret key is not configured")
	}

	now := time.Now().UTC()
	claims := &model.AccessClaims{
		UserId:   userId,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(AccessTokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    TokenIssuer,
			Subject:   fmt.Sprintf("user:%s", userId.String()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(jwtSecretKey))
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken:          signedToken,
		AccessTokenExpiresIn: int(AccessTokenDuration.Seconds()),
		TokenType:            "Bearer",
	}, nil
}

// ValidateAccessToken validates a bearer Authorization header and returns the raw token and user ID
func ValidateAccessToken(authHeader string, log *zap.Logger, jwtSecretKey string) (string, uuid.UUID, error) {
	if jwtSecretKey == "" {
		return "", uuid.Nil, errors.New("jwt secret key is not configured")
	}

	tokenString, err := extractBearerToken(authHeader)
	if err != nil {
		return "", uuid.Nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &model.AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(jwtSecretKey), nil
	})
	if err != nil {
		log.Debug("access token rejected", zap.Error(err))
		return "", uuid.Nil, handleParseError(err)
	}

	claims, ok := token.Claims.(*model.AccessClaims)
	if !ok || !token.Valid {
		return "", uuid.Nil, &model.ValidationError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR,
			Message: "Authentication token is invalid",
			Param:   "accessToken",
		}
	}

	return tokenString, claims.UserId, nil
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR,
			Message: "No authentication token is provided",
			Param:   "accessToken",
		}
	}

	if !strings.HasPrefix(authHeader, BearerPrefix) {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR,
			Message: "Authentication token format is not match",
			Param:   "accessToken",
		}
	}

	token := strings.TrimPrefix(authHeader, BearerPrefix)
	if token == "" {
		return "", &model.ValidationError{
			Code:    constant.ERR_UNAUTHORIZED_ERROR,
			Message: "Authentication token is empty",
			Param:   "accessToken",
		}
	}

	return token, nil
}

func handleParseError(err error) error {
	message := "Authentication token is invalid"

	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		message = "Authentication token is malformed"
	case errors.Is(err, jwt.ErrTokenExpired):
		message = "Authentication token is expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		message = "Authentication token is not valid yet"
	case errors.Is(err, ErrInvalidSigningMethod):
		message = "Authentication token has invalid signing method"
	}

	return &model.ValidationError{
		Code:    constant.ERR_UNAUTHORIZED_ERROR,
		Message: message,
		Param:   "accessToken",
	}
}
