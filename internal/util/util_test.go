package util

import (
	"errors"
	"testing"

	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userId := uuid.New()

	token, err := GenerateAccessToken(userId, "alice", "secret")
	require.NoError(t, err)
	require.Equal(t, "Bearer", token.TokenType)

	raw, gotId, err := ValidateAccessToken(BearerPrefix+token.AccessToken, zap.NewNop(), "secret")
	require.NoError(t, err)
	assert.Equal(t, token.AccessToken, raw)
	assert.Equal(t, userId, gotId)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "alice", "secret")
	require.NoError(t, err)

	cases := map[string]string{
		"missing header":  "",
		"no bearer":       token.AccessToken,
		"empty bearer":    BearerPrefix,
		"wrong secret":    BearerPrefix + token.AccessToken + "x",
		"malformed token": BearerPrefix + "not-a-jwt",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := ValidateAccessToken(header, zap.NewNop(), "secret")
			var validationErr *model.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, constant.ERR_UNAUTHORIZED_ERROR, validationErr.Code)
		})
	}
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%go%`, LikePattern("  go "))
	assert.Equal(t, `%100\%\_off%`, LikePattern("100%_off"))
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, StatusForCode(constant.ERR_NOT_FOUND_ERROR))
	assert.Equal(t, fiber.StatusUnauthorized, StatusForCode(constant.ERR_UNAUTHORIZED_ERROR))
	assert.Equal(t, fiber.StatusForbidden, StatusForCode(constant.ERR_FORBIDDEN_ERROR))
	assert.Equal(t, fiber.StatusBadRequest, StatusForCode(constant.ERR_VALIDATION_CODE))
}
