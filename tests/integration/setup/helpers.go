package setup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TruncateAllTables truncates all tables, children first.
func TruncateAllTables(t *testing.T, db *pgxpool.Pool, ctx context.Context) {
	t.Log("Truncating all database tables...")

	tables := []string{
		"post_comments",
		"post_likes",
		"post_images",
		"posts",
		"users",
	}

	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

type SeedUserOptions struct {
	FirstName        string
	LastName         string
	IsPremium        bool
	SubscriptionType string
}

// SeedUser inserts a user with a bcrypt-hashed password and returns its id.
func SeedUser(t *testing.T, db *pgxpool.Pool, username string, password string, opts SeedUserOptions) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	if opts.SubscriptionType == "" {
		opts.SubscriptionType = "free"
	}

	id := uuid.New()
	now := time.Now()

	_, err = db.Exec(context.Background(),
		`INSERT INTO users (id, username, password, first_name, last_name, is_premium, subscription_type, create_datetime, update_datetime)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		id, username, string(hash), opts.FirstName, opts.LastName, opts.IsPremium, opts.SubscriptionType, now)
	require.NoError(t, err, "failed to seed user %s", username)

	return id.String()
}

type SeedPostOptions struct {
	Content   string
	Tags      []string
	Location  string
	Feeling   string
	Privacy   string
	CreatedAt time.Time
}

// SeedPost inserts a post for authorId and returns its id.
func SeedPost(t *testing.T, db *pgxpool.Pool, authorId string, opts SeedPostOptions) string {
	if opts.Privacy == "" {
		opts.Privacy = "public"
	}
	if opts.CreatedAt.IsZero() {
		opts.CreatedAt = time.Now()
	}
	if opts.Tags == nil {
		opts.Tags = []string{}
	}

	id := uuid.New()

	_, err := db.Exec(context.Background(),
		`INSERT INTO posts (id, author_id, content, tags, location, feeling, privacy, create_datetime, update_datetime)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $8)`,
		id, authorId, opts.Content, opts.Tags, opts.Location, opts.Feeling, opts.Privacy, opts.CreatedAt)
	require.NoError(t, err, "failed to seed post")

	return id.String()
}

// SeedPostImage attaches an object key to a post at position.
func SeedPostImage(t *testing.T, db *pgxpool.Pool, postId string, objectKey string, alt string, position int) {
	_, err := db.Exec(context.Background(),
		`INSERT INTO post_images (id, post_id, object_key, alt, position) VALUES ($1, $2, $3, NULLIF($4, ''), $5)`,
		uuid.New(), postId, objectKey, alt, position)
	require.NoError(t, err, "failed to seed post image")
}

// CreateJSONRequest creates a test request with JSON body
func CreateJSONRequest(method, url string, jsonBody []byte) *http.Request {
	req := httptest.NewRequest(method, url, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAuthRequest creates a test request with JSON body and Authorization header
func CreateAuthRequest(method, url string, jsonBody []byte, token string) *http.Request {
	req := CreateJSONRequest(method, url, jsonBody)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}
	return req
}

// ParseJSONResponse reads the body into a generic map.
func ParseJSONResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	require.NotEmpty(t, body, "response body should not be empty")

	var result map[string]interface{}
	err = json.Unmarshal(body, &result)
	require.NoError(t, err, "failed to parse JSON response")

	return result
}

// GetAccessTokenFromResponse extracts access token from a login response
func GetAccessTokenFromResponse(t *testing.T, resp *http.Response) string {
	result := ParseJSONResponse(t, resp)

	data, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "response data should be an object")

	accessToken, ok := data["accessToken"].(string)
	require.True(t, ok, "accessToken should be a string")
	require.NotEmpty(t, accessToken, "accessToken should not be empty")

	return accessToken
}

// Login posts credentials and returns the access token.
func Login(t *testing.T, app *TestApp, username string, password string) string {
	body := []byte(fmt.Sprintf(`{"username":%q,"password":%q}`, username, password))

	resp, err := app.App.Test(CreateJSONRequest(http.MethodPost, "/api/auth/login", body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "login should succeed")

	return GetAccessTokenFromResponse(t, resp)
}

// GenerateRandomString generates a random string of specified length
func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		// #nosec G404 -- Weak randomness is acceptable for non-security test data
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// ErrorResponse is the error object inside the failure envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// ParseErrorResponse parses error response into ErrorResponse struct
func ParseErrorResponse(t *testing.T, result map[string]interface{}) ErrorResponse {
	require.Contains(t, result, "error", "response should contain error field")
	require.Equal(t, false, result["success"], "error responses carry success=false")

	errObj, ok := result["error"].(map[string]interface{})
	require.True(t, ok, "error field should be an object")

	errResp := ErrorResponse{}

	if code, ok := errObj["code"].(string); ok {
		errResp.Code = code
	}

	if message, ok := errObj["message"].(string); ok {
		errResp.Message = message
	}

	if param, ok := errObj["param"].(string); ok {
		errResp.Param = param
	}

	return errResp
}

// GetDataAsMap extracts the data object of a success envelope.
func GetDataAsMap(t *testing.T, result map[string]interface{}) map[string]interface{} {
	require.Equal(t, true, result["success"], "response should be successful")
	dataMap, ok := result["data"].(map[string]interface{})
	require.True(t, ok, "data field should be an object/map")
	return dataMap
}

// GetPosts extracts data.posts from a listing or search response.
func GetPosts(t *testing.T, result map[string]interface{}) []interface{} {
	data := GetDataAsMap(t, result)
	posts, ok := data["posts"].([]interface{})
	require.True(t, ok, "data.posts should be an array")
	return posts
}
