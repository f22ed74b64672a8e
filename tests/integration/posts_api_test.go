package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ferdian3456/virdanfeed/tests/integration/setup"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seeded struct {
	anaId string
	boId  string

	boPublic   string
	boFriends  string
	boPrivate  string
	anaPrivate string
}

// seedFeed creates two users and four posts, newest first:
// ana's private note, bo's friends post, bo's private post, bo's public run.
func seedFeed(t *testing.T, app *setup.TestApp) seeded {
	now := time.Now()

	s := seeded{}
	s.anaId = setup.SeedUser(t, app.DB, "ana", "secret123", setup.SeedUserOptions{FirstName: "Ana", LastName: "Lee"})
	s.boId = setup.SeedUser(t, app.DB, "bo", "secret456", setup.SeedUserOptions{FirstName: "Bo", LastName: "Kim", SubscriptionType: "premium"})

	s.boPublic = setup.SeedPost(t, app.DB, s.boId, setup.SeedPostOptions{
		Content:   "Morning run around the lake",
		Tags:      []string{"running"},
		Location:  "Jakarta",
		Feeling:   "energized",
		CreatedAt: now.Add(-4 * time.Hour),
	})
	s.boPrivate = setup.SeedPost(t, app.DB, s.boId, setup.SeedPostOptions{
		Content:   "Secret diary",
		Privacy:   "private",
		CreatedAt: now.Add(-3 * time.Hour),
	})
	s.boFriends = setup.SeedPost(t, app.DB, s.boId, setup.SeedPostOptions{
		Content:   "Friends only dinner",
		Privacy:   "friends",
		CreatedAt: now.Add(-2 * time.Hour),
	})
	s.anaPrivate = setup.SeedPost(t, app.DB, s.anaId, setup.SeedPostOptions{
		Content:   "My own private note",
		Privacy:   "private",
		CreatedAt: now.Add(-1 * time.Hour),
	})

	return s
}

func startApp(t *testing.T) *setup.TestApp {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	t.Log("=== Starting Test Infrastructure ===")
	infra, err := setup.StartInfra(ctx, t)
	require.NoError(t, err)

	t.Cleanup(func() {
		t.Log("=== Cleaning Up Test Infrastructure ===")
		_ = infra.Terminate(ctx, t)
	})

	t.Log("=== Running Database Migrations ===")
	require.NoError(t, setup.RunMigration(infra.PgURL, t))

	t.Log("=== Setting Up Test Application ===")
	app := setup.SetupTestApp(t, infra)

	t.Cleanup(func() {
		setup.TruncateAllTables(t, app.DB, ctx)
	})

	return app
}

func postIds(t *testing.T, posts []interface{}) []string {
	ids := make([]string, 0, len(posts))
	for _, raw := range posts {
		post, ok := raw.(map[string]interface{})
		require.True(t, ok)
		ids = append(ids, post["_id"].(string))
	}
	return ids
}

func doRequest(t *testing.T, app *setup.TestApp, req *http.Request) (int, map[string]interface{}) {
	resp, err := app.App.Test(req, -1)
	require.NoError(t, err, "request should succeed")
	return resp.StatusCode, setup.ParseJSONResponse(t, resp)
}

func TestPostsAPI(t *testing.T) {
	app := startApp(t)
	s := seedFeed(t, app)

	t.Run("health check", func(t *testing.T) {
		resp, err := app.App.Test(setup.CreateJSONRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		req := setup.CreateJSONRequest(http.MethodPost, "/api/auth/login", []byte(`{"username":"ana","password":"nope"}`))
		status, result := doRequest(t, app, req)

		assert.Equal(t, http.StatusBadRequest, status)
		errResp := setup.ParseErrorResponse(t, result)
		assert.Equal(t, "VALIDATION_ERROR", errResp.Code)
		assert.Equal(t, "password", errResp.Param)
	})

	t.Run("posts require a token", func(t *testing.T) {
		status, result := doRequest(t, app, setup.CreateJSONRequest(http.MethodGet, "/api/posts", nil))

		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "UNAUTHORIZED_ERROR", setup.ParseErrorResponse(t, result).Code)
	})

	anaToken := setup.Login(t, app, "ana", "secret123")
	boToken := setup.Login(t, app, "bo", "secret456")

	t.Run("current user reports premium", func(t *testing.T) {
		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/users/me", nil, boToken))
		require.Equal(t, http.StatusOK, status)

		data := setup.GetDataAsMap(t, result)
		assert.Equal(t, s.boId, data["_id"])
		assert.Equal(t, "premium", data["subscriptionType"])
	})

	t.Run("listing hides other users' private posts", func(t *testing.T) {
		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts", nil, anaToken))
		require.Equal(t, http.StatusOK, status)

		ids := postIds(t, setup.GetPosts(t, result))
		assert.Equal(t, []string{s.anaPrivate, s.boFriends, s.boPublic}, ids)

		pagination := setup.GetDataAsMap(t, result)["pagination"].(map[string]interface{})
		assert.Equal(t, false, pagination["hasNextPage"])
	})

	t.Run("pagination reports next page", func(t *testing.T) {
		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts?page=1&limit=2", nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{s.anaPrivate, s.boFriends}, postIds(t, setup.GetPosts(t, result)))

		pagination := setup.GetDataAsMap(t, result)["pagination"].(map[string]interface{})
		assert.Equal(t, true, pagination["hasNextPage"])

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts?page=2&limit=2", nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []string{s.boPublic}, postIds(t, setup.GetPosts(t, result)))

		pagination = setup.GetDataAsMap(t, result)["pagination"].(map[string]interface{})
		assert.Equal(t, false, pagination["hasNextPage"])
		assert.Equal(t, true, pagination["hasPrevPage"])
	})

	t.Run("invalid pagination is rejected", func(t *testing.T) {
		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts?page=zero", nil, anaToken))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "page", setup.ParseErrorResponse(t, result).Param)
	})

	t.Run("search matches content tags and location", func(t *testing.T) {
		for _, q := range []string{"lake", "RUNNING", "jakarta"} {
			status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts/search?q="+q, nil, anaToken))
			require.Equal(t, http.StatusOK, status, q)
			assert.Equal(t, []string{s.boPublic}, postIds(t, setup.GetPosts(t, result)), q)
		}

		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts/search?q=diary", nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		assert.Empty(t, setup.GetPosts(t, result), "private posts of others never match")

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts/search?q=%20%20", nil, anaToken))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "q", setup.ParseErrorResponse(t, result).Param)
	})

	t.Run("like toggles", func(t *testing.T) {
		url := fmt.Sprintf("/api/posts/%s/like", s.boPublic)

		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, url, nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		data := setup.GetDataAsMap(t, result)
		assert.Equal(t, true, data["isLiked"])
		assert.Equal(t, float64(1), data["likesCount"])

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts/search?q=lake", nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		post := setup.GetPosts(t, result)[0].(map[string]interface{})
		assert.Equal(t, true, post["isLiked"])

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, url, nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		data = setup.GetDataAsMap(t, result)
		assert.Equal(t, false, data["isLiked"])
		assert.Equal(t, float64(0), data["likesCount"])
	})

	t.Run("like on hidden or malformed post", func(t *testing.T) {
		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, fmt.Sprintf("/api/posts/%s/like", s.boPrivate), nil, anaToken))
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "NOT_FOUND_ERROR", setup.ParseErrorResponse(t, result).Code)

		status, _ = doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, "/api/posts/not-a-uuid/like", nil, anaToken))
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("comment is appended to the thread", func(t *testing.T) {
		url := fmt.Sprintf("/api/posts/%s/comments", s.boFriends)

		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, url, []byte(`{"content":"Looks delicious!"}`), anaToken))
		require.Equal(t, http.StatusOK, status)

		data := setup.GetDataAsMap(t, result)
		assert.Equal(t, float64(1), data["commentsCount"])
		comment := data["comment"].(map[string]interface{})
		assert.Equal(t, "Looks delicious!", comment["content"])
		assert.Equal(t, s.anaId, comment["user"].(map[string]interface{})["_id"])

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts", nil, boToken))
		require.Equal(t, http.StatusOK, status)
		for _, raw := range setup.GetPosts(t, result) {
			post := raw.(map[string]interface{})
			if post["_id"] == s.boFriends {
				assert.Len(t, post["comments"], 1)
				assert.Equal(t, float64(1), post["commentsCount"])
			}
		}
	})

	t.Run("blank comment is rejected", func(t *testing.T) {
		url := fmt.Sprintf("/api/posts/%s/comments", s.boFriends)

		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, url, []byte(`{"content":"   "}`), anaToken))
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "content", setup.ParseErrorResponse(t, result).Param)
	})

	t.Run("images are presigned", func(t *testing.T) {
		key := "posts/" + s.boPublic + "/lake.jpg"
		_, err := app.MinIO.PutObject(context.Background(), setup.TestBucket, key, bytes.NewReader([]byte("jpeg")), 4, minio.PutObjectOptions{ContentType: "image/jpeg"})
		require.NoError(t, err)
		setup.SeedPostImage(t, app.DB, s.boPublic, key, "the lake", 0)

		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts/search?q=lake", nil, anaToken))
		require.Equal(t, http.StatusOK, status)

		post := setup.GetPosts(t, result)[0].(map[string]interface{})
		images := post["images"].([]interface{})
		require.Len(t, images, 1)

		image := images[0].(map[string]interface{})
		assert.Equal(t, "the lake", image["alt"])
		assert.Contains(t, image["url"], "lake.jpg")
		assert.Contains(t, image["url"], "X-Amz-Signature")
	})

	t.Run("only the author can delete", func(t *testing.T) {
		url := fmt.Sprintf("/api/posts/%s", s.boPublic)

		status, result := doRequest(t, app, setup.CreateAuthRequest(http.MethodDelete, url, nil, anaToken))
		assert.Equal(t, http.StatusForbidden, status)
		assert.Equal(t, "FORBIDDEN_ERROR", setup.ParseErrorResponse(t, result).Code)

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodDelete, url, nil, boToken))
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, true, result["success"])

		status, result = doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts", nil, anaToken))
		require.Equal(t, http.StatusOK, status)
		assert.NotContains(t, postIds(t, setup.GetPosts(t, result)), s.boPublic)

		_, err := app.MinIO.StatObject(context.Background(), setup.TestBucket, "posts/"+s.boPublic+"/lake.jpg", minio.StatObjectOptions{})
		assert.Error(t, err, "image objects are removed with the post")
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		status, _ := doRequest(t, app, setup.CreateAuthRequest(http.MethodPost, "/api/users/logout", nil, boToken))
		require.Equal(t, http.StatusOK, status)

		status, _ = doRequest(t, app, setup.CreateAuthRequest(http.MethodGet, "/api/posts", nil, boToken))
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		resp, err := app.App.Test(setup.CreateJSONRequest(http.MethodGet, "/metrics", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "go_goroutines"))
	})
}
