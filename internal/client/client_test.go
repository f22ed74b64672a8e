package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(server.URL, zap.NewNop(), WithHTTPClient(server.Client()), WithRateLimit(0), WithToken("token-1"))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := io.WriteString(w, body)
	require.NoError(t, err)
}

func TestGetPostsNormalizesPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, `{
			"success": true,
			"data": {
				"posts": [{
					"_id": "p1",
					"author": {"_id": "u1", "firstName": "Ana", "lastName": "Lee", "profilePicture": null, "isPremium": false, "subscriptionType": "premium"},
					"content": "hello",
					"images": [{"url": "http://img/1", "alt": "one"}],
					"tags": ["go"],
					"privacy": "weird",
					"likesCount": 3,
					"commentsCount": 1,
					"sharesCount": 0,
					"isLiked": true,
					"comments": [{"_id": "c1", "user": {"_id": "u2", "firstName": "Bo", "lastName": "Kim", "isPremium": true, "subscriptionType": "free"}, "content": "hi", "createdAt": "2025-01-01T00:00:00Z"}],
					"createdAt": "2025-01-01T00:00:00Z"
				}],
				"pagination": {"page": 2, "limit": 10, "hasNextPage": true, "hasPrevPage": true}
			}
		}`)
	})

	page, err := c.GetPosts(context.Background(), 2, 10)
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.True(t, page.HasNextPage)
	assert.Equal(t, 2, page.Page)

	post := page.Posts[0]
	assert.Equal(t, "p1", post.Id)
	require.NotNil(t, post.Author)
	assert.True(t, post.Author.Premium, "subscriptionType premium counts as premium")
	assert.Equal(t, "", post.Author.ProfilePicture)
	assert.Equal(t, model.PrivacyPublic, post.Privacy)
	assert.Equal(t, []model.FeedImage{{Url: "http://img/1", Alt: "one"}}, post.Images)
	require.Len(t, post.Comments, 1)
	assert.True(t, post.Comments[0].User.Premium, "isPremium counts as premium")
}

func TestSearchPostsSendsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/search", r.URL.Path)
		assert.Equal(t, "golang tips", r.URL.Query().Get("q"))
		writeJSON(t, w, http.StatusOK, `{"success": true, "data": {"posts": [], "pagination": {"page": 1, "limit": 10, "hasNextPage": false}}}`)
	})

	page, err := c.SearchPosts(context.Background(), "golang tips", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasNextPage)
}

func TestAddCommentSendsContent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/posts/p1/comments", r.URL.Path)

		var body model.CommentCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "  nice  ", body.Content)

		writeJSON(t, w, http.StatusOK, `{"success": true, "data": {"comment": {"_id": "c9", "user": {"_id": "u1", "firstName": "Ana", "lastName": "Lee"}, "content": "  nice  ", "createdAt": "2025-01-01T00:00:00Z"}, "commentsCount": 4}}`)
	})

	result, err := c.AddComment(context.Background(), "p1", "  nice  ")
	require.NoError(t, err)
	assert.Equal(t, "c9", result.Comment.Id)
	assert.Equal(t, 4, result.CommentsCount)
}

func TestLikeAndDelete(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/posts/p1/like":
			writeJSON(t, w, http.StatusOK, `{"success": true, "data": {"isLiked": true, "likesCount": 8}}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/posts/p1":
			writeJSON(t, w, http.StatusOK, `{"success": true}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	like, err := c.LikePost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, model.LikeResult{IsLiked: true, LikesCount: 8}, like)

	require.NoError(t, c.DeletePost(context.Background(), "p1"))
}

func TestErrorsCollapseToAPIError(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
		code   string
	}{
		"http error envelope": {http.StatusForbidden, `{"success": false, "error": {"code": "FORBIDDEN_ERROR", "message": "nope"}}`, "FORBIDDEN_ERROR"},
		"success false":       {http.StatusOK, `{"success": false}`, ""},
		"empty body":          {http.StatusBadGateway, ``, ""},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tc.status, tc.body)
			})

			err := c.DeletePost(context.Background(), "p1")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsuccessful))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.code, apiErr.Code)
		})
	}
}

func TestLoginStoresToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			writeJSON(t, w, http.StatusOK, `{"success": true, "data": {"accessToken": "fresh", "accessTokenExpiresIn": 3600, "tokenType": "Bearer"}}`)
		case "/api/users/me":
			assert.Equal(t, "Bearer fresh", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, `{"success": true, "data": {"_id": "u1", "firstName": "Ana", "lastName": "Lee", "isPremium": true}}`)
		}
	})

	_, err := c.Login(context.Background(), "ana", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh", c.Token())

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.FeedUser{Id: "u1", FirstName: "Ana", LastName: "Lee", Premium: true}, me)
}
