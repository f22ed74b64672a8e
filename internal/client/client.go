package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/ferdian3456/virdanfeed/internal/observability"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client talks to the posts API. It is safe for concurrent use; feed commands
// call it from their own goroutines.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *zap.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit caps outgoing requests per second. Zero or less disables pacing.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, int(perSecond)))
	}
}

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   constant.FEED_REQUEST_TIMEOUT,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 5),
		log:     log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) Login(ctx context.Context, username string, password string) (model.TokenResponse, error) {
	var envelope model.TokenEnvelope

	err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, model.UserLoginRequest{
		Username: username,
		Password: password,
	}, &envelope)
	if err != nil {
		return model.TokenResponse{}, err
	}

	c.SetToken(envelope.Data.AccessToken)

	return envelope.Data, nil
}

func (c *Client) Me(ctx context.Context) (model.FeedUser, error) {
	var envelope model.UserEnvelope

	err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &envelope)
	if err != nil {
		return model.FeedUser{}, err
	}

	return *normalizeUser(&envelope.Data), nil
}

func (c *Client) GetPosts(ctx context.Context, page int, limit int) (model.FeedPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var envelope model.PostListResponse
	err := c.do(ctx, http.MethodGet, "/api/posts", query, nil, &envelope)
	if err != nil {
		return model.FeedPage{}, err
	}

	return normalizePage(envelope.Data), nil
}

func (c *Client) SearchPosts(ctx context.Context, q string, page int, limit int) (model.FeedPage, error) {
	query := url.Values{}
	query.Set("q", q)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var envelope model.PostListResponse
	err := c.do(ctx, http.MethodGet, "/api/posts/search", query, nil, &envelope)
	if err != nil {
		return model.FeedPage{}, err
	}

	return normalizePage(envelope.Data), nil
}

func (c *Client) LikePost(ctx context.Context, postId string) (model.LikeResult, error) {
	var envelope model.LikeResponse

	err := c.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postId)+"/like", nil, nil, &envelope)
	if err != nil {
		return model.LikeResult{}, err
	}

	return model.LikeResult{
		IsLiked:    envelope.Data.IsLiked,
		LikesCount: envelope.Data.LikesCount,
	}, nil
}

func (c *Client) AddComment(ctx context.Context, postId string, content string) (model.CommentResult, error) {
	var envelope model.CommentCreateResponse

	err := c.do(ctx, http.MethodPost, "/api/posts/"+url.PathEscape(postId)+"/comments", nil, model.CommentCreateRequest{
		Content: content,
	}, &envelope)
	if err != nil {
		return model.CommentResult{}, err
	}

	return model.CommentResult{
		Comment:       normalizeComment(envelope.Data.Comment),
		CommentsCount: envelope.Data.CommentsCount,
	}, nil
}

func (c *Client) DeletePost(ctx context.Context, postId string) error {
	var envelope model.SuccessResponse

	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(postId), nil, nil, &envelope)
}

// do sends one request and decodes the body into out. Any status >= 400 or a
// body with success:false comes back as *APIError.
func (c *Client) do(ctx context.Context, method string, path string, query url.Values, body interface{}, out interface{}) error {
	ctx, span := otel.Tracer("virdanfeed/client").Start(ctx, method+" "+path)
	defer span.End()

	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := sonic.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	observability.WithContext(ctx, c.log).Debug("api request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	var head model.ErrorResponse
	if len(raw) > 0 {
		err = sonic.Unmarshal(raw, &head)
		if err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest || !head.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       head.Error.Code,
			Message:    head.Error.Message,
		}
	}

	err = sonic.Unmarshal(raw, out)
	if err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	return nil
}
