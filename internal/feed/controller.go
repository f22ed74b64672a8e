// Package feed holds the state behind the post feed: the paged list, the
// debounced search, and the like, comment and delete mutations. Every change
// happens inside Update on the bubbletea loop; network calls run as tea.Cmds
// and report back as messages.
package feed

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/ferdian3456/virdanfeed/internal/session"
	"go.uber.org/zap"
)

// API is the part of the posts API the feed consumes.
type API interface {
	GetPosts(ctx context.Context, page int, limit int) (model.FeedPage, error)
	SearchPosts(ctx context.Context, query string, page int, limit int) (model.FeedPage, error)
	LikePost(ctx context.Context, postId string) (model.LikeResult, error)
	AddComment(ctx context.Context, postId string, content string) (model.CommentResult, error)
	DeletePost(ctx context.Context, postId string) error
}

type Mode int

const (
	ModeNormalFeed Mode = iota
	ModeSearching
)

// Ticker schedules fn after d. tea.Tick in production.
type Ticker func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

type Controller struct {
	api     API
	log     *zap.Logger
	now     func() time.Time
	tick    Ticker
	timeout time.Duration

	session session.Session
	started bool

	posts       []model.FeedPost
	page        int
	hasMore     bool
	loading     bool
	loadingMore bool
	err         string

	query          string
	debouncedQuery string
	searchResults  []model.FeedPost
	searching      bool
	showSearch     bool

	// Latest issued request of each kind; replies carrying an older number are dropped.
	loadSeq     uint64
	searchSeq   uint64
	debounceSeq uint64

	pendingDelete string
}

type Option func(*Controller)

func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

func WithTicker(tick Ticker) Option {
	return func(c *Controller) {
		c.tick = tick
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		c.timeout = timeout
	}
}

func New(api API, log *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		log:     log,
		now:     time.Now,
		tick:    tea.Tick,
		timeout: constant.FEED_REQUEST_TIMEOUT,
		session: session.Loading(),
		page:    1,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetSession installs the resolved viewer. The first Ready session starts the
// initial page load; until then nothing is fetched.
func (c *Controller) SetSession(sess session.Session) tea.Cmd {
	c.session = sess

	if !sess.IsReady() || c.started {
		return nil
	}

	c.started = true
	return c.LoadPosts(1, false)
}

func (c *Controller) LoadPosts(page int, appendPage bool) tea.Cmd {
	if !c.session.IsReady() {
		return nil
	}

	c.loadSeq++
	seq := c.loadSeq

	if page == 1 {
		c.loading = true
		c.loadingMore = false
		c.err = ""
	} else {
		c.loadingMore = true
	}

	api := c.api
	timeout := c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := api.GetPosts(ctx, page, constant.FEED_PAGE_SIZE)
		if err != nil {
			return postsFailedMsg{seq: seq, page: page, err: err}
		}

		return postsLoadedMsg{seq: seq, page: page, append: appendPage, result: result}
	}
}

// LoadMore asks for the next page unless a load is running, the feed is
// exhausted, or search mode has suspended pagination.
func (c *Controller) LoadMore() tea.Cmd {
	if c.loading || c.loadingMore || !c.hasMore || c.showSearch {
		return nil
	}

	return c.LoadPosts(c.page+1, true)
}

func (c *Controller) Refresh() tea.Cmd {
	return c.LoadPosts(1, false)
}

func (c *Controller) Retry() tea.Cmd {
	return c.LoadPosts(1, false)
}

// SetQuery records the search box contents and restarts the debounce timer.
func (c *Controller) SetQuery(query string) tea.Cmd {
	c.query = query
	c.debounceSeq++
	seq := c.debounceSeq

	return c.tick(constant.SEARCH_DEBOUNCE, func(time.Time) tea.Msg {
		return searchDebouncedMsg{seq: seq}
	})
}

// ClearSearch empties the query and, if search mode was active, returns to
// the normal feed from page 1.
func (c *Controller) ClearSearch() tea.Cmd {
	c.query = ""
	c.debouncedQuery = ""
	c.debounceSeq++

	if !c.showSearch {
		return nil
	}

	c.exitSearch()
	return c.LoadPosts(1, false)
}

func (c *Controller) exitSearch() {
	c.showSearch = false
	c.searching = false
	c.searchResults = nil
	c.searchSeq++
}

func (c *Controller) search(query string) tea.Cmd {
	if !c.session.IsReady() {
		return nil
	}

	c.showSearch = true
	c.searching = true
	c.searchSeq++
	seq := c.searchSeq

	api := c.api
	timeout := c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := api.SearchPosts(ctx, query, 1, constant.FEED_PAGE_SIZE)
		return searchResultMsg{seq: seq, query: query, posts: result.Posts, err: err}
	}
}

func (c *Controller) Like(postId string) tea.Cmd {
	if !c.session.IsReady() {
		return nil
	}

	api := c.api
	timeout := c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := api.LikePost(ctx, postId)
		return likeResultMsg{postId: postId, result: result, err: err}
	}
}

// Comment sends text as typed; whitespace-only text sends nothing.
func (c *Controller) Comment(postId string, text string) tea.Cmd {
	if !c.session.IsReady() || strings.TrimSpace(text) == "" {
		return nil
	}

	api := c.api
	timeout := c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := api.AddComment(ctx, postId, text)
		return commentResultMsg{postId: postId, result: result, err: err}
	}
}

// RequestDelete opens the confirmation prompt for postId.
func (c *Controller) RequestDelete(postId string) {
	c.pendingDelete = postId
}

func (c *Controller) CancelDelete() {
	c.pendingDelete = ""
}

func (c *Controller) ConfirmDelete() tea.Cmd {
	postId := c.pendingDelete
	c.pendingDelete = ""

	if postId == "" || !c.session.IsReady() {
		return nil
	}

	api := c.api
	timeout := c.timeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return deleteResultMsg{postId: postId, err: api.DeletePost(ctx, postId)}
	}
}

// Update applies a reply from one of the commands above. Messages the feed
// does not own are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case session.ResolvedMsg:
		return c.SetSession(msg.Session)

	case postsLoadedMsg:
		if msg.seq != c.loadSeq {
			return nil
		}

		c.loading = false
		c.loadingMore = false
		c.page = msg.page
		c.hasMore = msg.result.HasNextPage

		if msg.append {
			c.posts = appendUnique(c.posts, msg.result.Posts)
		} else {
			c.posts = msg.result.Posts
		}

	case postsFailedMsg:
		if msg.seq != c.loadSeq {
			return nil
		}

		c.loading = false
		c.loadingMore = false
		c.err = constant.FEED_LOAD_ERROR_MESSAGE
		c.log.Error("failed to load posts", zap.Int("page", msg.page), zap.Error(msg.err))

	case searchDebouncedMsg:
		if msg.seq != c.debounceSeq {
			return nil
		}

		c.debouncedQuery = c.query
		trimmed := strings.TrimSpace(c.debouncedQuery)

		switch {
		case utf8.RuneCountInString(trimmed) >= constant.SEARCH_MIN_QUERY_LENGTH:
			return c.search(trimmed)
		case trimmed == "" && c.showSearch:
			c.exitSearch()
			return c.LoadPosts(1, false)
		}

	case searchResultMsg:
		if msg.seq != c.searchSeq {
			return nil
		}

		c.searching = false
		if msg.err != nil {
			c.log.Error("failed to search posts", zap.String("query", msg.query), zap.Error(msg.err))
			c.searchResults = []model.FeedPost{}
			return nil
		}

		c.searchResults = msg.posts

	case likeResultMsg:
		if msg.err != nil {
			c.log.Error("failed to like post", zap.String("postId", msg.postId), zap.Error(msg.err))
			return nil
		}

		c.patch(msg.postId, func(post *model.FeedPost) {
			post.IsLiked = msg.result.IsLiked
			post.LikesCount = msg.result.LikesCount
		})

	case commentResultMsg:
		if msg.err != nil {
			c.log.Error("failed to add comment", zap.String("postId", msg.postId), zap.Error(msg.err))
			return nil
		}

		c.patch(msg.postId, func(post *model.FeedPost) {
			post.Comments = append(slices.Clone(post.Comments), msg.result.Comment)
			post.CommentsCount = msg.result.CommentsCount
		})

	case deleteResultMsg:
		if msg.err != nil {
			c.log.Error("failed to delete post", zap.String("postId", msg.postId), zap.Error(msg.err))
			return nil
		}

		c.posts = without(c.posts, msg.postId)
		c.searchResults = without(c.searchResults, msg.postId)
	}

	return nil
}

// patch rewrites matching posts in both lists. The lists are copied so
// earlier snapshots and every other element stay as they were.
func (c *Controller) patch(postId string, fn func(*model.FeedPost)) {
	c.posts = patched(c.posts, postId, fn)
	c.searchResults = patched(c.searchResults, postId, fn)
}

func patched(list []model.FeedPost, postId string, fn func(*model.FeedPost)) []model.FeedPost {
	if !slices.ContainsFunc(list, func(post model.FeedPost) bool { return post.Id == postId }) {
		return list
	}

	out := slices.Clone(list)
	for i := range out {
		if out[i].Id == postId {
			fn(&out[i])
		}
	}

	return out
}

func without(list []model.FeedPost, postId string) []model.FeedPost {
	if list == nil {
		return nil
	}

	out := make([]model.FeedPost, 0, len(list))
	for _, post := range list {
		if post.Id != postId {
			out = append(out, post)
		}
	}

	return out
}

func appendUnique(list []model.FeedPost, page []model.FeedPost) []model.FeedPost {
	seen := make(map[string]struct{}, len(list)+len(page))
	for _, post := range list {
		seen[post.Id] = struct{}{}
	}

	out := slices.Clone(list)
	for _, post := range page {
		if _, ok := seen[post.Id]; ok {
			continue
		}
		seen[post.Id] = struct{}{}
		out = append(out, post)
	}

	return out
}

func (c *Controller) Mode() Mode {
	if c.showSearch {
		return ModeSearching
	}
	return ModeNormalFeed
}

// Displayed is the list the view renders: search results in search mode,
// the paged feed otherwise.
func (c *Controller) Displayed() []model.FeedPost {
	if c.showSearch {
		return c.searchResults
	}
	return c.posts
}

func (c *Controller) Posts() []model.FeedPost { return c.posts }
func (c *Controller) SearchResults() []model.FeedPost { return c.searchResults }
func (c *Controller) Page() int { return c.page }
func (c *Controller) HasMore() bool { return c.hasMore }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) LoadingMore() bool { return c.loadingMore }
func (c *Controller) Searching() bool { return c.searching }
func (c *Controller) Err() string { return c.err }
func (c *Controller) Query() string { return c.query }
func (c *Controller) DebouncedQuery() string { return c.debouncedQuery }
func (c *Controller) PendingDelete() string { return c.pendingDelete }
func (c *Controller) Session() session.Session { return c.session }

// ShowLoadMore reports whether the "Load More" affordance belongs on screen.
func (c *Controller) ShowLoadMore() bool {
	return !c.showSearch && c.hasMore && len(c.posts) > 0
}

// SearchStatus is the line shown under the search box in search mode.
func (c *Controller) SearchStatus() string {
	if !c.showSearch {
		return ""
	}

	query := strings.TrimSpace(c.debouncedQuery)

	switch {
	case c.searching:
		return "Searching..."
	case len(c.searchResults) == 1:
		return fmt.Sprintf("Found 1 result for %q", query)
	case len(c.searchResults) > 1:
		return fmt.Sprintf("Found %d results for %q", len(c.searchResults), query)
	default:
		return fmt.Sprintf("No results found for %q", query)
	}
}

// FormatTime renders t relative to the controller's clock at call time.
func (c *Controller) FormatTime(t time.Time) string {
	return FormatRelativeTime(t, c.now())
}
