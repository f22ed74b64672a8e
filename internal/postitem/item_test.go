package postitem

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	likes    []string
	comments []string
	deletes  []string
}

func (r *recorder) callbacks() Callbacks {
	noop := func() tea.Msg { return nil }
	return Callbacks{
		OnLike: func(postId string) tea.Cmd {
			r.likes = append(r.likes, postId)
			return noop
		},
		OnComment: func(postId string, text string) tea.Cmd {
			r.comments = append(r.comments, text)
			return noop
		},
		OnDelete: func(postId string) tea.Cmd {
			r.deletes = append(r.deletes, postId)
			return noop
		},
	}
}

var (
	author = model.FeedUser{Id: "u1", FirstName: "ana", LastName: "Lee", Premium: true}
	other  = model.FeedUser{Id: "u2", FirstName: "Bo", LastName: "Kim"}
)

func samplePost() model.FeedPost {
	return model.FeedPost{
		Id:            "p1",
		Author:        &author,
		Content:       "Shipping the new feed today",
		Tags:          []string{"golang", "tui"},
		Location:      "Jakarta",
		Feeling:       "excited",
		Privacy:       model.PrivacyFriends,
		LikesCount:    1,
		CommentsCount: 2,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSubmitBlankCommentSendsNothing(t *testing.T) {
	rec := &recorder{}
	item := New("p1", rec.callbacks())

	item.SetDraft("   ")
	assert.Nil(t, item.SubmitComment())
	assert.Empty(t, rec.comments)
	assert.Equal(t, "   ", item.Draft())
}

func TestSubmitCommentForwardsAndClears(t *testing.T) {
	rec := &recorder{}
	item := New("p1", rec.callbacks())

	item.SetDraft(" looks great ")
	assert.NotNil(t, item.SubmitComment())
	assert.Equal(t, []string{" looks great "}, rec.comments)
	assert.Empty(t, item.Draft())
}

func TestLikeDelegates(t *testing.T) {
	rec := &recorder{}
	item := New("p1", rec.callbacks())

	assert.NotNil(t, item.Like())
	assert.Equal(t, []string{"p1"}, rec.likes)
}

func TestActionsOnlyForOwner(t *testing.T) {
	rec := &recorder{}
	item := New("p1", rec.callbacks())
	post := samplePost()

	item.ToggleActions(post, other)
	assert.False(t, item.ActionsOpen())
	assert.Nil(t, item.Delete())

	item.ToggleActions(post, author)
	require.True(t, item.ActionsOpen())

	assert.NotNil(t, item.Delete())
	assert.Equal(t, []string{"p1"}, rec.deletes)
	assert.False(t, item.ActionsOpen(), "delete closes the menu")
}

func TestToggleComments(t *testing.T) {
	item := New("p1", Callbacks{})

	assert.Nil(t, item.FocusDraft(), "draft cannot take focus while the panel is closed")

	item.ToggleComments()
	assert.True(t, item.CommentsOpen())
	item.FocusDraft()
	assert.True(t, item.DraftFocused())

	item.ToggleComments()
	assert.False(t, item.CommentsOpen())
	assert.False(t, item.DraftFocused())
}

func TestViewRendersNothingWithoutAuthorOrViewer(t *testing.T) {
	item := New("p1", Callbacks{})

	post := samplePost()
	assert.Empty(t, item.View(post, ViewOptions{}))

	post.Author = nil
	assert.Empty(t, item.View(post, ViewOptions{Viewer: &other}))
}

func TestViewShowsPostDetails(t *testing.T) {
	item := New("p1", Callbacks{})
	format := func(time.Time) string { return "5m ago" }

	out := item.View(samplePost(), ViewOptions{Viewer: &other, FormatTime: format, Width: 90})

	for _, want := range []string{"ana Lee", "♛", "5m ago", "👥", "Shipping the new feed today", "#golang", "#tui", "Jakarta • feeling excited", "1 like", "2 comments", "♡ Like"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "[m]", "non-owner gets no menu")
	assert.NotContains(t, out, "shares")
}

func TestViewOwnerMenuAndComments(t *testing.T) {
	item := New("p1", Callbacks{})
	post := samplePost()
	post.IsLiked = true
	post.Comments = []model.FeedComment{{Id: "c1", User: &other, Content: "congrats!"}}

	item.ToggleActions(post, author)
	item.ToggleComments()

	out := item.View(post, ViewOptions{Viewer: &author})
	assert.Contains(t, out, "[d] Delete post")
	assert.Contains(t, out, "♥ Liked")
	assert.Contains(t, out, "congrats!")
	assert.Contains(t, out, "Bo Kim")
}

func TestCountsLineHiddenWhenAllZero(t *testing.T) {
	post := samplePost()
	post.LikesCount, post.CommentsCount, post.SharesCount = 0, 0, 0
	assert.Empty(t, renderCounts(post))

	post.SharesCount = 1
	assert.Contains(t, renderCounts(post), "1 share")
}

func TestPrivacyGlyph(t *testing.T) {
	assert.Equal(t, "🌐", PrivacyGlyph(model.PrivacyPublic))
	assert.Equal(t, "👥", PrivacyGlyph(model.PrivacyFriends))
	assert.Equal(t, "🔒", PrivacyGlyph(model.PrivacyPrivate))
	assert.Equal(t, "🌐", PrivacyGlyph(model.ParsePrivacy("")))
	assert.Equal(t, "🌐", PrivacyGlyph(model.ParsePrivacy("acquaintances")))
}

func TestLayoutByImageCount(t *testing.T) {
	assert.Equal(t, LayoutNone, LayoutFor(0))
	assert.Equal(t, 1, LayoutFor(1).Columns())
	assert.Equal(t, 2, LayoutFor(2).Columns())

	triple := LayoutFor(3)
	assert.Equal(t, LayoutTriple, triple)
	assert.Equal(t, 2, triple.Span(0))
	assert.Equal(t, 1, triple.Span(1))
	assert.Equal(t, [][]int{{0}, {1, 2}}, triple.Rows(3))

	grid := LayoutFor(5)
	assert.Equal(t, LayoutGrid, grid)
	assert.Equal(t, 1, grid.Span(0))
	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4}}, grid.Rows(5))
}

func TestImageLabels(t *testing.T) {
	out := renderImages([]model.FeedImage{
		{Url: "http://minio/bucket/posts/a.jpg?X-Amz-Signature=1"},
		{Url: "http://minio/bucket/posts/b.jpg", Alt: "sunset"},
	}, 76)

	assert.Contains(t, out, "a.jpg")
	assert.Contains(t, out, "sunset")
	assert.Equal(t, 1, strings.Count(out, "sunset"))
}
