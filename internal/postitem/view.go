package postitem

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ferdian3456/virdanfeed/internal/model"
)

const defaultWidth = 80

type ViewOptions struct {
	// Viewer is the signed-in user; nil renders nothing.
	Viewer     *model.FeedUser
	FormatTime func(time.Time) string
	Width      int
	Selected   bool
}

// View renders post as a card. A post without an author, or a missing
// viewer, renders as the empty string.
func (i *Item) View(post model.FeedPost, opts ViewOptions) string {
	if post.Author == nil || opts.Viewer == nil {
		return ""
	}

	width := opts.Width
	if width <= 0 {
		width = defaultWidth
	}
	inner := max(width-4, 20)

	formatTime := opts.FormatTime
	if formatTime == nil {
		formatTime = func(t time.Time) string { return t.Local().Format("1/2/2006") }
	}

	sections := []string{renderHeader(post, *opts.Viewer, formatTime)}

	if i.showActions && IsOwner(post, *opts.Viewer) {
		sections = append(sections, menuStyle.Render("[d] Delete post"))
	}

	if post.Content != "" {
		sections = append(sections, lipgloss.NewStyle().Width(inner).Render(post.Content))
	}

	if meta := renderMeta(post); meta != "" {
		sections = append(sections, meta)
	}

	if len(post.Tags) > 0 {
		tags := make([]string, 0, len(post.Tags))
		for _, tag := range post.Tags {
			tags = append(tags, tagStyle.Render("#"+tag))
		}
		sections = append(sections, strings.Join(tags, " "))
	}

	if images := renderImages(post.Images, inner); images != "" {
		sections = append(sections, images)
	}

	if counts := renderCounts(post); counts != "" {
		sections = append(sections, counts)
	}

	sections = append(sections, renderActionBar(post))

	if i.showComments {
		sections = append(sections, i.renderComments(post, *opts.Viewer, formatTime))
	}

	style := cardStyle
	if opts.Selected {
		style = selectedCardStyle
	}

	return style.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func avatar(user model.FeedUser) string {
	return avatarStyle.Render(user.Initial())
}

func displayName(user model.FeedUser) string {
	name := nameStyle.Render(user.FullName())
	if user.Premium {
		name += " " + premiumStyle.Render("♛")
	}
	return name
}

func renderHeader(post model.FeedPost, viewer model.FeedUser, formatTime func(time.Time) string) string {
	subtitle := mutedStyle.Render(formatTime(post.CreatedAt) + " · " + PrivacyGlyph(post.Privacy))

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		avatar(*post.Author),
		" ",
		lipgloss.JoinVertical(lipgloss.Left, displayName(*post.Author), subtitle),
	)

	if IsOwner(post, viewer) {
		header += "  " + mutedStyle.Render("⋯ [m]")
	}

	return header
}

func renderMeta(post model.FeedPost) string {
	var parts []string
	if post.Location != "" {
		parts = append(parts, "📍 "+post.Location)
	}
	if post.Feeling != "" {
		parts = append(parts, "feeling "+post.Feeling)
	}
	if len(parts) == 0 {
		return ""
	}
	return mutedStyle.Render(strings.Join(parts, " • "))
}

func imageLabel(image model.FeedImage) string {
	if image.Alt != "" {
		return "🖼 " + image.Alt
	}

	name := path.Base(strings.SplitN(image.Url, "?", 2)[0])
	if name == "." || name == "/" {
		name = "image"
	}
	return "🖼 " + name
}

func renderImages(images []model.FeedImage, width int) string {
	layout := LayoutFor(len(images))
	columns := layout.Columns()
	if columns == 0 {
		return ""
	}

	cellWidth := width / columns

	rows := make([]string, 0)
	for _, row := range layout.Rows(len(images)) {
		cells := make([]string, 0, len(row))
		for _, index := range row {
			// Border adds two columns around the content.
			w := cellWidth*layout.Span(index) - 2
			cells = append(cells, imageStyle.Width(max(w, 4)).Render(imageLabel(images[index])))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func plural(count int, singular string, pluralForm string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, pluralForm)
}

func renderCounts(post model.FeedPost) string {
	if post.LikesCount == 0 && post.CommentsCount == 0 && post.SharesCount == 0 {
		return ""
	}

	var parts []string
	if post.LikesCount > 0 {
		parts = append(parts, "♥ "+plural(post.LikesCount, "like", "likes"))
	}
	if post.CommentsCount > 0 {
		parts = append(parts, plural(post.CommentsCount, "comment", "comments"))
	}
	if post.SharesCount > 0 {
		parts = append(parts, plural(post.SharesCount, "share", "shares"))
	}

	return mutedStyle.Render(strings.Join(parts, " • "))
}

func renderActionBar(post model.FeedPost) string {
	like := "♡ Like [l]"
	if post.IsLiked {
		like = likedStyle.Render("♥ Liked [l]")
	}

	return strings.Join([]string{like, "💬 Comment [c]", mutedStyle.Render("↗ Share")}, "   ")
}

func (i *Item) renderComments(post model.FeedPost, viewer model.FeedUser, formatTime func(time.Time) string) string {
	lines := make([]string, 0, len(post.Comments)+1)

	for _, comment := range post.Comments {
		if comment.User == nil {
			continue
		}

		head := avatar(*comment.User) + " " + displayName(*comment.User) + " " + mutedStyle.Render(formatTime(comment.CreatedAt))
		lines = append(lines, commentStyle.Render(head+"\n"+comment.Content))
	}

	form := avatar(viewer) + " " + i.draft.View()
	if i.draft.Focused() {
		form += mutedStyle.Render("  [enter] send")
	}
	lines = append(lines, commentStyle.Render(form))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
