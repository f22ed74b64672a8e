package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/feed"
	"github.com/ferdian3456/virdanfeed/internal/postitem"
	"github.com/ferdian3456/virdanfeed/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1877F2"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#1877F2"))
	buttonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1877F2")).Bold(true)
	promptStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 2)
	skeletonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("236")).
			Foreground(lipgloss.Color("236"))
)

func (a *App) View() string {
	if !a.feed.Session().IsReady() {
		return a.sessionView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.header(), a.viewport.View(), a.footer())
}

// sessionView stands in for the feed until the viewer is known.
func (a *App) sessionView() string {
	sess := a.feed.Session()

	lines := []string{titleStyle.Render("Virdan Feed"), ""}
	if sess.State() == session.StateFailed {
		lines = append(lines,
			errorStyle.Render("Could not sign in: "+sess.Err().Error()),
			mutedStyle.Render("Set FEED_ACCESS_TOKEN or FEED_USERNAME and FEED_PASSWORD. [q] quit"),
		)
		return strings.Join(lines, "\n")
	}

	lines = append(lines, a.spinner.View()+" Signing in...", "")
	for range 3 {
		lines = append(lines, a.skeletonCard())
	}
	return strings.Join(lines, "\n")
}

func (a *App) skeletonCard() string {
	width := max(a.width-2, 20)
	bar := max(width-6, 4)
	return skeletonStyle.Width(width).Render(
		"░░  " + strings.Repeat("░", bar/2) + "\n" + strings.Repeat("░", bar) + "\n" + strings.Repeat("░", bar),
	)
}

func (a *App) header() string {
	lines := []string{titleStyle.Render("Virdan Feed"), a.search.View()}
	if status := a.feed.SearchStatus(); status != "" {
		if a.feed.Searching() {
			status = a.spinner.View() + " " + status
		}
		lines = append(lines, mutedStyle.Render(status))
	}
	return strings.Join(lines, "\n")
}

func (a *App) footer() string {
	if a.feed.PendingDelete() != "" {
		return promptStyle.Render(constant.DELETE_CONFIRM_MESSAGE + "  [y] delete  [n] cancel")
	}
	return a.help.View(a.keys)
}

// content renders the scrollable feed body and records where the selected
// card sits in it.
func (a *App) content() string {
	a.selectedTop, a.selectedBottom = 0, 0

	posts := a.feed.Displayed()
	viewer, ok := a.feed.Session().Viewer()
	if !ok {
		return ""
	}

	if a.feed.Loading() && len(posts) == 0 {
		return a.spinner.View() + " Loading posts..."
	}

	if errText := a.feed.Err(); errText != "" && len(posts) == 0 {
		return errorStyle.Render(errText) + "\n" + buttonStyle.Render("[r] Retry")
	}

	if len(posts) == 0 {
		if a.feed.Searching() {
			return ""
		}
		hint := "Be the first to share something!"
		if a.feed.Mode() == feed.ModeSearching {
			hint = "Try a different search."
		}
		return titleStyle.Render("No Posts Found") + "\n" + mutedStyle.Render(hint)
	}

	var b strings.Builder
	if errText := a.feed.Err(); errText != "" {
		b.WriteString(errorStyle.Render(errText+"  [r] retry") + "\n")
	}

	for index, post := range posts {
		card := a.itemFor(post.Id).View(post, postitem.ViewOptions{
			Viewer:     &viewer,
			FormatTime: a.feed.FormatTime,
			Width:      a.width,
			Selected:   index == a.selected,
		})
		if card == "" {
			continue
		}

		top := strings.Count(b.String(), "\n")
		b.WriteString(card + "\n")

		if index == a.selected {
			a.selectedTop = top
			a.selectedBottom = top + lipgloss.Height(card)
		}
	}

	if a.feed.ShowLoadMore() {
		if a.feed.LoadingMore() {
			b.WriteString(a.spinner.View() + " Loading...")
		} else {
			b.WriteString(buttonStyle.Render("[n] Load More"))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// layout sizes the viewport to what the header and footer leave over and
// scrolls just enough to keep the selected card on screen.
func (a *App) layout() {
	if !a.feed.Session().IsReady() {
		return
	}

	a.viewport.Width = a.width
	a.viewport.Height = max(a.height-lipgloss.Height(a.header())-lipgloss.Height(a.footer()), 1)
	a.viewport.SetContent(a.content())

	switch {
	case a.selectedBottom == 0:
	case a.selectedTop < a.viewport.YOffset:
		a.viewport.SetYOffset(a.selectedTop)
	case a.selectedBottom > a.viewport.YOffset+a.viewport.Height:
		a.viewport.SetYOffset(min(a.selectedTop, a.selectedBottom-a.viewport.Height))
	}
}
