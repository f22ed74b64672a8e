// Package tui is the root bubbletea program. It gates the feed on the
// session, owns the search box and the post selection, and routes key presses
// to the feed controller and the post items.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/feed"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/ferdian3456/virdanfeed/internal/postitem"
	"github.com/ferdian3456/virdanfeed/internal/session"
	"go.uber.org/zap"
)

type App struct {
	feed    *feed.Controller
	log     *zap.Logger
	resolve tea.Cmd

	keys     keyMap
	help     help.Model
	search   textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	items    map[string]*postitem.Item
	selected int

	// Line span of the selected card inside the viewport content.
	selectedTop    int
	selectedBottom int

	width  int
	height int
}

// New builds the program model. resolve produces the session.ResolvedMsg that
// unlocks the feed.
func New(controller *feed.Controller, log *zap.Logger, resolve tea.Cmd) *App {
	search := textinput.New()
	search.Placeholder = "Search posts..."
	search.Prompt = "🔍 "
	search.CharLimit = constant.MAX_SEARCH_LENGTH

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = spinnerStyle

	return &App{
		feed:     controller,
		log:      log,
		resolve:  resolve,
		keys:     defaultKeyMap(),
		help:     help.New(),
		search:   search,
		spinner:  spin,
		viewport: viewport.New(0, 0),
		items:    make(map[string]*postitem.Item),
		width:    80,
		height:   24,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.resolve, a.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKey(msg))

	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case session.ResolvedMsg:
		if err := msg.Session.Err(); err != nil {
			a.log.Warn("session not ready", zap.Error(err))
		}
		cmds = append(cmds, a.feed.Update(msg))

	default:
		cmds = append(cmds, a.feed.Update(msg))

		// Cursor blinks and other input housekeeping.
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		cmds = append(cmds, cmd)
		if item := a.selectedItem(); item != nil {
			cmds = append(cmds, item.UpdateDraft(msg))
		}
	}

	a.syncItems()
	a.layout()

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.ForceQuit) {
		return tea.Quit
	}

	if !a.feed.Session().IsReady() {
		if key.Matches(msg, a.keys.Quit) {
			return tea.Quit
		}
		return nil
	}

	if a.feed.PendingDelete() != "" {
		return a.handleConfirmKey(msg)
	}

	if a.search.Focused() {
		return a.handleSearchKey(msg)
	}

	if item := a.selectedItem(); item != nil && item.DraftFocused() {
		return a.handleDraftKey(item, msg)
	}

	return a.handleFeedKey(msg)
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		return a.feed.ConfirmDelete()
	case key.Matches(msg, a.keys.Cancel):
		a.feed.CancelDelete()
	}
	return nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Clear):
		a.search.SetValue("")
		a.search.Blur()
		return a.feed.ClearSearch()
	case key.Matches(msg, a.keys.Submit), msg.Type == tea.KeyTab:
		a.search.Blur()
		return nil
	}

	before := a.search.Value()

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)

	if a.search.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, a.feed.SetQuery(a.search.Value()))
}

func (a *App) handleDraftKey(item *postitem.Item, msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Submit):
		return item.SubmitComment()
	case msg.Type == tea.KeyEsc:
		item.BlurDraft()
		return nil
	}
	return item.UpdateDraft(msg)
}

func (a *App) handleFeedKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll

	case key.Matches(msg, a.keys.Search):
		return a.search.Focus()

	case key.Matches(msg, a.keys.Clear):
		if a.search.Value() != "" || a.feed.Mode() == feed.ModeSearching {
			a.search.SetValue("")
			return a.feed.ClearSearch()
		}

	case key.Matches(msg, a.keys.Up):
		a.moveSelection(-1)

	case key.Matches(msg, a.keys.Down):
		a.moveSelection(1)

	case key.Matches(msg, a.keys.PageUp, a.keys.PageDown):
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return cmd

	case key.Matches(msg, a.keys.LoadMore):
		return a.feed.LoadMore()

	case key.Matches(msg, a.keys.Refresh):
		if a.feed.Err() != "" {
			return a.feed.Retry()
		}
		return a.feed.Refresh()

	case key.Matches(msg, a.keys.Like):
		if item := a.selectedItem(); item != nil {
			return item.Like()
		}

	case key.Matches(msg, a.keys.Comments):
		if item := a.selectedItem(); item != nil {
			item.ToggleComments()
			return item.FocusDraft()
		}

	case key.Matches(msg, a.keys.Submit):
		if item := a.selectedItem(); item != nil && item.CommentsOpen() {
			return item.FocusDraft()
		}

	case key.Matches(msg, a.keys.Menu):
		post, ok := a.selectedPost()
		viewer, ready := a.feed.Session().Viewer()
		if ok && ready {
			a.itemFor(post.Id).ToggleActions(post, viewer)
		}

	case key.Matches(msg, a.keys.Delete):
		if item := a.selectedItem(); item != nil {
			return item.Delete()
		}
	}

	return nil
}

func (a *App) moveSelection(delta int) {
	count := len(a.feed.Displayed())
	if count == 0 {
		a.selected = 0
		return
	}

	a.selected = min(max(a.selected+delta, 0), count-1)
}

func (a *App) selectedPost() (model.FeedPost, bool) {
	posts := a.feed.Displayed()
	if a.selected < 0 || a.selected >= len(posts) {
		return model.FeedPost{}, false
	}
	return posts[a.selected], true
}

func (a *App) selectedItem() *postitem.Item {
	post, ok := a.selectedPost()
	if !ok {
		return nil
	}
	return a.itemFor(post.Id)
}

func (a *App) itemFor(postId string) *postitem.Item {
	item, ok := a.items[postId]
	if !ok {
		item = postitem.New(postId, postitem.Callbacks{
			OnLike:    a.feed.Like,
			OnComment: a.feed.Comment,
			OnDelete: func(postId string) tea.Cmd {
				a.feed.RequestDelete(postId)
				return nil
			},
		})
		a.items[postId] = item
	}
	return item
}

// syncItems keeps one item per displayed post and clamps the selection.
// Items of posts that are only in the other list survive so their panels
// reopen as they were.
func (a *App) syncItems() {
	keep := make(map[string]bool)
	for _, post := range a.feed.Posts() {
		keep[post.Id] = true
	}
	for _, post := range a.feed.SearchResults() {
		keep[post.Id] = true
	}

	for id := range a.items {
		if !keep[id] {
			delete(a.items, id)
		}
	}

	for _, post := range a.feed.Displayed() {
		a.itemFor(post.Id)
	}

	a.moveSelection(0)
}
