// Package postitem renders a single post and turns key presses on it into
// intents. Everything that reaches the network goes through Callbacks.
package postitem

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
)

type Callbacks struct {
	OnLike    func(postId string) tea.Cmd
	OnComment func(postId string, text string) tea.Cmd
	OnDelete  func(postId string) tea.Cmd
}

// Item holds the per-post toggles that never leave the terminal: whether the
// comment panel and the owner menu are open, and the comment draft.
type Item struct {
	postId    string
	callbacks Callbacks

	showComments bool
	showActions  bool
	draft        textinput.Model
}

func New(postId string, callbacks Callbacks) *Item {
	draft := textinput.New()
	draft.Placeholder = "Write a comment..."
	draft.CharLimit = constant.MAX_COMMENT_LENGTH
	draft.Prompt = ""

	return &Item{
		postId:    postId,
		callbacks: callbacks,
		draft:     draft,
	}
}

func (i *Item) PostId() string {
	return i.postId
}

func (i *Item) ToggleComments() {
	i.showComments = !i.showComments
	if !i.showComments {
		i.draft.Blur()
	}
}

func (i *Item) CommentsOpen() bool {
	return i.showComments
}

// ToggleActions opens the owner menu; for anyone else it does nothing.
func (i *Item) ToggleActions(post model.FeedPost, viewer model.FeedUser) {
	if !IsOwner(post, viewer) {
		i.showActions = false
		return
	}
	i.showActions = !i.showActions
}

func (i *Item) ActionsOpen() bool {
	return i.showActions
}

// Like forwards straight to the callback. The liked look comes from the post
// record once the controller patches it.
func (i *Item) Like() tea.Cmd {
	if i.callbacks.OnLike == nil {
		return nil
	}
	return i.callbacks.OnLike(i.postId)
}

// SubmitComment sends the draft unless it is blank, then clears it.
func (i *Item) SubmitComment() tea.Cmd {
	text := i.draft.Value()
	if strings.TrimSpace(text) == "" || i.callbacks.OnComment == nil {
		return nil
	}

	cmd := i.callbacks.OnComment(i.postId, text)
	i.draft.Reset()

	return cmd
}

// Delete hands the post to the delete callback and closes the menu. It does
// not ask for confirmation.
func (i *Item) Delete() tea.Cmd {
	if !i.showActions {
		return nil
	}

	i.showActions = false
	if i.callbacks.OnDelete == nil {
		return nil
	}
	return i.callbacks.OnDelete(i.postId)
}

func (i *Item) Draft() string {
	return i.draft.Value()
}

func (i *Item) SetDraft(text string) {
	i.draft.SetValue(text)
}

func (i *Item) FocusDraft() tea.Cmd {
	if !i.showComments {
		return nil
	}
	return i.draft.Focus()
}

func (i *Item) BlurDraft() {
	i.draft.Blur()
}

func (i *Item) DraftFocused() bool {
	return i.draft.Focused()
}

// UpdateDraft feeds a key press to the comment input.
func (i *Item) UpdateDraft(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	i.draft, cmd = i.draft.Update(msg)
	return cmd
}

func IsOwner(post model.FeedPost, viewer model.FeedUser) bool {
	return post.Author != nil && viewer.Id != "" && post.Author.Id == viewer.Id
}
