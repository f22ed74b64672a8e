// Package session resolves the viewer the feed renders for. A Session is
// always one of Loading, Ready or Failed; only Ready carries a viewer.
package session

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ferdian3456/virdanfeed/internal/model"
)

var ErrNoCredentials = errors.New("no access token or username/password configured")

type State int

const (
	StateLoading State = iota
	StateReady
	StateFailed
)

type Session struct {
	state  State
	viewer model.FeedUser
	err    error
}

func Loading() Session {
	return Session{state: StateLoading}
}

func Ready(viewer model.FeedUser) Session {
	return Session{state: StateReady, viewer: viewer}
}

func Failed(err error) Session {
	return Session{state: StateFailed, err: err}
}

func (s Session) State() State {
	return s.state
}

// Viewer returns the signed-in user and true only when the session is Ready.
func (s Session) Viewer() (model.FeedUser, bool) {
	if s.state != StateReady {
		return model.FeedUser{}, false
	}
	return s.viewer, true
}

func (s Session) IsReady() bool {
	return s.state == StateReady
}

func (s Session) Err() error {
	return s.err
}

type Authenticator interface {
	Login(ctx context.Context, username string, password string) (model.TokenResponse, error)
	Me(ctx context.Context) (model.FeedUser, error)
}

type Credentials struct {
	Username    string
	Password    string
	AccessToken string
}

// Resolve logs in when no access token is configured, then loads the viewer.
func Resolve(ctx context.Context, auth Authenticator, creds Credentials) Session {
	if creds.AccessToken == "" {
		if creds.Username == "" || creds.Password == "" {
			return Failed(ErrNoCredentials)
		}

		_, err := auth.Login(ctx, creds.Username, creds.Password)
		if err != nil {
			return Failed(err)
		}
	}

	viewer, err := auth.Me(ctx)
	if err != nil {
		return Failed(err)
	}

	return Ready(viewer)
}

type ResolvedMsg struct {
	Session Session
}

func ResolveCmd(auth Authenticator, creds Credentials, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return ResolvedMsg{Session: Resolve(ctx, auth, creds)}
	}
}
