package usecase

import (
	"context"
	"strings"
	"sync"

	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
	"digitalwardrobe/pkg/logger"
)

type ProfileState struct {
	IsLoading      bool
	DisplayName    string
	Email          string
	FirstName      string
	LastName       string
	Bio            string
	SuccessMessage string
	ErrorMessage   string
}

// ProfileUseCase backs the profile screen: current account data plus
// display-name editing.
type ProfileUseCase struct {
	auth     service.AuthService
	users    repository.UserRepository
	sessions service.SessionStore

	mu     sync.Mutex
	state  ProfileState
	events chan Event
	closed bool
}

func NewProfileUseCase(auth service.AuthService, users repository.UserRepository, sessions service.SessionStore) *ProfileUseCase {
	uc := &ProfileUseCase{
		auth:     auth,
		users:    users,
		sessions: sessions,
		events:   make(chan Event, eventBuffer),
	}

	if session := sessions.Current(); session != nil {
		uc.state.DisplayName = session.DisplayName
		uc.state.Email = session.Email
	}

	return uc
}

func (uc *ProfileUseCase) State() ProfileState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *ProfileUseCase) Events() <-chan Event {
	return uc.events
}

// Load pulls the profile document behind the session. A missing
// document is not an error; the session fields stand in.
func (uc *ProfileUseCase) Load(ctx context.Context) {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}

	if !uc.begin() {
		return
	}

	profile, err := uc.users.GetByID(ctx, session.UID)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.Email = session.Email
	uc.state.DisplayName = session.DisplayName
	if profile != nil {
		if profile.DisplayName != "" {
			uc.state.DisplayName = profile.DisplayName
		}
		uc.state.FirstName = profile.FirstName
		uc.state.LastName = profile.LastName
		uc.state.Bio = profile.Bio
	}
	uc.mu.Unlock()
}

// UpdateDisplayName changes the name on the auth account and mirrors it
// into the profile document. The mirror is best-effort.
func (uc *ProfileUseCase) UpdateDisplayName(ctx context.Context, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		uc.fail("Name cannot be empty")
		return
	}

	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}

	if !uc.begin() {
		return
	}

	if err := uc.auth.UpdateDisplayName(ctx, session.UID, name); err != nil {
		uc.fail(errors.Message(err))
		return
	}

	if err := uc.users.Update(ctx, session.UID, map[string]interface{}{"displayName": name}); err != nil {
		logger.Warn("Display name mirror for %s failed: %v", session.UID, err)
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.DisplayName = name
	uc.state.SuccessMessage = "Name updated successfully"
	uc.mu.Unlock()

	// Keep the cached session in step with the account.
	updated := *session
	updated.DisplayName = name
	uc.sessions.Set(&updated)
}

func (uc *ProfileUseCase) Logout() {
	uc.sessions.SignOut()

	uc.mu.Lock()
	uc.state = ProfileState{}
	uc.mu.Unlock()

	uc.emit(EventNavigateToLogin)
}

func (uc *ProfileUseCase) ClearMessage() {
	uc.mu.Lock()
	uc.state.SuccessMessage = ""
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
}

func (uc *ProfileUseCase) Close() {
	uc.mu.Lock()
	if !uc.closed {
		uc.closed = true
		close(uc.events)
	}
	uc.mu.Unlock()
}

func (uc *ProfileUseCase) begin() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state.IsLoading {
		return false
	}
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	uc.state.SuccessMessage = ""
	return true
}

func (uc *ProfileUseCase) fail(message string) {
	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.ErrorMessage = message
	uc.mu.Unlock()
}

func (uc *ProfileUseCase) emit(event Event) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.closed {
		return
	}
	select {
	case uc.events <- event:
	default:
	}
}
