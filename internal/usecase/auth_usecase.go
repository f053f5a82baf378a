package usecase

import (
	"context"
	"strings"
	"sync"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
	"digitalwardrobe/pkg/logger"
)

// AuthState is the observable state for the login and sign-up screens.
type AuthState struct {
	IsLoading    bool
	IsLoggedIn   bool
	ErrorMessage string
}

// AuthUseCase drives the authentication flows. It mirrors the session
// stream into IsLoggedIn for as long as it lives; Close tears the
// subscription down.
type AuthUseCase struct {
	auth     service.AuthService
	users    repository.UserRepository
	sessions service.SessionStore

	mu     sync.Mutex
	state  AuthState
	events chan Event
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	unsub  func()
	wg     sync.WaitGroup
}

func NewAuthUseCase(auth service.AuthService, users repository.UserRepository, sessions service.SessionStore) *AuthUseCase {
	ctx, cancel := context.WithCancel(context.Background())

	uc := &AuthUseCase{
		auth:     auth,
		users:    users,
		sessions: sessions,
		events:   make(chan Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}

	stream, unsub := sessions.Subscribe()
	uc.unsub = unsub

	uc.wg.Add(1)
	go uc.watchSession(stream)

	return uc
}

func (uc *AuthUseCase) State() AuthState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *AuthUseCase) Events() <-chan Event {
	return uc.events
}

// Login signs the user in. Validation runs synchronously; a failing
// input short-circuits with a local message and issues no backend call.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) {
	input := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := validate.Struct(input); err != nil {
		uc.fail(validationMessage(err))
		return
	}

	if !uc.begin() {
		return
	}

	session, err := uc.auth.SignIn(ctx, input.Email, input.Password)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.succeed(true)
	uc.emit(EventNavigateToHome)
	uc.sessions.Set(session)
}

// SignUp registers a new account and mirrors it into a profile
// document. The profile mirror is best-effort; the account and session
// stand even if the document write fails.
func (uc *AuthUseCase) SignUp(ctx context.Context, email, password, confirmPassword, displayName string) {
	input := signUpInput{
		DisplayName:     strings.TrimSpace(displayName),
		Email:           strings.TrimSpace(email),
		Password:        password,
		ConfirmPassword: confirmPassword,
	}
	if err := validate.Struct(input); err != nil {
		uc.fail(validationMessage(err))
		return
	}

	if !uc.begin() {
		return
	}

	session, err := uc.auth.SignUp(ctx, input.Email, input.Password, input.DisplayName)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}

	profile := &entity.User{
		ID:          session.UID,
		Email:       session.Email,
		DisplayName: session.DisplayName,
	}
	if err := uc.users.Create(ctx, profile); err != nil {
		logger.Warn("Profile mirror for %s failed: %v", session.UID, err)
	}

	uc.succeed(true)
	uc.emit(EventNavigateToHome)
	uc.sessions.Set(session)
}

func (uc *AuthUseCase) ForgotPassword(ctx context.Context, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		uc.fail("Please enter your email")
		return
	}

	if !uc.begin() {
		return
	}

	if err := uc.auth.SendPasswordReset(ctx, email); err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.succeed(uc.State().IsLoggedIn)
	uc.emit(EventPasswordResetSent)
}

// Logout invalidates the local session. Side effect only; nothing to
// wait for.
func (uc *AuthUseCase) Logout() {
	uc.sessions.SignOut()

	uc.mu.Lock()
	uc.state = AuthState{}
	uc.mu.Unlock()

	uc.emit(EventNavigateToLogin)
}

func (uc *AuthUseCase) ClearError() {
	uc.mu.Lock()
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
}

// Close detaches the session subscription and closes the event stream.
func (uc *AuthUseCase) Close() {
	uc.cancel()
	uc.unsub()
	uc.wg.Wait()

	uc.mu.Lock()
	if !uc.closed {
		uc.closed = true
		close(uc.events)
	}
	uc.mu.Unlock()
}

func (uc *AuthUseCase) watchSession(stream <-chan *service.Session) {
	defer uc.wg.Done()
	for {
		select {
		case <-uc.ctx.Done():
			return
		case session, ok := <-stream:
			if !ok {
				return
			}
			uc.mu.Lock()
			uc.state.IsLoggedIn = session != nil
			uc.mu.Unlock()
			if session != nil {
				uc.emit(EventNavigateToHome)
			}
		}
	}
}

// begin flips the state to loading unless another intent is already in
// flight. Single-flight is cooperative: the caller just gives up.
func (uc *AuthUseCase) begin() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state.IsLoading {
		return false
	}
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	return true
}

func (uc *AuthUseCase) succeed(loggedIn bool) {
	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.IsLoggedIn = loggedIn
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
}

func (uc *AuthUseCase) fail(message string) {
	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.ErrorMessage = message
	uc.mu.Unlock()
}

// emit never blocks and never sends after Close.
func (uc *AuthUseCase) emit(event Event) {
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
