package firebase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digitalwardrobe/pkg/errors"
)

type fakeAdmin struct {
	mu          sync.Mutex
	updateCalls int
	updateErr   error
	lastUID     string
}

func (f *fakeAdmin) UpdateUser(ctx context.Context, uid string, params *auth.UserToUpdate) (*auth.UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	f.lastUID = uid
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &auth.UserRecord{}, nil
}

func (f *fakeAdmin) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	return &auth.Token{UID: "u1"}, nil
}

type restCall struct {
	action string
	body   map[string]interface{}
}

func newTestClient(t *testing.T, admin *fakeAdmin, respond func(action string) (int, string)) (*AuthClient, *[]restCall) {
	t.Helper()

	var calls []restCall
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		action := strings.TrimPrefix(r.URL.Path, "/")
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		calls = append(calls, restCall{action: action, body: body})

		status, payload := respond(action)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, payload)
	}))
	t.Cleanup(server.Close)

	client := &AuthClient{
		admin:    admin,
		apiKey:   "test-key",
		endpoint: server.URL,
		httpc:    server.Client(),
	}
	return client, &calls
}

const tokenPayload = `{"localId":"u1","email":"a@b.com","idToken":"id-token","refreshToken":"refresh-token","expiresIn":"3600"}`

func restError(message string) string {
	return fmt.Sprintf(`{"error":{"code":400,"message":"%s"}}`, message)
}

func TestSignInReturnsSession(t *testing.T) {
	client, calls := newTestClient(t, &fakeAdmin{}, func(string) (int, string) {
		return http.StatusOK, tokenPayload
	})

	session, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "u1", session.UID)
	assert.Equal(t, "a@b.com", session.Email)
	assert.Equal(t, "id-token", session.IDToken)
	assert.Equal(t, "refresh-token", session.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 10*time.Second)

	require.Len(t, *calls, 1)
	assert.Equal(t, "accounts:signInWithPassword", (*calls)[0].action)
	assert.Equal(t, true, (*calls)[0].body["returnSecureToken"])
}

func TestSignInErrorMapping(t *testing.T) {
	cases := []struct {
		backend string
		code    string
		message string
	}{
		{"INVALID_LOGIN_CREDENTIALS", errors.CodeInvalidCredentials, "Invalid email or password"},
		{"INVALID_PASSWORD", errors.CodeInvalidCredentials, "Invalid email or password"},
		{"EMAIL_NOT_FOUND", errors.CodeUserNotFound, "No account found with this email"},
		{"USER_DISABLED", errors.CodeUserDisabled, "This account has been disabled"},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Try again later", errors.CodeTooManyRequests, "Too many failed attempts. Please try again later"},
		{"INVALID_EMAIL", errors.CodeInvalidEmail, "Please enter a valid email address"},
		{"SOMETHING_ELSE", errors.CodeUnknown, "auth backend: SOMETHING_ELSE"},
	}

	for _, tc := range cases {
		t.Run(tc.backend, func(t *testing.T) {
			client, _ := newTestClient(t, &fakeAdmin{}, func(string) (int, string) {
				return http.StatusBadRequest, restError(tc.backend)
			})

			_, err := client.SignIn(context.Background(), "a@b.com", "secret")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.code), "expected code %s, got %v", tc.code, err)
			assert.Equal(t, tc.message, errors.Message(err))
		})
	}
}

func TestSignInNetworkFailure(t *testing.T) {
	client := &AuthClient{
		admin:    &fakeAdmin{},
		apiKey:   "test-key",
		endpoint: "http://127.0.0.1:1", // nothing listens here
		httpc:    &http.Client{Timeout: time.Second},
	}

	_, err := client.SignIn(context.Background(), "a@b.com", "secret")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeNetworkError))
}

func TestSignUpSetsDisplayNameSecondStep(t *testing.T) {
	admin := &fakeAdmin{}
	client, calls := newTestClient(t, admin, func(string) (int, string) {
		return http.StatusOK, tokenPayload
	})

	session, err := client.SignUp(context.Background(), "a@b.com", "abcdef", "A")
	require.NoError(t, err)

	require.Len(t, *calls, 1)
	assert.Equal(t, "accounts:signUp", (*calls)[0].action)
	assert.Equal(t, 1, admin.updateCalls, "display name is a single follow-up update")
	assert.Equal(t, "u1", admin.lastUID)
	assert.Equal(t, "A", session.DisplayName)
}

func TestSignUpDisplayNameFailureIsNotRolledBack(t *testing.T) {
	admin := &fakeAdmin{updateErr: fmt.Errorf("backend unavailable")}
	client, calls := newTestClient(t, admin, func(string) (int, string) {
		return http.StatusOK, tokenPayload
	})

	_, err := client.SignUp(context.Background(), "a@b.com", "abcdef", "A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeInternal))

	// The account-creation call went through; nothing compensates for it.
	require.Len(t, *calls, 1)
	assert.Equal(t, "accounts:signUp", (*calls)[0].action)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	client, _ := newTestClient(t, &fakeAdmin{}, func(string) (int, string) {
		return http.StatusBadRequest, restError("EMAIL_EXISTS")
	})

	_, err := client.SignUp(context.Background(), "a@b.com", "abcdef", "A")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeEmailExists))
}

func TestSendPasswordReset(t *testing.T) {
	client, calls := newTestClient(t, &fakeAdmin{}, func(string) (int, string) {
		return http.StatusOK, `{"email":"a@b.com"}`
	})

	require.NoError(t, client.SendPasswordReset(context.Background(), "a@b.com"))

	require.Len(t, *calls, 1)
	assert.Equal(t, "accounts:sendOobCode", (*calls)[0].action)
	assert.Equal(t, "PASSWORD_RESET", (*calls)[0].body["requestType"])
}

func TestMapAuthErrorTable(t *testing.T) {
	assert.Equal(t, errors.CodeEmailExists, mapAuthError("EMAIL_EXISTS").Code)
	assert.Equal(t, errors.CodeWeakPassword, mapAuthError("WEAK_PASSWORD : Password should be at least 6 characters").Code)
	assert.Equal(t, errors.CodeUserNotFound, mapAuthError("USER_NOT_FOUND").Code)
	assert.Equal(t, errors.CodeInvalidEmail, mapAuthError("MISSING_EMAIL").Code)
	assert.Equal(t, errors.CodeUnknown, mapAuthError("").Code)
}
