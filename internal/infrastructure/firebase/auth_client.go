package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"

	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
	"digitalwardrobe/pkg/logger"
)

const identityToolkitEndpoint = "https://identitytoolkit.googleapis.com/v1"

// adminAuthClient is the slice of *auth.Client the gateway needs.
type adminAuthClient interface {
	UpdateUser(ctx context.Context, uid string, params *auth.UserToUpdate) (*auth.UserRecord, error)
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// AuthClient wraps Firebase Auth: email/password flows go through the
// Identity Toolkit REST API keyed by the web API key, privileged profile
// updates and token verification go through the admin SDK.
type AuthClient struct {
	admin    adminAuthClient
	apiKey   string
	endpoint string
	httpc    *http.Client
}

func NewAuthClient(admin *auth.Client, apiKey string) *AuthClient {
	return &AuthClient{
		admin:    admin,
		apiKey:   apiKey,
		endpoint: identityToolkitEndpoint,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

type tokenResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type restErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *AuthClient) SignIn(ctx context.Context, email, password string) (*service.Session, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var resp tokenResponse
	if err := c.post(ctx, "accounts:signInWithPassword", body, &resp); err != nil {
		return nil, err
	}

	return c.sessionFrom(&resp), nil
}

func (c *AuthClient) SignUp(ctx context.Context, email, password, displayName string) (*service.Session, error) {
	body := map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var resp tokenResponse
	if err := c.post(ctx, "accounts:signUp", body, &resp); err != nil {
		return nil, err
	}

	// Display name is a second step. If it fails the account already
	// exists; nothing is rolled back.
	if err := c.UpdateDisplayName(ctx, resp.LocalID, displayName); err != nil {
		logger.Warn("Account %s created but display name update failed: %v", resp.LocalID, err)
		return nil, errors.Internal("Account created but setting the display name failed", err)
	}

	session := c.sessionFrom(&resp)
	session.DisplayName = displayName
	return session, nil
}

func (c *AuthClient) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]interface{}{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return c.post(ctx, "accounts:sendOobCode", body, nil)
}

func (c *AuthClient) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	params := (&auth.UserToUpdate{}).DisplayName(displayName)
	if _, err := c.admin.UpdateUser(ctx, uid, params); err != nil {
		return errors.Internal("Failed to update display name", err)
	}
	return nil
}

func (c *AuthClient) VerifyToken(ctx context.Context, idToken string) (string, error) {
	token, err := c.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.InvalidCredentials(err)
	}
	return token.UID, nil
}

func (c *AuthClient) sessionFrom(resp *tokenResponse) *service.Session {
	session := &service.Session{
		UID:          resp.LocalID,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
	}
	if seconds, err := strconv.Atoi(resp.ExpiresIn); err == nil && seconds > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(seconds) * time.Second)
	}
	return session
}

func (c *AuthClient) post(ctx context.Context, action string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Unknown(err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", c.endpoint, action, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Unknown(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Network(err)
	}

	if resp.StatusCode != http.StatusOK {
		var restErr restErrorResponse
		if err := json.Unmarshal(data, &restErr); err != nil || restErr.Error.Message == "" {
			return errors.Unknown(fmt.Errorf("auth request failed with status %d", resp.StatusCode))
		}
		return mapAuthError(restErr.Error.Message)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Unknown(err)
		}
	}
	return nil
}

// mapAuthError translates Identity Toolkit error messages into the fixed
// user-facing categories. Messages sometimes carry a suffix after the
// code ("TOO_MANY_ATTEMPTS_TRY_LATER : ..."), hence the prefix match.
func mapAuthError(message string) *errors.AppError {
	cause := fmt.Errorf("auth backend: %s", message)
	switch {
	case strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "INVALID_PASSWORD"):
		return errors.InvalidCredentials(cause)
	case strings.HasPrefix(message, "EMAIL_EXISTS"):
		return errors.EmailExists(cause)
	case strings.HasPrefix(message, "WEAK_PASSWORD"):
		return errors.WeakPassword(cause)
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "USER_NOT_FOUND"):
		return errors.UserNotFound(cause)
	case strings.HasPrefix(message, "USER_DISABLED"):
		return errors.UserDisabled(cause)
	case strings.HasPrefix(message, "TOO_MANY_ATTEMPTS_TRY_LATER"):
		return errors.TooManyRequests(cause)
	case strings.HasPrefix(message, "INVALID_EMAIL"),
		strings.HasPrefix(message, "MISSING_EMAIL"):
		return errors.InvalidEmail(cause)
	default:
		return errors.Unknown(cause)
	}
}
