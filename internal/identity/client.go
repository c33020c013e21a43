package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/khidma-app/khidma-admin/internal/config"
)

// Client talks to a GoTrue-compatible auth service. The service-role key
// authorizes the /admin endpoints; the JWT secret lets UserFromToken verify
// access tokens locally instead of a network round-trip per request.
type Client struct {
	baseURL    string
	serviceKey string
	jwtSecret  string
	HttpClient *http.Client
}

var _ Provider = (*Client)(nil)

func NewClient(cfg config.Identity) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		serviceKey: cfg.ServiceKey,
		jwtSecret:  cfg.JwtSecret,
		HttpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// userPayload is the provider's user representation on the wire.
type userPayload struct {
	Id               string                 `json:"id"`
	Phone            string                 `json:"phone"`
	Email            string                 `json:"email"`
	EmailConfirmedAt *time.Time             `json:"email_confirmed_at"`
	PhoneConfirmedAt *time.Time             `json:"phone_confirmed_at"`
	UserMetadata     map[string]interface{} `json:"user_metadata"`
}

func (p userPayload) toUser() User {
	return User{
		Id:               p.Id,
		Phone:            p.Phone,
		Email:            p.Email,
		EmailConfirmedAt: p.EmailConfirmedAt,
		PhoneConfirmedAt: p.PhoneConfirmedAt,
		Metadata:         p.UserMetadata,
	}
}

func (c *Client) SignInWithPassword(ctx context.Context, phone, password string) (Session, error) {
	body := map[string]string{"phone": phone, "password": password}

	var out struct {
		AccessToken  string      `json:"access_token"`
		RefreshToken string      `json:"refresh_token"`
		User         userPayload `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", c.serviceKey, body, &out); err != nil {
		return Session{}, err
	}
	if out.AccessToken == "" || out.User.Id == "" {
		return Session{}, &Error{Message: "provider returned no session", StatusCode: http.StatusBadGateway}
	}
	return Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User.toUser(),
	}, nil
}

// UserFromToken resolves the identity behind an access token. The token is
// provider-issued and HS256-signed with the shared secret, so verification
// happens locally; any failure means the session is invalid.
func (c *Client) UserFromToken(ctx context.Context, accessToken string) (User, error) {
	if accessToken == "" {
		return User{}, &Error{Message: "missing access token", StatusCode: http.StatusUnauthorized}
	}
	return decodeAccessToken(c.jwtSecret, accessToken)
}

// SignOut revokes the token's session at the provider.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

func (c *Client) AdminCreateUser(ctx context.Context, params CreateUserParams) (User, error) {
	body := map[string]interface{}{
		"email":         params.Email,
		"password":      params.Password,
		"email_confirm": params.EmailConfirm,
	}
	if params.Phone != "" {
		body["phone"] = params.Phone
	}
	if len(params.Metadata) > 0 {
		body["user_metadata"] = params.Metadata
	}

	var out userPayload
	if err := c.do(ctx, http.MethodPost, "/admin/users", c.serviceKey, body, &out); err != nil {
		return User{}, err
	}
	return out.toUser(), nil
}

func (c *Client) AdminGetUser(ctx context.Context, id string) (User, error) {
	var out userPayload
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id, c.serviceKey, nil, &out); err != nil {
		return User{}, err
	}
	return out.toUser(), nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, id string, params UpdateUserParams) (User, error) {
	body := map[string]interface{}{}
	if params.Password != nil {
		body["password"] = *params.Password
	}
	if params.EmailConfirm != nil {
		body["email_confirm"] = *params.EmailConfirm
	}
	if params.PhoneConfirm != nil {
		body["phone_confirm"] = *params.PhoneConfirm
	}
	if params.Metadata != nil {
		body["user_metadata"] = params.Metadata
	}

	var out userPayload
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+id, c.serviceKey, body, &out); err != nil {
		return User{}, err
	}
	return out.toUser(), nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id, c.serviceKey, nil, nil)
}

// do is the single helper for provider requests. Non-2xx responses are
// decoded into *Error carrying the provider's message verbatim, which
// ClassifyFailure later inspects.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal provider request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseProviderError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider response: %w", err)
	}
	return nil
}

// parseProviderError extracts the human-readable message from the several
// error shapes the provider uses.
func parseProviderError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		switch {
		case payload.ErrorDescription != "":
			message = payload.ErrorDescription
		case payload.Msg != "":
			message = payload.Msg
		case payload.Message != "":
			message = payload.Message
		case payload.Error != "":
			message = payload.Error
		}
	}
	if message == "" {
		message = string(raw)
	}
	return &Error{Message: message, StatusCode: resp.StatusCode}
}
