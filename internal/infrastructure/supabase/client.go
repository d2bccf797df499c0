package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// Client talks to the hosted GoTrue auth API with the anonymous (public)
// key. It returns provider facts only; response shaping and error
// genericization happen in the handlers.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds an anon-key client. baseURL is the project URL without
// trailing slash, e.g. https://xyzcompany.supabase.co
func NewClient(baseURL, anonKey string) (*Client, error) {
	if baseURL == "" || anonKey == "" {
		return nil, errors.New("supabase url and anon key are required")
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  anonKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// VerifyOTP presents a one-time token (type "invite", "recovery", ...) for
// verification and returns the session with the associated user. The
// provider permits repeated verification of a still-valid invite token, which
// the setup-password flow relies on.
func (c *Client) VerifyOTP(ctx context.Context, otpType, tokenHash string) (*Session, error) {
	body := map[string]string{"type": otpType, "token_hash": tokenHash}
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/auth/v1/verify", "", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// SignUp registers a new user with optional metadata. Depending on project
// settings the provider may require email confirmation before a session is
// issued, so only the user is returned.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata map[string]any) (*User, error) {
	body := map[string]any{"email": email, "password": password}
	if len(metadata) > 0 {
		body["data"] = metadata
	}
	// Signup responses carry the user either at the top level or nested
	// under "user" depending on confirmation settings.
	var raw struct {
		User
		Nested *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &raw); err != nil {
		return nil, err
	}
	if raw.Nested != nil {
		return raw.Nested, nil
	}
	u := raw.User
	return &u, nil
}

// SignInWithPassword performs the password grant and returns a session.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var sess Session
	if err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// GetUser fetches the user behind a user-scoped access token.
func (c *Client) GetUser(ctx context.Context, userJWT string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/v1/user", userJWT, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// do issues one request. bearer defaults to the api key when empty, which is
// what GoTrue expects for anonymous operations.
func (c *Client) do(ctx context.Context, method, path, bearer string, body, out any) error {
	return doRequest(ctx, c.http, c.baseURL, c.apiKey, method, path, bearer, body, out)
}

func doRequest(ctx context.Context, hc *http.Client, baseURL, apiKey, method, path, bearer string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", apiKey)
	if bearer == "" {
		bearer = apiKey
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return err
	}
	if res.StatusCode >= 400 {
		return decodeAPIError(res.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
