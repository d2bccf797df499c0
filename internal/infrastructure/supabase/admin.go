package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// AdminClient talks to the GoTrue admin API with the service-role key.
// Keep it out of anything client-facing: the elevated key must never be used
// for verification calls or exposed in responses.
type AdminClient struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewAdminClient(baseURL, serviceRoleKey string) (*AdminClient, error) {
	if baseURL == "" || serviceRoleKey == "" {
		return nil, errors.New("supabase url and service role key are required")
	}
	return &AdminClient{
		baseURL:    baseURL,
		serviceKey: serviceRoleKey,
		http:       &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// UpdateUserByID applies a partial update to a user record. Setting a
// password through here is what semantically redeems an invitation.
func (a *AdminClient) UpdateUserByID(ctx context.Context, userID string, attrs UserAttributes) (*User, error) {
	var u User
	path := "/auth/v1/admin/users/" + url.PathEscape(userID)
	if err := a.do(ctx, http.MethodPut, path, attrs, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// InviteUserByEmail creates the user and emails them an invitation link. The
// metadata lands in user_metadata and survives until password setup.
func (a *AdminClient) InviteUserByEmail(ctx context.Context, email string, metadata map[string]any, redirectTo string) (*User, error) {
	body := map[string]any{"email": email}
	if len(metadata) > 0 {
		body["data"] = metadata
	}
	path := "/auth/v1/invite"
	if redirectTo != "" {
		path += "?redirect_to=" + url.QueryEscape(redirectTo)
	}
	var u User
	if err := a.do(ctx, http.MethodPost, path, body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *AdminClient) do(ctx context.Context, method, path string, body, out any) error {
	return doRequest(ctx, a.http, a.baseURL, a.serviceKey, method, path, a.serviceKey, body, out)
}
