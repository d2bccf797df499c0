package supabase

import (
	"encoding/json"
	"fmt"
)

// User is the provider's projection of an auth user. Read-only here; all
// mutation goes through the admin endpoints.
type User struct {
	ID           string         `json:"id"`
	Aud          string         `json:"aud"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Role         string         `json:"role"`
	UserMetadata map[string]any `json:"user_metadata"`
	AppMetadata  map[string]any `json:"app_metadata"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// Session is returned by token-issuing operations (OTP verification,
// password grant).
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// UserAttributes is the partial-update body for the admin user endpoint.
// Only non-zero fields are sent.
type UserAttributes struct {
	Password     string         `json:"password,omitempty"`
	Email        string         `json:"email,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// APIError is a decoded provider error. Its message must never reach a
// client unfiltered; handlers log it and return a generic message.
type APIError struct {
	Status    int    `json:"-"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"msg"`
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("supabase: %s (%s, status %d)", e.Message, e.ErrorCode, e.Status)
	}
	return fmt.Sprintf("supabase: %s (status %d)", e.Message, e.Status)
}

// decodeAPIError tolerates the several error shapes GoTrue has shipped over
// time: {msg}, {message}, {error, error_description}.
func decodeAPIError(status int, body []byte) *APIError {
	var raw struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Err              string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error_code"`
	}
	out := &APIError{Status: status, Message: "request failed"}
	if err := json.Unmarshal(body, &raw); err != nil {
		return out
	}
	out.ErrorCode = raw.ErrorCode
	switch {
	case raw.Msg != "":
		out.Message = raw.Msg
	case raw.Message != "":
		out.Message = raw.Message
	case raw.ErrorDescription != "":
		out.Message = raw.ErrorDescription
	case raw.Err != "":
		out.Message = raw.Err
	}
	return out
}
