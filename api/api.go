// Package api provides a client for the AfroRhythm REST API.
//
// Every endpoint answers with the same envelope: a success flag, a payload on
// success, and a human-readable message on failure. Any non-success envelope,
// including transport failures, is reported as an error to the caller.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/afrorhythm/afro/auth"
	"github.com/afrorhythm/afro/constant"
	"github.com/afrorhythm/afro/key"
	"github.com/afrorhythm/afro/log"
	"github.com/afrorhythm/afro/network"
	"github.com/spf13/viper"
)

// ErrUnauthorized indicates a missing or invalid session credential.
// It is surfaced distinctly so callers can prompt for login instead of
// showing a generic failure.
var ErrUnauthorized = errors.New("unauthorized")

// envelope is the uniform response wrapper used by every AfroRhythm endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// TokenFunc supplies the session credential for authenticated requests.
type TokenFunc func() (string, error)

// Client talks to the AfroRhythm API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

// NewClient builds a Client from the global configuration, the shared HTTP
// client, and the keyring-stored session credential.
func NewClient() *Client {
	return NewClientWith(viper.GetString(key.APIURL), network.Client, auth.Token)
}

// NewClientWith builds a Client with explicit collaborators. Used by tests.
func NewClientWith(baseURL string, httpClient *http.Client, token TokenFunc) *Client {
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		token:   token,
	}
}

// request performs a single API call and decodes the success payload into out.
// A nil out discards the payload. authenticated requests carry the bearer
// token; its absence short-circuits to ErrUnauthorized without a network call.
func (c *Client) request(method, path string, body any, out any, authenticated bool) error {
	var buf *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		buf = bytes.NewBuffer(payload)
	} else {
		buf = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)

	if authenticated {
		token, err := c.token()
		if err != nil {
			return fmt.Errorf("%w: %s", ErrUnauthorized, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Errorf("%s %s: %v", method, path, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode envelope: %w", method, path, err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		log.Warnf("%s %s failed: %s", method, path, msg)
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode payload: %w", method, path, err)
		}
	}

	return nil
}

// Me resolves the session credential to the current user's identity.
func (c *Client) Me() (*auth.Session, error) {
	var session auth.Session
	if err := c.request(http.MethodGet, "/me", nil, &session, true); err != nil {
		return nil, err
	}
	return &session, nil
}
