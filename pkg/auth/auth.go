// Package auth shapes stored credentials into request tokens.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// Provider supplies the credential token attached to outgoing requests.
type Provider interface {
	IsAuthenticated() bool
	CredentialToken() (string, error)
	Username() (string, error)
}

// NewCredential encodes username and password as a Basic auth token.
func NewCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// DecodeCredential splits a Basic token back into username and password.
// A leading "Basic " prefix is accepted.
func DecodeCredential(token string) (string, string, error) {
	encoded := strings.TrimPrefix(strings.TrimSpace(token), "Basic ")

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode Basic auth: %w", err)
	}

	user, pass, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", fmt.Errorf("invalid Basic auth format (expected username:password)")
	}
	return user, pass, nil
}

// Anonymous never authenticates. Requests go out without credentials.
type Anonymous struct{}

func (Anonymous) IsAuthenticated() bool { return false }

func (Anonymous) CredentialToken() (string, error) { return "", nil }

func (Anonymous) Username() (string, error) { return "", ErrNotAuthenticated }
