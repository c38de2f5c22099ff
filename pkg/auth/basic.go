package auth

import (
	"fmt"
	"sync"

	"github.com/gojira/gojira/pkg/config"
	"github.com/gojira/gojira/pkg/secret"
)

// CredentialSource is the part of the credential store a provider reads.
type CredentialSource interface {
	IsConfigured() bool
	Load() (*config.File, error)
}

var _ Provider = (*Basic)(nil)

// Basic reads the stored Basic token once and reuses it for every request.
// Later changes to the store are not observed.
type Basic struct {
	source CredentialSource

	once     sync.Once
	token    string
	username string
	err      error
}

// NewBasic creates a provider backed by source.
func NewBasic(source CredentialSource) *Basic {
	return &Basic{source: source}
}

func (b *Basic) IsAuthenticated() bool {
	return b.source.IsConfigured()
}

func (b *Basic) CredentialToken() (string, error) {
	b.resolve()
	return b.token, b.err
}

func (b *Basic) Username() (string, error) {
	b.resolve()
	return b.username, b.err
}

func (b *Basic) resolve() {
	b.once.Do(func() {
		f, err := b.source.Load()
		if err != nil {
			b.err = err
			return
		}

		token := f.Auth.TokenSecret
		if f.Auth.SecurityMode && token != "" {
			token, err = unseal(token, f.Options.EncryptionKey)
			if err != nil {
				b.err = err
				return
			}
		}

		b.token = token
		b.username = f.Auth.Username
	})
}

func unseal(token, keys string) (string, error) {
	enc, err := secret.NewEncryptor(keys)
	if err != nil {
		return "", fmt.Errorf("failed to load encryption keys: %w", err)
	}
	plain, err := enc.Decrypt(token)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential token: %w", err)
	}
	return plain, nil
}
