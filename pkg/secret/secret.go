// Package secret encrypts credential material at rest with versioned keys.
//
// A key list is a whitespace separated string of base64 keys, oldest first.
// The newest key encrypts; any key whose version matches a ciphertext can
// decrypt it, so keys can be rotated without re-running setup.
package secret

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

// CipherVersion tags every ciphertext produced by this package.
const CipherVersion = "xc20p1"

// minDistinctBytes rejects keys with too little variety, e.g. all-zero keys.
const minDistinctBytes = 16

var (
	ErrInvalidKey          = errors.New("invalid encryption key")
	ErrNoKeys              = errors.New("no encryption keys configured")
	ErrUnknownKeyVersion   = errors.New("no key matches ciphertext version")
	ErrMalformedCiphertext = errors.New("malformed ciphertext")
)

type key struct {
	version  int
	material []byte
}

// Encryptor holds a rotated set of keys.
type Encryptor struct {
	keys []key
}

// NewEncryptor parses a key list. Versions are assigned by position starting at 1.
func NewEncryptor(keyList string) (*Encryptor, error) {
	fields := strings.Fields(keyList)
	if len(fields) == 0 {
		return nil, ErrNoKeys
	}

	e := &Encryptor{}
	for i, f := range fields {
		material, err := decodeKey(f)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", i+1, err)
		}
		e.keys = append(e.keys, key{version: i + 1, material: material})
	}
	return e, nil
}

// KeyVersion returns the version used for new ciphertexts.
func (e *Encryptor) KeyVersion() int {
	return e.keys[len(e.keys)-1].version
}

// Encrypt seals plaintext with the newest key.
// Output format: "<keyVersion>:<cipherVersion>:<base64(nonce||ciphertext)>".
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	k := e.keys[len(e.keys)-1]
	aead, err := chacha20poly1305.NewX(k.material)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), additionalData(k.version))
	return fmt.Sprintf("%d:%s:%s", k.version, CipherVersion, base64.StdEncoding.EncodeToString(sealed)), nil
}

// Decrypt opens a ciphertext produced by Encrypt with any configured key version.
func (e *Encryptor) Decrypt(ciphertext string) (string, error) {
	parts := strings.SplitN(ciphertext, ":", 3)
	if len(parts) != 3 || parts[1] != CipherVersion {
		return "", ErrMalformedCiphertext
	}

	version, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: bad key version %q", ErrMalformedCiphertext, parts[0])
	}

	var material []byte
	for _, k := range e.keys {
		if k.version == version {
			material = k.material
			break
		}
	}
	if material == nil {
		return "", fmt.Errorf("%w: %d", ErrUnknownKeyVersion, version)
	}

	sealed, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCiphertext, err)
	}

	aead, err := chacha20poly1305.NewX(material)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(sealed) < aead.NonceSize()+aead.Overhead() {
		return "", ErrMalformedCiphertext
	}

	nonce, body := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, body, additionalData(version))
	if err != nil {
		return "", fmt.Errorf("failed to decrypt: %w", err)
	}
	return string(plain), nil
}

// IsEncrypted reports whether value looks like output of Encrypt.
func IsEncrypted(value string) bool {
	parts := strings.SplitN(value, ":", 3)
	if len(parts) != 3 || parts[1] != CipherVersion {
		return false
	}
	_, err := strconv.Atoi(parts[0])
	return err == nil
}

// ValidateKey checks that k is base64 of exactly 32 bytes with enough distinct values.
func ValidateKey(k string) error {
	_, err := decodeKey(k)
	return err
}

// GenerateKey returns a fresh random key in the form accepted by ValidateKey.
func GenerateKey() (string, error) {
	for {
		buf := make([]byte, chacha20poly1305.KeySize)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate key: %w", err)
		}
		encoded := base64.StdEncoding.EncodeToString(buf)
		if ValidateKey(encoded) == nil {
			return encoded, nil
		}
	}
}

func decodeKey(k string) ([]byte, error) {
	if k == "" || strings.ContainsAny(k, " \t\r\n") {
		return nil, fmt.Errorf("%w: empty or contains whitespace", ErrInvalidKey)
	}

	material, err := base64.StdEncoding.DecodeString(k)
	if err != nil {
		return nil, fmt.Errorf("%w: not base64", ErrInvalidKey)
	}
	if len(material) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, chacha20poly1305.KeySize, len(material))
	}

	seen := make(map[byte]struct{}, len(material))
	for _, b := range material {
		seen[b] = struct{}{}
	}
	if len(seen) < minDistinctBytes {
		return nil, fmt.Errorf("%w: too little entropy", ErrInvalidKey)
	}
	return material, nil
}

func additionalData(version int) []byte {
	return []byte(strconv.Itoa(version) + ":" + CipherVersion)
}
