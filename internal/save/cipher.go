package save

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// Cipher seals and opens the word list of an encrypted record.
// Any algorithm may back it; the record only stores the opaque bytes.
type Cipher interface {
	Encrypt(plaintext []byte) ([]byte, error)
	Decrypt(ciphertext []byte) ([]byte, error)
}

// CipherFuncs adapts a pair of functions to Cipher.
type CipherFuncs struct {
	EncryptFunc func([]byte) ([]byte, error)
	DecryptFunc func([]byte) ([]byte, error)
}

func (f CipherFuncs) Encrypt(b []byte) ([]byte, error) { return f.EncryptFunc(b) }
func (f CipherFuncs) Decrypt(b []byte) ([]byte, error) { return f.DecryptFunc(b) }

// scrypt parameters for passphrase key derivation.
const (
	saltSize = 16
	scryptN  = 1 << 15
	scryptR  = 8
	scryptP  = 1
)

var errShortPayload = errors.New("payload too short")

// PassphraseCipher derives an XChaCha20-Poly1305 key from a passphrase with
// scrypt. Output layout: salt | nonce | sealed data.
type PassphraseCipher struct {
	passphrase []byte
}

// NewPassphraseCipher returns a Cipher keyed by passphrase.
func NewPassphraseCipher(passphrase string) (*PassphraseCipher, error) {
	if passphrase == "" {
		return nil, errors.New("empty passphrase")
	}
	return &PassphraseCipher{passphrase: []byte(passphrase)}, nil
}

func (c *PassphraseCipher) key(salt []byte) ([]byte, error) {
	return scrypt.Key(c.passphrase, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
}

// Encrypt seals plaintext under a fresh salt and nonce.
func (c *PassphraseCipher) Encrypt(plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	key, err := c.key(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt with the same passphrase.
func (c *PassphraseCipher) Decrypt(data []byte) ([]byte, error) {
	if len(data) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, errShortPayload
	}
	salt := data[:saltSize]
	nonce := data[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	key, err := c.key(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, nonce, data[saltSize+chacha20poly1305.NonceSizeX:], nil)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	return plain, nil
}
