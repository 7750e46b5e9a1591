package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

var encryptionKey []byte

// InitializeEncryption sets the AES-256 key used for bank details at rest.
func InitializeEncryption(key string) error {
	if len(key) != 32 {
		return fmt.Errorf("encryption key must be exactly 32 characters, got %d", len(key))
	}
	encryptionKey = []byte(key)
	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ErrAccountTampered is returned when a stored account number fails authentication.
var ErrAccountTampered = errors.New("account number ciphertext failed authentication")

func accountCipher() (cipher.AEAD, error) {
	if encryptionKey == nil {
		return nil, errors.New("encryption key not initialized")
	}
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// EncryptAccountNumber seals a bank account number with AES-GCM. The output is
// base64(nonce || ciphertext || tag); an empty number stays empty.
func EncryptAccountNumber(number string) (string, error) {
	aead, err := accountCipher()
	if err != nil {
		return "", err
	}
	if number == "" {
		return "", nil
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(number)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := aead.Seal(nonce, nonce, []byte(number), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// DecryptAccountNumber opens a value produced by EncryptAccountNumber.
func DecryptAccountNumber(stored string) (string, error) {
	aead, err := accountCipher()
	if err != nil {
		return "", err
	}
	if stored == "" {
		return "", nil
	}

	raw, err := base64.URLEncoding.DecodeString(stored)
	if err != nil {
		return "", fmt.Errorf("decode account number: %w", err)
	}
	if len(raw) < aead.NonceSize()+aead.Overhead() {
		return "", ErrAccountTampered
	}

	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrAccountTampered
	}
	return string(plain), nil
}
