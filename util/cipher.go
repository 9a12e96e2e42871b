package util

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrDecryptFailed deliberately carries no cause: a caller must not be able
// to tell a wrong key apart from a garbled envelope.
var ErrDecryptFailed = errors.New("payload decryption failed")

// cipherKey derives a fixed-size AES-256 key from an arbitrary secret string.
func cipherKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}

// EncryptPayload marshals v to JSON and seals it with AES-256-GCM under the
// given secret. The envelope is base64(nonce || ciphertext) and carries no
// identity information.
func EncryptPayload(v any, secret string) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(cipherKey(secret))
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, plain, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptPayload opens an envelope produced by EncryptPayload and unmarshals
// the plaintext into v. Every failure mode returns the same ErrDecryptFailed.
func DecryptPayload(envelope, secret string, v any) error {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return ErrDecryptFailed
	}

	block, err := aes.NewCipher(cipherKey(secret))
	if err != nil {
		return ErrDecryptFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return ErrDecryptFailed
	}

	if len(raw) < gcm.NonceSize() {
		return ErrDecryptFailed
	}
	plain, err := gcm.Open(nil, raw[:gcm.NonceSize()], raw[gcm.NonceSize():], nil)
	if err != nil {
		return ErrDecryptFailed
	}

	if err := json.Unmarshal(plain, v); err != nil {
		return ErrDecryptFailed
	}
	return nil
}

// PayloadSecret returns the shared payload encryption key from the
// environment. Empty means the cipher is unusable; callers treat that as a
// configuration fault.
func PayloadSecret() string {
	return getEnv("PAYLOAD_ENCRYPTION_KEY", "")
}
