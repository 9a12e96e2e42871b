package util

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"log"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSigningKey is returned when tokens are issued or verified before key
// material was configured. This is a server configuration fault (500), never
// a caller fault.
var ErrNoSigningKey = errors.New("jwt signing key not configured")

// The signing setup is an explicit variant: either a shared HS256 secret or
// an RS256 key pair. In symmetric mode the verification key is the signing
// secret itself, so issue and verify share one secret across services.
type keyMode int

const (
	modeUnset keyMode = iota
	modeSymmetric
	modeAsymmetric
)

// Loaded once at startup, read-only afterwards.
var (
	mode       keyMode
	hmacSecret []byte
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
)

// InitAuthKeys loads signing key material from the environment.
// RSA_PRIVATE_KEY/RSA_PUBLIC_KEY (PEM) select RS256; otherwise JWT_SECRET
// selects HS256. Neither configured is a fatal configuration error.
func InitAuthKeys() error {
	if privPEM := getEnv("RSA_PRIVATE_KEY", ""); privPEM != "" {
		return initRSAKeys(privPEM, getEnv("RSA_PUBLIC_KEY", ""))
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return ErrNoSigningKey
	}

	hmacSecret = []byte(secret)
	mode = modeSymmetric
	log.Println("JWT signing configured with shared HS256 secret")
	return nil
}

func initRSAKeys(privPEM, pubPEM string) error {
	if pubPEM == "" {
		return errors.New("RSA_PRIVATE_KEY set but RSA_PUBLIC_KEY missing")
	}

	// Handle both \n literals and actual newlines in env values
	privPEM = strings.ReplaceAll(privPEM, "\\n", "\n")
	pubPEM = strings.ReplaceAll(pubPEM, "\\n", "\n")

	privBlock, _ := pem.Decode([]byte(privPEM))
	if privBlock == nil {
		return errors.New("failed to decode RSA_PRIVATE_KEY PEM")
	}
	priv, err := x509.ParsePKCS1PrivateKey(privBlock.Bytes)
	if err != nil {
		return errors.New("failed to parse private key: " + err.Error())
	}

	pubBlock, _ := pem.Decode([]byte(pubPEM))
	if pubBlock == nil {
		return errors.New("failed to decode RSA_PUBLIC_KEY PEM")
	}
	pub, err := x509.ParsePKIXPublicKey(pubBlock.Bytes)
	if err != nil {
		return errors.New("failed to parse public key: " + err.Error())
	}
	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return errors.New("RSA_PUBLIC_KEY is not an RSA key")
	}

	privateKey = priv
	publicKey = rsaPub
	mode = modeAsymmetric
	log.Println("JWT signing configured with RS256 key pair")
	return nil
}

func signingMethod() jwt.SigningMethod {
	if mode == modeAsymmetric {
		return jwt.SigningMethodRS256
	}
	return jwt.SigningMethodHS256
}

func signingKey() (any, error) {
	switch mode {
	case modeSymmetric:
		return hmacSecret, nil
	case modeAsymmetric:
		return privateKey, nil
	}
	return nil, ErrNoSigningKey
}

// verifyKey returns the verification key. Defaults to the signing secret in
// symmetric mode.
func verifyKey() (any, error) {
	switch mode {
	case modeSymmetric:
		return hmacSecret, nil
	case modeAsymmetric:
		return publicKey, nil
	}
	return nil, ErrNoSigningKey
}

// methodMatches rejects tokens signed with a method the current
// configuration does not use, including alg=none.
func methodMatches(m jwt.SigningMethod) bool {
	switch mode {
	case modeSymmetric:
		_, ok := m.(*jwt.SigningMethodHMAC)
		return ok
	case modeAsymmetric:
		_, ok := m.(*jwt.SigningMethodRSA)
		return ok
	}
	return false
}

// resetAuthKeys clears key state. Test helper.
func resetAuthKeys() {
	mode = modeUnset
	hmacSecret = nil
	privateKey = nil
	publicKey = nil
}
