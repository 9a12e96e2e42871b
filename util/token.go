package util

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
)

const defaultAccessTTL = time.Hour

// Verification failure kinds. The transport gates map these onto
// caller-facing messages; the errors themselves never reach the client.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrTokenMalformed   = errors.New("token malformed or signature invalid")
	ErrTokenInvalid     = errors.New("token verification failed")

	// Payload vetting failures, separate from signature validity: a
	// correctly signed token lacking identity fields is still unusable.
	ErrClaimsIncomplete = errors.New("token payload missing userId or email")
	ErrBadUserIDType    = errors.New("token userId is neither string nor number")
)

// IssueOptions overrides issuance defaults.
type IssueOptions struct {
	TTL     time.Duration // zero means default (1h, or JWT_ACCESS_TTL)
	TokenID string        // optional jti
}

// AccessTokenTTL returns the configured token lifetime (JWT_ACCESS_TTL,
// defaulting to one hour).
func AccessTokenTTL() time.Duration {
	if v := getEnv("JWT_ACCESS_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("ignoring unparsable JWT_ACCESS_TTL %q", v)
	}
	return defaultAccessTTL
}

// IssueToken stamps iat/exp onto a copy of the claims and signs it with the
// configured key. The input claims are not mutated.
func IssueToken(claims *dto.AuthClaims, opts *IssueOptions) (string, error) {
	key, err := signingKey()
	if err != nil {
		return "", err
	}

	ttl := AccessTokenTTL()
	if opts != nil && opts.TTL > 0 {
		ttl = opts.TTL
	}

	c := *claims
	now := time.Now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if opts != nil && opts.TokenID != "" {
		c.ID = opts.TokenID
	}

	token := jwt.NewWithClaims(signingMethod(), &c)
	return token.SignedString(key)
}

// VerifyToken parses and validates a token string against the configured
// verification key and maps the jwt library's failure causes onto this
// package's sentinel errors.
func VerifyToken(tokenString string) (*dto.AuthClaims, error) {
	key, err := verifyKey()
	if err != nil {
		return nil, err
	}

	claims := &dto.AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if !methodMatches(t.Method) {
			return nil, ErrTokenMalformed
		}
		return key, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrTokenMalformed
		case errors.Is(err, ErrTokenMalformed):
			// keyfunc rejected the signing method
			return nil, ErrTokenMalformed
		default:
			return nil, ErrTokenInvalid
		}
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// RefreshToken verifies the presented token and reissues its claims with a
// fresh expiry. Volatile temporal fields (iat, exp, nbf, jti) never survive
// the rotation; newTokenID, if non-empty, becomes the jti of the successor.
// Callers only see ErrTokenInvalid on failure; the underlying cause is
// logged here.
//
// There is no revocation list or rotation counter: any token that still
// verifies can mint a successor. Known platform gap.
func RefreshToken(tokenString, newTokenID string) (string, error) {
	claims, err := VerifyToken(tokenString)
	if err != nil {
		if errors.Is(err, ErrNoSigningKey) {
			return "", err
		}
		log.Printf("token refresh rejected: %v", err)
		return "", ErrTokenInvalid
	}

	claims.IssuedAt = nil
	claims.ExpiresAt = nil
	claims.NotBefore = nil
	claims.ID = ""

	return IssueToken(claims, &IssueOptions{TokenID: newTokenID})
}

// ResolveIdentity is the trust decision shared by the HTTP and WebSocket
// gates: verify the token, then vet the decoded payload before anything
// downstream sees it. userId and email are mandatory regardless of
// signature validity, and userId must be a string or a number.
func ResolveIdentity(tokenString string) (*dto.AuthUser, error) {
	claims, err := VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.UserID == nil || claims.Email == "" {
		return nil, ErrClaimsIncomplete
	}

	var userID string
	switch v := claims.UserID.(type) {
	case string:
		if v == "" {
			return nil, ErrClaimsIncomplete
		}
		userID = v
	case float64: // any JSON number decodes to float64
		userID = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		userID = strconv.Itoa(v)
	case int64:
		userID = strconv.FormatInt(v, 10)
	default:
		return nil, ErrBadUserIDType
	}

	return &dto.AuthUser{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
		Roles:  claims.Roles,
	}, nil
}
