package jwt

import (
	"errors"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	DefaultAccessTokenExpire = time.Hour * 48

	ErrNeedSigningKey = TokenError("cannot sign token without signing key")
	ErrInvalidToken   = TokenError("invalid token")
	ErrTokenExpired   = TokenError("token expired")
)

// jtiLength is the length of the generated token id.
const jtiLength = 16

// Claims is the body of a session token.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	jwtstd.RegisteredClaims
}

// TokenManager handles JWT token operations
type TokenManager struct {
	key    string
	expiry time.Duration
}

// NewTokenManager creates a new TokenManager instance.
// A zero expiry uses DefaultAccessTokenExpire.
func NewTokenManager(key string, expiry time.Duration) *TokenManager {
	if expiry == 0 {
		expiry = DefaultAccessTokenExpire
	}
	return &TokenManager{key: key, expiry: expiry}
}

// validateKey validates the token key
func (jtm *TokenManager) validateKey() error {
	if jtm.key == "" {
		return ErrNeedSigningKey
	}
	return nil
}

// GenerateAccessToken signs a session token for the user.
func (jtm *TokenManager) GenerateAccessToken(id, email string) (string, error) {
	if err := jtm.validateKey(); err != nil {
		return "", err
	}

	jti, err := gonanoid.New(jtiLength)
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := &Claims{
		ID:    id,
		Email: email,
		RegisteredClaims: jwtstd.RegisteredClaims{
			ID:        jti,
			Subject:   id,
			IssuedAt:  jwtstd.NewNumericDate(now),
			ExpiresAt: jwtstd.NewNumericDate(now.Add(jtm.expiry)),
		},
	}

	t := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims)
	return t.SignedString([]byte(jtm.key))
}

// DecodeToken verifies the signature and expiry of a token and returns its claims.
func (jtm *TokenManager) DecodeToken(tokenString string) (*Claims, error) {
	if err := jtm.validateKey(); err != nil {
		return nil, err
	}
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwtstd.ParseWithClaims(tokenString, claims, func(token *jwtstd.Token) (any, error) {
		return []byte(jtm.key), nil
	},
		jwtstd.WithValidMethods([]string{jwtstd.SigningMethodHS256.Alg()}),
		jwtstd.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtstd.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// GetTokenExpiryTime extracts the expiration time from a valid token
func (jtm *TokenManager) GetTokenExpiryTime(tokenString string) (time.Time, error) {
	claims, err := jtm.DecodeToken(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}
