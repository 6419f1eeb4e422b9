package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bookshelf/internal/config"
)

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret    []byte
	expiry    time.Duration
	clockSkew time.Duration
}

// NewTokenIssuer creates a token issuer from auth config. When no secret is
// configured a random one is generated, which invalidates all tokens on
// restart.
func NewTokenIssuer(cfg config.Auth) (*TokenIssuer, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		var b [32]byte
		if _, err := rand.Read(b[:]); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		secret = []byte(hex.EncodeToString(b[:]))
	}

	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = 30 * time.Minute
	}

	return &TokenIssuer{
		secret:    secret,
		expiry:    expiry,
		clockSkew: cfg.ClockSkew,
	}, nil
}

// Expiry returns the configured token lifetime.
func (ti *TokenIssuer) Expiry() time.Duration {
	return ti.expiry
}

// Sign issues a signed access token for the given user ID.
func (ti *TokenIssuer) Sign(userID uint) (string, error) {
	jti, err := randJTI()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ti.expiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(ti.secret)
}

// Parse verifies signature and expiry, returning the user ID from the
// subject claim.
func (ti *TokenIssuer) Parse(tokenStr string) (uint, error) {
	parser := jwt.NewParser(
		jwt.WithLeeway(ti.clockSkew),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
	)

	var claims jwt.RegisteredClaims
	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}
	if !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(userID), nil
}

func randJTI() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
