package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mmynk/packs/internal/models"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrMissingToken   = errors.New("authorization token required")
	ErrTokenRevoked   = errors.New("token has been revoked")
	ErrTokenNotFresh  = errors.New("fresh token required")
)

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// JWTManager handles JWT token generation and validation.
type JWTManager struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Claims represents the JWT claims for a user session.
// Subject carries the user ID and ID carries the jti.
type Claims struct {
	Type  TokenType `json:"type"`
	Fresh bool      `json:"fresh"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, c.Subject)
	}
	return id, nil
}

// Revocation returns the blocklist entry that revokes this token.
func (c *Claims) Revocation() models.RevokedToken {
	var expiresAt time.Time
	if c.ExpiresAt != nil {
		expiresAt = c.ExpiresAt.Time
	}
	return models.RevokedToken{JTI: c.ID, ExpiresAt: expiresAt}
}

// NewJWTManager creates a new JWT manager.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewJWTManager(secretKey string, accessTTL, refreshTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:  []byte(secretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// GenerateAccess creates an access token for the user.
// fresh marks tokens minted directly from a password login.
func (m *JWTManager) GenerateAccess(user *models.User, fresh bool) (string, *Claims, error) {
	return m.generate(user, AccessToken, fresh, m.accessTTL)
}

// GenerateRefresh creates a refresh token for the user.
func (m *JWTManager) GenerateRefresh(user *models.User) (string, *Claims, error) {
	return m.generate(user, RefreshToken, false, m.refreshTTL)
}

func (m *JWTManager) generate(user *models.User, typ TokenType, fresh bool, ttl time.Duration) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		Type:  typ,
		Fresh: fresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, claims, nil
}

// Validate parses and validates a JWT, returning the claims if the signature,
// expiry and token type are all acceptable. Revocation and freshness are
// checked by the caller.
func (m *JWTManager) Validate(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrInvalidToken)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	if claims.Type != want {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrWrongTokenType, claims.Type, want)
	}

	return claims, nil
}
