package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/packs/internal/auth"
)

const (
	claimsKey = "auth.claims"
	userIDKey = "auth.user_id"
)

// UserID returns the authenticated user ID, or 0 on unauthenticated routes.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// Claims returns the validated token claims, or nil on unauthenticated routes.
func Claims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

// TokenAuth validates bearer tokens against the JWT manager and the blocklist.
type TokenAuth struct {
	jwtManager *auth.JWTManager
	blocklist  auth.Blocklist
}

// NewTokenAuth creates the token middleware factory.
func NewTokenAuth(jwtManager *auth.JWTManager, blocklist auth.Blocklist) *TokenAuth {
	return &TokenAuth{jwtManager: jwtManager, blocklist: blocklist}
}

// RequireAccess accepts access tokens. When fresh is set, only tokens issued
// by a password login pass.
func (a *TokenAuth) RequireAccess(fresh bool) echo.MiddlewareFunc {
	return a.require(auth.AccessToken, fresh)
}

// RequireRefresh accepts refresh tokens only.
func (a *TokenAuth) RequireRefresh() echo.MiddlewareFunc {
	return a.require(auth.RefreshToken, false)
}

func (a *TokenAuth) require(want auth.TokenType, fresh bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}

			claims, err := a.jwtManager.Validate(tokenString, want)
			if err != nil {
				return err
			}

			revoked, err := a.blocklist.IsRevoked(c.Request().Context(), claims.ID)
			if err != nil {
				return fmt.Errorf("check token revocation: %w", err)
			}
			if revoked {
				return auth.ErrTokenRevoked
			}
			if fresh && !claims.Fresh {
				return auth.ErrTokenNotFresh
			}

			// Validate already checked the subject parses.
			userID, _ := claims.UserID()
			c.Set(claimsKey, claims)
			c.Set(userIDKey, userID)

			return next(c)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", auth.ErrMissingToken
	}
	return strings.TrimSpace(token), nil
}
