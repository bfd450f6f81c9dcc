package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/packs/internal/auth"
	"github.com/mmynk/packs/internal/middleware"
	"github.com/mmynk/packs/internal/storage"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) bindCredentials(c echo.Context) (credentialsRequest, error) {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return req, badRequest("Request body must be a JSON object with username and password.")
	}
	if req.Username == "" || req.Password == "" {
		return req, badRequest("username and password are required.")
	}
	return req, nil
}

func (s *Server) register(c echo.Context) error {
	req, err := s.bindCredentials(c)
	if err != nil {
		return err
	}

	user, err := s.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, newUserResponse(user))
}

func (s *Server) login(c echo.Context) error {
	req, err := s.bindCredentials(c)
	if err != nil {
		return err
	}

	user, err := s.users.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	access, _, err := s.jwt.GenerateAccess(user, true)
	if err != nil {
		return err
	}
	refresh, _, err := s.jwt.GenerateRefresh(user)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokensResponse{AccessToken: access, RefreshToken: refresh})
}

// refresh trades a refresh token for a non-fresh access token. The refresh
// token is revoked, so each one works once.
func (s *Server) refresh(c echo.Context) error {
	ctx := c.Request().Context()
	claims := middleware.Claims(c)

	user, err := s.store.GetUserByID(ctx, middleware.UserID(c))
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: user no longer exists", auth.ErrInvalidToken)
	}
	if err != nil {
		return err
	}

	if err := s.blocklist.Revoke(ctx, claims.Revocation()); err != nil {
		return err
	}
	s.metrics.TokenRevoked(string(auth.RefreshToken))

	access, _, err := s.jwt.GenerateAccess(user, false)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, accessTokenResponse{AccessToken: access})
}

func (s *Server) logout(c echo.Context) error {
	claims := middleware.Claims(c)
	if err := s.blocklist.Revoke(c.Request().Context(), claims.Revocation()); err != nil {
		return err
	}
	s.metrics.TokenRevoked(string(auth.AccessToken))

	return c.JSON(http.StatusOK, messageResponse{Message: "Successfully logged out."})
}

func (s *Server) getUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}

	user, err := s.store.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return resourceError("User", err)
	}

	return c.JSON(http.StatusOK, newUserResponse(user))
}
