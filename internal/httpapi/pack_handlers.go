package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/packs/internal/calculator"
	"github.com/mmynk/packs/internal/middleware"
	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

type packRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func bindPack(c echo.Context) (packRequest, error) {
	var req packRequest
	if err := c.Bind(&req); err != nil {
		return req, badRequest("Request body must be a JSON object.")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return req, badRequest("name is required.")
	}
	return req, nil
}

func (s *Server) listPacks(c echo.Context) error {
	packs, err := s.store.ListPacks(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]packResponse, 0, len(packs))
	for _, p := range packs {
		resp = append(resp, newPackResponse(p))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createPack(c echo.Context) error {
	req, err := bindPack(c)
	if err != nil {
		return err
	}

	owner := middleware.UserID(c)
	pack := &models.Pack{Name: req.Name, Description: req.Description, OwnerID: &owner}
	if err := s.store.CreatePack(c.Request().Context(), pack); err != nil {
		return resourceError("Pack", err)
	}
	pack.Items = []models.Item{}

	return c.JSON(http.StatusCreated, newPackResponse(pack))
}

func (s *Server) getPack(c echo.Context) error {
	id, err := pathID(c, "pack_id")
	if err != nil {
		return err
	}

	pack, err := s.store.GetPack(c.Request().Context(), id)
	if err != nil {
		return resourceError("Pack", err)
	}

	return c.JSON(http.StatusOK, newPackResponse(pack))
}

// putPack updates the pack, or creates it under the given ID when missing.
func (s *Server) putPack(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "pack_id")
	if err != nil {
		return err
	}
	req, err := bindPack(c)
	if err != nil {
		return err
	}

	userID := middleware.UserID(c)
	pack := &models.Pack{ID: id, Name: req.Name, Description: req.Description, OwnerID: &userID}

	existing, err := s.store.GetPack(ctx, id)
	switch {
	case err == nil:
		if !existing.OwnedBy(userID) {
			return forbidden("You do not own this pack.")
		}
		pack.OwnerID = existing.OwnerID
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	created, err := s.store.UpsertPack(ctx, pack)
	if err != nil {
		return resourceError("Pack", err)
	}

	saved, err := s.store.GetPack(ctx, id)
	if err != nil {
		return resourceError("Pack", err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, newPackResponse(saved))
}

func (s *Server) deletePack(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "pack_id")
	if err != nil {
		return err
	}

	pack, err := s.store.GetPack(ctx, id)
	if err != nil {
		return resourceError("Pack", err)
	}
	if !pack.OwnedBy(middleware.UserID(c)) {
		return forbidden("You do not own this pack.")
	}

	if err := s.store.DeletePack(ctx, id); err != nil {
		return resourceError("Pack", err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Pack deleted."})
}

func (s *Server) packSummary(c echo.Context) error {
	id, err := pathID(c, "pack_id")
	if err != nil {
		return err
	}

	pack, err := s.store.GetPack(c.Request().Context(), id)
	if err != nil {
		return resourceError("Pack", err)
	}

	prices := make([]float64, len(pack.Items))
	for i, item := range pack.Items {
		prices[i] = item.Price
	}

	return c.JSON(http.StatusOK, newSummaryResponse(pack.ID, calculator.SummarizePack(prices)))
}
