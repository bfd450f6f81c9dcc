package httpapi

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mmynk/packs/internal/middleware"
	"github.com/mmynk/packs/internal/models"
	"github.com/mmynk/packs/internal/storage"
)

type itemRequest struct {
	Name   string   `json:"name"`
	Price  *float64 `json:"price"`
	PackID *int64   `json:"pack_id"`
}

func bindItem(c echo.Context) (itemRequest, error) {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return req, badRequest("Request body must be a JSON object.")
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return req, badRequest("name is required.")
	}
	if req.Price == nil {
		return req, badRequest("price is required.")
	}
	if *req.Price < 0 || math.IsInf(*req.Price, 0) || math.IsNaN(*req.Price) {
		return req, badRequest("price must be a non-negative number.")
	}
	if req.PackID != nil && *req.PackID <= 0 {
		return req, badRequest("pack_id must be a positive integer.")
	}
	return req, nil
}

// authorizePack checks that the caller may change items in the given pack.
// Items follow the ownership of the pack they belong to.
func (s *Server) authorizePack(c echo.Context, packID int64) error {
	pack, err := s.store.GetPack(c.Request().Context(), packID)
	if errors.Is(err, storage.ErrNotFound) {
		return resourceError("Pack", storage.ErrPackNotFound)
	}
	if err != nil {
		return err
	}
	if !pack.OwnedBy(middleware.UserID(c)) {
		return forbidden("You do not own this pack.")
	}
	return nil
}

func (s *Server) listItems(c echo.Context) error {
	var filter models.ItemFilter
	if raw := c.QueryParam("pack_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return badRequest("pack_id must be a positive integer.")
		}
		filter.PackID = id
	}

	items, err := s.store.ListItems(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	resp := make([]itemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, newItemResponse(item))
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) createItem(c echo.Context) error {
	req, err := bindItem(c)
	if err != nil {
		return err
	}
	if req.PackID == nil {
		return badRequest("pack_id is required.")
	}
	if err := s.authorizePack(c, *req.PackID); err != nil {
		return err
	}

	item := &models.Item{Name: req.Name, Price: *req.Price, PackID: *req.PackID}
	if err := s.store.CreateItem(c.Request().Context(), item); err != nil {
		return resourceError("Item", err)
	}

	return c.JSON(http.StatusCreated, newItemResponse(item))
}

func (s *Server) getItem(c echo.Context) error {
	id, err := pathID(c, "item_id")
	if err != nil {
		return err
	}

	item, err := s.store.GetItem(c.Request().Context(), id)
	if err != nil {
		return resourceError("Item", err)
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

// putItem updates name and price, or creates the item under the given ID
// when missing. Creating needs pack_id; an existing item keeps its pack.
func (s *Server) putItem(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := pathID(c, "item_id")
	if err != nil {
		return err
	}
	req, err := bindItem(c)
	if err != nil {
		return err
	}

	item := &models.Item{ID: id, Name: req.Name, Price: *req.Price}

	existing, err := s.store.GetItem(ctx, id)
	switch {
	case err == nil:
		item.PackID = existing.PackID
	case errors.Is(err, storage.ErrNotFound):
		if req.PackID == nil {
			return badRequest("pack_id is required to create an item.")
		}
		item.PackID = *req.PackID
	default:
		return err
	}
	if err := s.authorizePack(c, item.PackID); err != nil {
		return err
	}

	created, err := s.store.UpsertItem(ctx, item)
	if err != nil {
		return resourceError("Item", err)
	}

	saved, err := s.store.GetItem(ctx, id)
	if err != nil {
		return resourceError("Item", err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, newItemResponse(saved))
}

func (s *Server) deleteItem(c echo.Context) error {
	id, err := pathID(c, "item_id")
	if err != nil {
		return err
	}

	item, err := s.store.GetItem(c.Request().Context(), id)
	if err != nil {
		return resourceError("Item", err)
	}
	if err := s.authorizePack(c, item.PackID); err != nil {
		return err
	}

	if err := s.store.DeleteItem(c.Request().Context(), id); err != nil {
		return resourceError("Item", err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Item deleted."})
}
