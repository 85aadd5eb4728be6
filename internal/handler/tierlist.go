package handler // handler package contains tierlist endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tierlist-vote/internal/repository"
)

// CreateTierlist handles POST /tierlists and creates a tierlist along
// with its initial tiers, positioned by their index in the request.
func (h *TierlistHandler) CreateTierlist(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	var body struct {
		Name  string               `json:"name"`
		Tiers []repository.TierDef `json:"tiers"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tierlist 'name' is required"})
	}
	if len(body.Tiers) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tierlist must have at least one tier definition"})
	}

	tl, tiers, err := h.Tierlists.CreateWithTiers(c.Request().Context(), body.Name, ident.ID, body.Tiers)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create tierlist"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"tierlist_id": tl.ID,
		"name":        tl.Name,
		"tiers":       tiers,
	})
}

// ListTierlists handles GET /tierlists.
func (h *TierlistHandler) ListTierlists(c echo.Context) error {
	lists, err := h.Tierlists.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if lists == nil {
		lists = []repository.Tierlist{}
	}
	return c.JSON(http.StatusOK, lists)
}

// GetTierlist handles GET /tierlists/:id and returns the tierlist with
// its tiers in position order.
func (h *TierlistHandler) GetTierlist(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	tl, err := h.Tierlists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTierlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tiers, err := h.Tiers.ListByTierlist(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if tiers == nil {
		tiers = []repository.Tier{}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":         tl.ID,
		"name":       tl.Name,
		"creator_id": tl.CreatorID,
		"tiers":      tiers,
	})
}

// DeleteTierlist handles DELETE /tierlists/:id. Only the creator may
// delete a list; tiers, items and votes go with it via the cascade.
func (h *TierlistHandler) DeleteTierlist(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	tl, err := h.Tierlists.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTierlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if tl.CreatorID != ident.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the creator can delete a tierlist"})
	}
	if err := h.Tierlists.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTierlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
