package handler // handler package contains tier endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tierlist-vote/internal/repository"
)

// CreateTier handles POST /tierlists/:id/tiers and appends a tier at
// the end of the list's position sequence.
func (h *TierlistHandler) CreateTier(c echo.Context) error {
	if _, err := currentIdentity(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	tierlistID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name   string `json:"name"`
		Colour string `json:"colour"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.Name = strings.TrimSpace(body.Name)
	body.Colour = strings.TrimSpace(body.Colour)
	if body.Name == "" || body.Colour == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "'name' and 'colour' are required"})
	}

	tier, err := h.Tiers.Append(c.Request().Context(), tierlistID, body.Name, body.Colour)
	if err != nil {
		if errors.Is(err, repository.ErrTierlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create tier"})
	}
	return c.JSON(http.StatusCreated, tier)
}

// UpdateTier handles PATCH /tiers/:id and updates name and/or colour.
// Positions never change here; ordering is owned by append and delete.
func (h *TierlistHandler) UpdateTier(c echo.Context) error {
	if _, err := currentIdentity(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		Name   *string `json:"name"`   // optional new name
		Colour *string `json:"colour"` // optional new colour
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	// A field that is present but blank is a client error, distinct
	// from a field that was omitted to keep the current value.
	if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "'name' must not be blank"})
	}
	if body.Colour != nil && strings.TrimSpace(*body.Colour) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "'colour' must not be blank"})
	}

	cur, err := h.Tiers.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tier not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	name := cur.Name
	if body.Name != nil {
		name = strings.TrimSpace(*body.Name)
	}
	colour := cur.Colour
	if body.Colour != nil {
		colour = strings.TrimSpace(*body.Colour)
	}
	if err := h.Tiers.Update(c.Request().Context(), id, name, colour); err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tier not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	fresh, err := h.Tiers.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// DeleteTier handles DELETE /tiers/:id. The remaining tiers of the same
// tierlist are re-packed to positions 0..N-1; items that sat in the
// tier move to the unassigned bucket via the foreign key.
func (h *TierlistHandler) DeleteTier(c echo.Context) error {
	if _, err := currentIdentity(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Tiers.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTierNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tier not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
