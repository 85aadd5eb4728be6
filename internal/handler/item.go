package handler // handler package contains item endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tierlist-vote/internal/repository"
)

// CreateItem handles POST /tierlists/:id/items. The request is
// multipart: a name, an optional tier_id and the image file. Image
// bytes go to the media store; the returned URLs are persisted verbatim
// and the item is appended at the end of its bucket.
func (h *TierlistHandler) CreateItem(c echo.Context) error {
	if _, err := currentIdentity(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	tierlistID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	var tierID *uint64
	if raw := c.FormValue("tier_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid tier_id"})
		}
		tierID = &n
	}

	// Validate the targets before touching the media store, so a
	// rejected request cannot leave orphaned files behind.
	ok, err := h.Tierlists.Exists(c.Request().Context(), tierlistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
	}
	if tierID != nil {
		ok, err := h.Tiers.BelongsTo(c.Request().Context(), *tierID, tierlistID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tier_id is invalid for this tierlist"})
		}
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "'image' file is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()
	imageURL, previewURL, err := h.Media.Save(c.Request().Context(), fh.Filename, src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "image processing failed"})
	}

	item, err := h.Items.Append(c.Request().Context(), tierlistID, tierID, name, imageURL, previewURL)
	if err != nil {
		if errors.Is(err, repository.ErrTierlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
		}
		if errors.Is(err, repository.ErrTierMismatch) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tier_id is invalid for this tierlist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create item"})
	}
	return c.JSON(http.StatusCreated, item)
}

// ListItems handles GET /tierlists/:id/items, ordered by
// (tier_id, position) so each bucket comes out contiguous.
func (h *TierlistHandler) ListItems(c echo.Context) error {
	tierlistID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ok, err := h.Tierlists.Exists(c.Request().Context(), tierlistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
	}
	items, err := h.Items.ListByTierlist(c.Request().Context(), tierlistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if items == nil {
		items = []repository.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// MoveItem handles PATCH /items/:id. Only the tierlist's creator may
// move items. Whichever of tier_id and position are supplied get
// written as-is; the engine does not reconcile position collisions
// between buckets, the caller owns the final layout.
func (h *TierlistHandler) MoveItem(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	item, err := h.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tl, err := h.Tierlists.GetByID(c.Request().Context(), item.TierlistID)
	if err != nil {
		if errors.Is(err, repository.ErrTierlistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tierlist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if tl.CreatorID != ident.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the creator can move items"})
	}

	var body struct {
		TierID   *uint64 `json:"tier_id"`  // optional destination tier
		Position *int    `json:"position"` // optional new slot in the bucket
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TierID != nil {
		ok, err := h.Tiers.BelongsTo(c.Request().Context(), *body.TierID, item.TierlistID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tier_id is invalid for this item"})
		}
	}
	if err := h.Items.Move(c.Request().Context(), id, body.TierID, body.Position); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	fresh, err := h.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, fresh)
}

// DeleteItem handles DELETE /items/:id. Creator only; the item's votes
// are removed by the cascade.
func (h *TierlistHandler) DeleteItem(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	item, err := h.Items.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	tl, err := h.Tierlists.GetByID(c.Request().Context(), item.TierlistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if tl.CreatorID != ident.ID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the creator can delete items"})
	}
	if err := h.Items.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "deleted"})
}
