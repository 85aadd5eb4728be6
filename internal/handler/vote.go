package handler // handler package contains voting endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/tierlist-vote/internal/queue"
	"github.com/iliyamo/tierlist-vote/internal/repository"
	queue_publisher "github.com/iliyamo/tierlist-vote/internal/service"
)

// CastVote handles POST /items/:id/vote. One row per (user, item): a
// second vote by the same user replaces the tier choice. The vote event
// is published to the broker best-effort after the upsert; a broker
// outage never fails the request.
func (h *TierlistHandler) CastVote(c echo.Context) error {
	ident, err := currentIdentity(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "not authenticated"})
	}
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var body struct {
		TierID *uint64 `json:"tier_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TierID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payload must include 'tier_id'"})
	}

	item, err := h.Items.GetByID(c.Request().Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	vote, err := h.Votes.Cast(c.Request().Context(), ident.ID, itemID, *body.TierID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		if errors.Is(err, repository.ErrTierMismatch) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid 'tier_id' for this item"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not record vote"})
	}

	ev := queue.VoteCastEvent{
		TierlistID: item.TierlistID,
		ItemID:     item.ID,
		ItemName:   item.Name,
		TierID:     vote.TierID,
		UserID:     vote.UserID,
		CastAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishVoteCast(ctx, ev)
	}()

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"item_id": vote.ItemID,
		"tier_id": vote.TierID,
		"user_id": vote.UserID,
	})
}

// GetVotes handles GET /tierlists/:id/votes and returns the per-item
// tallies grouped by tier.
func (h *TierlistHandler) GetVotes(c echo.Context) error {
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
	tallies, err := h.Votes.TallyByTierlist(c.Request().Context(), tierlistID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, tallies)
}
