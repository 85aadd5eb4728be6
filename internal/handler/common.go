package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in helpers
	"strconv" // strconv converts path parameters to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/tierlist-vote/internal/auth"
	"github.com/iliyamo/tierlist-vote/internal/media"
	"github.com/iliyamo/tierlist-vote/internal/middleware"
	"github.com/iliyamo/tierlist-vote/internal/repository"
)

// TierlistHandler bundles the repositories and the media store used by
// the tierlist, tier, item and vote endpoints.
type TierlistHandler struct {
	Tierlists *repository.TierlistRepo // tierlist persistence
	Tiers     *repository.TierRepo     // tier persistence and ordering
	Items     *repository.ItemRepo     // item persistence and ordering
	Votes     *repository.VoteRepo     // vote upserts and tallies
	Media     media.Store              // image storage boundary
}

// NewTierlistHandler constructs a TierlistHandler and panics if any dependency is nil.
func NewTierlistHandler(tierlists *repository.TierlistRepo, tiers *repository.TierRepo, items *repository.ItemRepo, votes *repository.VoteRepo, store media.Store) *TierlistHandler {
	if tierlists == nil || tiers == nil || items == nil || votes == nil || store == nil {
		panic("nil dependency passed to NewTierlistHandler")
	}
	return &TierlistHandler{
		Tierlists: tierlists,
		Tiers:     tiers,
		Items:     items,
		Votes:     votes,
		Media:     store,
	}
}

// currentIdentity extracts the authenticated identity from the context.
func currentIdentity(c echo.Context) (auth.Identity, error) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok || ident.ID == "" {
		return auth.Identity{}, errors.New("no identity in context")
	}
	return ident, nil
}

// parseID parses the named path parameter as an unsigned integer id.
func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
