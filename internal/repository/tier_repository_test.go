package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierAppendAssignsContiguousPositions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, tiers := seedTierlist(t, db, "user-1", "S", "A", "B")

	require.Len(t, tiers, 3)
	for i, tier := range tiers {
		assert.Equal(t, i, tier.Position)
	}

	tl := tiers[0].TierlistID
	appended, err := NewTierRepo(db).Append(ctx, tl, "C", "#00ff00")
	require.NoError(t, err)
	assert.Equal(t, 3, appended.Position)
}

func TestTierAppendUnknownTierlist(t *testing.T) {
	db := testDB(t)

	_, err := NewTierRepo(db).Append(context.Background(), 424242, "S", "#fff")
	assert.True(t, errors.Is(err, ErrTierlistNotFound))
}

func TestTierDeleteRepacksPositions(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S", "A", "B")
	repo := NewTierRepo(db)

	// Delete the middle tier; S and B close ranks to 0 and 1.
	require.NoError(t, repo.Delete(ctx, tiers[1].ID))

	remaining, err := repo.ListByTierlist(ctx, tl.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "S", remaining[0].Name)
	assert.Equal(t, 0, remaining[0].Position)
	assert.Equal(t, "B", remaining[1].Name)
	assert.Equal(t, 1, remaining[1].Position)
}

func TestTierDeleteMovesItemsToUnassigned(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, tiers := seedTierlist(t, db, "user-1", "S")
	items := NewItemRepo(db)

	item, err := items.Append(ctx, tiers[0].TierlistID, &tiers[0].ID, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)
	require.NotNil(t, item.TierID)

	require.NoError(t, NewTierRepo(db).Delete(ctx, tiers[0].ID))

	// The item survives the tier, landing in the unassigned bucket with
	// its position untouched.
	fresh, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, fresh.TierID)
	assert.Equal(t, item.Position, fresh.Position)
}

func TestTierDeleteUnknown(t *testing.T) {
	db := testDB(t)

	err := NewTierRepo(db).Delete(context.Background(), 424242)
	assert.True(t, errors.Is(err, ErrTierNotFound))
}

func TestTierUpdateKeepsPosition(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	_, tiers := seedTierlist(t, db, "user-1", "S", "A")
	repo := NewTierRepo(db)

	require.NoError(t, repo.Update(ctx, tiers[1].ID, "A+", "#123456"))

	fresh, err := repo.GetByID(ctx, tiers[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "A+", fresh.Name)
	assert.Equal(t, "#123456", fresh.Colour)
	assert.Equal(t, tiers[1].Position, fresh.Position)
}
