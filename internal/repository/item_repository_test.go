package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemAppendCountsPerBucket(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S", "A")
	repo := NewItemRepo(db)

	// Two items land in the unassigned bucket at 0 and 1.
	first, err := repo.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)
	second, err := repo.Append(ctx, tl.ID, nil, "pizza", "/static/images/b.png", "/static/images/b_preview.png")
	require.NoError(t, err)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	// The tier bucket counts independently, so its first item is at 0.
	third, err := repo.Append(ctx, tl.ID, &tiers[0].ID, "ramen", "/static/images/c.png", "/static/images/c_preview.png")
	require.NoError(t, err)
	assert.Equal(t, 0, third.Position)
}

func TestItemAppendRejectsForeignTier(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, _ := seedTierlist(t, db, "user-1", "S")
	_, otherTiers := seedTierlist(t, db, "user-2", "S")

	_, err := NewItemRepo(db).Append(ctx, tl.ID, &otherTiers[0].ID, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	assert.True(t, errors.Is(err, ErrTierMismatch))
}

func TestItemAppendUnknownTierlist(t *testing.T) {
	db := testDB(t)

	_, err := NewItemRepo(db).Append(context.Background(), 424242, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	assert.True(t, errors.Is(err, ErrTierlistNotFound))
}

func TestItemMoveUpdatesOnlySuppliedFields(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S")
	repo := NewItemRepo(db)

	item, err := repo.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)

	// Move into the tier without touching the position.
	require.NoError(t, repo.Move(ctx, item.ID, &tiers[0].ID, nil))
	fresh, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.TierID)
	assert.Equal(t, tiers[0].ID, *fresh.TierID)
	assert.Equal(t, item.Position, fresh.Position)

	// Now only the position.
	pos := 5
	require.NoError(t, repo.Move(ctx, item.ID, nil, &pos))
	fresh, err = repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fresh.Position)
	require.NotNil(t, fresh.TierID)
	assert.Equal(t, tiers[0].ID, *fresh.TierID)
}

func TestItemListOrderedByBucket(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S")
	repo := NewItemRepo(db)

	tiered, err := repo.Append(ctx, tl.ID, &tiers[0].ID, "ramen", "/static/images/c.png", "/static/images/c_preview.png")
	require.NoError(t, err)
	loose, err := repo.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)

	listed, err := repo.ListByTierlist(ctx, tl.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// NULL bucket sorts first, then tiers by id, positions within each.
	assert.Equal(t, loose.ID, listed[0].ID)
	assert.Equal(t, tiered.ID, listed[1].ID)
}

func TestItemDeleteRemovesVotes(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S")
	items := NewItemRepo(db)
	votes := NewVoteRepo(db)

	item, err := items.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)
	_, err = votes.Cast(ctx, "user-1", item.ID, tiers[0].ID)
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, item.ID))

	_, err = items.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, ErrItemNotFound))
	n, err := votes.CountForItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
