package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastVoteIsIdempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S")
	items := NewItemRepo(db)
	votes := NewVoteRepo(db)

	item, err := items.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)

	// The same user voting the same way twice still holds a single row.
	_, err = votes.Cast(ctx, "user-1", item.ID, tiers[0].ID)
	require.NoError(t, err)
	_, err = votes.Cast(ctx, "user-1", item.ID, tiers[0].ID)
	require.NoError(t, err)

	n, err := votes.CountForItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCastVoteReplacesTierChoice(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S", "A")
	items := NewItemRepo(db)
	votes := NewVoteRepo(db)

	item, err := items.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)

	_, err = votes.Cast(ctx, "user-1", item.ID, tiers[0].ID)
	require.NoError(t, err)
	vote, err := votes.Cast(ctx, "user-1", item.ID, tiers[1].ID)
	require.NoError(t, err)
	assert.Equal(t, tiers[1].ID, vote.TierID)

	n, err := votes.CountForItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tallies, err := votes.TallyByTierlist(ctx, tl.ID)
	require.NoError(t, err)
	require.Len(t, tallies, 1)
	assert.Equal(t, map[string]int{
		strconv.FormatUint(tiers[1].ID, 10): 1,
	}, tallies[0].Votes)
}

func TestCastVoteRejectsForeignTier(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, _ := seedTierlist(t, db, "user-1", "S")
	_, otherTiers := seedTierlist(t, db, "user-2", "S")

	item, err := NewItemRepo(db).Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)

	_, err = NewVoteRepo(db).Cast(ctx, "user-1", item.ID, otherTiers[0].ID)
	assert.True(t, errors.Is(err, ErrTierMismatch))
}

func TestCastVoteUnknownItem(t *testing.T) {
	db := testDB(t)
	_, tiers := seedTierlist(t, db, "user-1", "S")

	_, err := NewVoteRepo(db).Cast(context.Background(), "user-1", 424242, tiers[0].ID)
	assert.True(t, errors.Is(err, ErrItemNotFound))
}

func TestTallyGroupsVotesByTier(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S", "A")
	items := NewItemRepo(db)
	votes := NewVoteRepo(db)

	sushi, err := items.Append(ctx, tl.ID, nil, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)
	pizza, err := items.Append(ctx, tl.ID, nil, "pizza", "/static/images/b.png", "/static/images/b_preview.png")
	require.NoError(t, err)

	for _, user := range []string{"u1", "u2"} {
		_, err = votes.Cast(ctx, user, sushi.ID, tiers[0].ID)
		require.NoError(t, err)
	}
	_, err = votes.Cast(ctx, "u3", sushi.ID, tiers[1].ID)
	require.NoError(t, err)

	tallies, err := votes.TallyByTierlist(ctx, tl.ID)
	require.NoError(t, err)
	require.Len(t, tallies, 2)

	sKey := strconv.FormatUint(tiers[0].ID, 10)
	aKey := strconv.FormatUint(tiers[1].ID, 10)
	assert.Equal(t, sushi.ID, tallies[0].ItemID)
	assert.Equal(t, map[string]int{sKey: 2, aKey: 1}, tallies[0].Votes)

	// Items nobody voted for still show up, with an empty tally.
	assert.Equal(t, pizza.ID, tallies[1].ItemID)
	assert.Empty(t, tallies[1].Votes)
}
