package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWithTiersSkipsInvalidDefs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	defs := []TierDef{
		{Name: "S", Colour: "#f00"},
		{Name: "", Colour: "#0f0"},  // no name, dropped
		{Name: "B", Colour: ""},     // no colour, dropped
		{Name: "C", Colour: "#00f"},
	}
	_, tiers, err := NewTierlistRepo(db).CreateWithTiers(ctx, "snacks", "user-1", defs)
	require.NoError(t, err)

	// Invalid definitions are skipped without leaving position gaps.
	require.Len(t, tiers, 2)
	assert.Equal(t, "S", tiers[0].Name)
	assert.Equal(t, 0, tiers[0].Position)
	assert.Equal(t, "C", tiers[1].Name)
	assert.Equal(t, 1, tiers[1].Position)
}

func TestTierlistGetAndList(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	created, _ := seedTierlist(t, db, "user-1", "S")
	repo := NewTierlistRepo(db)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, "user-1", got.CreatorID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.GetByID(ctx, 424242)
	assert.True(t, errors.Is(err, ErrTierlistNotFound))
}

func TestTierlistDeleteCascades(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	tl, tiers := seedTierlist(t, db, "user-1", "S")
	items := NewItemRepo(db)

	item, err := items.Append(ctx, tl.ID, &tiers[0].ID, "sushi", "/static/images/a.png", "/static/images/a_preview.png")
	require.NoError(t, err)
	_, err = NewVoteRepo(db).Cast(ctx, "user-1", item.ID, tiers[0].ID)
	require.NoError(t, err)

	repo := NewTierlistRepo(db)
	require.NoError(t, repo.Delete(ctx, tl.ID))

	ok, err := repo.Exists(ctx, tl.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = items.GetByID(ctx, item.ID)
	assert.True(t, errors.Is(err, ErrItemNotFound))
	_, err = NewTierRepo(db).GetByID(ctx, tiers[0].ID)
	assert.True(t, errors.Is(err, ErrTierNotFound))
}

func TestTierlistDeleteUnknown(t *testing.T) {
	db := testDB(t)

	err := NewTierlistRepo(db).Delete(context.Background(), 424242)
	assert.True(t, errors.Is(err, ErrTierlistNotFound))
}
