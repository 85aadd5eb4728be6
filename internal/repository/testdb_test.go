package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/iliyamo/tierlist-vote/internal/database"
)

// testDB connects to the MySQL instance described by the TEST_DB_*
// variables (falling back to a local dev database) and hands back a
// clean schema. Tests that need a live database skip when none is
// reachable, so the pure unit tests still run everywhere.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(
		envOr("TEST_DB_USER", "root"),
		os.Getenv("TEST_DB_PASS"),
		envOr("TEST_DB_HOST", "127.0.0.1"),
		envOr("TEST_DB_PORT", "3306"),
		envOr("TEST_DB_NAME", "tierlist_vote_test"),
	)
	if err != nil {
		t.Skipf("mysql not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	if err := database.EnsureSchema(ctx, db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	// Child tables first, the cascades do not fire on TRUNCATE-less cleanup.
	for _, table := range []string{"votes", "items", "tiers", "tierlists"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("clean table %s: %v", table, err)
		}
	}
	return db
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// seedTierlist creates a tierlist with the given tier names and returns
// it together with its tiers, saving each integration test the same
// four lines of setup.
func seedTierlist(t *testing.T, db *sql.DB, creatorID string, tierNames ...string) (*Tierlist, []Tier) {
	t.Helper()
	defs := make([]TierDef, 0, len(tierNames))
	for _, n := range tierNames {
		defs = append(defs, TierDef{Name: n, Colour: "#ff0000"})
	}
	tl, tiers, err := NewTierlistRepo(db).CreateWithTiers(context.Background(), "test list", creatorID, defs)
	if err != nil {
		t.Fatalf("seed tierlist: %v", err)
	}
	return tl, tiers
}
