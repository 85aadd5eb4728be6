package repository // repository defines data access for votes

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel checks
	"strconv"      // strconv renders tier ids as JSON object keys
)

// Vote records one user's opinion about which tier an item belongs to.
// At most one row exists per (user_id, item_id); re-voting replaces the
// tier choice instead of adding a second row.
type Vote struct {
	ID     uint64 `json:"id"`
	UserID string `json:"user_id"`
	ItemID uint64 `json:"item_id"`
	TierID uint64 `json:"tier_id"`
}

// ItemTally aggregates the votes cast on a single item, keyed by the
// tier each voter selected. Tiers with zero votes are absent from the
// map rather than present with a zero count.
type ItemTally struct {
	ItemID   uint64         `json:"item_id"`
	Name     string         `json:"name"`
	ImageURL string         `json:"image_url"`
	Votes    map[string]int `json:"votes"`
}

// VoteRepo provides methods to work with votes in the database.
type VoteRepo struct {
	db *sql.DB
}

// NewVoteRepo constructs a VoteRepo with the given DB handle.
func NewVoteRepo(db *sql.DB) *VoteRepo {
	return &VoteRepo{db: db}
}

// Cast upserts the user's vote for an item. The votes table carries a
// unique key on (user_id, item_id), so the whole operation is a single
// atomic statement: two concurrent votes by the same user on the same
// item can never produce two rows. It validates that the item exists
// and that the tier belongs to the same tierlist as the item before
// writing.
func (r *VoteRepo) Cast(ctx context.Context, userID string, itemID, tierID uint64) (*Vote, error) {
	var tierlistID uint64
	err := r.db.QueryRowContext(ctx,
		`SELECT tierlist_id FROM items WHERE id = ?`, itemID).Scan(&tierlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	var one int
	err = r.db.QueryRowContext(ctx,
		`SELECT 1 FROM tiers WHERE id = ? AND tierlist_id = ?`, tierID, tierlistID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTierMismatch
	}
	if err != nil {
		return nil, err
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO votes (user_id, item_id, tier_id) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE tier_id = VALUES(tier_id)`,
		userID, itemID, tierID); err != nil {
		return nil, err
	}
	return &Vote{UserID: userID, ItemID: itemID, TierID: tierID}, nil
}

// CountForItem returns the number of vote rows for one item, regardless
// of tier. Used by tests and the item detail projection.
func (r *VoteRepo) CountForItem(ctx context.Context, itemID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM votes WHERE item_id = ?`, itemID).Scan(&n)
	return n, err
}

// voteCount is one row of the grouped tally query.
type voteCount struct {
	itemID uint64
	tierID uint64
	count  int
}

// TallyByTierlist computes the per-item vote tallies for a tierlist.
// Every item of the list appears in the result, including items nobody
// has voted on yet (with an empty map). Counts come from one grouped
// query instead of a query per item.
func (r *VoteRepo) TallyByTierlist(ctx context.Context, tierlistID uint64) ([]ItemTally, error) {
	itemRows, err := r.db.QueryContext(ctx,
		`SELECT id, name, COALESCE(image_url, '') FROM items
		 WHERE tierlist_id = ? ORDER BY id`, tierlistID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	var items []Item
	for itemRows.Next() {
		var it Item
		if err := itemRows.Scan(&it.ID, &it.Name, &it.ImageURL); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	countRows, err := r.db.QueryContext(ctx,
		`SELECT v.item_id, v.tier_id, COUNT(*)
		 FROM votes v
		 JOIN items i ON i.id = v.item_id
		 WHERE i.tierlist_id = ?
		 GROUP BY v.item_id, v.tier_id`, tierlistID)
	if err != nil {
		return nil, err
	}
	defer countRows.Close()

	var counts []voteCount
	for countRows.Next() {
		var vc voteCount
		if err := countRows.Scan(&vc.itemID, &vc.tierID, &vc.count); err != nil {
			return nil, err
		}
		counts = append(counts, vc)
	}
	if err := countRows.Err(); err != nil {
		return nil, err
	}
	return assembleTally(items, counts), nil
}

// assembleTally merges the item projection with the grouped vote counts
// into the response shape. Map keys are the tier ids rendered as
// strings, matching the JSON object the API returns.
func assembleTally(items []Item, counts []voteCount) []ItemTally {
	byItem := make(map[uint64]map[string]int, len(items))
	result := make([]ItemTally, 0, len(items))
	for _, it := range items {
		votes := map[string]int{}
		byItem[it.ID] = votes
		result = append(result, ItemTally{
			ItemID:   it.ID,
			Name:     it.Name,
			ImageURL: it.ImageURL,
			Votes:    votes,
		})
	}
	for _, vc := range counts {
		if votes, ok := byItem[vc.itemID]; ok {
			votes[strconv.FormatUint(vc.tierID, 10)] = vc.count
		}
	}
	return result
}
