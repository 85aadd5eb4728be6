package repository // repository defines data access for items

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions
	"strings"      // strings assembles the partial update statement
)

// Item is an image entry of a tierlist. TierID is nil while the item
// sits in the unassigned bucket. Position is a zero-based index that is
// contiguous within the item's bucket, where a bucket is the
// (tierlist_id, tier_id) pair; buckets are independent of each other.
type Item struct {
	ID         uint64  `json:"id"`
	TierlistID uint64  `json:"tierlist_id"`
	TierID     *uint64 `json:"tier_id"`
	Position   int     `json:"position"`
	Name       string  `json:"name"`
	ImageURL   string  `json:"image_url"`
	PreviewURL string  `json:"preview_url"`
}

// ErrItemNotFound is returned when an item lookup yields no rows.
var ErrItemNotFound = errors.New("item not found")

// ItemRepo provides methods to work with items in the database.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo with the given DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// nullableID converts an optional tier id into a driver value so that
// the null-safe <=> comparison below matches the unassigned bucket.
func nullableID(id *uint64) any {
	if id == nil {
		return nil
	}
	return *id
}

// Append inserts an item at the end of its bucket: position MAX+1
// within (tierlist_id, tier_id), or 0 when the bucket is empty. The
// parent tierlist row is locked for the duration so concurrent appends
// to the same list cannot assign the same slot. A tier id pointing at a
// different tierlist yields ErrTierMismatch.
func (r *ItemRepo) Append(ctx context.Context, tierlistID uint64, tierID *uint64, name, imageURL, previewURL string) (*Item, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockTierlist(ctx, tx, tierlistID); err != nil {
		return nil, err
	}
	if tierID != nil {
		var one int
		err := tx.QueryRowContext(ctx,
			`SELECT 1 FROM tiers WHERE id = ? AND tierlist_id = ?`, *tierID, tierlistID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTierMismatch
		}
		if err != nil {
			return nil, err
		}
	}

	// <=> is MySQL's null-safe equality, so one query covers both the
	// tier buckets and the unassigned (tier_id IS NULL) bucket.
	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM items
		 WHERE tierlist_id = ? AND tier_id <=> ?`,
		tierlistID, nullableID(tierID)).Scan(&next); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO items (tierlist_id, tier_id, position, name, image_url, preview_url)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tierlistID, nullableID(tierID), next, name, imageURL, previewURL)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &Item{
		ID:         uint64(id),
		TierlistID: tierlistID,
		TierID:     tierID,
		Position:   next,
		Name:       name,
		ImageURL:   imageURL,
		PreviewURL: previewURL,
	}, nil
}

// GetByID retrieves an item by its id.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*Item, error) {
	var (
		it     Item
		tierID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tierlist_id, tier_id, position, name,
		        COALESCE(image_url, ''), COALESCE(preview_url, '')
		 FROM items WHERE id = ?`, id).
		Scan(&it.ID, &it.TierlistID, &tierID, &it.Position, &it.Name, &it.ImageURL, &it.PreviewURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if tierID.Valid {
		v := uint64(tierID.Int64)
		it.TierID = &v
	}
	return &it, nil
}

// ListByTierlist retrieves all items of a tierlist ordered by
// (tier_id, position), which groups each bucket together.
func (r *ItemRepo) ListByTierlist(ctx context.Context, tierlistID uint64) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tierlist_id, tier_id, position, name,
		        COALESCE(image_url, ''), COALESCE(preview_url, '')
		 FROM items WHERE tierlist_id = ?
		 ORDER BY tier_id, position`, tierlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Item
	for rows.Next() {
		var (
			it     Item
			tierID sql.NullInt64
		)
		if err := rows.Scan(&it.ID, &it.TierlistID, &tierID, &it.Position,
			&it.Name, &it.ImageURL, &it.PreviewURL); err != nil {
			return nil, err
		}
		if tierID.Valid {
			v := uint64(tierID.Int64)
			it.TierID = &v
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Move updates whichever of tier_id and position were supplied, leaving
// the other fields untouched. The caller validates tier membership and
// authorization beforehand; no re-pack of the source or destination
// bucket happens here, the supplied position is written verbatim.
func (r *ItemRepo) Move(ctx context.Context, id uint64, tierID *uint64, position *int) error {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if tierID != nil {
		sets = append(sets, "tier_id = ?")
		args = append(args, *tierID)
	}
	if position != nil {
		sets = append(sets, "position = ?")
		args = append(args, *position)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

// Delete removes an item; its votes go with it via the cascade.
func (r *ItemRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}
