package repository // repository defines data access for tiers

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions
)

// Tier represents a single row of a tierlist. Position is a zero-based
// index that stays contiguous (0..N-1) within the tierlist: appends take
// the next free slot and deletions re-pack the remainder.
type Tier struct {
	ID         uint64 `json:"id"`
	TierlistID uint64 `json:"tierlist_id"`
	Name       string `json:"name"`
	Colour     string `json:"colour"`
	Position   int    `json:"position"`
}

// ErrTierNotFound is returned when a tier lookup yields no rows.
var ErrTierNotFound = errors.New("tier not found")

// TierRepo provides methods to work with tiers in the database.
type TierRepo struct {
	db *sql.DB
}

// NewTierRepo constructs a TierRepo with the given DB handle.
func NewTierRepo(db *sql.DB) *TierRepo {
	return &TierRepo{db: db}
}

// lockTierlist takes a row lock on the parent tierlist inside tx. The
// lock serializes concurrent position assignments for one tierlist; two
// appends can otherwise read the same MAX(position) and collide. The
// read doubles as the existence check.
func lockTierlist(ctx context.Context, tx *sql.Tx, tierlistID uint64) error {
	var one int
	err := tx.QueryRowContext(ctx,
		`SELECT 1 FROM tierlists WHERE id = ? FOR UPDATE`, tierlistID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTierlistNotFound
	}
	return err
}

// Append inserts a tier at the end of the tierlist's sequence: position
// MAX+1, or 0 when the list has no tiers yet.
func (r *TierRepo) Append(ctx context.Context, tierlistID uint64, name, colour string) (*Tier, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := lockTierlist(ctx, tx, tierlistID); err != nil {
		return nil, err
	}
	var next int
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM tiers WHERE tierlist_id = ?`,
		tierlistID).Scan(&next); err != nil {
		return nil, err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tiers (tierlist_id, name, colour, position) VALUES (?, ?, ?, ?)`,
		tierlistID, name, colour, next)
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
	return &Tier{ID: uint64(id), TierlistID: tierlistID, Name: name, Colour: colour, Position: next}, nil
}

// GetByID retrieves a tier by its id.
func (r *TierRepo) GetByID(ctx context.Context, id uint64) (*Tier, error) {
	var t Tier
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tierlist_id, name, colour, position FROM tiers WHERE id = ?`, id).
		Scan(&t.ID, &t.TierlistID, &t.Name, &t.Colour, &t.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTierNotFound
		}
		return nil, err
	}
	return &t, nil
}

// BelongsTo reports whether the tier exists inside the given tierlist.
func (r *TierRepo) BelongsTo(ctx context.Context, tierID, tierlistID uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM tiers WHERE id = ? AND tierlist_id = ?`, tierID, tierlistID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByTierlist retrieves all tiers of a tierlist ordered by position.
func (r *TierRepo) ListByTierlist(ctx context.Context, tierlistID uint64) ([]Tier, error) {
	return scanTiers(r.db.QueryContext(ctx,
		`SELECT id, tierlist_id, name, colour, position FROM tiers
		 WHERE tierlist_id = ? ORDER BY position`, tierlistID))
}

// Update overwrites a tier's name and colour. Position is never touched
// here; ordering changes only through Append and Delete.
func (r *TierRepo) Update(ctx context.Context, id uint64, name, colour string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tiers SET name = ?, colour = ? WHERE id = ?`, name, colour, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTierNotFound
	}
	return nil
}

// Delete removes a tier and re-packs the remaining tiers of the same
// tierlist so their positions are exactly 0..N-1 again. Items that
// referenced the tier get tier_id NULL via the foreign key and keep
// their positions; the unassigned bucket is treated as historical
// ordering and is not renumbered. Votes on the tier are removed by the
// cascade.
func (r *TierRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var tierlistID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT tierlist_id FROM tiers WHERE id = ?`, id).Scan(&tierlistID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTierNotFound
	}
	if err != nil {
		return err
	}
	if err := lockTierlist(ctx, tx, tierlistID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tiers WHERE id = ?`, id); err != nil {
		return err
	}

	remaining, err := scanTiers(tx.QueryContext(ctx,
		`SELECT id, tierlist_id, name, colour, position FROM tiers
		 WHERE tierlist_id = ? ORDER BY position`, tierlistID))
	if err != nil {
		return err
	}
	for _, w := range repackWrites(remaining) {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tiers SET position = ? WHERE id = ?`, w.position, w.id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// positionWrite pairs a row id with the position it should be moved to.
type positionWrite struct {
	id       uint64
	position int
}

// repackWrites computes the updates needed so that tiers, already sorted
// by their current position, occupy exactly 0..N-1. Rows already in the
// right slot are left alone.
func repackWrites(tiers []Tier) []positionWrite {
	var writes []positionWrite
	for idx, t := range tiers {
		if t.Position != idx {
			writes = append(writes, positionWrite{id: t.ID, position: idx})
		}
	}
	return writes
}

// scanTiers drains a tier query into a slice, folding the query error in
// so callers can pass QueryContext results straight through.
func scanTiers(rows *sql.Rows, err error) ([]Tier, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Tier
	for rows.Next() {
		var t Tier
		if err := rows.Scan(&t.ID, &t.TierlistID, &t.Name, &t.Colour, &t.Position); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
