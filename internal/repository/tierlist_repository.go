package repository // repository defines data access for tierlists

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions
	"time"         // time for the created_at column
)

// Tierlist represents a named, user-owned collection of tiers and items.
// CreatorID holds the identity provider's subject for the user who
// created the list and never changes afterwards.
type Tierlist struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatorID string    `json:"creator_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TierDef is an inline tier definition supplied when a tierlist is
// created. Definitions are positioned by their index in the request.
type TierDef struct {
	Name   string `json:"name"`
	Colour string `json:"colour"`
}

// ErrTierlistNotFound is returned when a tierlist lookup yields no rows.
var ErrTierlistNotFound = errors.New("tierlist not found")

// TierlistRepo provides methods to work with tierlists in the database.
type TierlistRepo struct {
	db *sql.DB
}

// NewTierlistRepo constructs a TierlistRepo with the given DB handle.
func NewTierlistRepo(db *sql.DB) *TierlistRepo {
	return &TierlistRepo{db: db}
}

// CreateWithTiers inserts a tierlist together with its initial tiers in
// a single transaction. Tier positions are assigned by array index so
// the sequence starts contiguous; definitions missing a name or colour
// are skipped without disturbing the numbering of the rest.
func (r *TierlistRepo) CreateWithTiers(ctx context.Context, name, creatorID string, defs []TierDef) (*Tierlist, []Tier, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO tierlists (name, creator_id) VALUES (?, ?)`, name, creatorID)
	if err != nil {
		return nil, nil, err
	}
	listID, err := res.LastInsertId()
	if err != nil {
		return nil, nil, err
	}

	pos := 0
	for _, d := range defs {
		if d.Name == "" || d.Colour == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tiers (tierlist_id, name, colour, position) VALUES (?, ?, ?, ?)`,
			listID, d.Name, d.Colour, pos); err != nil {
			return nil, nil, err
		}
		pos++
	}

	var tl Tierlist
	if err := tx.QueryRowContext(ctx,
		`SELECT id, name, creator_id, created_at FROM tierlists WHERE id = ?`, listID).
		Scan(&tl.ID, &tl.Name, &tl.CreatorID, &tl.CreatedAt); err != nil {
		return nil, nil, err
	}
	tiers, err := scanTiers(tx.QueryContext(ctx,
		`SELECT id, tierlist_id, name, colour, position FROM tiers
		 WHERE tierlist_id = ? ORDER BY position`, listID))
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return &tl, tiers, nil
}

// GetByID retrieves a tierlist by its id.
func (r *TierlistRepo) GetByID(ctx context.Context, id uint64) (*Tierlist, error) {
	var tl Tierlist
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, creator_id, created_at FROM tierlists WHERE id = ?`, id).
		Scan(&tl.ID, &tl.Name, &tl.CreatorID, &tl.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTierlistNotFound
		}
		return nil, err
	}
	return &tl, nil
}

// List returns all tierlists ordered by creation.
func (r *TierlistRepo) List(ctx context.Context) ([]Tierlist, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, creator_id, created_at FROM tierlists ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Tierlist
	for rows.Next() {
		var tl Tierlist
		if err := rows.Scan(&tl.ID, &tl.Name, &tl.CreatorID, &tl.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, tl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Exists reports whether a tierlist with the given id is present.
func (r *TierlistRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM tierlists WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a tierlist. Tiers, items and (transitively) votes are
// removed by the foreign key cascade. Returns ErrTierlistNotFound when
// no row was deleted.
func (r *TierlistRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tierlists WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTierlistNotFound
	}
	return nil
}
