package database

import (
	"context"
	"database/sql"
)

// schemaStatements creates the four application tables. Referential
// integrity lives in the DDL: deleting a tierlist cascades to its tiers
// and items, deleting a tier nulls out the tier_id of its items, and
// deleting an item or tier removes the votes that reference it. The
// unique key on votes (user_id, item_id) backs the atomic vote upsert.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tierlists (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(100) NOT NULL,
		creator_id VARCHAR(64)  NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS tiers (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		tierlist_id BIGINT UNSIGNED NOT NULL,
		name        VARCHAR(100) NOT NULL,
		colour      VARCHAR(20)  NOT NULL,
		position    INT          NOT NULL,
		KEY idx_tiers_list_position (tierlist_id, position),
		CONSTRAINT fk_tiers_tierlist FOREIGN KEY (tierlist_id)
			REFERENCES tierlists(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS items (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		tierlist_id BIGINT UNSIGNED NOT NULL,
		tier_id     BIGINT UNSIGNED NULL,
		position    INT          NOT NULL DEFAULT 0,
		name        VARCHAR(100) NOT NULL,
		image_url   VARCHAR(200) NULL,
		preview_url VARCHAR(200) NULL,
		KEY idx_items_bucket (tierlist_id, tier_id, position),
		CONSTRAINT fk_items_tierlist FOREIGN KEY (tierlist_id)
			REFERENCES tierlists(id) ON DELETE CASCADE,
		CONSTRAINT fk_items_tier FOREIGN KEY (tier_id)
			REFERENCES tiers(id) ON DELETE SET NULL
	) ENGINE=InnoDB`,

	`CREATE TABLE IF NOT EXISTS votes (
		id      BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id VARCHAR(100)    NOT NULL,
		item_id BIGINT UNSIGNED NOT NULL,
		tier_id BIGINT UNSIGNED NOT NULL,
		UNIQUE KEY uq_votes_user_item (user_id, item_id),
		CONSTRAINT fk_votes_item FOREIGN KEY (item_id)
			REFERENCES items(id) ON DELETE CASCADE,
		CONSTRAINT fk_votes_tier FOREIGN KEY (tier_id)
			REFERENCES tiers(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// EnsureSchema creates any missing tables. Statements are idempotent so
// this is safe to run on every startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
