// Package queue defines message payloads exchanged over the message broker.
package queue

// VoteCastEvent is published after a vote upsert succeeds. It carries
// enough information for downstream consumers to log or feed analytics
// without querying the primary database.
type VoteCastEvent struct {
	TierlistID uint64 `json:"tierlist_id"`
	ItemID     uint64 `json:"item_id"`
	ItemName   string `json:"item_name"`
	TierID     uint64 `json:"tier_id"`
	UserID     string `json:"user_id"`
	CastAt     string `json:"cast_at"`
}
