package model

import "time"

// LikeEvent represents a row in the `likes` table: one timestamped record
// of a user's liked state toward a property.  Multiple rows may exist per
// (user, property) pair historically; the most recent row's Liked flag is
// the authoritative current state.  That soft uniqueness is enforced by the
// handler layer (look up the existing row before insert vs. update), not by
// a storage constraint.
//
// Fields:
//  ID         – primary key identifier.
//  UserID     – user who liked/unliked.
//  PropertyID – target property.
//  Liked      – current liked flag carried by this row.
//  CreatedAt  – when the row was written.
type LikeEvent struct {
	ID         uint64    // likes.id
	UserID     uint64    // likes.user_id
	PropertyID uint64    // likes.property_id
	Liked      bool      // likes.liked
	CreatedAt  time.Time // likes.created_at
}
