// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried on the engagement stream.
const (
	EventPropertyLiked    = "property.liked"
	EventPropertyReviewed = "property.reviewed"
)

// EngagementEvent is published when a user likes/unlikes a property or an
// admin reviews one.  It contains enough information for downstream
// consumers to log, notify, or feed analytics without querying the primary
// database.
type EngagementEvent struct {
	Type       string `json:"type"`
	PropertyID uint64 `json:"property_id"`
	// Liked events
	LikeID uint64 `json:"like_id,omitempty"`
	UserID uint64 `json:"user_id,omitempty"`
	Liked  bool   `json:"liked,omitempty"`
	// Review events
	AdminID    uint64 `json:"admin_id,omitempty"`
	Active     bool   `json:"active,omitempty"`
	ReviewNote string `json:"review_note,omitempty"`

	OccurredAt string `json:"occurred_at"`
}
