package model

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Property represents a row in the `properties` table.  The descriptive
// parts of a listing (details, location, pricing, media) are free-form JSON
// documents rather than fixed columns; any of them may be NULL and any
// sub-field may be missing.  Readers treat absent values as "unknown",
// never as an error.
//
// Fields:
//  ID         – primary key identifier.
//  OwnerID    – user who created the listing.
//  IsActive   – whether the listing is publicly visible (set by admin review).
//  Details    – free-form document (title, listingType, propertyType, ...).
//  Location   – free-form document (city, state, coordinates, ...).
//  Pricing    – free-form document (amount, currency, period, ...).
//  Media      – free-form document (image URLs, video URLs, ...).
//  ReviewNote – note left by the reviewing admin (nullable).
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Property struct {
	ID         uint64          // properties.id
	OwnerID    uint64          // properties.owner_id
	IsActive   bool            // properties.is_active
	Details    json.RawMessage // properties.details (nullable JSON)
	Location   json.RawMessage // properties.location (nullable JSON)
	Pricing    json.RawMessage // properties.pricing (nullable JSON)
	Media      json.RawMessage // properties.media (nullable JSON)
	ReviewNote sql.NullString  // properties.review_note
	CreatedAt  time.Time       // properties.created_at
	UpdatedAt  time.Time       // properties.updated_at
}

// Doc decodes one of the property's JSON documents into a generic map.
// NULL or undecodable documents yield nil, so a reader never crashes on a
// listing with missing parts.
func Doc(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
