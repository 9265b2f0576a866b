package model

import "time"

// Document represents a row in the `documents` table: metadata about a file
// attached to a property (ownership deed, floor plan, ...).  The file bytes
// live in external object storage; only the reference is kept here.
//
// Fields:
//  ID         – primary key identifier.
//  PropertyID – property the document belongs to.
//  Kind       – document category (e.g. "deed", "floorplan").
//  FileName   – original file name.
//  FileURL    – storage location of the file.
//  CreatedAt  – timestamp of creation.
type Document struct {
	ID         uint64    // documents.id
	PropertyID uint64    // documents.property_id
	Kind       string    // documents.kind
	FileName   string    // documents.file_name
	FileURL    string    // documents.file_url
	CreatedAt  time.Time // documents.created_at
}
