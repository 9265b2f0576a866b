package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/havenlist/estate-api/internal/model"
	"github.com/havenlist/estate-api/internal/query"
)

type PropertyRepo struct{ DB *sql.DB }

func NewPropertyRepo(db *sql.DB) *PropertyRepo { return &PropertyRepo{DB: db} }

const propertyColumns = "p.id,p.owner_id,p.is_active,p.details,p.location,p.pricing,p.media,p.review_note,p.created_at,p.updated_at"

func scanProperty(row interface{ Scan(...any) error }) (model.Property, error) {
	var p model.Property
	var details, location, pricing, media []byte
	err := row.Scan(&p.ID, &p.OwnerID, &p.IsActive,
		&details, &location, &pricing, &media,
		&p.ReviewNote, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	// NULL JSON columns scan as nil slices; keep them nil so readers see
	// "unknown" rather than an empty document.
	p.Details = json.RawMessage(details)
	p.Location = json.RawMessage(location)
	p.Pricing = json.RawMessage(pricing)
	p.Media = json.RawMessage(media)
	return p, nil
}

// Search executes the composed filter with pagination and returns the page
// of rows plus the pre-pagination total count.  The count runs against the
// same predicate so response metadata can never drift from the row set.
func (r *PropertyRepo) Search(ctx context.Context, f query.Filter, pg query.Page) ([]model.Property, int64, error) {
	cond, args := f.SQL()

	var total int64
	countSQL := "SELECT COUNT(*) FROM properties p WHERE " + cond
	if err := r.DB.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + propertyColumns + ` FROM properties p
		WHERE ` + cond + `
		ORDER BY p.created_at DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), pg.Limit, pg.Offset())

	rows, err := r.DB.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Property, 0, pg.Limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches one property.
func (r *PropertyRepo) GetByID(ctx context.Context, id uint64) (model.Property, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+propertyColumns+" FROM properties p WHERE p.id=? LIMIT 1", id)
	p, err := scanProperty(row)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

// Create inserts a listing for the owner.  New listings start inactive and
// become visible once an admin review activates them.
func (r *PropertyRepo) Create(ctx context.Context, ownerID uint64, details, location, pricing, media json.RawMessage) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO properties (owner_id, is_active, details, location, pricing, media) VALUES (?,?,?,?,?,?)",
		ownerID, false, nullableDoc(details), nullableDoc(location), nullableDoc(pricing), nullableDoc(media))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Update replaces the listing documents.  Only the owner may update; a
// mismatched owner yields ErrNotOwner.
func (r *PropertyRepo) Update(ctx context.Context, id, ownerID uint64, details, location, pricing, media json.RawMessage) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrNotOwner
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE properties SET details=?, location=?, pricing=?, media=?, updated_at=NOW() WHERE id=?",
		nullableDoc(details), nullableDoc(location), nullableDoc(pricing), nullableDoc(media), id)
	return err
}

// Delete removes the listing.  Only the owner may delete.
func (r *PropertyRepo) Delete(ctx context.Context, id, ownerID uint64) error {
	owner, err := r.ownerOf(ctx, id)
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrNotOwner
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM properties WHERE id=?", id)
	return err
}

// SetReview records an admin review decision: visibility flag plus note.
func (r *PropertyRepo) SetReview(ctx context.Context, id uint64, active bool, note string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE properties SET is_active=?, review_note=?, updated_at=NOW() WHERE id=?",
		active, note, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// distinguish "no such row" from "no change"
		if _, err := r.ownerOf(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PropertyRepo) ownerOf(ctx context.Context, id uint64) (uint64, error) {
	var owner uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT owner_id FROM properties WHERE id=? LIMIT 1", id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	return owner, err
}

// nullableDoc maps an absent document to SQL NULL so the column stays NULL
// instead of holding the string "null".
func nullableDoc(raw json.RawMessage) any {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return nil
	}
	return []byte(raw)
}
