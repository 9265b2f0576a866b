package repository

import (
	"context"
	"database/sql"

	"github.com/havenlist/estate-api/internal/model"
)

type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

// Create stores document metadata for a property.  The file itself lives
// in external object storage; only the reference is recorded here.
func (r *DocumentRepo) Create(ctx context.Context, propertyID uint64, kind, fileName, fileURL string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (property_id, kind, file_name, file_url) VALUES (?,?,?,?)",
		propertyID, kind, fileName, fileURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByProperty returns all documents attached to a property.
func (r *DocumentRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.Document, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,property_id,kind,file_name,file_url,created_at FROM documents WHERE property_id=? ORDER BY created_at ASC",
		propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.PropertyID, &d.Kind, &d.FileName, &d.FileURL, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
