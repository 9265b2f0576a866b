package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/havenlist/estate-api/internal/model"
)

type LikeRepo struct{ DB *sql.DB }

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{DB: db} }

// ListByProperty returns all like events for one property, oldest first.
func (r *LikeRepo) ListByProperty(ctx context.Context, propertyID uint64) ([]model.LikeEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,property_id,liked,created_at FROM likes WHERE property_id=? ORDER BY created_at ASC",
		propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLikes(rows)
}

// ListByProperties returns like events for a set of properties in one
// query, keyed by property ID.  Used by the search page to avoid one
// query per row.
func (r *LikeRepo) ListByProperties(ctx context.Context, propertyIDs []uint64) (map[uint64][]model.LikeEvent, error) {
	out := make(map[uint64][]model.LikeEvent, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return out, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(propertyIDs)), ",")
	args := make([]any, len(propertyIDs))
	for i, id := range propertyIDs {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,property_id,liked,created_at FROM likes WHERE property_id IN ("+placeholders+") ORDER BY created_at ASC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events, err := collectLikes(rows)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		out[ev.PropertyID] = append(out[ev.PropertyID], ev)
	}
	return out, nil
}

// GetByID fetches one like event.
func (r *LikeRepo) GetByID(ctx context.Context, id uint64) (model.LikeEvent, error) {
	var ev model.LikeEvent
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,property_id,liked,created_at FROM likes WHERE id=? LIMIT 1",
		id).Scan(&ev.ID, &ev.UserID, &ev.PropertyID, &ev.Liked, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ev, ErrNotFound
	}
	return ev, err
}

// Insert writes a new like event and returns its ID.
func (r *LikeRepo) Insert(ctx context.Context, userID, propertyID uint64, liked bool) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO likes (user_id, property_id, liked) VALUES (?,?,?)",
		userID, propertyID, liked)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdateLiked flips the liked flag on an existing event.  Current-state
// uniqueness per (user, property) is a handler-level convention: the
// handler looks up the existing row by likedId before choosing insert vs
// update; no storage constraint enforces it.
func (r *LikeRepo) UpdateLiked(ctx context.Context, id uint64, liked bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE likes SET liked=? WHERE id=?", liked, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func collectLikes(rows *sql.Rows) ([]model.LikeEvent, error) {
	var out []model.LikeEvent
	for rows.Next() {
		var ev model.LikeEvent
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.PropertyID, &ev.Liked, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
