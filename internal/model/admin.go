package model

import (
	"encoding/json"
	"time"
)

// Admin represents a row in the `admins` table.  Admins authenticate
// against their own credential kind and secret; a user token can never be
// used on the admin surface.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Permissions  – optional JSON array of permission names (nullable).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Admin struct {
	ID           uint64          // admins.id
	Email        string          // admins.email
	PasswordHash string          // admins.password_hash
	Permissions  json.RawMessage // admins.permissions (nullable JSON array)
	CreatedAt    time.Time       // admins.created_at
	UpdatedAt    time.Time       // admins.updated_at
}

// PermissionList decodes the permissions document.  NULL or undecodable
// values yield an empty list.
func (a Admin) PermissionList() []string {
	if len(a.Permissions) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(a.Permissions, &out); err != nil {
		return nil
	}
	return out
}
