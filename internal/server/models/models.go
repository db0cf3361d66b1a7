// Package models defines the records persisted by the development backend.
package models

import "time"

// Org is a tenant organization.
type Org struct {
	ID   string
	Name string
}

// User is a directory account of one org. PasswordHash is a bcrypt hash and
// never leaves the server.
type User struct {
	ID           int64
	OrgID        string
	Login        string
	DisplayName  string
	Description  string
	PasswordHash []byte
	CreatedAt    time.Time
}
