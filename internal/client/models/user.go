// Package models defines the directory records exchanged with the portal API.
package models

// User is a directory account as returned by the backend. Passwords are
// write-only and never appear in a User.
type User struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}

// Payload carries raw form field values keyed by their wire names, e.g.
// login, display_name, description, password, passwordConfirm.
type Payload map[string]string

// Wire names of the user fields.
const (
	FieldLogin           = "login"
	FieldDisplayName     = "display_name"
	FieldDescription     = "description"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
)

// DeleteResult is the confirmation returned by a delete.
type DeleteResult struct {
	Status string `json:"status"`
}
