// Package model defines the data structures used throughout the application.
package model

// User represents a registered account. Email doubles as the login
// identifier and is unique across the system.
//
// Password holds the bcrypt digest while a user record moves between
// the store and the services. It is tagged `json:"-"` so no handler can
// leak it in a response, even by accident; services additionally clear
// it before returning a user across the service boundary.
type User struct {
	ID       int64  `json:"id"    db:"id"`
	Name     string `json:"name"  db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-"     db:"password"` // bcrypt digest, never serialized
}
