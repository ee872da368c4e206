// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account able to log in. Its ID and Email never change after registration.
type User struct {
	ID           string    // Store-assigned identifier (UUID for SQL/memory stores, ObjectID hex for Mongo).
	Username     string    // Display name; not unique.
	Email        string    // Login identifier; uniqueness is enforced by the registration use case.
	PasswordHash string    // bcrypt hash; never returned to callers or written to logs.
	Role         Role      // Authorization role, validated on every read.
	CreatedAt    time.Time // Timestamp of registration.
}
