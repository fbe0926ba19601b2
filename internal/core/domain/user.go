package domain

import "errors"

// Role identifies what a user is allowed to do.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "usuario"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
	ErrSelfDeletion       = errors.New("cannot delete your own account")
	ErrInvalidRole        = errors.New("invalid role")
)

// User is a registered account. Email is the unique key.
type User struct {
	ID           int    `json:"id,omitempty"`
	Name         string `json:"nombre"`
	Handle       string `json:"usuario,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Role         Role   `json:"tipo"`
	BirthDate    string `json:"fechaNacimiento,omitempty"`
}

// Merge returns u with every non-zero field of edit applied.
// ID and Email are identity and are never taken from edit.
func (u User) Merge(edit User) User {
	if edit.Name != "" {
		u.Name = edit.Name
	}
	if edit.Handle != "" {
		u.Handle = edit.Handle
	}
	if edit.PasswordHash != "" {
		u.PasswordHash = edit.PasswordHash
	}
	if edit.Role != "" {
		u.Role = edit.Role
	}
	if edit.BirthDate != "" {
		u.BirthDate = edit.BirthDate
	}
	return u
}
