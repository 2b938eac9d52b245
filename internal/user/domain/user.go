package domain

import "errors"

var ErrNotFound = errors.New("user: not found")

// User is an identity record. Registration does no validation beyond
// shape; authentication is out of scope.
type User struct {
	ID    string
	Name  string
	Email string
}

// Clone returns a copy so callers never share memory with a stored record.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
