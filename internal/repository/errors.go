package repository

import "errors"

var (
	// ErrNotFound covers both a missing row and a row owned by another
	// user. The two cases must stay indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken signals a duplicate email on user creation.
	ErrEmailTaken = errors.New("email already registered")
)
