package auth

import "errors"

var (
	ErrInvalidToken = errors.New("Invalid or expired token")
	ErrNoSecret     = errors.New("SUPABASE_JWT_SECRET is not set")
)
