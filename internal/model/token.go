package model

import "time"

// TokenManager signs and validates session cookie tokens.
type TokenManager interface {
	GenerateSessionToken(sessionID string, ttl time.Duration) (string, error)
	ParseSessionToken(token string) (sessionID string, err error)
}
