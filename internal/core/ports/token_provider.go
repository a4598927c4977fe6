package ports

import "time"

// TokenProvider issues room-join credentials for an external video provider.
// Implementations are stateless and never touch the database.
type TokenProvider interface {
	Name() string
	Generate(room, userID string, ttl time.Duration) (string, error)
}
