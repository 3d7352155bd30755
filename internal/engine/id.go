package engine

import "github.com/google/uuid"

// generateID creates a session ID. It is not drawn from the game RNG, so it
// has no effect on how a seeded game plays out.
func generateID() string {
	return uuid.NewString()
}
