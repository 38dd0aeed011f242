package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/gufengmap/explore-engine/pkg/state"
)

// Storage defines the interface for session persistence.
type Storage interface {
	// SaveGameState saves a session's game state under its ID.
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error

	// LoadGameState retrieves a session by ID.
	// Returns nil if the session doesn't exist.
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)

	// DeleteGameState removes a session by ID.
	DeleteGameState(ctx context.Context, id uuid.UUID) error

	// ListSessionIDs returns the IDs of all stored sessions. Used by the
	// expiry sweeper to walk live sessions.
	ListSessionIDs(ctx context.Context) ([]uuid.UUID, error)

	// Ping tests the backend connection.
	Ping(ctx context.Context) error

	// Close closes the backend connection.
	Close() error
}
