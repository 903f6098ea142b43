package types

import "time"

// BoardStore persists board documents. Callers attach to a backend, save
// and load boards by document id, and detach when done.
type BoardStore interface {
	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, every other operation returns ErrStoreDetached.
	Detach() error

	// SaveBoard writes the board and all its items, replacing any stored
	// copy with the same DocumentID. It returns the document id.
	SaveBoard(board *Board) (string, error)

	// LoadBoard rebuilds a stored board inside arena. Returns ErrNotFound
	// if no board has the id.
	LoadBoard(arena *Arena, id string) (*Board, error)

	// ListBoards summarizes every stored board.
	ListBoards() ([]BoardSummary, error)

	// DeleteBoard removes a stored board. Returns ErrNotFound if no board
	// has the id.
	DeleteBoard(id string) error
}

// BoardSummary describes a stored board without loading its items.
type BoardSummary struct {
	ID        string    `json:"board_id"`
	Name      string    `json:"name"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
