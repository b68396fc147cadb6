package battle

import "errors"

// Sentinel errors returned by transitions. Handlers map them to HTTP codes
// at the request boundary; nothing here knows about HTTP.
var (
	// ErrNotFound: the battle (or a referenced entity) does not exist.
	ErrNotFound = errors.New("battle not found")
	// ErrNotParticipant: the actor is neither dancer of this battle.
	ErrNotParticipant = errors.New("actor is not a participant of this battle")
	// ErrForbidden: authenticated but not entitled to this action.
	ErrForbidden = errors.New("actor may not perform this action")
	// ErrInvalidState: the battle's current status does not admit the action.
	ErrInvalidState = errors.New("action not allowed in current status")
	// ErrValidation: the action's input is missing or malformed.
	ErrValidation = errors.New("invalid action input")
	// ErrConflict: the status-guarded update matched no row, meaning a
	// concurrent transition won the race.
	ErrConflict = errors.New("battle was modified concurrently")
)
