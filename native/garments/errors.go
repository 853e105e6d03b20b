package garments

import "errors"

var (
	ErrInvalidMetadata  = errors.New("garments: invalid metadata")
	ErrNoSuchToken      = errors.New("garments: no such token")
	ErrNotOwner         = errors.New("garments: caller is not the owner")
	ErrInvalidEvent     = errors.New("garments: invalid lifecycle event type")
	ErrEventLogFull     = errors.New("garments: lifecycle event log full")
	ErrIDSpaceExhausted = errors.New("garments: identifier space exhausted")
)
