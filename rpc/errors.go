package rpc

import (
	"errors"

	"threadloop/core"
	"threadloop/native/access"
	"threadloop/native/garments"
	"threadloop/native/rewards"
)

// Stable JSON-RPC codes for the ledger error taxonomy. Component-specific
// errors that occupy the same slot on both ledgers share one code.
const (
	codeNotAuthorized       = -32050
	codeInsufficientBalance = -32051
	codeIDSpaceExhausted    = -32052
	codeNotOwner            = -32053
	codePaused              = -32054
	codeZeroAddress         = -32055
	codeInvalidAmount       = -32056
	codeInvalidEntity       = -32057 // invalid metadata / no such token
	codeInvalidEvent        = -32058
	codeCapReached          = -32059 // max supply / event log full
	codeCooldownActive      = -32060
	codeProvenanceNotSet    = -32061
)

// invalidParamsError marks request decoding failures so they surface as
// codeInvalidParams rather than a domain code.
type invalidParamsError struct {
	msg string
}

func (e *invalidParamsError) Error() string { return e.msg }

func invalidParams(msg string) error {
	return &invalidParamsError{msg: msg}
}

func errorCode(err error) (int, string) {
	var paramErr *invalidParamsError
	if errors.As(err, &paramErr) {
		return codeInvalidParams, paramErr.msg
	}
	switch {
	case errors.Is(err, access.ErrNotAuthorized):
		return codeNotAuthorized, err.Error()
	case errors.Is(err, access.ErrPaused):
		return codePaused, err.Error()
	case errors.Is(err, access.ErrZeroAddress):
		return codeZeroAddress, err.Error()
	case errors.Is(err, access.ErrProvenanceNotSet):
		return codeProvenanceNotSet, err.Error()
	case errors.Is(err, rewards.ErrInvalidAmount):
		return codeInvalidAmount, err.Error()
	case errors.Is(err, rewards.ErrInsufficientBalance):
		return codeInsufficientBalance, err.Error()
	case errors.Is(err, rewards.ErrMaxSupplyReached),
		errors.Is(err, garments.ErrEventLogFull):
		return codeCapReached, err.Error()
	case errors.Is(err, rewards.ErrCooldownActive):
		return codeCooldownActive, err.Error()
	case errors.Is(err, rewards.ErrInvalidAction),
		errors.Is(err, garments.ErrInvalidEvent):
		return codeInvalidEvent, err.Error()
	case errors.Is(err, garments.ErrInvalidMetadata),
		errors.Is(err, garments.ErrNoSuchToken):
		return codeInvalidEntity, err.Error()
	case errors.Is(err, garments.ErrNotOwner):
		return codeNotOwner, err.Error()
	case errors.Is(err, garments.ErrIDSpaceExhausted):
		return codeIDSpaceExhausted, err.Error()
	case errors.Is(err, core.ErrHeightRegression):
		return codeInvalidParams, err.Error()
	}
	return codeServerError, err.Error()
}
