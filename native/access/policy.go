package access

import "errors"

var (
	ErrNotAuthorized    = errors.New("access: not authorized")
	ErrPaused           = errors.New("access: paused")
	ErrZeroAddress      = errors.New("access: zero address")
	ErrProvenanceNotSet = errors.New("access: provenance contract not set")
)

// ZeroAddress is the reserved null/burn principal. It can never be a valid
// recipient, admin, or provenance contract.
var ZeroAddress [20]byte

// Policy holds the principals and flags that gate a ledger's mutating
// operations. Both the reward ledger and the garment registry embed one; the
// check predicates are side-effect free so callers can compose them in the
// exact order their operation contract requires.
type Policy struct {
	Admin              [20]byte
	PausedFlag         bool
	ProvenanceContract [20]byte
	ProvenanceSet      bool
}

// NewPolicy returns a policy administered by the given principal.
func NewPolicy(admin [20]byte) Policy {
	return Policy{Admin: admin}
}

// IsAdmin reports whether the caller is the stored admin.
func (p *Policy) IsAdmin(caller [20]byte) bool {
	return caller == p.Admin
}

// RequireAdmin fails with ErrNotAuthorized unless the caller is the admin.
func (p *Policy) RequireAdmin(caller [20]byte) error {
	if !p.IsAdmin(caller) {
		return ErrNotAuthorized
	}
	return nil
}

// RequireNotPaused fails with ErrPaused while the pause flag is set.
func (p *Policy) RequireNotPaused() error {
	if p.PausedFlag {
		return ErrPaused
	}
	return nil
}

// RequireNonZeroAddress rejects the reserved null principal.
func RequireNonZeroAddress(addr [20]byte) error {
	if addr == ZeroAddress {
		return ErrZeroAddress
	}
	return nil
}

// RequireProvenanceCaller fails with ErrProvenanceNotSet before the contract
// is configured and ErrNotAuthorized for any caller other than the stored one.
func (p *Policy) RequireProvenanceCaller(caller [20]byte) error {
	if !p.ProvenanceSet {
		return ErrProvenanceNotSet
	}
	if caller != p.ProvenanceContract {
		return ErrNotAuthorized
	}
	return nil
}
