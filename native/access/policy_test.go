package access_test

import (
	"errors"
	"testing"

	"threadloop/native/access"
)

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

func TestRequireAdmin(t *testing.T) {
	policy := access.NewPolicy(addr(0x01))
	if !policy.IsAdmin(addr(0x01)) {
		t.Fatalf("expected stored admin to be recognised")
	}
	if err := policy.RequireAdmin(addr(0x01)); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if err := policy.RequireAdmin(addr(0x02)); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestRequireNotPaused(t *testing.T) {
	policy := access.NewPolicy(addr(0x01))
	if err := policy.RequireNotPaused(); err != nil {
		t.Fatalf("unpaused policy rejected: %v", err)
	}
	policy.PausedFlag = true
	if err := policy.RequireNotPaused(); !errors.Is(err, access.ErrPaused) {
		t.Fatalf("expected ErrPaused, got %v", err)
	}
}

func TestRequireNonZeroAddress(t *testing.T) {
	if err := access.RequireNonZeroAddress(addr(0x01)); err != nil {
		t.Fatalf("non-zero address rejected: %v", err)
	}
	if err := access.RequireNonZeroAddress(access.ZeroAddress); !errors.Is(err, access.ErrZeroAddress) {
		t.Fatalf("expected ErrZeroAddress, got %v", err)
	}
}

func TestRequireProvenanceCaller(t *testing.T) {
	policy := access.NewPolicy(addr(0x01))
	if err := policy.RequireProvenanceCaller(addr(0x05)); !errors.Is(err, access.ErrProvenanceNotSet) {
		t.Fatalf("expected ErrProvenanceNotSet, got %v", err)
	}
	policy.ProvenanceContract = addr(0x05)
	policy.ProvenanceSet = true
	if err := policy.RequireProvenanceCaller(addr(0x06)); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := policy.RequireProvenanceCaller(addr(0x05)); err != nil {
		t.Fatalf("provenance caller rejected: %v", err)
	}
}
