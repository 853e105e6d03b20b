package garments_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"threadloop/native/access"
	"threadloop/native/garments"
)

var (
	admin      = addr(0x01)
	alice      = addr(0xA1)
	bob        = addr(0xB2)
	provenance = addr(0xC3)
)

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

func newRegistry(t *testing.T) *garments.Registry {
	t.Helper()
	return garments.NewRegistry(admin)
}

func mustMint(t *testing.T, r *garments.Registry, owner [20]byte, metadata string) uint64 {
	t.Helper()
	id, err := r.Mint(admin, owner, metadata)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return id
}

func withProvenance(t *testing.T, r *garments.Registry) {
	t.Helper()
	if err := r.SetProvenanceContract(admin, provenance); err != nil {
		t.Fatalf("set provenance: %v", err)
	}
}

func TestMintTransferBurnScenario(t *testing.T) {
	registry := newRegistry(t)
	id := mustMint(t, registry, alice, "organic cotton jacket, batch 7")
	if id != 1 {
		t.Fatalf("first identifier should be 1, got %d", id)
	}
	if got := registry.TokenCount(alice); got != 1 {
		t.Fatalf("alice token count: %d", got)
	}

	if err := registry.Transfer(alice, id, bob); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	owner, err := registry.Owner(id)
	if err != nil || owner != bob {
		t.Fatalf("owner after transfer: %x err=%v", owner, err)
	}
	if got := registry.TokenCount(alice); got != 0 {
		t.Fatalf("alice token count after transfer: %d", got)
	}
	if got := registry.TokenCount(bob); got != 1 {
		t.Fatalf("bob token count after transfer: %d", got)
	}

	if err := registry.Burn(admin, id); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if _, err := registry.Owner(id); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("owner after burn: %v", err)
	}
	if _, err := registry.Metadata(id); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("metadata after burn: %v", err)
	}
	if got := registry.TokenCount(bob); got != 0 {
		t.Fatalf("bob token count after burn: %d", got)
	}
}

func TestMintCheckOrdering(t *testing.T) {
	registry := newRegistry(t)

	if _, err := registry.Mint(alice, bob, "denim"); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("non-admin mint: %v", err)
	}
	if _, err := registry.Mint(admin, access.ZeroAddress, "denim"); !errors.Is(err, access.ErrZeroAddress) {
		t.Fatalf("zero recipient: %v", err)
	}
	if _, err := registry.Mint(admin, bob, ""); !errors.Is(err, garments.ErrInvalidMetadata) {
		t.Fatalf("empty metadata: %v", err)
	}
	if _, err := registry.Mint(admin, bob, strings.Repeat("x", 257)); !errors.Is(err, garments.ErrInvalidMetadata) {
		t.Fatalf("oversized metadata: %v", err)
	}
	if got := registry.TotalMinted(); got != 0 {
		t.Fatalf("counter mutated on rejected mints: %d", got)
	}

	// Metadata is validated before the pause flag is consulted.
	if _, err := registry.SetPaused(admin, true); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := registry.Mint(admin, bob, ""); !errors.Is(err, garments.ErrInvalidMetadata) {
		t.Fatalf("metadata check while paused: %v", err)
	}
	if _, err := registry.Mint(admin, bob, "denim"); !errors.Is(err, access.ErrPaused) {
		t.Fatalf("mint while paused: %v", err)
	}
}

func TestSequentialIdentifiersNeverReused(t *testing.T) {
	registry := newRegistry(t)
	for want := uint64(1); want <= 3; want++ {
		if id := mustMint(t, registry, alice, fmt.Sprintf("garment %d", want)); id != want {
			t.Fatalf("identifier %d, want %d", id, want)
		}
	}
	if err := registry.Burn(admin, 2); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if id := mustMint(t, registry, alice, "garment 4"); id != 4 {
		t.Fatalf("burned identifier reused: got %d", id)
	}
	if got := registry.TotalMinted(); got != 4 {
		t.Fatalf("total minted: %d", got)
	}
}

func TestTransferChecks(t *testing.T) {
	registry := newRegistry(t)
	id := mustMint(t, registry, alice, "wool coat")

	if _, err := registry.SetPaused(admin, true); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := registry.Transfer(alice, id, bob); !errors.Is(err, access.ErrPaused) {
		t.Fatalf("transfer while paused: %v", err)
	}
	if _, err := registry.SetPaused(admin, false); err != nil {
		t.Fatalf("unpause: %v", err)
	}

	if err := registry.Transfer(alice, id, access.ZeroAddress); !errors.Is(err, access.ErrZeroAddress) {
		t.Fatalf("zero recipient: %v", err)
	}
	if err := registry.Transfer(alice, 99, bob); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("missing token: %v", err)
	}
	if err := registry.Transfer(bob, id, bob); !errors.Is(err, garments.ErrNotOwner) {
		t.Fatalf("non-owner transfer: %v", err)
	}
	owner, err := registry.Owner(id)
	if err != nil || owner != alice {
		t.Fatalf("owner mutated by rejected transfers: %x err=%v", owner, err)
	}
}

func TestUpdateMetadata(t *testing.T) {
	registry := newRegistry(t)
	id := mustMint(t, registry, alice, "original")

	if err := registry.UpdateMetadata(alice, id, "replacement"); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("non-admin update: %v", err)
	}
	if err := registry.UpdateMetadata(admin, id, ""); !errors.Is(err, garments.ErrInvalidMetadata) {
		t.Fatalf("empty metadata: %v", err)
	}
	if err := registry.UpdateMetadata(admin, 99, "replacement"); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("missing token: %v", err)
	}
	if err := registry.UpdateMetadata(admin, id, "replacement"); err != nil {
		t.Fatalf("update: %v", err)
	}
	metadata, err := registry.Metadata(id)
	if err != nil || metadata != "replacement" {
		t.Fatalf("metadata: %q err=%v", metadata, err)
	}
	owner, err := registry.Owner(id)
	if err != nil || owner != alice {
		t.Fatalf("owner changed by metadata update: %x err=%v", owner, err)
	}
}

func TestLifecycleLog(t *testing.T) {
	registry := newRegistry(t)
	id := mustMint(t, registry, alice, "linen shirt")

	if err := registry.AddLifecycleEvent(alice, id, garments.EventRepair, "patched", 10); !errors.Is(err, access.ErrProvenanceNotSet) {
		t.Fatalf("expected ErrProvenanceNotSet, got %v", err)
	}
	withProvenance(t, registry)
	if err := registry.AddLifecycleEvent(alice, id, garments.EventRepair, "patched", 10); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
	if err := registry.AddLifecycleEvent(provenance, id, garments.EventKind("stolen"), "details", 10); !errors.Is(err, garments.ErrInvalidEvent) {
		t.Fatalf("invalid event kind: %v", err)
	}
	if err := registry.AddLifecycleEvent(provenance, id, garments.EventRepair, "", 10); !errors.Is(err, garments.ErrInvalidMetadata) {
		t.Fatalf("empty details: %v", err)
	}
	if err := registry.AddLifecycleEvent(provenance, 99, garments.EventRepair, "patched", 10); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("missing token: %v", err)
	}

	if err := registry.AddLifecycleEvent(provenance, id, garments.EventProduction, "sewn in lisbon", 5); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := registry.AddLifecycleEvent(provenance, id, garments.EventResale, "sold secondhand", 8); err != nil {
		t.Fatalf("append: %v", err)
	}
	log, err := registry.LifecycleEvents(id)
	if err != nil {
		t.Fatalf("lifecycle events: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("log length: %d", len(log))
	}
	if log[0].Kind != garments.EventProduction || log[0].Height != 5 {
		t.Fatalf("insertion order broken: %+v", log[0])
	}
	if log[1].Kind != garments.EventResale || log[1].Details != "sold secondhand" {
		t.Fatalf("insertion order broken: %+v", log[1])
	}
}

func TestLifecycleLogBounded(t *testing.T) {
	registry := newRegistry(t)
	id := mustMint(t, registry, alice, "cap")
	withProvenance(t, registry)

	for i := 0; i < garments.MaxLifecycleEvents; i++ {
		if err := registry.AddLifecycleEvent(provenance, id, garments.EventRecycle, fmt.Sprintf("cycle %d", i), uint64(i)); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}
	err := registry.AddLifecycleEvent(provenance, id, garments.EventRecycle, "one too many", 999)
	if !errors.Is(err, garments.ErrEventLogFull) {
		t.Fatalf("expected ErrEventLogFull, got %v", err)
	}
	log, err := registry.LifecycleEvents(id)
	if err != nil {
		t.Fatalf("lifecycle events: %v", err)
	}
	if len(log) != garments.MaxLifecycleEvents {
		t.Fatalf("log length after overflow attempt: %d", len(log))
	}
}

func TestBurnDeletesLifecycleLog(t *testing.T) {
	registry := newRegistry(t)
	id := mustMint(t, registry, alice, "scarf")
	withProvenance(t, registry)
	if err := registry.AddLifecycleEvent(provenance, id, garments.EventDonation, "given away", 12); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := registry.Burn(alice, id); !errors.Is(err, access.ErrNotAuthorized) {
		t.Fatalf("non-admin burn: %v", err)
	}
	if err := registry.Burn(admin, id); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if _, err := registry.LifecycleEvents(id); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("lifecycle events after burn: %v", err)
	}
	if err := registry.Burn(admin, id); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("double burn: %v", err)
	}
}

func TestSnapshotRoundtrip(t *testing.T) {
	registry := newRegistry(t)
	withProvenance(t, registry)
	first := mustMint(t, registry, alice, "jacket")
	second := mustMint(t, registry, bob, "jeans")
	if err := registry.AddLifecycleEvent(provenance, first, garments.EventProduction, "sewn", 3); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := registry.Burn(admin, second); err != nil {
		t.Fatalf("burn: %v", err)
	}

	restored, err := garments.RestoreRegistry(registry.Snapshot())
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := restored.TotalMinted(); got != 2 {
		t.Fatalf("total minted mismatch: %d", got)
	}
	owner, err := restored.Owner(first)
	if err != nil || owner != alice {
		t.Fatalf("owner mismatch: %x err=%v", owner, err)
	}
	if _, err := restored.Owner(second); !errors.Is(err, garments.ErrNoSuchToken) {
		t.Fatalf("burned token restored: %v", err)
	}
	log, err := restored.LifecycleEvents(first)
	if err != nil || len(log) != 1 || log[0].Kind != garments.EventProduction {
		t.Fatalf("lifecycle mismatch: %+v err=%v", log, err)
	}
	if got := restored.TokenCount(alice); got != 1 {
		t.Fatalf("token count mismatch: %d", got)
	}
	contract, ok := restored.Provenance()
	if !ok || contract != provenance {
		t.Fatalf("provenance mismatch")
	}
}
