package garments

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// TokenSnapshot is the serialisable form of a registered garment.
type TokenSnapshot struct {
	Owner    string `json:"owner"`
	Metadata string `json:"metadata"`
}

// LifecycleEventSnapshot is the serialisable form of one log entry.
type LifecycleEventSnapshot struct {
	Kind    string `json:"kind"`
	Height  uint64 `json:"height"`
	Details string `json:"details"`
}

// Snapshot is the serialisable form of the full registry state. Identifiers
// are stringified so the JSON object keys stay stable, addresses are hex
// encoded.
type Snapshot struct {
	Admin       string                              `json:"admin"`
	Paused      bool                                `json:"paused"`
	Provenance  string                              `json:"provenance,omitempty"`
	Tokens      map[string]TokenSnapshot            `json:"tokens"`
	Lifecycle   map[string][]LifecycleEventSnapshot `json:"lifecycle"`
	TotalMinted uint64                              `json:"totalMinted"`
}

// Snapshot exports the current registry state. Owner counts are derived on
// restore rather than stored.
func (r *Registry) Snapshot() *Snapshot {
	snap := &Snapshot{
		Admin:       hex.EncodeToString(r.policy.Admin[:]),
		Paused:      r.policy.PausedFlag,
		Tokens:      make(map[string]TokenSnapshot, len(r.tokens)),
		Lifecycle:   make(map[string][]LifecycleEventSnapshot, len(r.lifecycle)),
		TotalMinted: r.totalMinted,
	}
	if r.policy.ProvenanceSet {
		snap.Provenance = hex.EncodeToString(r.policy.ProvenanceContract[:])
	}
	for id, token := range r.tokens {
		snap.Tokens[formatID(id)] = TokenSnapshot{
			Owner:    hex.EncodeToString(token.Owner[:]),
			Metadata: token.Metadata,
		}
	}
	for id, log := range r.lifecycle {
		entries := make([]LifecycleEventSnapshot, 0, len(log))
		for _, evt := range log {
			entries = append(entries, LifecycleEventSnapshot{
				Kind:    string(evt.Kind),
				Height:  evt.Height,
				Details: evt.Details,
			})
		}
		snap.Lifecycle[formatID(id)] = entries
	}
	return snap
}

// RestoreRegistry rebuilds a registry from a snapshot.
func RestoreRegistry(snap *Snapshot) (*Registry, error) {
	if snap == nil {
		return nil, fmt.Errorf("garments: nil snapshot")
	}
	admin, err := parseAddr(snap.Admin)
	if err != nil {
		return nil, fmt.Errorf("garments: admin: %w", err)
	}
	registry := NewRegistry(admin)
	registry.policy.PausedFlag = snap.Paused
	if snap.Provenance != "" {
		contract, err := parseAddr(snap.Provenance)
		if err != nil {
			return nil, fmt.Errorf("garments: provenance: %w", err)
		}
		registry.policy.ProvenanceContract = contract
		registry.policy.ProvenanceSet = true
	}
	registry.totalMinted = snap.TotalMinted
	for encoded, token := range snap.Tokens {
		id, err := parseID(encoded)
		if err != nil {
			return nil, fmt.Errorf("garments: token id %q: %w", encoded, err)
		}
		owner, err := parseAddr(token.Owner)
		if err != nil {
			return nil, fmt.Errorf("garments: token %d owner: %w", id, err)
		}
		registry.tokens[id] = &Token{Owner: owner, Metadata: token.Metadata}
		registry.tokenCount[owner]++
	}
	for encoded, entries := range snap.Lifecycle {
		id, err := parseID(encoded)
		if err != nil {
			return nil, fmt.Errorf("garments: lifecycle id %q: %w", encoded, err)
		}
		if _, ok := registry.tokens[id]; !ok {
			return nil, fmt.Errorf("garments: lifecycle log for unknown token %d", id)
		}
		if len(entries) > MaxLifecycleEvents {
			return nil, fmt.Errorf("garments: lifecycle log for token %d exceeds %d entries", id, MaxLifecycleEvents)
		}
		log := make([]LifecycleEvent, 0, MaxLifecycleEvents)
		for _, evt := range entries {
			log = append(log, LifecycleEvent{
				Kind:    EventKind(evt.Kind),
				Height:  evt.Height,
				Details: evt.Details,
			})
		}
		registry.lifecycle[id] = log
	}
	return registry, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func parseID(encoded string) (uint64, error) {
	return strconv.ParseUint(encoded, 10, 64)
}

func parseAddr(encoded string) ([20]byte, error) {
	var out [20]byte
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return out, err
	}
	if len(raw) != len(out) {
		return out, fmt.Errorf("expected %d bytes, got %d", len(out), len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
