package garments

import (
	"threadloop/core/events"
	"threadloop/native/access"
)

const (
	// MaxTokens caps the garment identifier space.
	MaxTokens = 1_000_000
	// MaxLifecycleEvents bounds the append-only log kept per garment.
	MaxLifecycleEvents = 50
	// MinMetadataLen and MaxMetadataLen bound garment metadata and
	// lifecycle-event detail strings.
	MinMetadataLen = 1
	MaxMetadataLen = 256
)

// EventKind identifies a recorded real-world state change of a garment.
type EventKind string

const (
	EventProduction EventKind = "production"
	EventRepair     EventKind = "repair"
	EventResale     EventKind = "resale"
	EventRecycle    EventKind = "recycle"
	EventDonation   EventKind = "donation"
)

func validEventKind(k EventKind) bool {
	switch k {
	case EventProduction, EventRepair, EventResale, EventRecycle, EventDonation:
		return true
	}
	return false
}

func validMetadata(s string) bool {
	return len(s) >= MinMetadataLen && len(s) <= MaxMetadataLen
}

// Token is a registered garment: an owner and its mutable metadata.
type Token struct {
	Owner    [20]byte
	Metadata string
}

// LifecycleEvent is one immutable entry in a garment's provenance log.
type LifecycleEvent struct {
	Kind    EventKind
	Height  uint64
	Details string
}

// Registry is the non-fungible garment state machine. Identifiers are
// allocated sequentially from 1 and never reused; a burned identifier simply
// becomes absent. Checks run in a fixed order per operation and no failing
// call mutates state. Callers serialise operations, the registry holds no
// internal lock.
type Registry struct {
	policy      access.Policy
	tokens      map[uint64]*Token
	lifecycle   map[uint64][]LifecycleEvent
	totalMinted uint64
	tokenCount  map[[20]byte]uint64
	emitter     events.Emitter
}

// NewRegistry creates a garment registry administered by the given principal.
func NewRegistry(admin [20]byte) *Registry {
	return &Registry{
		policy:     access.NewPolicy(admin),
		tokens:     make(map[uint64]*Token),
		lifecycle:  make(map[uint64][]LifecycleEvent),
		tokenCount: make(map[[20]byte]uint64),
		emitter:    events.NoopEmitter{},
	}
}

// SetEmitter configures the event emitter used to broadcast registry updates.
// Passing nil resets the emitter to a no-op implementation.
func (r *Registry) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		r.emitter = events.NoopEmitter{}
		return
	}
	r.emitter = emitter
}

// SetPaused toggles the pause flag gating non-admin mutating operations and
// returns the new flag value.
func (r *Registry) SetPaused(caller [20]byte, paused bool) (bool, error) {
	if err := r.policy.RequireAdmin(caller); err != nil {
		return r.policy.PausedFlag, err
	}
	r.policy.PausedFlag = paused
	r.emitter.Emit(events.GarmentPausedChanged{Paused: paused})
	return paused, nil
}

// TransferAdmin hands the admin role to another principal.
func (r *Registry) TransferAdmin(caller, newAdmin [20]byte) error {
	if err := r.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(newAdmin); err != nil {
		return err
	}
	r.policy.Admin = newAdmin
	return nil
}

// SetProvenanceContract configures the single address authorised to record
// lifecycle events.
func (r *Registry) SetProvenanceContract(caller, contract [20]byte) error {
	if err := r.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(contract); err != nil {
		return err
	}
	r.policy.ProvenanceContract = contract
	r.policy.ProvenanceSet = true
	r.emitter.Emit(events.GarmentProvenanceSet{Contract: contract})
	return nil
}

// Mint registers a new garment for the recipient and returns its identifier.
func (r *Registry) Mint(caller, recipient [20]byte, metadata string) (uint64, error) {
	if err := r.policy.RequireAdmin(caller); err != nil {
		return 0, err
	}
	if err := access.RequireNonZeroAddress(recipient); err != nil {
		return 0, err
	}
	if !validMetadata(metadata) {
		return 0, ErrInvalidMetadata
	}
	if err := r.policy.RequireNotPaused(); err != nil {
		return 0, err
	}
	nextID := r.totalMinted + 1
	if nextID > MaxTokens {
		return 0, ErrIDSpaceExhausted
	}
	r.tokens[nextID] = &Token{Owner: recipient, Metadata: metadata}
	r.tokenCount[recipient]++
	r.totalMinted = nextID
	r.emitter.Emit(events.GarmentMinted{
		TokenID:  nextID,
		Owner:    recipient,
		Metadata: metadata,
	})
	return nextID, nil
}

// Transfer reassigns a garment from its current owner to the recipient.
func (r *Registry) Transfer(caller [20]byte, tokenID uint64, recipient [20]byte) error {
	if err := r.policy.RequireNotPaused(); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(recipient); err != nil {
		return err
	}
	token, ok := r.tokens[tokenID]
	if !ok {
		return ErrNoSuchToken
	}
	if token.Owner != caller {
		return ErrNotOwner
	}
	token.Owner = recipient
	r.decrementCount(caller)
	r.tokenCount[recipient]++
	r.emitter.Emit(events.GarmentTransferred{
		TokenID: tokenID,
		From:    caller,
		To:      recipient,
	})
	return nil
}

// UpdateMetadata replaces a garment's metadata, leaving the owner unchanged.
func (r *Registry) UpdateMetadata(caller [20]byte, tokenID uint64, metadata string) error {
	if err := r.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if !validMetadata(metadata) {
		return ErrInvalidMetadata
	}
	token, ok := r.tokens[tokenID]
	if !ok {
		return ErrNoSuchToken
	}
	token.Metadata = metadata
	r.emitter.Emit(events.GarmentMetadataUpdated{
		TokenID:  tokenID,
		Metadata: metadata,
	})
	return nil
}

// AddLifecycleEvent appends one entry to a garment's provenance log. Only the
// provenance contract may call it; the log is bounded to MaxLifecycleEvents
// entries and ordering is insertion order.
func (r *Registry) AddLifecycleEvent(caller [20]byte, tokenID uint64, kind EventKind, details string, height uint64) error {
	if err := r.policy.RequireProvenanceCaller(caller); err != nil {
		return err
	}
	if !validEventKind(kind) {
		return ErrInvalidEvent
	}
	if !validMetadata(details) {
		return ErrInvalidMetadata
	}
	if _, ok := r.tokens[tokenID]; !ok {
		return ErrNoSuchToken
	}
	log, ok := r.lifecycle[tokenID]
	if !ok {
		log = make([]LifecycleEvent, 0, MaxLifecycleEvents)
	}
	if len(log) >= MaxLifecycleEvents {
		return ErrEventLogFull
	}
	r.lifecycle[tokenID] = append(log, LifecycleEvent{
		Kind:    kind,
		Height:  height,
		Details: details,
	})
	r.emitter.Emit(events.GarmentLifecycleRecorded{
		TokenID:   tokenID,
		EventKind: string(kind),
		Height:    height,
		Details:   details,
	})
	return nil
}

// Burn retires a garment, deleting the token and its lifecycle log. The
// identifier is never reused.
func (r *Registry) Burn(caller [20]byte, tokenID uint64) error {
	if err := r.policy.RequireAdmin(caller); err != nil {
		return err
	}
	token, ok := r.tokens[tokenID]
	if !ok {
		return ErrNoSuchToken
	}
	r.decrementCount(token.Owner)
	delete(r.tokens, tokenID)
	delete(r.lifecycle, tokenID)
	r.emitter.Emit(events.GarmentBurned{
		TokenID:   tokenID,
		LastOwner: token.Owner,
	})
	return nil
}

// --- Queries ---

// Owner returns the current owner of a garment.
func (r *Registry) Owner(tokenID uint64) ([20]byte, error) {
	token, ok := r.tokens[tokenID]
	if !ok {
		return [20]byte{}, ErrNoSuchToken
	}
	return token.Owner, nil
}

// Metadata returns the current metadata of a garment.
func (r *Registry) Metadata(tokenID uint64) (string, error) {
	token, ok := r.tokens[tokenID]
	if !ok {
		return "", ErrNoSuchToken
	}
	return token.Metadata, nil
}

// LifecycleEvents returns a copy of a garment's provenance log in insertion
// order.
func (r *Registry) LifecycleEvents(tokenID uint64) ([]LifecycleEvent, error) {
	if _, ok := r.tokens[tokenID]; !ok {
		return nil, ErrNoSuchToken
	}
	log := r.lifecycle[tokenID]
	out := make([]LifecycleEvent, len(log))
	copy(out, log)
	return out, nil
}

// TotalMinted returns the number of identifiers allocated so far, which is
// also the highest identifier ever minted.
func (r *Registry) TotalMinted() uint64 {
	return r.totalMinted
}

// TokenCount returns the number of garments currently owned by the principal.
func (r *Registry) TokenCount(addr [20]byte) uint64 {
	return r.tokenCount[addr]
}

// Admin returns the current admin principal.
func (r *Registry) Admin() [20]byte {
	return r.policy.Admin
}

// Paused reports whether non-admin mutations are gated.
func (r *Registry) Paused() bool {
	return r.policy.PausedFlag
}

// Provenance returns the configured provenance contract, if any.
func (r *Registry) Provenance() ([20]byte, bool) {
	return r.policy.ProvenanceContract, r.policy.ProvenanceSet
}

// decrementCount keeps the zero-vs-absent equivalence for owner counts.
func (r *Registry) decrementCount(addr [20]byte) {
	if count := r.tokenCount[addr]; count <= 1 {
		delete(r.tokenCount, addr)
	} else {
		r.tokenCount[addr] = count - 1
	}
}
