package events

const (
	// TypeGarmentMinted is emitted when the admin registers a new garment.
	TypeGarmentMinted = "garments.minted"
	// TypeGarmentTransferred is emitted when a garment changes owner.
	TypeGarmentTransferred = "garments.transferred"
	// TypeGarmentMetadataUpdated is emitted when the admin replaces a
	// garment's metadata.
	TypeGarmentMetadataUpdated = "garments.metadata.updated"
	// TypeGarmentLifecycleRecorded is emitted when the provenance contract
	// appends a lifecycle event to a garment's log.
	TypeGarmentLifecycleRecorded = "garments.lifecycle.recorded"
	// TypeGarmentBurned is emitted when the admin retires a garment.
	TypeGarmentBurned = "garments.burned"
	// TypeGarmentPausedChanged is emitted when the admin toggles the pause flag.
	TypeGarmentPausedChanged = "garments.paused.changed"
	// TypeGarmentProvenanceSet is emitted when the provenance contract address
	// is configured.
	TypeGarmentProvenanceSet = "garments.provenance.set"
)

// GarmentMinted captures the registration of a new garment token.
type GarmentMinted struct {
	TokenID  uint64
	Owner    [20]byte
	Metadata string
}

func (GarmentMinted) EventType() string { return TypeGarmentMinted }

// GarmentTransferred captures an owner-initiated garment transfer.
type GarmentTransferred struct {
	TokenID uint64
	From    [20]byte
	To      [20]byte
}

func (GarmentTransferred) EventType() string { return TypeGarmentTransferred }

// GarmentMetadataUpdated captures an admin metadata replacement.
type GarmentMetadataUpdated struct {
	TokenID  uint64
	Metadata string
}

func (GarmentMetadataUpdated) EventType() string { return TypeGarmentMetadataUpdated }

// GarmentLifecycleRecorded captures a lifecycle-log append.
type GarmentLifecycleRecorded struct {
	TokenID   uint64
	EventKind string
	Height    uint64
	Details   string
}

func (GarmentLifecycleRecorded) EventType() string { return TypeGarmentLifecycleRecorded }

// GarmentBurned captures an admin burn of a garment token.
type GarmentBurned struct {
	TokenID   uint64
	LastOwner [20]byte
}

func (GarmentBurned) EventType() string { return TypeGarmentBurned }

// GarmentPausedChanged captures a pause-flag toggle on the garment registry.
type GarmentPausedChanged struct {
	Paused bool
}

func (GarmentPausedChanged) EventType() string { return TypeGarmentPausedChanged }

// GarmentProvenanceSet captures the provenance contract configuration.
type GarmentProvenanceSet struct {
	Contract [20]byte
}

func (GarmentProvenanceSet) EventType() string { return TypeGarmentProvenanceSet }
