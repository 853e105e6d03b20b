package events

import "math/big"

const (
	// TypeRewardMinted is emitted when the admin mints reward tokens.
	TypeRewardMinted = "rewards.minted"
	// TypeRewardTransferred is emitted on a successful balance transfer.
	TypeRewardTransferred = "rewards.transferred"
	// TypeRewardBurned is emitted when a holder burns part of their balance.
	TypeRewardBurned = "rewards.burned"
	// TypeRewardActionRecorded is emitted when the provenance contract
	// records a reward-eligible circular-economy action.
	TypeRewardActionRecorded = "rewards.action.recorded"
	// TypeRewardPausedChanged is emitted when the admin toggles the pause flag.
	TypeRewardPausedChanged = "rewards.paused.changed"
	// TypeRewardProvenanceSet is emitted when the provenance contract address
	// is configured.
	TypeRewardProvenanceSet = "rewards.provenance.set"
)

// RewardMinted captures an admin mint into a recipient balance.
type RewardMinted struct {
	Recipient [20]byte
	Amount    *big.Int
	Supply    *big.Int
}

func (RewardMinted) EventType() string { return TypeRewardMinted }

// RewardTransferred captures a holder-to-holder balance move.
type RewardTransferred struct {
	From   [20]byte
	To     [20]byte
	Amount *big.Int
}

func (RewardTransferred) EventType() string { return TypeRewardTransferred }

// RewardBurned captures a voluntary burn by a holder.
type RewardBurned struct {
	Holder [20]byte
	Amount *big.Int
	Supply *big.Int
}

func (RewardBurned) EventType() string { return TypeRewardBurned }

// RewardActionRecorded captures a cooldown-gated reward issuance.
type RewardActionRecorded struct {
	User       [20]byte
	ActionType string
	Amount     *big.Int
	Height     uint64
}

func (RewardActionRecorded) EventType() string { return TypeRewardActionRecorded }

// RewardPausedChanged captures a pause-flag toggle on the reward ledger.
type RewardPausedChanged struct {
	Paused bool
}

func (RewardPausedChanged) EventType() string { return TypeRewardPausedChanged }

// RewardProvenanceSet captures the provenance contract configuration.
type RewardProvenanceSet struct {
	Contract [20]byte
}

func (RewardProvenanceSet) EventType() string { return TypeRewardProvenanceSet }
