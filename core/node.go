package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"threadloop/native/access"
	"threadloop/native/garments"
	"threadloop/native/rewards"
	"threadloop/observability/metrics"
	"threadloop/storage"
)

// ErrHeightRegression is returned when the host clock moves backwards.
var ErrHeightRegression = errors.New("core: block height regression")

var stateKey = []byte("threadloop/state")

// Node owns one reward ledger and one garment registry and serialises every
// operation behind a single lock, matching the total-order, all-or-nothing
// execution the replicated host environment guarantees. After each committed
// mutation the node persists a snapshot of both ledgers to its database and
// restores it on startup.
type Node struct {
	mu     sync.RWMutex
	db     storage.Database
	logger *slog.Logger

	height   uint64
	rewards  *rewards.Ledger
	garments *garments.Registry

	rewardMetrics  *metrics.RewardMetrics
	garmentMetrics *metrics.GarmentMetrics
}

// ledgerState is the on-disk envelope for both ledgers plus the clock.
type ledgerState struct {
	Height   uint64             `json:"height"`
	Rewards  *rewards.Snapshot  `json:"rewards"`
	Garments *garments.Snapshot `json:"garments"`
}

// NewNode opens a node backed by the given database. When a snapshot exists
// it is restored; otherwise fresh ledgers are created with the given admin.
func NewNode(db storage.Database, admin [20]byte, logger *slog.Logger) (*Node, error) {
	if db == nil {
		return nil, fmt.Errorf("core: database required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	n := &Node{db: db, logger: logger}

	has, err := db.Has(stateKey)
	if err != nil {
		return nil, fmt.Errorf("core: probe state: %w", err)
	}
	if has {
		raw, err := db.Get(stateKey)
		if err != nil {
			return nil, fmt.Errorf("core: load state: %w", err)
		}
		var state ledgerState
		if err := json.Unmarshal(raw, &state); err != nil {
			return nil, fmt.Errorf("core: decode state: %w", err)
		}
		n.height = state.Height
		if n.rewards, err = rewards.RestoreLedger(state.Rewards); err != nil {
			return nil, err
		}
		if n.garments, err = garments.RestoreRegistry(state.Garments); err != nil {
			return nil, err
		}
		logger.Info("restored ledger state", slog.Uint64("height", state.Height))
	} else {
		if err := access.RequireNonZeroAddress(admin); err != nil {
			return nil, fmt.Errorf("core: admin: %w", err)
		}
		n.rewards = rewards.NewLedger(admin)
		n.garments = garments.NewRegistry(admin)
	}

	emitter := slogEmitter{logger: logger}
	n.rewards.SetEmitter(emitter)
	n.garments.SetEmitter(emitter)
	return n, nil
}

// EnableMetrics registers and wires the Prometheus collectors for both
// ledgers.
func (n *Node) EnableMetrics() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rewardMetrics = metrics.Rewards()
	n.garmentMetrics = metrics.Garments()
}

// persist writes a snapshot of both ledgers; the caller holds the lock. A
// failed write is logged, the committed in-memory state stays authoritative
// and the next successful mutation re-persists it.
func (n *Node) persist() {
	state := ledgerState{
		Height:   n.height,
		Rewards:  n.rewards.Snapshot(),
		Garments: n.garments.Snapshot(),
	}
	raw, err := json.Marshal(state)
	if err != nil {
		n.logger.Error("encode ledger state", slog.Any("error", err))
		return
	}
	if err := n.db.Put(stateKey, raw); err != nil {
		n.logger.Error("persist ledger state", slog.Any("error", err))
	}
}

// --- Block-height clock ---

// SetHeight advances the host-supplied block height. The clock is
// monotonically non-decreasing.
func (n *Node) SetHeight(height uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if height < n.height {
		return ErrHeightRegression
	}
	n.height = height
	n.persist()
	return nil
}

// Height returns the current block height.
func (n *Node) Height() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.height
}

// --- Reward ledger operations ---

func (n *Node) RewardsSetPaused(caller [20]byte, paused bool) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	flag, err := n.rewards.SetPaused(caller, paused)
	if err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return flag, err
	}
	n.persist()
	return flag, nil
}

func (n *Node) RewardsTransferAdmin(caller, newAdmin [20]byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.TransferAdmin(caller, newAdmin); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

func (n *Node) RewardsSetProvenanceContract(caller, contract [20]byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.SetProvenanceContract(caller, contract); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

func (n *Node) RewardsSetRewardPerAction(caller [20]byte, amount *big.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.SetRewardPerAction(caller, amount); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

func (n *Node) RewardsSetCooldownPeriod(caller [20]byte, blocks uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.SetCooldownPeriod(caller, blocks); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

func (n *Node) RewardsMint(caller, recipient [20]byte, amount *big.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.Mint(caller, recipient, amount); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.rewardMetrics.RecordMint()
	n.observeSupply()
	n.persist()
	return nil
}

func (n *Node) RewardsTransfer(caller, recipient [20]byte, amount *big.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.Transfer(caller, recipient, amount); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.rewardMetrics.RecordTransfer()
	n.persist()
	return nil
}

// RewardsRewardAction records a provenance-verified action at the node's
// current block height and returns the issued amount.
func (n *Node) RewardsRewardAction(caller, user [20]byte, action rewards.ActionType) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	amount, err := n.rewards.RewardAction(caller, user, action, n.height)
	if err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return nil, err
	}
	n.rewardMetrics.RecordAction(string(action))
	n.observeSupply()
	n.persist()
	return amount, nil
}

func (n *Node) RewardsBurn(caller [20]byte, amount *big.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.rewards.Burn(caller, amount); err != nil {
		n.rewardMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.rewardMetrics.RecordBurn()
	n.observeSupply()
	n.persist()
	return nil
}

// --- Reward ledger queries ---

func (n *Node) RewardsBalanceOf(addr [20]byte) *big.Int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.BalanceOf(addr)
}

func (n *Node) RewardsTotalSupply() *big.Int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.TotalSupply()
}

func (n *Node) RewardsAdmin() [20]byte {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.Admin()
}

func (n *Node) RewardsPaused() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.Paused()
}

func (n *Node) RewardsRewardPerAction() *big.Int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.RewardPerAction()
}

func (n *Node) RewardsCooldownPeriod() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.CooldownPeriod()
}

func (n *Node) RewardsActionCount(addr [20]byte) uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.ActionCount(addr)
}

func (n *Node) RewardsLastActionHeight(addr [20]byte) uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.LastActionHeight(addr)
}

func (n *Node) RewardsProvenance() ([20]byte, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rewards.Provenance()
}

// --- Garment registry operations ---

func (n *Node) GarmentsSetPaused(caller [20]byte, paused bool) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	flag, err := n.garments.SetPaused(caller, paused)
	if err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return flag, err
	}
	n.persist()
	return flag, nil
}

func (n *Node) GarmentsTransferAdmin(caller, newAdmin [20]byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.garments.TransferAdmin(caller, newAdmin); err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

func (n *Node) GarmentsSetProvenanceContract(caller, contract [20]byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.garments.SetProvenanceContract(caller, contract); err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

func (n *Node) GarmentsMint(caller, recipient [20]byte, metadata string) (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id, err := n.garments.Mint(caller, recipient, metadata)
	if err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return 0, err
	}
	n.garmentMetrics.RecordMint(n.garments.TotalMinted())
	n.persist()
	return id, nil
}

func (n *Node) GarmentsTransfer(caller [20]byte, tokenID uint64, recipient [20]byte) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.garments.Transfer(caller, tokenID, recipient); err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.garmentMetrics.RecordTransfer()
	n.persist()
	return nil
}

func (n *Node) GarmentsUpdateMetadata(caller [20]byte, tokenID uint64, metadata string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.garments.UpdateMetadata(caller, tokenID, metadata); err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.persist()
	return nil
}

// GarmentsAddLifecycleEvent records a provenance-verified lifecycle event at
// the node's current block height.
func (n *Node) GarmentsAddLifecycleEvent(caller [20]byte, tokenID uint64, kind garments.EventKind, details string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.garments.AddLifecycleEvent(caller, tokenID, kind, details, n.height); err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.garmentMetrics.RecordLifecycleEvent(string(kind))
	n.persist()
	return nil
}

func (n *Node) GarmentsBurn(caller [20]byte, tokenID uint64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.garments.Burn(caller, tokenID); err != nil {
		n.garmentMetrics.RecordRejected(rejectReason(err))
		return err
	}
	n.garmentMetrics.RecordBurn()
	n.persist()
	return nil
}

// --- Garment registry queries ---

func (n *Node) GarmentsOwner(tokenID uint64) ([20]byte, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.Owner(tokenID)
}

func (n *Node) GarmentsMetadata(tokenID uint64) (string, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.Metadata(tokenID)
}

func (n *Node) GarmentsLifecycleEvents(tokenID uint64) ([]garments.LifecycleEvent, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.LifecycleEvents(tokenID)
}

func (n *Node) GarmentsTotalMinted() uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.TotalMinted()
}

func (n *Node) GarmentsTokenCount(addr [20]byte) uint64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.TokenCount(addr)
}

func (n *Node) GarmentsAdmin() [20]byte {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.Admin()
}

func (n *Node) GarmentsPaused() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.Paused()
}

func (n *Node) GarmentsProvenance() ([20]byte, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.garments.Provenance()
}

// --- Helpers ---

func (n *Node) observeSupply() {
	if n.rewardMetrics == nil {
		return
	}
	supply, _ := new(big.Float).SetInt(n.rewards.TotalSupply()).Float64()
	n.rewardMetrics.SetTotalSupply(supply)
}

// rejectReason maps a ledger error to a low-cardinality metric label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, access.ErrNotAuthorized):
		return "not_authorized"
	case errors.Is(err, access.ErrPaused):
		return "paused"
	case errors.Is(err, access.ErrZeroAddress):
		return "zero_address"
	case errors.Is(err, access.ErrProvenanceNotSet):
		return "provenance_not_set"
	case errors.Is(err, rewards.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, rewards.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, rewards.ErrMaxSupplyReached):
		return "max_supply_reached"
	case errors.Is(err, rewards.ErrCooldownActive):
		return "cooldown_active"
	case errors.Is(err, rewards.ErrInvalidAction), errors.Is(err, garments.ErrInvalidEvent):
		return "invalid_event"
	case errors.Is(err, garments.ErrInvalidMetadata):
		return "invalid_metadata"
	case errors.Is(err, garments.ErrNoSuchToken):
		return "no_such_token"
	case errors.Is(err, garments.ErrNotOwner):
		return "not_owner"
	case errors.Is(err, garments.ErrEventLogFull):
		return "event_log_full"
	case errors.Is(err, garments.ErrIDSpaceExhausted):
		return "id_space_exhausted"
	}
	return "other"
}
