package rewards

import (
	"math/big"

	"threadloop/core/events"
	"threadloop/native/access"
)

const (
	// MaxSupplyUnits caps the total THRD supply, expressed in the smallest
	// denomination (6 conceptual decimal places).
	MaxSupplyUnits = 1_000_000_000
	// DefaultRewardPerAction is the issuance per verified circular action.
	DefaultRewardPerAction = 1_000_000
	// DefaultCooldownPeriod is the minimum block-height gap between two
	// rewarded actions by the same user.
	DefaultCooldownPeriod = 1_440
)

// ActionType identifies a reward-eligible circular-economy action.
type ActionType string

const (
	ActionRecycle  ActionType = "recycle"
	ActionResale   ActionType = "resale"
	ActionDonation ActionType = "donation"
	ActionRepair   ActionType = "repair"
)

func validAction(t ActionType) bool {
	switch t {
	case ActionRecycle, ActionResale, ActionDonation, ActionRepair:
		return true
	}
	return false
}

// Ledger is the fungible reward-token state machine. Every mutating operation
// runs its checks in a fixed order and either commits all of its effects or
// leaves the ledger untouched; the returned error identifies the first
// failing check. The ledger has no internal locking: callers serialise
// operations (the node holds a single mutex per deployment).
type Ledger struct {
	policy          access.Policy
	balances        map[[20]byte]*big.Int
	totalSupply     *big.Int
	rewardPerAction *big.Int
	cooldownPeriod  uint64
	lastAction      map[[20]byte]uint64
	actionCount     map[[20]byte]uint64
	emitter         events.Emitter
}

// NewLedger creates a reward ledger administered by the given principal with
// the default issuance rate and cooldown.
func NewLedger(admin [20]byte) *Ledger {
	return &Ledger{
		policy:          access.NewPolicy(admin),
		balances:        make(map[[20]byte]*big.Int),
		totalSupply:     big.NewInt(0),
		rewardPerAction: big.NewInt(DefaultRewardPerAction),
		cooldownPeriod:  DefaultCooldownPeriod,
		lastAction:      make(map[[20]byte]uint64),
		actionCount:     make(map[[20]byte]uint64),
		emitter:         events.NoopEmitter{},
	}
}

// SetEmitter configures the event emitter used to broadcast ledger updates.
// Passing nil resets the emitter to a no-op implementation.
func (l *Ledger) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		l.emitter = events.NoopEmitter{}
		return
	}
	l.emitter = emitter
}

func maxSupply() *big.Int {
	return big.NewInt(MaxSupplyUnits)
}

// SetPaused toggles the pause flag gating non-admin mutating operations and
// returns the new flag value.
func (l *Ledger) SetPaused(caller [20]byte, paused bool) (bool, error) {
	if err := l.policy.RequireAdmin(caller); err != nil {
		return l.policy.PausedFlag, err
	}
	l.policy.PausedFlag = paused
	l.emitter.Emit(events.RewardPausedChanged{Paused: paused})
	return paused, nil
}

// TransferAdmin hands the admin role to another principal.
func (l *Ledger) TransferAdmin(caller, newAdmin [20]byte) error {
	if err := l.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(newAdmin); err != nil {
		return err
	}
	l.policy.Admin = newAdmin
	return nil
}

// SetProvenanceContract configures the single address authorised to record
// reward-eligible actions.
func (l *Ledger) SetProvenanceContract(caller, contract [20]byte) error {
	if err := l.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(contract); err != nil {
		return err
	}
	l.policy.ProvenanceContract = contract
	l.policy.ProvenanceSet = true
	l.emitter.Emit(events.RewardProvenanceSet{Contract: contract})
	return nil
}

// SetRewardPerAction updates the issuance per verified action.
func (l *Ledger) SetRewardPerAction(caller [20]byte, amount *big.Int) error {
	if err := l.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	l.rewardPerAction = new(big.Int).Set(amount)
	return nil
}

// SetCooldownPeriod updates the minimum height gap between rewarded actions.
func (l *Ledger) SetCooldownPeriod(caller [20]byte, blocks uint64) error {
	if err := l.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if blocks == 0 {
		return ErrInvalidAmount
	}
	l.cooldownPeriod = blocks
	return nil
}

// Mint credits the recipient with newly issued tokens, bounded by the supply
// cap.
func (l *Ledger) Mint(caller, recipient [20]byte, amount *big.Int) error {
	if err := l.policy.RequireAdmin(caller); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(recipient); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	next := new(big.Int).Add(l.totalSupply, amount)
	if next.Cmp(maxSupply()) > 0 {
		return ErrMaxSupplyReached
	}
	l.credit(recipient, amount)
	l.totalSupply = next
	l.emitter.Emit(events.RewardMinted{
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		Supply:    new(big.Int).Set(l.totalSupply),
	})
	return nil
}

// Transfer moves tokens from the caller's balance to the recipient.
func (l *Ledger) Transfer(caller, recipient [20]byte, amount *big.Int) error {
	if err := l.policy.RequireNotPaused(); err != nil {
		return err
	}
	if err := access.RequireNonZeroAddress(recipient); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if l.balanceRef(caller).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.debit(caller, amount)
	l.credit(recipient, amount)
	l.emitter.Emit(events.RewardTransferred{
		From:   caller,
		To:     recipient,
		Amount: new(big.Int).Set(amount),
	})
	return nil
}

// RewardAction issues the configured reward to a user for a verified
// circular-economy action. Only the provenance contract may call it. The
// block height is supplied by the host environment and must be
// non-decreasing across calls. Returns the issued amount.
func (l *Ledger) RewardAction(caller, user [20]byte, action ActionType, height uint64) (*big.Int, error) {
	if err := l.policy.RequireProvenanceCaller(caller); err != nil {
		return nil, err
	}
	if !validAction(action) {
		return nil, ErrInvalidAction
	}
	// A user with no recorded action is always eligible; otherwise the
	// elapsed height since the last rewarded action must reach the cooldown.
	if last, ok := l.lastAction[user]; ok {
		if height < last || height-last < l.cooldownPeriod {
			return nil, ErrCooldownActive
		}
	}
	if err := l.policy.RequireNotPaused(); err != nil {
		return nil, err
	}
	next := new(big.Int).Add(l.totalSupply, l.rewardPerAction)
	if next.Cmp(maxSupply()) > 0 {
		return nil, ErrMaxSupplyReached
	}
	reward := new(big.Int).Set(l.rewardPerAction)
	l.credit(user, reward)
	l.lastAction[user] = height
	l.actionCount[user]++
	l.totalSupply = next
	l.emitter.Emit(events.RewardActionRecorded{
		User:       user,
		ActionType: string(action),
		Amount:     new(big.Int).Set(reward),
		Height:     height,
	})
	return reward, nil
}

// Burn destroys part of the caller's balance, shrinking the total supply.
func (l *Ledger) Burn(caller [20]byte, amount *big.Int) error {
	if err := l.policy.RequireNotPaused(); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if l.balanceRef(caller).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.debit(caller, amount)
	l.totalSupply = new(big.Int).Sub(l.totalSupply, amount)
	l.emitter.Emit(events.RewardBurned{
		Holder: caller,
		Amount: new(big.Int).Set(amount),
		Supply: new(big.Int).Set(l.totalSupply),
	})
	return nil
}

// --- Queries ---

// BalanceOf returns the balance for the given principal; absent reads as zero.
func (l *Ledger) BalanceOf(addr [20]byte) *big.Int {
	return new(big.Int).Set(l.balanceRef(addr))
}

// TotalSupply returns the current circulating supply.
func (l *Ledger) TotalSupply() *big.Int {
	return new(big.Int).Set(l.totalSupply)
}

// Admin returns the current admin principal.
func (l *Ledger) Admin() [20]byte {
	return l.policy.Admin
}

// Paused reports whether non-admin mutations are gated.
func (l *Ledger) Paused() bool {
	return l.policy.PausedFlag
}

// RewardPerAction returns the configured issuance per action.
func (l *Ledger) RewardPerAction() *big.Int {
	return new(big.Int).Set(l.rewardPerAction)
}

// CooldownPeriod returns the configured cooldown in block-height units.
func (l *Ledger) CooldownPeriod() uint64 {
	return l.cooldownPeriod
}

// ActionCount returns how many rewarded actions the user has recorded.
func (l *Ledger) ActionCount(addr [20]byte) uint64 {
	return l.actionCount[addr]
}

// LastActionHeight returns the height of the user's last rewarded action,
// zero when the user has never acted.
func (l *Ledger) LastActionHeight(addr [20]byte) uint64 {
	return l.lastAction[addr]
}

// Provenance returns the configured provenance contract, if any.
func (l *Ledger) Provenance() ([20]byte, bool) {
	return l.policy.ProvenanceContract, l.policy.ProvenanceSet
}

// --- Internal bookkeeping ---

var zeroBalance = big.NewInt(0)

func (l *Ledger) balanceRef(addr [20]byte) *big.Int {
	if bal, ok := l.balances[addr]; ok {
		return bal
	}
	return zeroBalance
}

func (l *Ledger) credit(addr [20]byte, amount *big.Int) {
	if bal, ok := l.balances[addr]; ok {
		bal.Add(bal, amount)
		return
	}
	l.balances[addr] = new(big.Int).Set(amount)
}

// debit assumes sufficiency was already checked. Entries that reach zero are
// removed so an absent balance and a zero balance stay indistinguishable.
func (l *Ledger) debit(addr [20]byte, amount *big.Int) {
	bal := l.balances[addr]
	bal.Sub(bal, amount)
	if bal.Sign() == 0 {
		delete(l.balances, addr)
	}
}
