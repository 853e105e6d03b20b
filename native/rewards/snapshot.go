package rewards

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// Snapshot is the serialisable form of the full ledger state. Addresses are
// hex encoded and amounts are decimal strings so the encoding stays stable
// across backends.
type Snapshot struct {
	Admin           string            `json:"admin"`
	Paused          bool              `json:"paused"`
	Provenance      string            `json:"provenance,omitempty"`
	Balances        map[string]string `json:"balances"`
	TotalSupply     string            `json:"totalSupply"`
	RewardPerAction string            `json:"rewardPerAction"`
	CooldownPeriod  uint64            `json:"cooldownPeriod"`
	LastAction      map[string]uint64 `json:"lastActionHeight"`
	ActionCount     map[string]uint64 `json:"actionCount"`
}

// Snapshot exports the current ledger state.
func (l *Ledger) Snapshot() *Snapshot {
	snap := &Snapshot{
		Admin:           encodeAddr(l.policy.Admin),
		Paused:          l.policy.PausedFlag,
		Balances:        make(map[string]string, len(l.balances)),
		TotalSupply:     l.totalSupply.String(),
		RewardPerAction: l.rewardPerAction.String(),
		CooldownPeriod:  l.cooldownPeriod,
		LastAction:      make(map[string]uint64, len(l.lastAction)),
		ActionCount:     make(map[string]uint64, len(l.actionCount)),
	}
	if l.policy.ProvenanceSet {
		snap.Provenance = encodeAddr(l.policy.ProvenanceContract)
	}
	for addr, bal := range l.balances {
		snap.Balances[encodeAddr(addr)] = bal.String()
	}
	for addr, height := range l.lastAction {
		snap.LastAction[encodeAddr(addr)] = height
	}
	for addr, count := range l.actionCount {
		snap.ActionCount[encodeAddr(addr)] = count
	}
	return snap
}

// RestoreLedger rebuilds a ledger from a snapshot.
func RestoreLedger(snap *Snapshot) (*Ledger, error) {
	if snap == nil {
		return nil, fmt.Errorf("rewards: nil snapshot")
	}
	admin, err := decodeAddr(snap.Admin)
	if err != nil {
		return nil, fmt.Errorf("rewards: admin: %w", err)
	}
	ledger := NewLedger(admin)
	ledger.policy.PausedFlag = snap.Paused
	if snap.Provenance != "" {
		contract, err := decodeAddr(snap.Provenance)
		if err != nil {
			return nil, fmt.Errorf("rewards: provenance: %w", err)
		}
		ledger.policy.ProvenanceContract = contract
		ledger.policy.ProvenanceSet = true
	}
	supply, err := parseAmount(snap.TotalSupply)
	if err != nil {
		return nil, fmt.Errorf("rewards: total supply: %w", err)
	}
	ledger.totalSupply = supply
	rate, err := parseAmount(snap.RewardPerAction)
	if err != nil {
		return nil, fmt.Errorf("rewards: reward per action: %w", err)
	}
	ledger.rewardPerAction = rate
	if snap.CooldownPeriod > 0 {
		ledger.cooldownPeriod = snap.CooldownPeriod
	}
	for encoded, raw := range snap.Balances {
		addr, err := decodeAddr(encoded)
		if err != nil {
			return nil, fmt.Errorf("rewards: balance key %q: %w", encoded, err)
		}
		amount, err := parseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("rewards: balance %q: %w", encoded, err)
		}
		if amount.Sign() > 0 {
			ledger.balances[addr] = amount
		}
	}
	for encoded, height := range snap.LastAction {
		addr, err := decodeAddr(encoded)
		if err != nil {
			return nil, fmt.Errorf("rewards: last action key %q: %w", encoded, err)
		}
		ledger.lastAction[addr] = height
	}
	for encoded, count := range snap.ActionCount {
		addr, err := decodeAddr(encoded)
		if err != nil {
			return nil, fmt.Errorf("rewards: action count key %q: %w", encoded, err)
		}
		ledger.actionCount[addr] = count
	}
	return ledger, nil
}

func encodeAddr(addr [20]byte) string {
	return hex.EncodeToString(addr[:])
}

func decodeAddr(encoded string) ([20]byte, error) {
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

func parseAmount(raw string) (*big.Int, error) {
	if raw == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("malformed amount %q", raw)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("negative amount %q", raw)
	}
	return amount, nil
}
