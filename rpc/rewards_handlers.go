package rpc

import (
	"encoding/json"

	"threadloop/native/rewards"
)

type rewardsPauseParams struct {
	Caller string `json:"caller"`
	Paused bool   `json:"paused"`
}

type rewardsAdminTransferParams struct {
	Caller   string `json:"caller"`
	NewAdmin string `json:"newAdmin"`
}

type rewardsProvenanceParams struct {
	Caller   string `json:"caller"`
	Contract string `json:"contract"`
}

type rewardsRateParams struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type rewardsCooldownParams struct {
	Caller string `json:"caller"`
	Blocks uint64 `json:"blocks"`
}

type rewardsMintParams struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type rewardsTransferParams struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

type rewardsActionParams struct {
	Caller     string `json:"caller"`
	User       string `json:"user"`
	ActionType string `json:"actionType"`
}

type rewardsBurnParams struct {
	Caller string `json:"caller"`
	Amount string `json:"amount"`
}

type addressParams struct {
	Address string `json:"address"`
}

func (s *Server) rewardsSetPaused(params []json.RawMessage) (interface{}, error) {
	var p rewardsPauseParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	flag, err := s.node.RewardsSetPaused(caller, p.Paused)
	if err != nil {
		return nil, err
	}
	return flag, nil
}

func (s *Server) rewardsTransferAdmin(params []json.RawMessage) (interface{}, error) {
	var p rewardsAdminTransferParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	newAdmin, err := parseAddressParam("newAdmin", p.NewAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsTransferAdmin(caller, newAdmin); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsSetProvenanceContract(params []json.RawMessage) (interface{}, error) {
	var p rewardsProvenanceParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	contract, err := parseAddressParam("contract", p.Contract)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsSetProvenanceContract(caller, contract); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsSetRewardPerAction(params []json.RawMessage) (interface{}, error) {
	var p rewardsRateParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountParam("amount", p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsSetRewardPerAction(caller, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsSetCooldownPeriod(params []json.RawMessage) (interface{}, error) {
	var p rewardsCooldownParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsSetCooldownPeriod(caller, p.Blocks); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsMint(params []json.RawMessage) (interface{}, error) {
	var p rewardsMintParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	recipient, err := parseAddressParam("recipient", p.Recipient)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountParam("amount", p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsMint(caller, recipient, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsTransfer(params []json.RawMessage) (interface{}, error) {
	var p rewardsTransferParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	recipient, err := parseAddressParam("recipient", p.Recipient)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountParam("amount", p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsTransfer(caller, recipient, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsRewardAction(params []json.RawMessage) (interface{}, error) {
	var p rewardsActionParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	user, err := parseAddressParam("user", p.User)
	if err != nil {
		return nil, err
	}
	amount, err := s.node.RewardsRewardAction(caller, user, rewards.ActionType(p.ActionType))
	if err != nil {
		return nil, err
	}
	return amount.String(), nil
}

func (s *Server) rewardsBurn(params []json.RawMessage) (interface{}, error) {
	var p rewardsBurnParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountParam("amount", p.Amount)
	if err != nil {
		return nil, err
	}
	if err := s.node.RewardsBurn(caller, amount); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) rewardsBalanceOf(params []json.RawMessage) (interface{}, error) {
	var p addressParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	addr, err := parseAddressParam("address", p.Address)
	if err != nil {
		return nil, err
	}
	return s.node.RewardsBalanceOf(addr).String(), nil
}

func (s *Server) rewardsTotalSupply([]json.RawMessage) (interface{}, error) {
	return s.node.RewardsTotalSupply().String(), nil
}

func (s *Server) rewardsAdmin([]json.RawMessage) (interface{}, error) {
	return encodeAddress(s.node.RewardsAdmin()), nil
}

func (s *Server) rewardsPaused([]json.RawMessage) (interface{}, error) {
	return s.node.RewardsPaused(), nil
}

func (s *Server) rewardsRewardPerAction([]json.RawMessage) (interface{}, error) {
	return s.node.RewardsRewardPerAction().String(), nil
}

func (s *Server) rewardsCooldownPeriod([]json.RawMessage) (interface{}, error) {
	return s.node.RewardsCooldownPeriod(), nil
}

func (s *Server) rewardsActionCount(params []json.RawMessage) (interface{}, error) {
	var p addressParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	addr, err := parseAddressParam("address", p.Address)
	if err != nil {
		return nil, err
	}
	return s.node.RewardsActionCount(addr), nil
}

func (s *Server) rewardsLastActionHeight(params []json.RawMessage) (interface{}, error) {
	var p addressParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	addr, err := parseAddressParam("address", p.Address)
	if err != nil {
		return nil, err
	}
	return s.node.RewardsLastActionHeight(addr), nil
}

func (s *Server) rewardsProvenance([]json.RawMessage) (interface{}, error) {
	contract, ok := s.node.RewardsProvenance()
	if !ok {
		return nil, nil
	}
	return encodeAddress(contract), nil
}
