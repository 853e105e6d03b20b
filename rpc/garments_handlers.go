package rpc

import (
	"encoding/json"

	"threadloop/native/garments"
)

type garmentsPauseParams struct {
	Caller string `json:"caller"`
	Paused bool   `json:"paused"`
}

type garmentsAdminTransferParams struct {
	Caller   string `json:"caller"`
	NewAdmin string `json:"newAdmin"`
}

type garmentsProvenanceParams struct {
	Caller   string `json:"caller"`
	Contract string `json:"contract"`
}

type garmentsMintParams struct {
	Caller    string `json:"caller"`
	Recipient string `json:"recipient"`
	Metadata  string `json:"metadata"`
}

type garmentsTransferParams struct {
	Caller    string `json:"caller"`
	TokenID   uint64 `json:"tokenId"`
	Recipient string `json:"recipient"`
}

type garmentsMetadataParams struct {
	Caller   string `json:"caller"`
	TokenID  uint64 `json:"tokenId"`
	Metadata string `json:"metadata"`
}

type garmentsLifecycleParams struct {
	Caller    string `json:"caller"`
	TokenID   uint64 `json:"tokenId"`
	EventType string `json:"eventType"`
	Details   string `json:"details"`
}

type garmentsBurnParams struct {
	Caller  string `json:"caller"`
	TokenID uint64 `json:"tokenId"`
}

type tokenParams struct {
	TokenID uint64 `json:"tokenId"`
}

type lifecycleEventResult struct {
	EventType string `json:"eventType"`
	Height    uint64 `json:"height"`
	Details   string `json:"details"`
}

func (s *Server) garmentsSetPaused(params []json.RawMessage) (interface{}, error) {
	var p garmentsPauseParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	flag, err := s.node.GarmentsSetPaused(caller, p.Paused)
	if err != nil {
		return nil, err
	}
	return flag, nil
}

func (s *Server) garmentsTransferAdmin(params []json.RawMessage) (interface{}, error) {
	var p garmentsAdminTransferParams
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
	if err := s.node.GarmentsTransferAdmin(caller, newAdmin); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) garmentsSetProvenanceContract(params []json.RawMessage) (interface{}, error) {
	var p garmentsProvenanceParams
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
	if err := s.node.GarmentsSetProvenanceContract(caller, contract); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) garmentsMint(params []json.RawMessage) (interface{}, error) {
	var p garmentsMintParams
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
	id, err := s.node.GarmentsMint(caller, recipient, p.Metadata)
	if err != nil {
		return nil, err
	}
	return id, nil
}

func (s *Server) garmentsTransfer(params []json.RawMessage) (interface{}, error) {
	var p garmentsTransferParams
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
	if err := s.node.GarmentsTransfer(caller, p.TokenID, recipient); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) garmentsUpdateMetadata(params []json.RawMessage) (interface{}, error) {
	var p garmentsMetadataParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.node.GarmentsUpdateMetadata(caller, p.TokenID, p.Metadata); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) garmentsAddLifecycleEvent(params []json.RawMessage) (interface{}, error) {
	var p garmentsLifecycleParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.node.GarmentsAddLifecycleEvent(caller, p.TokenID, garments.EventKind(p.EventType), p.Details); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) garmentsBurn(params []json.RawMessage) (interface{}, error) {
	var p garmentsBurnParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	caller, err := parseAddressParam("caller", p.Caller)
	if err != nil {
		return nil, err
	}
	if err := s.node.GarmentsBurn(caller, p.TokenID); err != nil {
		return nil, err
	}
	return true, nil
}

func (s *Server) garmentsOwner(params []json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	owner, err := s.node.GarmentsOwner(p.TokenID)
	if err != nil {
		return nil, err
	}
	return encodeAddress(owner), nil
}

func (s *Server) garmentsMetadata(params []json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	metadata, err := s.node.GarmentsMetadata(p.TokenID)
	if err != nil {
		return nil, err
	}
	return metadata, nil
}

func (s *Server) garmentsLifecycleEvents(params []json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	log, err := s.node.GarmentsLifecycleEvents(p.TokenID)
	if err != nil {
		return nil, err
	}
	out := make([]lifecycleEventResult, 0, len(log))
	for _, evt := range log {
		out = append(out, lifecycleEventResult{
			EventType: string(evt.Kind),
			Height:    evt.Height,
			Details:   evt.Details,
		})
	}
	return out, nil
}

func (s *Server) garmentsTotalMinted([]json.RawMessage) (interface{}, error) {
	return s.node.GarmentsTotalMinted(), nil
}

func (s *Server) garmentsTokenCount(params []json.RawMessage) (interface{}, error) {
	var p addressParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	addr, err := parseAddressParam("address", p.Address)
	if err != nil {
		return nil, err
	}
	return s.node.GarmentsTokenCount(addr), nil
}

func (s *Server) garmentsAdmin([]json.RawMessage) (interface{}, error) {
	return encodeAddress(s.node.GarmentsAdmin()), nil
}

func (s *Server) garmentsPaused([]json.RawMessage) (interface{}, error) {
	return s.node.GarmentsPaused(), nil
}

func (s *Server) garmentsProvenance([]json.RawMessage) (interface{}, error) {
	contract, ok := s.node.GarmentsProvenance()
	if !ok {
		return nil, nil
	}
	return encodeAddress(contract), nil
}
