package rpc

import "encoding/json"

type setHeightParams struct {
	Height uint64 `json:"height"`
}

func (s *Server) chainSetHeight(params []json.RawMessage) (interface{}, error) {
	var p setHeightParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if err := s.node.SetHeight(p.Height); err != nil {
		return nil, err
	}
	return p.Height, nil
}

func (s *Server) chainHeight([]json.RawMessage) (interface{}, error) {
	return s.node.Height(), nil
}
