package rpc

import (
	"encoding/json"
	"fmt"
	"math/big"

	"threadloop/crypto"
)

// Monetary amounts travel as decimal strings so callers never lose precision
// to JSON number handling.

func decodeParams(params []json.RawMessage, out interface{}) error {
	if len(params) != 1 {
		return invalidParams("expected a single params object")
	}
	if err := json.Unmarshal(params[0], out); err != nil {
		return invalidParams(fmt.Sprintf("malformed params: %v", err))
	}
	return nil
}

func parseAddressParam(field, value string) ([20]byte, error) {
	addr, err := crypto.DecodeAddress(value)
	if err != nil {
		return [20]byte{}, invalidParams(fmt.Sprintf("%s: %v", field, err))
	}
	return addr.Raw(), nil
}

func encodeAddress(raw [20]byte) string {
	return crypto.NewAddress(crypto.ThreadPrefix, raw[:]).String()
}

func parseAmountParam(field, value string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, invalidParams(fmt.Sprintf("%s: malformed amount %q", field, value))
	}
	return amount, nil
}
