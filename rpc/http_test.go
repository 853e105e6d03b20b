package rpc_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"threadloop/core"
	"threadloop/crypto"
	"threadloop/rpc"
	"threadloop/storage"
)

var (
	adminRaw      = addr(0x01)
	aliceRaw      = addr(0xA1)
	provenanceRaw = addr(0xC3)
)

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

func bech(raw [20]byte) string {
	return crypto.NewAddress(crypto.ThreadPrefix, raw[:]).String()
}

func newTestServer(t *testing.T) *rpc.Server {
	t.Helper()
	db := storage.NewMemDB()
	t.Cleanup(db.Close)
	node, err := core.NewNode(db, adminRaw, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return rpc.NewServer(node, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func call(t *testing.T, s *rpc.Server, method string, params interface{}, headers map[string]string) rpc.RPCResponse {
	t.Helper()
	req := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  method,
	}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		req["params"] = []json.RawMessage{raw}
	}
	body, err := json.Marshal(req)
	require.NoError(t, err)

	httpReq := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httpReq)

	var resp rpc.RPCResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestMintAndQueryOverRPC(t *testing.T) {
	server := newTestServer(t)

	resp := call(t, server, "rewards_mint", map[string]string{
		"caller":    bech(adminRaw),
		"recipient": bech(aliceRaw),
		"amount":    "2000000",
	}, nil)
	require.Nil(t, resp.Error)

	resp = call(t, server, "rewards_balanceOf", map[string]string{"address": bech(aliceRaw)}, nil)
	require.Nil(t, resp.Error)
	require.Equal(t, "2000000", resp.Result)

	resp = call(t, server, "rewards_totalSupply", nil, nil)
	require.Nil(t, resp.Error)
	require.Equal(t, "2000000", resp.Result)
}

func TestGarmentLifecycleOverRPC(t *testing.T) {
	server := newTestServer(t)

	resp := call(t, server, "garments_setProvenanceContract", map[string]string{
		"caller":   bech(adminRaw),
		"contract": bech(provenanceRaw),
	}, nil)
	require.Nil(t, resp.Error)

	resp = call(t, server, "garments_mint", map[string]string{
		"caller":    bech(adminRaw),
		"recipient": bech(aliceRaw),
		"metadata":  "recycled denim jacket",
	}, nil)
	require.Nil(t, resp.Error)
	require.EqualValues(t, 1, resp.Result)

	resp = call(t, server, "chain_setHeight", map[string]uint64{"height": 77}, nil)
	require.Nil(t, resp.Error)

	resp = call(t, server, "garments_addLifecycleEvent", map[string]interface{}{
		"caller":    bech(provenanceRaw),
		"tokenId":   1,
		"eventType": "repair",
		"details":   "new zipper",
	}, nil)
	require.Nil(t, resp.Error)

	resp = call(t, server, "garments_lifecycleEvents", map[string]uint64{"tokenId": 1}, nil)
	require.Nil(t, resp.Error)
	entries, ok := resp.Result.([]interface{})
	require.True(t, ok)
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	require.Equal(t, "repair", entry["eventType"])
	require.EqualValues(t, 77, entry["height"])
}

func TestDomainErrorCodes(t *testing.T) {
	server := newTestServer(t)

	// Non-admin mint.
	resp := call(t, server, "rewards_mint", map[string]string{
		"caller":    bech(aliceRaw),
		"recipient": bech(aliceRaw),
		"amount":    "10",
	}, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32050, resp.Error.Code)

	// Reward action before the provenance contract is configured.
	resp = call(t, server, "rewards_rewardAction", map[string]string{
		"caller":     bech(aliceRaw),
		"user":       bech(aliceRaw),
		"actionType": "recycle",
	}, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32061, resp.Error.Code)

	// Query for a missing token.
	resp = call(t, server, "garments_owner", map[string]uint64{"tokenId": 5}, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32057, resp.Error.Code)
}

func TestInvalidParamsAndUnknownMethod(t *testing.T) {
	server := newTestServer(t)

	resp := call(t, server, "rewards_balanceOf", map[string]string{"address": "not-bech32"}, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32602, resp.Error.Code)

	resp = call(t, server, "rewards_balanceOf", nil, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32602, resp.Error.Code)

	resp = call(t, server, "rewards_teleport", nil, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32601, resp.Error.Code)
}

func TestBearerTokenGatesMutations(t *testing.T) {
	t.Setenv("THREADLOOP_RPC_TOKEN", "sewing-kit")
	server := newTestServer(t)

	params := map[string]string{
		"caller":    bech(adminRaw),
		"recipient": bech(aliceRaw),
		"amount":    "10",
	}

	resp := call(t, server, "rewards_mint", params, nil)
	require.NotNil(t, resp.Error)
	require.Equal(t, -32001, resp.Error.Code)

	resp = call(t, server, "rewards_mint", params, map[string]string{"Authorization": "Bearer sewing-kit"})
	require.Nil(t, resp.Error)

	// Queries stay open.
	resp = call(t, server, "rewards_totalSupply", nil, nil)
	require.Nil(t, resp.Error)
	require.Equal(t, "10", resp.Result)
}
