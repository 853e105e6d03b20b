package rpc

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"threadloop/core"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
	authTokenEnv    = "THREADLOOP_RPC_TOKEN"
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeUnauthorized   = -32001
	codeServerError    = -32000
)

// Server exposes the ledger operations over JSON-RPC. When the auth token
// environment variable is set, every mutating method requires the matching
// bearer token.
type Server struct {
	node      *core.Node
	logger    *slog.Logger
	authToken string
	methods   map[string]route
}

func NewServer(node *core.Node, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	token := strings.TrimSpace(os.Getenv(authTokenEnv))
	s := &Server{node: node, logger: logger, authToken: token}
	s.methods = s.routes()
	return s
}

// Router builds the HTTP surface: the JSON-RPC endpoint at the root plus
// health and Prometheus metrics endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Post("/", s.handle)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start serves the router on the given address, blocking until the listener
// fails.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting JSON-RPC server", slog.String("addr", addr))
	return http.ListenAndServe(addr, s.Router())
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      interface{}       `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string) {
	if status <= 0 {
		status = http.StatusBadRequest
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Error: &RPCError{Code: code, Message: message}}
	_ = json.NewEncoder(w).Encode(resp)
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result}
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "failed to read request body")
		return
	}
	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON payload")
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported jsonrpc version")
		return
	}

	handler, ok := s.methods[req.Method]
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, fmt.Sprintf("method %q not found", req.Method))
		return
	}
	if handler.mutating && !s.authorized(r) {
		writeError(w, http.StatusUnauthorized, req.ID, codeUnauthorized, "missing or invalid bearer token")
		return
	}

	result, err := handler.fn(req.Params)
	if err != nil {
		code, message := errorCode(err)
		writeError(w, http.StatusOK, req.ID, code, message)
		return
	}
	writeResult(w, req.ID, result)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.authToken == "" {
		return true
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return false
	}
	supplied := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(s.authToken)) == 1
}

type route struct {
	fn       func(params []json.RawMessage) (interface{}, error)
	mutating bool
}

func (s *Server) routes() map[string]route {
	return map[string]route{
		// Chain clock.
		"chain_setHeight": {fn: s.chainSetHeight, mutating: true},
		"chain_height":    {fn: s.chainHeight},

		// Reward ledger.
		"rewards_setPaused":             {fn: s.rewardsSetPaused, mutating: true},
		"rewards_transferAdmin":         {fn: s.rewardsTransferAdmin, mutating: true},
		"rewards_setProvenanceContract": {fn: s.rewardsSetProvenanceContract, mutating: true},
		"rewards_setRewardPerAction":    {fn: s.rewardsSetRewardPerAction, mutating: true},
		"rewards_setCooldownPeriod":     {fn: s.rewardsSetCooldownPeriod, mutating: true},
		"rewards_mint":                  {fn: s.rewardsMint, mutating: true},
		"rewards_transfer":              {fn: s.rewardsTransfer, mutating: true},
		"rewards_rewardAction":          {fn: s.rewardsRewardAction, mutating: true},
		"rewards_burn":                  {fn: s.rewardsBurn, mutating: true},
		"rewards_balanceOf":             {fn: s.rewardsBalanceOf},
		"rewards_totalSupply":           {fn: s.rewardsTotalSupply},
		"rewards_admin":                 {fn: s.rewardsAdmin},
		"rewards_paused":                {fn: s.rewardsPaused},
		"rewards_rewardPerAction":       {fn: s.rewardsRewardPerAction},
		"rewards_cooldownPeriod":        {fn: s.rewardsCooldownPeriod},
		"rewards_actionCount":           {fn: s.rewardsActionCount},
		"rewards_lastActionHeight":      {fn: s.rewardsLastActionHeight},
		"rewards_provenance":            {fn: s.rewardsProvenance},

		// Garment registry.
		"garments_setPaused":             {fn: s.garmentsSetPaused, mutating: true},
		"garments_transferAdmin":         {fn: s.garmentsTransferAdmin, mutating: true},
		"garments_setProvenanceContract": {fn: s.garmentsSetProvenanceContract, mutating: true},
		"garments_mint":                  {fn: s.garmentsMint, mutating: true},
		"garments_transfer":              {fn: s.garmentsTransfer, mutating: true},
		"garments_updateMetadata":        {fn: s.garmentsUpdateMetadata, mutating: true},
		"garments_addLifecycleEvent":     {fn: s.garmentsAddLifecycleEvent, mutating: true},
		"garments_burn":                  {fn: s.garmentsBurn, mutating: true},
		"garments_owner":                 {fn: s.garmentsOwner},
		"garments_metadata":              {fn: s.garmentsMetadata},
		"garments_lifecycleEvents":       {fn: s.garmentsLifecycleEvents},
		"garments_totalMinted":           {fn: s.garmentsTotalMinted},
		"garments_tokenCount":            {fn: s.garmentsTokenCount},
		"garments_admin":                 {fn: s.garmentsAdmin},
		"garments_paused":                {fn: s.garmentsPaused},
		"garments_provenance":            {fn: s.garmentsProvenance},
	}
}
