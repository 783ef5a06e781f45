package bitcoind

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/btcsuite/btcd/btcjson"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	addrA = "bcrt1qqyqszqgpqyqszqgpqyqszqgpqyqszqgpvxat9t"
	addrB = "bcrt1qqgpqyqszqgpqyqszqgpqyqszqgpqyqszazmwwa"
	txid  = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
)

type rpcRequest struct {
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
	ID     json.RawMessage   `json:"id"`
}

// fakeBitcoind answers JSON-RPC posts from a method -> result/error table and
// records every request it saw.
type fakeBitcoind struct {
	mu       sync.Mutex
	results  map[string]any
	errors   map[string]*btcjson.RPCError
	requests []rpcRequest
}

func (f *fakeBitcoind) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)

		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	result, hasResult := f.results[req.Method]
	rpcErr := f.errors[req.Method]
	f.mu.Unlock()

	resp := map[string]any{"id": req.ID, "result": nil, "error": nil}
	switch {
	case rpcErr != nil:
		resp["error"] = rpcErr
	case hasResult:
		resp["result"] = result
	default:
		resp["error"] = &btcjson.RPCError{Code: -32601, Message: "Method not found"}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *fakeBitcoind) lastRequest(t *testing.T) rpcRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)

	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, fake *fakeBitcoind) *Client {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := NewClient(
		WithHost(strings.TrimPrefix(server.URL, "http://")),
		WithCredentials("user", "pass"),
		WithNetwork(lightning.Regtest),
	)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

func TestClient_GetBalance(t *testing.T) {
	fake := &fakeBitcoind{results: map[string]any{"getbalance": 1.5}}
	client := newTestClient(t, fake)

	balance, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("1.5")), "got %s", balance)
	assert.Equal(t, "getbalance", fake.lastRequest(t).Method)
}

func TestClient_ListTransactions(t *testing.T) {
	fake := &fakeBitcoind{results: map[string]any{
		"listtransactions": []map[string]any{
			{"txid": txid, "address": addrA, "category": "receive", "amount": 0.1, "confirmations": 3, "blockheight": 100, "time": 1700000000},
			{"txid": txid, "address": addrB, "category": "send", "amount": -0.2, "fee": -0.0001, "confirmations": 0, "time": 1700000100},
		},
	}}
	client := newTestClient(t, fake)

	records, err := client.ListTransactions(context.Background(), "*", 20)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(100), records[0].BlockHeight)
	assert.Equal(t, int64(0), records[1].BlockHeight)
	assert.True(t, records[1].Fee.Equal(decimal.RequireFromString("-0.0001")))
	assert.Equal(t, int64(1700000000), records[0].Time.Unix())

	req := fake.lastRequest(t)
	require.Len(t, req.Params, 2)
	assert.JSONEq(t, `"*"`, string(req.Params[0]))
	assert.JSONEq(t, `20`, string(req.Params[1]))
}

func TestClient_GetAddressesByLabel(t *testing.T) {
	fake := &fakeBitcoind{results: map[string]any{
		"getaddressesbylabel": map[string]any{
			addrB: map[string]string{"purpose": "receive"},
			addrA: map[string]string{"purpose": "receive"},
		},
	}}
	client := newTestClient(t, fake)

	addresses, err := client.GetAddressesByLabel(context.Background(), "wallet")
	require.NoError(t, err)
	// sorted, not in daemon order
	assert.Equal(t, []string{addrB, addrA}, addresses)
}

func TestClient_SendMany(t *testing.T) {
	t.Run("builds one batch call", func(t *testing.T) {
		fake := &fakeBitcoind{results: map[string]any{"sendmany": txid}}
		client := newTestClient(t, fake)

		got, err := client.SendMany(context.Background(), "", map[string]money.Money{
			addrA: 100_000_000,
			addrB: 200_000_000,
		})
		require.NoError(t, err)
		assert.Equal(t, txid, got)

		req := fake.lastRequest(t)
		require.GreaterOrEqual(t, len(req.Params), 2)
		assert.JSONEq(t, `""`, string(req.Params[0]))

		var amounts map[string]float64
		require.NoError(t, json.Unmarshal(req.Params[1], &amounts))
		assert.Equal(t, map[string]float64{addrA: 1, addrB: 2}, amounts)
	})

	t.Run("daemon error keeps the message", func(t *testing.T) {
		fake := &fakeBitcoind{errors: map[string]*btcjson.RPCError{
			"sendmany": {Code: -6, Message: "Insufficient funds"},
		}}
		client := newTestClient(t, fake)

		_, err := client.SendMany(context.Background(), "", map[string]money.Money{addrA: 1000})
		require.Error(t, err)

		var rpcErr *btcjson.RPCError
		require.True(t, errors.As(err, &rpcErr))
		assert.Equal(t, "Insufficient funds", rpcErr.Message)
	})

	t.Run("invalid address never reaches the daemon", func(t *testing.T) {
		for _, address := range []string{"tb1qqszqgpqyqszqgpqyqszqgpqyqszqgpqy7ty85f", "not-an-address"} {
			fake := &fakeBitcoind{}
			client := newTestClient(t, fake)

			_, err := client.SendMany(context.Background(), "", map[string]money.Money{addrA: 1000, address: 1000})
			require.ErrorIs(t, err, bitcoin.ErrInvalidAddress)
			assert.Empty(t, fake.requests)
		}
	})
}

func TestClient_SendToAddress(t *testing.T) {
	fake := &fakeBitcoind{results: map[string]any{"sendtoaddress": txid}}
	client := newTestClient(t, fake)

	got, err := client.SendToAddress(context.Background(), addrA, 50_000)
	require.NoError(t, err)
	assert.Equal(t, txid, got)

	req := fake.lastRequest(t)
	require.GreaterOrEqual(t, len(req.Params), 2)
	assert.JSONEq(t, `"`+addrA+`"`, string(req.Params[0]))
	assert.JSONEq(t, `0.0005`, string(req.Params[1]))
}

func TestClient_SendToAddress_OtherNetwork(t *testing.T) {
	fake := &fakeBitcoind{}
	client := newTestClient(t, fake)

	_, err := client.SendToAddress(context.Background(), "tb1qqszqgpqyqszqgpqyqszqgpqyqszqgpqy7ty85f", 50_000)
	require.ErrorIs(t, err, bitcoin.ErrInvalidAddress)
	assert.Empty(t, fake.requests)
}

func TestClient_ContextCanceled(t *testing.T) {
	fake := &fakeBitcoind{results: map[string]any{"getwalletinfo": map[string]any{"walletname": "w"}}}
	client := newTestClient(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetWalletInfo(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
