// Package bitcoind implements bitcoin.Client on top of a Bitcoin Core wallet
// through its JSON-RPC interface.
package bitcoind

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type Option func(*Options)

func WithHost(host string) Option {
	return func(o *Options) {
		o.host = host
	}
}

func WithCredentials(user, pass string) Option {
	return func(o *Options) {
		o.user = user
		o.pass = pass
	}
}

// WithWallet targets a named wallet on a multi-wallet node.
func WithWallet(name string) Option {
	return func(o *Options) {
		o.wallet = name
	}
}

func WithTLS(enabled bool) Option {
	return func(o *Options) {
		o.tls = enabled
	}
}

func WithNetwork(network lightning.Network) Option {
	return func(o *Options) {
		o.network = network
	}
}

type Options struct {
	host    string
	user    string
	pass    string
	wallet  string
	tls     bool
	network lightning.Network
}

type Client struct {
	rpc    *rpcclient.Client
	params *chaincfg.Params
}

// NewClient creates a bitcoind client. Calls are plain HTTP POSTs, the
// underlying rpcclient is safe for concurrent use.
func NewClient(opts ...Option) (*Client, error) {
	options := Options{
		host:    "localhost:8332",
		network: lightning.Mainnet,
	}
	for _, opt := range opts {
		opt(&options)
	}

	params := lightning.ToChainCfgNetwork(options.network)
	if params == nil {
		return nil, fmt.Errorf("unsupported network: %q", options.network)
	}

	host := options.host
	if options.wallet != "" {
		host = host + "/wallet/" + options.wallet
	}

	rpc, err := rpcclient.New(&rpcclient.ConnConfig{
		Host:         host,
		User:         options.user,
		Pass:         options.pass,
		HTTPPostMode: true,
		DisableTLS:   !options.tls,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating bitcoind rpc client: %w", err)
	}

	return &Client{rpc: rpc, params: params}, nil
}

// Close releases the rpc client.
func (c *Client) Close() {
	c.rpc.Shutdown()
}

func await[T any](ctx context.Context, call func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	if err := ctx.Err(); err != nil {
		var zero T

		return zero, err
	}

	done := make(chan result, 1)
	go func() {
		v, err := call()
		done <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}

// raw issues a call that btcd has no typed helper for and decodes the result.
func (c *Client) raw(ctx context.Context, method string, result any, params ...any) error {
	encoded := make([]json.RawMessage, 0, len(params))
	for _, p := range params {
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("%s: encoding params: %w", method, err)
		}
		encoded = append(encoded, b)
	}

	res, err := await(ctx, func() (json.RawMessage, error) {
		return c.rpc.RawRequest(method, encoded)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	if err := json.Unmarshal(res, result); err != nil {
		return fmt.Errorf("%s: decoding result: %w", method, err)
	}

	return nil
}

func (c *Client) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	amount, err := await(ctx, func() (btcutil.Amount, error) {
		return c.rpc.GetBalance("*")
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("getbalance: %w", err)
	}

	return decimal.New(int64(amount), -8), nil
}

type listTransactionsEntry struct {
	TxID          string          `json:"txid"`
	Address       string          `json:"address"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Label         string          `json:"label"`
	Confirmations int64           `json:"confirmations"`
	BlockHeight   int64           `json:"blockheight"`
	BlockHash     string          `json:"blockhash"`
	Time          int64           `json:"time"`
}

func (c *Client) ListTransactions(ctx context.Context, label string, count int) ([]bitcoin.TxRecord, error) {
	var entries []listTransactionsEntry
	if err := c.raw(ctx, "listtransactions", &entries, label, count); err != nil {
		return nil, err
	}

	records := make([]bitcoin.TxRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, bitcoin.TxRecord{
			TxID:          e.TxID,
			Address:       e.Address,
			Category:      e.Category,
			Amount:        e.Amount,
			Fee:           e.Fee,
			Label:         e.Label,
			Confirmations: e.Confirmations,
			BlockHeight:   e.BlockHeight,
			BlockHash:     e.BlockHash,
			Time:          time.Unix(e.Time, 0).UTC(),
		})
	}

	return records, nil
}

func (c *Client) GetNetworkInfo(ctx context.Context) (*bitcoin.NetworkInfo, error) {
	var info bitcoin.NetworkInfo
	if err := c.raw(ctx, "getnetworkinfo", &info); err != nil {
		return nil, err
	}

	return &info, nil
}

func (c *Client) GetWalletInfo(ctx context.Context) (*bitcoin.WalletInfo, error) {
	var info bitcoin.WalletInfo
	if err := c.raw(ctx, "getwalletinfo", &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// GetAddressesByLabel returns the label's addresses sorted for stable output.
func (c *Client) GetAddressesByLabel(ctx context.Context, label string) ([]string, error) {
	var byAddress map[string]struct {
		Purpose string `json:"purpose"`
	}
	if err := c.raw(ctx, "getaddressesbylabel", &byAddress, label); err != nil {
		return nil, err
	}

	addresses := make([]string, 0, len(byAddress))
	for addr := range byAddress {
		addresses = append(addresses, addr)
	}
	slices.Sort(addresses)

	return addresses, nil
}

func (c *Client) GetNewAddress(ctx context.Context, label string) (string, error) {
	var address string
	if err := c.raw(ctx, "getnewaddress", &address, label); err != nil {
		return "", err
	}

	return address, nil
}

// decodeAddress rejects addresses of other networks. DecodeAddress alone
// accepts any segwit hrp.
func (c *Client) decodeAddress(address string) (btcutil.Address, error) {
	addr, err := btcutil.DecodeAddress(address, c.params)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", bitcoin.ErrInvalidAddress, address, err)
	}
	if !addr.IsForNet(c.params) {
		return nil, fmt.Errorf("%w %q: not a %s address", bitcoin.ErrInvalidAddress, address, c.params.Name)
	}

	return addr, nil
}

func (c *Client) SendToAddress(ctx context.Context, address string, amount money.Money) (string, error) {
	addr, err := c.decodeAddress(address)
	if err != nil {
		return "", err
	}

	log.WithField("address", address).Debugf("sendtoaddress %d sats", amount)
	txid, err := await(ctx, func() (string, error) {
		hash, err := c.rpc.SendToAddress(addr, amount.Amount())
		if err != nil {
			return "", err
		}

		return hash.String(), nil
	})
	if err != nil {
		return "", fmt.Errorf("sendtoaddress: %w", err)
	}

	return txid, nil
}

func (c *Client) SendMany(ctx context.Context, label string, amounts map[string]money.Money) (string, error) {
	outputs := make(map[btcutil.Address]btcutil.Amount, len(amounts))
	for address, amount := range amounts {
		addr, err := c.decodeAddress(address)
		if err != nil {
			return "", err
		}
		outputs[addr] = amount.Amount()
	}

	log.WithField("outputs", len(outputs)).Debug("sendmany")
	txid, err := await(ctx, func() (string, error) {
		hash, err := c.rpc.SendMany(label, outputs)
		if err != nil {
			return "", err
		}

		return hash.String(), nil
	})
	if err != nil {
		return "", fmt.Errorf("sendmany: %w", err)
	}

	return txid, nil
}
