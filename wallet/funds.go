package wallet

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/shopspring/decimal"
)

const (
	DefaultExplorer = Explorer("https://testnet.bitcoinexplorer.org/tx")
	DefaultTxCount  = 20
)

// Explorer is the base URL of a block explorer's transaction page.
type Explorer string

func (e Explorer) TxURL(txid string) string {
	if e == "" || txid == "" {
		return ""
	}
	link, err := url.JoinPath(string(e), txid)
	if err != nil {
		return string(e) + "/" + txid
	}

	return link
}

// Funds serves read only views of both daemons. Nothing is cached, every call
// asks the daemons.
type Funds struct {
	bitcoin   bitcoin.Client
	lightning lightning.Client
	explorer  Explorer
	txCount   int
}

type FundsOption func(*Funds)

func WithExplorer(explorer Explorer) FundsOption {
	return func(f *Funds) {
		f.explorer = explorer
	}
}

func WithTxCount(count int) FundsOption {
	return func(f *Funds) {
		if count > 0 {
			f.txCount = count
		}
	}
}

func NewFunds(btc bitcoin.Client, ln lightning.Client, opts ...FundsOption) *Funds {
	f := &Funds{
		bitcoin:   btc,
		lightning: ln,
		explorer:  DefaultExplorer,
		txCount:   DefaultTxCount,
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Funds) Explorer() Explorer {
	return f.explorer
}

func (f *Funds) Balance(ctx context.Context) (decimal.Decimal, error) {
	balance, err := f.bitcoin.GetBalance(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance, nil
}

// Transaction is a wallet transaction with its explorer link.
type Transaction struct {
	bitcoin.TxRecord
	ExplorerURL string `json:"explorer_url"`
}

// ListTransactions returns the latest wallet transactions, highest block
// first. Unconfirmed ones have no height yet and come before all of them.
func (f *Funds) ListTransactions(ctx context.Context) ([]Transaction, error) {
	records, err := f.bitcoin.ListTransactions(ctx, "*", f.txCount)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	SortTransactions(records)

	txs := make([]Transaction, 0, len(records))
	for _, r := range records {
		txs = append(txs, Transaction{TxRecord: r, ExplorerURL: f.explorer.TxURL(r.TxID)})
	}

	return txs, nil
}

// SortTransactions orders records by descending block height in place,
// keeping the daemon's order between equal heights.
func SortTransactions(records []bitcoin.TxRecord) {
	slices.SortStableFunc(records, func(a, b bitcoin.TxRecord) int {
		return compareHeight(b.BlockHeight, a.BlockHeight)
	})
}

func compareHeight(a, b int64) int {
	// Height 0 is unconfirmed and ranks above any block.
	switch {
	case a == b:
		return 0
	case a == 0:
		return 1
	case b == 0:
		return -1
	case a < b:
		return -1
	default:
		return 1
	}
}

func (f *Funds) NetworkInfo(ctx context.Context) (*bitcoin.NetworkInfo, error) {
	info, err := f.bitcoin.GetNetworkInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get network info: %w", err)
	}

	return info, nil
}

func (f *Funds) WalletInfo(ctx context.Context) (*bitcoin.WalletInfo, error) {
	info, err := f.bitcoin.GetWalletInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet info: %w", err)
	}

	return info, nil
}

// WalletAddress returns the first address labelled with the wallet's name,
// or an empty string when there is none.
func (f *Funds) WalletAddress(ctx context.Context) (string, error) {
	info, err := f.WalletInfo(ctx)
	if err != nil {
		return "", err
	}

	addresses, err := f.bitcoin.GetAddressesByLabel(ctx, info.WalletName)
	if err != nil {
		return "", fmt.Errorf("failed to get addresses: %w", err)
	}
	if len(addresses) == 0 {
		return "", nil
	}

	return addresses[0], nil
}

// NewOnchainAddress creates a bitcoind address labelled with the wallet name.
func (f *Funds) NewOnchainAddress(ctx context.Context) (string, error) {
	info, err := f.WalletInfo(ctx)
	if err != nil {
		return "", err
	}

	address, err := f.bitcoin.GetNewAddress(ctx, info.WalletName)
	if err != nil {
		return "", fmt.Errorf("failed to get new address: %w", err)
	}

	return address, nil
}

func (f *Funds) LightningInfo(ctx context.Context) (*lightning.NodeInfo, error) {
	info, err := f.lightning.GetInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get node info: %w", err)
	}

	return info, nil
}

func (f *Funds) ListFunds(ctx context.Context) (*lightning.Funds, error) {
	funds, err := f.lightning.ListFunds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}

	return funds, nil
}

func (f *Funds) ListNodes(ctx context.Context) ([]lightning.Node, error) {
	nodes, err := f.lightning.ListNodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	return nodes, nil
}

func (f *Funds) ListChannels(ctx context.Context) ([]lightning.ChannelEdge, error) {
	channels, err := f.lightning.ListChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	return channels, nil
}

func (f *Funds) NewLightningAddress(ctx context.Context) (string, error) {
	address, err := f.lightning.NewAddress(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get new address: %w", err)
	}

	return address, nil
}

// Peers lists the node's peers summarised by SummarizePeers.
func (f *Funds) Peers(ctx context.Context) ([]PeerSummary, error) {
	peers, err := f.lightning.ListPeers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list peers: %w", err)
	}

	return SummarizePeers(peers), nil
}
