// Package wallet turns operator intents into sequenced calls against the
// bitcoind wallet and the Lightning node: channel management, payments,
// payouts and read only views of both daemons.
//
// All durable state is owned by the daemons. Nothing here is persisted and
// every result is rebuilt from daemon calls, which makes the package safe to
// use from concurrent requests.
package wallet

import (
	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
)

type Config struct {
	Network  lightning.Network
	Explorer Explorer
	TxCount  int
	// Bootstrap overrides the network's fallback node.
	Bootstrap          *lightning.NodeAddress
	SerializeBootstrap bool
}

// Wallet bundles the components sharing a pair of daemon clients.
type Wallet struct {
	Funds        *Funds
	Connectivity *Connectivity
	Channels     *Channels
	Payments     *Payments
	Payouts      *Payouts
}

func New(btc bitcoin.Client, ln lightning.Client, cfg Config) (*Wallet, error) {
	explorer := cfg.Explorer
	if explorer == "" {
		explorer = DefaultExplorer
	}

	var connOpts []ConnectivityOption
	if cfg.Bootstrap != nil {
		connOpts = append(connOpts, WithBootstrapNode(*cfg.Bootstrap))
	}
	if cfg.SerializeBootstrap {
		connOpts = append(connOpts, WithSerializedBootstrap())
	}
	connectivity := NewConnectivity(ln, cfg.Network, connOpts...)

	payments, err := NewPayments(ln, cfg.Network)
	if err != nil {
		return nil, err
	}

	payouts, err := NewPayouts(btc, cfg.Network, explorer)
	if err != nil {
		return nil, err
	}

	return &Wallet{
		Funds:        NewFunds(btc, ln, WithExplorer(explorer), WithTxCount(cfg.TxCount)),
		Connectivity: connectivity,
		Channels:     NewChannels(ln, connectivity),
		Payments:     payments,
		Payouts:      payouts,
	}, nil
}
