// Package daemon wires the daemon clients, the wallet, the payment event
// bridge and the HTTP server together and runs them until shutdown.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/40acres/walletconsole/api"
	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/bitcoin/bitcoind"
	"github.com/40acres/walletconsole/events"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/lightning/cln"
	"github.com/40acres/walletconsole/lightning/lnd"
	"github.com/40acres/walletconsole/wallet"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// NewLightningClient connects to the configured backend. The returned
// function releases the connection.
func NewLightningClient(cfg Config) (lightning.Client, func(), error) {
	switch cfg.Lightning.Backend {
	case BackendCLN:
		opts := []cln.Option{cln.WithNetwork(cfg.Network)}
		if cfg.Lightning.LightningDir != "" {
			opts = append(opts, cln.WithLightningDir(cfg.Lightning.LightningDir))
		}
		if cfg.Lightning.RPCFile != "" {
			opts = append(opts, cln.WithRPCFile(cfg.Lightning.RPCFile))
		}

		client, err := cln.NewClient(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to core lightning: %w", err)
		}

		return client, client.Close, nil
	case BackendLND:
		opts := []lnd.Option{lnd.WithNetwork(cfg.Network)}
		if cfg.Lightning.Endpoint != "" {
			opts = append(opts, lnd.WithLndEndpoint(cfg.Lightning.Endpoint))
		}
		if cfg.Lightning.Macaroon != "" {
			opts = append(opts, lnd.WithMacaroonFilePath(cfg.Lightning.Macaroon))
		}
		if cfg.Lightning.TLSCert != "" {
			opts = append(opts, lnd.WithTLSCertFilePath(cfg.Lightning.TLSCert))
		}

		client, err := lnd.NewClient(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to lnd: %w", err)
		}

		return client, client.CloseConnection, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown lightning backend %q", ErrInvalidConfig, cfg.Lightning.Backend)
	}
}

func NewBitcoinClient(cfg Config) (*bitcoind.Client, error) {
	opts := []bitcoind.Option{
		bitcoind.WithNetwork(cfg.Network),
		bitcoind.WithCredentials(cfg.Bitcoind.User, cfg.Bitcoind.Pass),
		bitcoind.WithTLS(cfg.Bitcoind.TLS),
	}
	if cfg.Bitcoind.Host != "" {
		opts = append(opts, bitcoind.WithHost(cfg.Bitcoind.Host))
	}
	if cfg.Bitcoind.Wallet != "" {
		opts = append(opts, bitcoind.WithWallet(cfg.Bitcoind.Wallet))
	}

	client, err := bitcoind.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("could not connect to bitcoind: %w", err)
	}

	return client, nil
}

// NewWallet builds the wallet from the configuration.
func NewWallet(cfg Config, btc bitcoin.Client, ln lightning.Client) (*wallet.Wallet, error) {
	walletCfg := wallet.Config{
		Network:            cfg.Network,
		Explorer:           wallet.Explorer(cfg.Explorer),
		TxCount:            cfg.TxCount,
		SerializeBootstrap: cfg.SerializeBootstrap,
	}
	if cfg.BootstrapNode != "" {
		addr, err := lightning.ParseNodeAddress(cfg.BootstrapNode)
		if err != nil {
			return nil, err
		}
		walletCfg.Bootstrap = &addr
	}

	return wallet.New(btc, ln, walletCfg)
}

// CursorSource returns the pay index store of a Lightning node.
type CursorSource func(nodeID string) events.CursorStore

// Start runs the payment event bridge and the HTTP server until ctx is done
// or one of them fails. cursors may be nil to keep the pay index in memory.
func Start(ctx context.Context, cfg Config, cursors CursorSource) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.WithField("network", cfg.Network).WithField("backend", cfg.Lightning.Backend).Info("starting wallet console")

	btc, err := NewBitcoinClient(cfg)
	if err != nil {
		return err
	}
	defer btc.Close()

	ln, closeLn, err := NewLightningClient(cfg)
	if err != nil {
		return err
	}
	defer closeLn()

	w, err := NewWallet(cfg, btc, ln)
	if err != nil {
		return err
	}

	var bridgeOpts []events.Option
	if cursors != nil {
		info, err := ln.GetInfo(ctx)
		if err != nil {
			return fmt.Errorf("could not identify lightning node: %w", err)
		}
		bridgeOpts = append(bridgeOpts, events.WithCursorStore(cursors(info.ID)))
	}
	if cfg.RecentEvents > 0 {
		bridgeOpts = append(bridgeOpts, events.WithRecentSize(cfg.RecentEvents))
	}
	bridge, err := events.NewBridge(ln, bridgeOpts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := bridge.Stop(); err != nil {
			log.WithError(err).Warn("failed to stop event bridge")
		}
	}()

	server := api.NewServer(w, bridge)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bridge.Run(ctx)
	})
	g.Go(func() error {
		return server.ListenAndServe(ctx, cfg.Listen)
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	log.Info("shutting down wallet console")

	return err
}
