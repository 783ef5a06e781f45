package wallet

import (
	"context"
	"sync"

	"github.com/40acres/walletconsole/lightning"
	log "github.com/sirupsen/logrus"
)

type ConnectionStatus string

const (
	AlreadyConnected ConnectionStatus = "already_connected"
	Connected        ConnectionStatus = "connected"
	ConnectionFailed ConnectionStatus = "connection_failed"
)

// ConnectionOutcome reports what EnsureConnected did. Address is set when a
// connect was attempted, Reason when it failed.
type ConnectionOutcome struct {
	Status  ConnectionStatus `json:"status"`
	Address string           `json:"address,omitempty"`
	Reason  string           `json:"reason,omitempty"`
}

func (o ConnectionOutcome) Failed() bool {
	return o.Status == ConnectionFailed
}

type ConnectivityOption func(*Connectivity)

// WithBootstrapNode sets the node dialed when there are no peers, taking
// precedence over the network's fallback node.
func WithBootstrapNode(addr lightning.NodeAddress) ConnectivityOption {
	return func(c *Connectivity) {
		c.bootstrap = &addr
	}
}

// WithSerializedBootstrap runs the peer check and the connect under one lock
// so concurrent callers on this instance bootstrap at most once at a time.
func WithSerializedBootstrap() ConnectivityOption {
	return func(c *Connectivity) {
		c.mu = &sync.Mutex{}
	}
}

// Connectivity makes sure the node has at least one peer before operations
// that need the network.
type Connectivity struct {
	lightning lightning.Client
	network   lightning.Network
	bootstrap *lightning.NodeAddress
	mu        *sync.Mutex
}

func NewConnectivity(client lightning.Client, network lightning.Network, opts ...ConnectivityOption) *Connectivity {
	c := &Connectivity{
		lightning: client,
		network:   network,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// EnsureConnected connects to the bootstrap node when the peer list is empty.
// It never returns an error: every failure is a ConnectionFailed outcome.
func (c *Connectivity) EnsureConnected(ctx context.Context) ConnectionOutcome {
	if c.mu != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	peers, err := c.lightning.ListPeers(ctx)
	if err != nil {
		log.WithError(err).Warn("could not list peers")

		return ConnectionOutcome{Status: ConnectionFailed, Reason: DaemonMessage(err)}
	}
	if len(peers) > 0 {
		return ConnectionOutcome{Status: AlreadyConnected}
	}

	target, err := c.target()
	if err != nil {
		return ConnectionOutcome{Status: ConnectionFailed, Reason: err.Error()}
	}

	logger := log.WithField("address", target.String())
	logger.Info("no peers, connecting to bootstrap node")

	if _, err := c.lightning.Connect(ctx, target); err != nil {
		logger.WithError(err).Warn("bootstrap connect failed")

		return ConnectionOutcome{Status: ConnectionFailed, Address: target.String(), Reason: DaemonMessage(err)}
	}

	return ConnectionOutcome{Status: Connected, Address: target.String()}
}

func (c *Connectivity) target() (lightning.NodeAddress, error) {
	if c.bootstrap != nil {
		return *c.bootstrap, nil
	}

	return lightning.FallbackNode(c.network)
}
