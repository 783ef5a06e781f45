package daemon

import (
	"errors"
	"fmt"
	"net"

	"github.com/40acres/walletconsole/lightning"
)

type LightningBackend string

const (
	BackendCLN LightningBackend = "cln"
	BackendLND LightningBackend = "lnd"
)

type BitcoindConfig struct {
	Host   string
	User   string
	Pass   string
	Wallet string
	TLS    bool
}

type LightningConfig struct {
	Backend      LightningBackend
	LightningDir string
	RPCFile      string
	Endpoint     string
	Macaroon     string
	TLSCert      string
}

type Config struct {
	Network   lightning.Network
	Listen    string
	Bitcoind  BitcoindConfig
	Lightning LightningConfig
	Explorer  string
	// BootstrapNode is a node_id@host:port used instead of the network's
	// fallback node. Empty keeps the fallback.
	BootstrapNode      string
	SerializeBootstrap bool
	TxCount            int
	RecentEvents       int
}

var ErrInvalidConfig = errors.New("invalid configuration")

func (c *Config) Validate() error {
	if lightning.ToChainCfgNetwork(c.Network) == nil {
		return fmt.Errorf("%w: unsupported network %q", ErrInvalidConfig, c.Network)
	}

	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("%w: listen address %q: %w", ErrInvalidConfig, c.Listen, err)
	}

	switch c.Lightning.Backend {
	case BackendCLN, BackendLND:
	default:
		return fmt.Errorf("%w: unknown lightning backend %q", ErrInvalidConfig, c.Lightning.Backend)
	}

	if c.BootstrapNode != "" {
		if _, err := lightning.ParseNodeAddress(c.BootstrapNode); err != nil {
			return fmt.Errorf("%w: bootstrap node: %w", ErrInvalidConfig, err)
		}
	}

	if c.TxCount < 0 {
		return fmt.Errorf("%w: tx count must not be negative", ErrInvalidConfig)
	}
	if c.RecentEvents < 0 {
		return fmt.Errorf("%w: recent events must not be negative", ErrInvalidConfig)
	}

	return nil
}
