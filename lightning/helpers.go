package lightning

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/chaincfg"
)

// DefaultPort is the standard Lightning p2p port.
const DefaultPort = 9735

var (
	ErrInvalidNodeAddress = errors.New("invalid node address")
	ErrNoFallbackNode     = errors.New("no fallback node for network")
)

// ParsePubKey parses a hex-encoded public key (bitcon secp256k1) string into a btcec public key object
func ParsePubKey(pubKeyStr string) (*btcec.PublicKey, error) {
	pubKeyBytes, err := hex.DecodeString(pubKeyStr)
	if err != nil {
		return nil, err
	}

	pubKey, err := btcec.ParsePubKey(pubKeyBytes)
	if err != nil {
		return nil, err
	}

	return pubKey, nil
}

// NodeAddress identifies a reachable Lightning node.
type NodeAddress struct {
	NodeID string
	Host   string
	Port   int
}

// String renders the address as node_id@host:port.
func (a NodeAddress) String() string {
	return a.NodeID + "@" + a.HostPort()
}

func (a NodeAddress) HostPort() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// ParseNodeAddress parses node_id@host[:port]. The port defaults to 9735.
func ParseNodeAddress(s string) (NodeAddress, error) {
	nodeID, hostPort, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok || hostPort == "" {
		return NodeAddress{}, fmt.Errorf("%w: %q: expected node_id@host:port", ErrInvalidNodeAddress, s)
	}

	if _, err := ParsePubKey(nodeID); err != nil {
		return NodeAddress{}, fmt.Errorf("%w: node id: %w", ErrInvalidNodeAddress, err)
	}

	host, portStr, err := net.SplitHostPort(hostPort)
	if err != nil {
		// No port given.
		host, portStr = hostPort, strconv.Itoa(DefaultPort)
	}
	if host == "" {
		return NodeAddress{}, fmt.Errorf("%w: %q: empty host", ErrInvalidNodeAddress, s)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return NodeAddress{}, fmt.Errorf("%w: %q: bad port", ErrInvalidNodeAddress, s)
	}

	return NodeAddress{NodeID: nodeID, Host: host, Port: port}, nil
}

type Network string

const Mainnet Network = "mainnet"
const Regtest Network = "regtest"
const Testnet Network = "testnet"
const Signet Network = "signet"

// ParseNetwork accepts the names used by both daemons ("bitcoin" is Core
// Lightning's name for mainnet).
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(s) {
	case "mainnet", "bitcoin":
		return Mainnet, nil
	case "testnet", "testnet3":
		return Testnet, nil
	case "regtest":
		return Regtest, nil
	case "signet":
		return Signet, nil
	default:
		return "", fmt.Errorf("unsupported network: %q", s)
	}
}

func ToChainCfgNetwork(network Network) *chaincfg.Params {
	switch network {
	case Mainnet:
		return &chaincfg.MainNetParams
	case Regtest:
		return &chaincfg.RegressionNetParams
	case Testnet:
		return &chaincfg.TestNet3Params
	case Signet:
		return &chaincfg.SigNetParams
	default:
		return nil
	}
}

// Well known public nodes used to bootstrap a node that has no peers yet.
var fallbackNodes = map[Network]string{
	Mainnet: "03864ef025fde8fb587d989186ce6a4a186895ee44a926bfc370e2c366597a3f8f@3.33.236.230:9735",
	Testnet: "03933884aaf1d6b108397e5efe5c86bcf2d8ca8d2f700eda99db9214fc2712b134@endurance.acinq.co:9735",
}

// FallbackNode returns the fixed bootstrap address for the network.
func FallbackNode(network Network) (NodeAddress, error) {
	raw, ok := fallbackNodes[network]
	if !ok {
		return NodeAddress{}, fmt.Errorf("%w %q", ErrNoFallbackNode, network)
	}

	return ParseNodeAddress(raw)
}
