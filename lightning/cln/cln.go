// Package cln talks to a Core Lightning node through the JSON-RPC unix socket
// exposed by lightningd.
package cln

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/elementsproject/glightning/jrpc2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

const defaultRPCFile = "lightning-rpc"

// DefaultTimeout bounds every call except the ones that wait on the network
// (pay, fundchannel, close, waitanyinvoice), in seconds.
const DefaultTimeout = 60

type Option func(*Options)

// WithRPCFile sets the full path of the lightningd rpc socket.
func WithRPCFile(path string) Option {
	return func(o *Options) {
		o.rpcFile = path
	}
}

// WithLightningDir resolves the socket as <dir>/<network>/lightning-rpc.
func WithLightningDir(dir string) Option {
	return func(o *Options) {
		o.lightningDir = dir
	}
}

func WithNetwork(network lightning.Network) Option {
	return func(o *Options) {
		o.network = network
	}
}

// WithTimeout sets the timeout of bounded calls, in seconds.
func WithTimeout(secs uint) Option {
	return func(o *Options) {
		o.timeout = secs
	}
}

func WithFs(fs afero.Fs) Option {
	return func(o *Options) {
		o.FS = fs
	}
}

type Options struct {
	rpcFile      string
	lightningDir string
	network      lightning.Network
	timeout      uint
	// Used to check the socket is there before the first call.
	FS afero.Fs
}

var ErrSocketNotFound = errors.New("lightningd rpc socket not found")

// Client multiplexes every call over one connection to the rpc socket. The
// connection is dialed on first use and redialed after lightningd restarts.
type Client struct {
	socketPath string
	timeout    uint

	mu     sync.Mutex
	client *jrpc2.Client
}

// NewClient creates a Core Lightning client. It only checks the socket
// exists, the connection is made by the first call.
func NewClient(opts ...Option) (*Client, error) {
	options := Options{
		lightningDir: "/root/.lightning",
		network:      lightning.Mainnet,
		timeout:      DefaultTimeout,
		FS:           afero.NewOsFs(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	socketPath := options.rpcFile
	if socketPath == "" {
		socketPath = filepath.Join(options.lightningDir, clnNetworkDir(options.network), defaultRPCFile)
	}

	exists, err := afero.Exists(options.FS, socketPath)
	if err != nil {
		return nil, fmt.Errorf("checking rpc socket: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSocketNotFound, socketPath)
	}

	log.WithField("socket", socketPath).Debug("using Core Lightning rpc socket")

	return &Client{socketPath: socketPath, timeout: options.timeout}, nil
}

// clnNetworkDir maps to lightningd's per-network directory names.
func clnNetworkDir(network lightning.Network) string {
	if network == lightning.Mainnet {
		return "bitcoin"
	}

	return string(network)
}

type getInfoResult struct {
	ID                string       `json:"id"`
	Alias             string       `json:"alias"`
	Network           string       `json:"network"`
	Version           string       `json:"version"`
	BlockHeight       uint32       `json:"blockheight"`
	NumPeers          uint32       `json:"num_peers"`
	NumActiveChannels uint32       `json:"num_active_channels"`
	Address           []netAddress `json:"address"`
}

func (c *Client) GetInfo(ctx context.Context) (*lightning.NodeInfo, error) {
	var res getInfoResult
	if err := c.call(ctx, &getInfoRequest{}, &res); err != nil {
		return nil, err
	}

	return &lightning.NodeInfo{
		ID:                res.ID,
		Alias:             res.Alias,
		Network:           res.Network,
		Version:           res.Version,
		BlockHeight:       res.BlockHeight,
		NumPeers:          res.NumPeers,
		NumActiveChannels: res.NumActiveChannels,
		Addresses:         addressStrings(res.Address),
	}, nil
}

type listFundsResult struct {
	Outputs []struct {
		TxID       string `json:"txid"`
		Output     uint32 `json:"output"`
		Value      uint64 `json:"value"`
		AmountMsat msat   `json:"amount_msat"`
		Address    string `json:"address"`
		Status     string `json:"status"`
	} `json:"outputs"`
	Channels []struct {
		PeerID          string `json:"peer_id"`
		FundingTxID     string `json:"funding_txid"`
		ChannelSat      uint64 `json:"channel_sat"`
		OurAmountMsat   msat   `json:"our_amount_msat"`
		ChannelTotalSat uint64 `json:"channel_total_sat"`
		AmountMsat      msat   `json:"amount_msat"`
		State           string `json:"state"`
	} `json:"channels"`
}

func (c *Client) ListFunds(ctx context.Context) (*lightning.Funds, error) {
	var res listFundsResult
	if err := c.call(ctx, &listFundsRequest{}, &res); err != nil {
		return nil, err
	}

	funds := &lightning.Funds{
		Outputs:  make([]lightning.Output, 0, len(res.Outputs)),
		Channels: make([]lightning.FundsChannel, 0, len(res.Channels)),
	}
	for _, o := range res.Outputs {
		funds.Outputs = append(funds.Outputs, lightning.Output{
			TxID:    o.TxID,
			Index:   o.Output,
			Amount:  first(o.AmountMsat, msat(o.Value*1000)).ToSats(),
			Address: o.Address,
			Status:  o.Status,
		})
	}
	for _, ch := range res.Channels {
		funds.Channels = append(funds.Channels, lightning.FundsChannel{
			PeerID:      ch.PeerID,
			FundingTxID: ch.FundingTxID,
			OurAmount:   first(ch.OurAmountMsat, msat(ch.ChannelSat*1000)).ToSats(),
			Amount:      first(ch.AmountMsat, msat(ch.ChannelTotalSat*1000)).ToSats(),
			State:       ch.State,
		})
	}

	return funds, nil
}

type peerChannel struct {
	PeerID                   string `json:"peer_id"`
	State                    string `json:"state"`
	ShortChannelID           string `json:"short_channel_id"`
	ChannelID                string `json:"channel_id"`
	FundingTxID              string `json:"funding_txid"`
	MilliSatoshiToUs         msat   `json:"msatoshi_to_us"`
	ToUsMsat                 msat   `json:"to_us_msat"`
	MilliSatoshiTotal        msat   `json:"msatoshi_total"`
	TotalMsat                msat   `json:"total_msat"`
	OutMilliSatoshiFulfilled msat   `json:"out_msatoshi_fulfilled"`
	OutFulfilledMsat         msat   `json:"out_fulfilled_msat"`
}

func (ch peerChannel) toChannel(peerID string) lightning.Channel {
	if ch.PeerID != "" {
		peerID = ch.PeerID
	}

	return lightning.Channel{
		PeerID:           peerID,
		ChannelID:        ch.ChannelID,
		ShortChannelID:   ch.ShortChannelID,
		FundingTxID:      ch.FundingTxID,
		TotalMsat:        first(ch.MilliSatoshiTotal, ch.TotalMsat),
		ToUsMsat:         first(ch.MilliSatoshiToUs, ch.ToUsMsat),
		OutFulfilledMsat: first(ch.OutMilliSatoshiFulfilled, ch.OutFulfilledMsat),
		State:            ch.State,
	}
}

type listPeersResult struct {
	Peers []struct {
		ID        string        `json:"id"`
		Connected bool          `json:"connected"`
		NetAddr   []string      `json:"netaddr"`
		Channels  []peerChannel `json:"channels"`
	} `json:"peers"`
}

type listPeerChannelsResult struct {
	Channels []peerChannel `json:"channels"`
}

// ListPeers returns every peer with its channels. Daemons that moved channel
// details to listpeerchannels are merged transparently.
func (c *Client) ListPeers(ctx context.Context) ([]lightning.Peer, error) {
	var res listPeersResult
	if err := c.call(ctx, &listPeersRequest{}, &res); err != nil {
		return nil, err
	}

	peers := make([]lightning.Peer, 0, len(res.Peers))
	index := make(map[string]int, len(res.Peers))
	for _, p := range res.Peers {
		peer := lightning.Peer{
			ID:        p.ID,
			Connected: p.Connected,
			Addresses: p.NetAddr,
			Channels:  make([]lightning.Channel, 0, len(p.Channels)),
		}
		for _, ch := range p.Channels {
			peer.Channels = append(peer.Channels, ch.toChannel(p.ID))
		}
		index[p.ID] = len(peers)
		peers = append(peers, peer)
	}

	var split listPeerChannelsResult
	err := c.call(ctx, &listPeerChannelsRequest{}, &split)
	switch {
	case isMethodNotFound(err):
		return peers, nil
	case err != nil:
		return nil, err
	}

	for i := range peers {
		peers[i].Channels = peers[i].Channels[:0]
	}
	for _, ch := range split.Channels {
		i, ok := index[ch.PeerID]
		if !ok {
			index[ch.PeerID] = len(peers)
			i = len(peers)
			peers = append(peers, lightning.Peer{ID: ch.PeerID})
		}
		peers[i].Channels = append(peers[i].Channels, ch.toChannel(ch.PeerID))
	}

	return peers, nil
}

type listNodesResult struct {
	Nodes []struct {
		NodeID        string       `json:"nodeid"`
		Alias         string       `json:"alias"`
		Color         string       `json:"color"`
		LastTimestamp int64        `json:"last_timestamp"`
		Addresses     []netAddress `json:"addresses"`
	} `json:"nodes"`
}

func (c *Client) ListNodes(ctx context.Context) ([]lightning.Node, error) {
	var res listNodesResult
	if err := c.call(ctx, &listNodesRequest{}, &res); err != nil {
		return nil, err
	}

	nodes := make([]lightning.Node, 0, len(res.Nodes))
	for _, n := range res.Nodes {
		nodes = append(nodes, lightning.Node{
			ID:            n.NodeID,
			Alias:         n.Alias,
			Color:         n.Color,
			LastTimestamp: n.LastTimestamp,
			Addresses:     addressStrings(n.Addresses),
		})
	}

	return nodes, nil
}

type listChannelsResult struct {
	Channels []struct {
		Source         string `json:"source"`
		Destination    string `json:"destination"`
		ShortChannelID string `json:"short_channel_id"`
		Satoshis       uint64 `json:"satoshis"`
		AmountMsat     msat   `json:"amount_msat"`
		Active         bool   `json:"active"`
		Public         bool   `json:"public"`
	} `json:"channels"`
}

func (c *Client) ListChannels(ctx context.Context) ([]lightning.ChannelEdge, error) {
	var res listChannelsResult
	if err := c.call(ctx, &listChannelsRequest{}, &res); err != nil {
		return nil, err
	}

	edges := make([]lightning.ChannelEdge, 0, len(res.Channels))
	for _, ch := range res.Channels {
		edges = append(edges, lightning.ChannelEdge{
			Source:         ch.Source,
			Destination:    ch.Destination,
			ShortChannelID: ch.ShortChannelID,
			Amount:         first(ch.AmountMsat, msat(ch.Satoshis*1000)).ToSats(),
			Active:         ch.Active,
			Public:         ch.Public,
		})
	}

	return edges, nil
}

func (c *Client) Connect(ctx context.Context, addr lightning.NodeAddress) (string, error) {
	var res struct {
		ID string `json:"id"`
	}
	if err := c.call(ctx, &connectRequest{ID: addr.String()}, &res); err != nil {
		return "", err
	}

	return res.ID, nil
}

func (c *Client) FundChannel(ctx context.Context, nodeID string, amount money.Money) (*lightning.FundingTx, error) {
	var res struct {
		TxID      string `json:"txid"`
		ChannelID string `json:"channel_id"`
	}
	if err := c.wait(ctx, &fundChannelRequest{ID: nodeID, Amount: uint64(amount)}, &res); err != nil {
		return nil, err
	}

	return &lightning.FundingTx{TxID: res.TxID, ChannelID: res.ChannelID}, nil
}

func (c *Client) CloseChannel(ctx context.Context, peerID string) (*lightning.ClosingTx, error) {
	var res struct {
		TxID string `json:"txid"`
		Type string `json:"type"`
	}
	if err := c.wait(ctx, &closeRequest{ID: peerID}, &res); err != nil {
		return nil, err
	}

	return &lightning.ClosingTx{TxID: res.TxID, Type: res.Type}, nil
}

type invoiceResult struct {
	Label                string `json:"label"`
	Bolt11               string `json:"bolt11"`
	PaymentHash          string `json:"payment_hash"`
	MilliSatoshi         msat   `json:"msatoshi"`
	AmountMsat           msat   `json:"amount_msat"`
	MilliSatoshiReceived msat   `json:"msatoshi_received"`
	AmountReceivedMsat   msat   `json:"amount_received_msat"`
	Status               string `json:"status"`
	PayIndex             uint64 `json:"pay_index"`
	Description          string `json:"description"`
	ExpiresAt            int64  `json:"expires_at"`
	PaidAt               int64  `json:"paid_at"`
}

func (r invoiceResult) toInvoice() lightning.Invoice {
	return lightning.Invoice{
		Label:              r.Label,
		Bolt11:             r.Bolt11,
		PaymentHash:        r.PaymentHash,
		AmountMsat:         first(r.MilliSatoshi, r.AmountMsat),
		AmountReceivedMsat: first(r.MilliSatoshiReceived, r.AmountReceivedMsat),
		Status:             r.Status,
		PayIndex:           r.PayIndex,
		Description:        r.Description,
		ExpiresAt:          unixTime(r.ExpiresAt),
		PaidAt:             unixTime(r.PaidAt),
	}
}

func (c *Client) CreateInvoice(ctx context.Context, amount money.MilliSats, label, description string) (*lightning.Invoice, error) {
	var res invoiceResult
	if err := c.call(ctx, &invoiceRequest{AmountMsat: uint64(amount), Label: label, Description: description}, &res); err != nil {
		return nil, err
	}

	invoice := res.toInvoice()
	invoice.Label = label
	invoice.AmountMsat = amount
	invoice.Description = description
	if invoice.Status == "" {
		invoice.Status = "unpaid"
	}

	return &invoice, nil
}

type payResult struct {
	Bolt11           string `json:"bolt11"`
	PaymentHash      string `json:"payment_hash"`
	Preimage         string `json:"preimage"`
	PaymentPreimage  string `json:"payment_preimage"`
	Destination      string `json:"destination"`
	MilliSatoshi     msat   `json:"msatoshi"`
	AmountMsat       msat   `json:"amount_msat"`
	MilliSatoshiSent msat   `json:"msatoshi_sent"`
	AmountSentMsat   msat   `json:"amount_sent_msat"`
	Status           string `json:"status"`
}

func (r payResult) toPayment() lightning.Payment {
	preimage := r.PaymentPreimage
	if preimage == "" {
		preimage = r.Preimage
	}

	return lightning.Payment{
		Bolt11:         r.Bolt11,
		PaymentHash:    r.PaymentHash,
		Preimage:       preimage,
		Destination:    r.Destination,
		AmountMsat:     first(r.MilliSatoshi, r.AmountMsat),
		AmountSentMsat: first(r.MilliSatoshiSent, r.AmountSentMsat),
		Status:         r.Status,
	}
}

func (c *Client) Pay(ctx context.Context, bolt11 string) (*lightning.Payment, error) {
	var res payResult
	if err := c.wait(ctx, &payRequest{Bolt11: bolt11}, &res); err != nil {
		return nil, err
	}

	payment := res.toPayment()
	if payment.Bolt11 == "" {
		payment.Bolt11 = bolt11
	}

	return &payment, nil
}

func (c *Client) ListPays(ctx context.Context, bolt11 string) ([]lightning.Payment, error) {
	var res struct {
		Pays []payResult `json:"pays"`
	}

	if err := c.call(ctx, &listPaysRequest{Bolt11: bolt11}, &res); err != nil {
		return nil, err
	}

	pays := make([]lightning.Payment, 0, len(res.Pays))
	for _, p := range res.Pays {
		pays = append(pays, p.toPayment())
	}

	return pays, nil
}

func (c *Client) ListInvoices(ctx context.Context) ([]lightning.Invoice, error) {
	var res struct {
		Invoices []invoiceResult `json:"invoices"`
	}
	if err := c.call(ctx, &listInvoicesRequest{}, &res); err != nil {
		return nil, err
	}

	invoices := make([]lightning.Invoice, 0, len(res.Invoices))
	for _, inv := range res.Invoices {
		invoices = append(invoices, inv.toInvoice())
	}

	return invoices, nil
}

func (c *Client) DecodePay(ctx context.Context, bolt11 string) (*lightning.DecodedInvoice, error) {
	var res struct {
		Currency     string `json:"currency"`
		CreatedAt    int64  `json:"created_at"`
		Expiry       int64  `json:"expiry"`
		Payee        string `json:"payee"`
		MilliSatoshi msat   `json:"msatoshi"`
		AmountMsat   msat   `json:"amount_msat"`
		Description  string `json:"description"`
		PaymentHash  string `json:"payment_hash"`
	}
	if err := c.call(ctx, &decodePayRequest{Bolt11: bolt11}, &res); err != nil {
		return nil, err
	}

	return &lightning.DecodedInvoice{
		Currency:    res.Currency,
		Payee:       res.Payee,
		PaymentHash: res.PaymentHash,
		AmountMsat:  first(res.MilliSatoshi, res.AmountMsat),
		Description: res.Description,
		CreatedAt:   unixTime(res.CreatedAt),
		Expiry:      time.Duration(res.Expiry) * time.Second,
	}, nil
}

// WaitAnyInvoice blocks inside lightningd until an invoice with a pay index
// above lastPayIndex is paid. There is no client side timeout, only ctx.
func (c *Client) WaitAnyInvoice(ctx context.Context, lastPayIndex uint64) (*lightning.Invoice, error) {
	var res invoiceResult
	if err := c.wait(ctx, &waitAnyInvoiceRequest{LastPayIndex: lastPayIndex}, &res); err != nil {
		return nil, err
	}

	invoice := res.toInvoice()

	return &invoice, nil
}

func (c *Client) NewAddress(ctx context.Context) (string, error) {
	var res struct {
		Bech32  string `json:"bech32"`
		P2TR    string `json:"p2tr"`
		Address string `json:"address"`
	}
	if err := c.call(ctx, &newAddrRequest{}, &res); err != nil {
		return "", err
	}

	for _, addr := range []string{res.Bech32, res.P2TR, res.Address} {
		if addr != "" {
			return addr, nil
		}
	}

	return "", errors.New("newaddr: daemon returned no address")
}
