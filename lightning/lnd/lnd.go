package lnd

import (
	"context"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/40acres/walletconsole/utils"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnd/lnrpc"
	"github.com/lightningnetwork/lnd/lnrpc/routerrpc"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/macaroons"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/status"
	"gopkg.in/macaroon.v2"
)

// DefaultFeeLimitRatio caps routing fees at 0.5% of the invoice amount.
const DefaultFeeLimitRatio = 0.005

// MinFeeLimitMsat is the routing fee budget of invoices too small for the
// ratio to leave room for any fee.
const MinFeeLimitMsat = 10_000

type Client struct {
	routerClient    routerrpc.RouterClient
	lndClient       lnrpc.LightningClient
	params          *chaincfg.Params
	feeLimitRatio   float64
	closeConnection func()
	now             func() time.Time
}

type Option func(*Options)

func WithLndEndpoint(endpoint string) Option {
	return func(o *Options) {
		o.lndEndpoint = endpoint
	}
}

func WithMacaroonFilePath(path string) Option {
	return func(o *Options) {
		o.macaroonFilePath = path
	}
}

func WithTLSCertFilePath(path string) Option {
	return func(o *Options) {
		o.tlsCertFilePath = path
	}
}

func WithNetwork(network lightning.Network) Option {
	return func(o *Options) {
		o.network = network
	}
}

func WithFeeLimitRatio(ratio float64) Option {
	return func(o *Options) {
		o.feeLimitRatio = ratio
	}
}

type Options struct {
	lndEndpoint      string
	macaroonFilePath string
	tlsCertFilePath  string
	network          lightning.Network
	feeLimitRatio    float64
	FS               afero.Fs
}

// NewClient creates a lnd client from macaroon and cert file locations.
// This Client establishes a grpc connection with a lnd node using grpc.
func NewClient(opts ...Option) (*Client, error) {
	options := Options{
		lndEndpoint:      "localhost:10009",
		macaroonFilePath: "/root/.lnd/data/chain/bitcoin/{Network}/admin.macaroon",
		tlsCertFilePath:  "/root/.lnd/tls.cert",
		network:          lightning.Mainnet,
		feeLimitRatio:    DefaultFeeLimitRatio,
		FS:               afero.NewOsFs(),
	}

	for _, opt := range opts {
		opt(&options)
	}

	params := lightning.ToChainCfgNetwork(options.network)
	if params == nil {
		return nil, fmt.Errorf("unsupported network: %q", options.network)
	}

	macaroonPath := strings.ReplaceAll(options.macaroonFilePath, "{Network}", string(options.network))
	macaroonFileBytes, err := afero.ReadFile(options.FS, macaroonPath)
	if err != nil {
		return nil, fmt.Errorf("failed reading macaroon file: %w", err)
	}

	certBytes, err := afero.ReadFile(options.FS, options.tlsCertFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed reading TLS cert file: %w", err)
	}
	creds := credentials.NewClientTLSFromCert(loadCertPool(certBytes), "")

	mac := &macaroon.Macaroon{}
	if err := mac.UnmarshalBinary(macaroonFileBytes); err != nil {
		return nil, fmt.Errorf("failed unmarshalling macaroon: %w", err)
	}

	macCred, err := macaroons.NewMacaroonCredential(mac)
	if err != nil {
		return nil, fmt.Errorf("failed creating macaroon credentials: %w", err)
	}

	conn, err := grpc.NewClient(options.lndEndpoint, grpc.WithTransportCredentials(creds), grpc.WithPerRPCCredentials(macCred))
	if err != nil {
		return nil, fmt.Errorf("failed connecting to LND node: %w", err)
	}

	return &Client{
		routerClient:  routerrpc.NewRouterClient(conn),
		lndClient:     lnrpc.NewLightningClient(conn),
		params:        params,
		feeLimitRatio: options.feeLimitRatio,
		now:           time.Now,
		closeConnection: func() {
			if err := conn.Close(); err != nil {
				log.WithError(err).Error("error closing connection")
			}
		},
	}, nil
}

// CloseConnection closes the connection with the lnd node
func (c *Client) CloseConnection() {
	c.closeConnection()
}

// rpcError turns a grpc status into the same error type the other backends
// return so the daemon's message reaches the operator unchanged.
func rpcError(ctx context.Context, method string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%s: %w", method, err)
	}
	if st.Code() == codes.DeadlineExceeded {
		return os.ErrDeadlineExceeded
	}

	return fmt.Errorf("%s: %w", method, &lightning.RPCError{Code: int(st.Code()), Message: st.Message()})
}

func (c *Client) GetInfo(ctx context.Context) (*lightning.NodeInfo, error) {
	res, err := c.lndClient.GetInfo(ctx, &lnrpc.GetInfoRequest{})
	if err != nil {
		return nil, rpcError(ctx, "getinfo", err)
	}

	network := ""
	if len(res.Chains) > 0 {
		network = res.Chains[0].Network
	}

	return &lightning.NodeInfo{
		ID:                res.IdentityPubkey,
		Alias:             res.Alias,
		Network:           network,
		Version:           res.Version,
		BlockHeight:       res.BlockHeight,
		NumPeers:          res.NumPeers,
		NumActiveChannels: res.NumActiveChannels,
		Addresses:         res.Uris,
	}, nil
}

func channelState(active bool) string {
	if active {
		return "active"
	}

	return "inactive"
}

func (c *Client) ListFunds(ctx context.Context) (*lightning.Funds, error) {
	utxos, err := c.lndClient.ListUnspent(ctx, &lnrpc.ListUnspentRequest{MaxConfs: 1<<31 - 1})
	if err != nil {
		return nil, rpcError(ctx, "listunspent", err)
	}
	channels, err := c.lndClient.ListChannels(ctx, &lnrpc.ListChannelsRequest{})
	if err != nil {
		return nil, rpcError(ctx, "listchannels", err)
	}

	funds := &lightning.Funds{
		Outputs:  make([]lightning.Output, 0, len(utxos.Utxos)),
		Channels: make([]lightning.FundsChannel, 0, len(channels.Channels)),
	}
	for _, u := range utxos.Utxos {
		output := lightning.Output{
			Amount:  money.Money(u.AmountSat),
			Address: u.Address,
			Status:  "confirmed",
		}
		if u.Outpoint != nil {
			output.TxID = u.Outpoint.TxidStr
			output.Index = u.Outpoint.OutputIndex
		}
		if u.Confirmations == 0 {
			output.Status = "unconfirmed"
		}
		funds.Outputs = append(funds.Outputs, output)
	}
	for _, ch := range channels.Channels {
		funds.Channels = append(funds.Channels, lightning.FundsChannel{
			PeerID:      ch.RemotePubkey,
			FundingTxID: fundingTxID(ch.ChannelPoint),
			OurAmount:   money.Money(ch.LocalBalance),
			Amount:      money.Money(ch.Capacity),
			State:       channelState(ch.Active),
		})
	}

	return funds, nil
}

// fundingTxID strips the output index from a "txid:index" channel point.
func fundingTxID(channelPoint string) string {
	txid, _, _ := strings.Cut(channelPoint, ":")

	return txid
}

func toChannel(ch *lnrpc.Channel) lightning.Channel {
	return lightning.Channel{
		PeerID:           ch.RemotePubkey,
		ChannelID:        ch.ChannelPoint,
		ShortChannelID:   lnwire.NewShortChanIDFromInt(ch.ChanId).String(),
		FundingTxID:      fundingTxID(ch.ChannelPoint),
		TotalMsat:        money.Money(ch.Capacity).ToMilliSats(),
		ToUsMsat:         money.Money(ch.LocalBalance).ToMilliSats(),
		OutFulfilledMsat: money.Money(ch.TotalSatoshisSent).ToMilliSats(),
		State:            channelState(ch.Active),
	}
}

// ListPeers joins connected peers with every channel lnd knows about, so a
// peer with channels but no live connection is still listed.
func (c *Client) ListPeers(ctx context.Context) ([]lightning.Peer, error) {
	res, err := c.lndClient.ListPeers(ctx, &lnrpc.ListPeersRequest{})
	if err != nil {
		return nil, rpcError(ctx, "listpeers", err)
	}
	channels, err := c.lndClient.ListChannels(ctx, &lnrpc.ListChannelsRequest{})
	if err != nil {
		return nil, rpcError(ctx, "listchannels", err)
	}

	peers := make([]lightning.Peer, 0, len(res.Peers))
	index := make(map[string]int, len(res.Peers))
	for _, p := range res.Peers {
		index[p.PubKey] = len(peers)
		peers = append(peers, lightning.Peer{
			ID:        p.PubKey,
			Connected: true,
			Addresses: []string{p.Address},
			Channels:  []lightning.Channel{},
		})
	}
	for _, ch := range channels.Channels {
		i, ok := index[ch.RemotePubkey]
		if !ok {
			i = len(peers)
			index[ch.RemotePubkey] = i
			peers = append(peers, lightning.Peer{ID: ch.RemotePubkey})
		}
		peers[i].Channels = append(peers[i].Channels, toChannel(ch))
	}

	return peers, nil
}

func (c *Client) describeGraph(ctx context.Context) (*lnrpc.ChannelGraph, error) {
	graph, err := c.lndClient.DescribeGraph(ctx, &lnrpc.ChannelGraphRequest{})
	if err != nil {
		return nil, rpcError(ctx, "describegraph", err)
	}

	return graph, nil
}

func (c *Client) ListNodes(ctx context.Context) ([]lightning.Node, error) {
	graph, err := c.describeGraph(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]lightning.Node, 0, len(graph.Nodes))
	for _, n := range graph.Nodes {
		addrs := make([]string, 0, len(n.Addresses))
		for _, a := range n.Addresses {
			addrs = append(addrs, a.Addr)
		}
		nodes = append(nodes, lightning.Node{
			ID:            n.PubKey,
			Alias:         n.Alias,
			Color:         n.Color,
			LastTimestamp: int64(n.LastUpdate),
			Addresses:     addrs,
		})
	}

	return nodes, nil
}

func (c *Client) ListChannels(ctx context.Context) ([]lightning.ChannelEdge, error) {
	graph, err := c.describeGraph(ctx)
	if err != nil {
		return nil, err
	}

	edges := make([]lightning.ChannelEdge, 0, len(graph.Edges))
	for _, e := range graph.Edges {
		edges = append(edges, lightning.ChannelEdge{
			Source:         e.Node1Pub,
			Destination:    e.Node2Pub,
			ShortChannelID: lnwire.NewShortChanIDFromInt(e.ChannelId).String(),
			Amount:         money.Money(e.Capacity),
			Active:         e.Node1Policy != nil && !e.Node1Policy.Disabled,
			Public:         true,
		})
	}

	return edges, nil
}

func (c *Client) Connect(ctx context.Context, addr lightning.NodeAddress) (string, error) {
	_, err := c.lndClient.ConnectPeer(ctx, &lnrpc.ConnectPeerRequest{
		Addr: &lnrpc.LightningAddress{
			Pubkey: addr.NodeID,
			Host:   addr.HostPort(),
		},
	})
	if err != nil {
		return "", rpcError(ctx, "connect", err)
	}

	return addr.NodeID, nil
}

func (c *Client) FundChannel(ctx context.Context, nodeID string, amount money.Money) (*lightning.FundingTx, error) {
	pubkey, err := hex.DecodeString(nodeID)
	if err != nil {
		return nil, fmt.Errorf("fundchannel: %w", lightning.ErrInvalidNodeAddress)
	}

	localAmount, err := utils.SafeUint64ToInt64(uint64(amount))
	if err != nil {
		return nil, fmt.Errorf("fundchannel: %w", err)
	}

	chanPoint, err := c.lndClient.OpenChannelSync(ctx, &lnrpc.OpenChannelRequest{
		NodePubkey:         pubkey,
		LocalFundingAmount: localAmount,
	})
	if err != nil {
		return nil, rpcError(ctx, "fundchannel", err)
	}

	txid, err := lnrpc.GetChanPointFundingTxid(chanPoint)
	if err != nil {
		return nil, fmt.Errorf("fundchannel: %w", err)
	}

	return &lightning.FundingTx{
		TxID:      txid.String(),
		ChannelID: txid.String() + ":" + strconv.FormatUint(uint64(chanPoint.OutputIndex), 10),
	}, nil
}

// CloseChannel cooperatively closes the first channel with the peer and
// returns as soon as lnd reports the closing transaction.
func (c *Client) CloseChannel(ctx context.Context, peerID string) (*lightning.ClosingTx, error) {
	pubkey, err := hex.DecodeString(peerID)
	if err != nil {
		return nil, fmt.Errorf("close: %w", lightning.ErrInvalidNodeAddress)
	}

	channels, err := c.lndClient.ListChannels(ctx, &lnrpc.ListChannelsRequest{Peer: pubkey})
	if err != nil {
		return nil, rpcError(ctx, "listchannels", err)
	}
	if len(channels.Channels) == 0 {
		return nil, fmt.Errorf("close: %w", &lightning.RPCError{Code: int(codes.NotFound), Message: "no channel with peer " + peerID})
	}

	ch := channels.Channels[0]
	chanPoint, err := parseChannelPoint(ch.ChannelPoint)
	if err != nil {
		return nil, fmt.Errorf("close: %w", err)
	}

	closeType := "mutual"
	if !ch.Active {
		closeType = "unilateral"
	}

	stream, err := c.lndClient.CloseChannel(ctx, &lnrpc.CloseChannelRequest{
		ChannelPoint: chanPoint,
		Force:        !ch.Active,
	})
	if err != nil {
		return nil, rpcError(ctx, "close", err)
	}

	for {
		update, err := stream.Recv()
		if err != nil {
			return nil, rpcError(ctx, "close", err)
		}
		if pending := update.GetClosePending(); pending != nil {
			txid, err := txidFromBytes(pending.Txid)
			if err != nil {
				return nil, fmt.Errorf("close: %w", err)
			}

			return &lightning.ClosingTx{TxID: txid, Type: closeType}, nil
		}
	}
}

func parseChannelPoint(s string) (*lnrpc.ChannelPoint, error) {
	txid, index, ok := strings.Cut(s, ":")
	if !ok {
		return nil, fmt.Errorf("invalid channel point %q", s)
	}
	out, err := strconv.ParseUint(index, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid channel point %q: %w", s, err)
	}

	return &lnrpc.ChannelPoint{
		FundingTxid: &lnrpc.ChannelPoint_FundingTxidStr{FundingTxidStr: txid},
		OutputIndex: uint32(out),
	}, nil
}

func txidFromBytes(b []byte) (string, error) {
	txid, err := lnrpc.GetChanPointFundingTxid(&lnrpc.ChannelPoint{
		FundingTxid: &lnrpc.ChannelPoint_FundingTxidBytes{FundingTxidBytes: b},
	})
	if err != nil {
		return "", err
	}

	return txid.String(), nil
}

// invoiceStatus maps the invoice state. lnd keeps unpaid invoices OPEN past
// their expiry, so expiry is checked against now.
func invoiceStatus(inv *lnrpc.Invoice, now time.Time) string {
	switch inv.State {
	case lnrpc.Invoice_OPEN:
		if inv.CreationDate > 0 && inv.Expiry > 0 && !now.Before(time.Unix(inv.CreationDate+inv.Expiry, 0)) {
			return "expired"
		}

		return "unpaid"
	case lnrpc.Invoice_SETTLED:
		return lightning.InvoiceStatusPaid
	case lnrpc.Invoice_CANCELED:
		return "expired"
	case lnrpc.Invoice_ACCEPTED:
		return "accepted"
	default:
		return "unpaid"
	}
}

// toInvoice maps an lnd invoice. lnd has no invoice labels, the memo is the
// closest thing and is reported as both.
func toInvoice(inv *lnrpc.Invoice, now time.Time) lightning.Invoice {
	invoice := lightning.Invoice{
		Label:              inv.Memo,
		Bolt11:             inv.PaymentRequest,
		PaymentHash:        hex.EncodeToString(inv.RHash),
		AmountMsat:         money.MilliSats(inv.ValueMsat),
		AmountReceivedMsat: money.MilliSats(inv.AmtPaidMsat),
		Status:             invoiceStatus(inv, now),
		PayIndex:           inv.SettleIndex,
		Description:        inv.Memo,
	}
	if inv.CreationDate > 0 {
		invoice.ExpiresAt = time.Unix(inv.CreationDate+inv.Expiry, 0).UTC()
	}
	if inv.SettleDate > 0 {
		invoice.PaidAt = time.Unix(inv.SettleDate, 0).UTC()
	}

	return invoice
}

func (c *Client) CreateInvoice(ctx context.Context, amount money.MilliSats, label, description string) (*lightning.Invoice, error) {
	memo := description
	if memo == "" {
		memo = label
	}

	valueMsat, err := utils.SafeUint64ToInt64(uint64(amount))
	if err != nil {
		return nil, fmt.Errorf("invoice: %w", err)
	}

	res, err := c.lndClient.AddInvoice(ctx, &lnrpc.Invoice{
		ValueMsat: valueMsat,
		Memo:      memo,
	})
	if err != nil {
		return nil, rpcError(ctx, "invoice", err)
	}

	return &lightning.Invoice{
		Label:       label,
		Bolt11:      res.PaymentRequest,
		PaymentHash: hex.EncodeToString(res.RHash),
		AmountMsat:  amount,
		Status:      "unpaid",
		Description: description,
	}, nil
}

func feeLimitMsat(amountMsat int64, ratio float64) int64 {
	return max(int64(float64(amountMsat)*ratio), MinFeeLimitMsat)
}

func paymentStatus(status lnrpc.Payment_PaymentStatus) string {
	switch status {
	case lnrpc.Payment_SUCCEEDED:
		return "complete"
	case lnrpc.Payment_FAILED:
		return "failed"
	default:
		return "pending"
	}
}

func toPayment(p *lnrpc.Payment) lightning.Payment {
	payment := lightning.Payment{
		Bolt11:         p.PaymentRequest,
		PaymentHash:    p.PaymentHash,
		Preimage:       p.PaymentPreimage,
		AmountMsat:     money.MilliSats(p.ValueMsat),
		AmountSentMsat: money.MilliSats(p.ValueMsat + p.FeeMsat),
		Status:         paymentStatus(p.Status),
	}
	if p.Status == lnrpc.Payment_FAILED {
		payment.FailureReason = p.FailureReason.String()
	}

	return payment
}

// Pay sends the payment through the router and waits for a final state.
func (c *Client) Pay(ctx context.Context, bolt11 string) (*lightning.Payment, error) {
	payReq, err := c.lndClient.DecodePayReq(ctx, &lnrpc.PayReqString{PayReq: bolt11})
	if err != nil {
		return nil, rpcError(ctx, "decodepay", err)
	}

	stream, err := c.routerClient.SendPaymentV2(ctx, &routerrpc.SendPaymentRequest{
		PaymentRequest: bolt11,
		FeeLimitMsat:   feeLimitMsat(payReq.NumMsat, c.feeLimitRatio),
		TimeoutSeconds: int32((time.Minute * 5).Seconds()),
	})
	if err != nil {
		return nil, rpcError(ctx, "pay", err)
	}

	for {
		update, err := stream.Recv()
		if err != nil {
			return nil, rpcError(ctx, "pay", err)
		}

		log.WithField("payment_hash", update.PaymentHash).Debugf("payment update: %s", update.Status)
		switch update.Status {
		case lnrpc.Payment_SUCCEEDED:
			payment := toPayment(update)
			payment.Bolt11 = bolt11
			payment.Destination = payReq.Destination

			return &payment, nil
		case lnrpc.Payment_FAILED:
			return nil, fmt.Errorf("pay: %w", &lightning.RPCError{
				Code:    int(update.FailureReason),
				Message: update.FailureReason.String(),
			})
		}
	}
}

func (c *Client) ListPays(ctx context.Context, bolt11 string) ([]lightning.Payment, error) {
	res, err := c.lndClient.ListPayments(ctx, &lnrpc.ListPaymentsRequest{IncludeIncomplete: true})
	if err != nil {
		return nil, rpcError(ctx, "listpays", err)
	}

	pays := make([]lightning.Payment, 0, len(res.Payments))
	for _, p := range res.Payments {
		if bolt11 != "" && p.PaymentRequest != bolt11 {
			continue
		}
		pays = append(pays, toPayment(p))
	}

	return pays, nil
}

func (c *Client) ListInvoices(ctx context.Context) ([]lightning.Invoice, error) {
	res, err := c.lndClient.ListInvoices(ctx, &lnrpc.ListInvoiceRequest{NumMaxInvoices: 1 << 32})
	if err != nil {
		return nil, rpcError(ctx, "listinvoices", err)
	}

	invoices := make([]lightning.Invoice, 0, len(res.Invoices))
	for _, inv := range res.Invoices {
		invoices = append(invoices, toInvoice(inv, c.now()))
	}

	return invoices, nil
}

func (c *Client) DecodePay(ctx context.Context, bolt11 string) (*lightning.DecodedInvoice, error) {
	res, err := c.lndClient.DecodePayReq(ctx, &lnrpc.PayReqString{PayReq: bolt11})
	if err != nil {
		return nil, rpcError(ctx, "decodepay", err)
	}

	return &lightning.DecodedInvoice{
		Currency:    c.params.Bech32HRPSegwit,
		Payee:       res.Destination,
		PaymentHash: res.PaymentHash,
		AmountMsat:  money.MilliSats(res.NumMsat),
		Description: res.Description,
		CreatedAt:   time.Unix(res.Timestamp, 0).UTC(),
		Expiry:      time.Duration(res.Expiry) * time.Second,
	}, nil
}

// WaitAnyInvoice subscribes from the settle index and returns the first
// settled invoice past it.
func (c *Client) WaitAnyInvoice(ctx context.Context, lastPayIndex uint64) (*lightning.Invoice, error) {
	stream, err := c.lndClient.SubscribeInvoices(ctx, &lnrpc.InvoiceSubscription{SettleIndex: lastPayIndex})
	if err != nil {
		return nil, rpcError(ctx, "waitanyinvoice", err)
	}

	for {
		inv, err := stream.Recv()
		if err != nil {
			return nil, rpcError(ctx, "waitanyinvoice", err)
		}
		if inv.State != lnrpc.Invoice_SETTLED || inv.SettleIndex <= lastPayIndex {
			continue
		}
		invoice := toInvoice(inv, c.now())

		return &invoice, nil
	}
}

func (c *Client) NewAddress(ctx context.Context) (string, error) {
	res, err := c.lndClient.NewAddress(ctx, &lnrpc.NewAddressRequest{
		Type: lnrpc.AddressType_WITNESS_PUBKEY_HASH,
	})
	if err != nil {
		return "", rpcError(ctx, "newaddr", err)
	}

	return res.Address, nil
}

// Helper function to load a certificate pool from cert bytes
func loadCertPool(certBytes []byte) *x509.CertPool {
	cp := x509.NewCertPool()
	cp.AppendCertsFromPEM(certBytes)

	return cp
}

var _ lightning.Client = (*Client)(nil)
