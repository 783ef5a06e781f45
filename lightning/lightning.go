package lightning

import (
	"context"
	"time"

	"github.com/40acres/walletconsole/money"
)

// InvoiceStatusPaid is the only invoice label the console interprets; every
// other status is passed through as reported by the daemon.
const InvoiceStatusPaid = "paid"

type NodeInfo struct {
	ID                string   `json:"id"`
	Alias             string   `json:"alias"`
	Network           string   `json:"network"`
	Version           string   `json:"version"`
	BlockHeight       uint32   `json:"blockheight"`
	NumPeers          uint32   `json:"num_peers"`
	NumActiveChannels uint32   `json:"num_active_channels"`
	Addresses         []string `json:"addresses"`
}

// Channel is one funded channel as reported by the daemon's peer listing.
// State is owned by the daemon and never interpreted here.
type Channel struct {
	PeerID           string          `json:"peer_id"`
	ChannelID        string          `json:"channel_id,omitempty"`
	ShortChannelID   string          `json:"short_channel_id,omitempty"`
	FundingTxID      string          `json:"funding_txid,omitempty"`
	TotalMsat        money.MilliSats `json:"total_msat"`
	ToUsMsat         money.MilliSats `json:"to_us_msat"`
	OutFulfilledMsat money.MilliSats `json:"out_fulfilled_msat"`
	State            string          `json:"state"`
}

type Peer struct {
	ID        string    `json:"id"`
	Connected bool      `json:"connected"`
	Addresses []string  `json:"netaddr,omitempty"`
	Channels  []Channel `json:"channels"`
}

type Output struct {
	TxID    string      `json:"txid"`
	Index   uint32      `json:"output"`
	Amount  money.Money `json:"amount_sat"`
	Address string      `json:"address,omitempty"`
	Status  string      `json:"status"`
}

type FundsChannel struct {
	PeerID      string      `json:"peer_id"`
	FundingTxID string      `json:"funding_txid"`
	OurAmount   money.Money `json:"our_amount_sat"`
	Amount      money.Money `json:"amount_sat"`
	State       string      `json:"state"`
}

type Funds struct {
	Outputs  []Output       `json:"outputs"`
	Channels []FundsChannel `json:"channels"`
}

type Node struct {
	ID            string   `json:"nodeid"`
	Alias         string   `json:"alias,omitempty"`
	Color         string   `json:"color,omitempty"`
	LastTimestamp int64    `json:"last_timestamp,omitempty"`
	Addresses     []string `json:"addresses,omitempty"`
}

// ChannelEdge is a channel of the public gossip graph, not necessarily ours.
type ChannelEdge struct {
	Source         string      `json:"source"`
	Destination    string      `json:"destination"`
	ShortChannelID string      `json:"short_channel_id"`
	Amount         money.Money `json:"amount_sat"`
	Active         bool        `json:"active"`
	Public         bool        `json:"public"`
}

type FundingTx struct {
	TxID      string `json:"txid"`
	ChannelID string `json:"channel_id,omitempty"`
}

type ClosingTx struct {
	TxID string `json:"txid"`
	Type string `json:"type,omitempty"`
}

type Invoice struct {
	Label              string          `json:"label"`
	Bolt11             string          `json:"bolt11"`
	PaymentHash        string          `json:"payment_hash"`
	AmountMsat         money.MilliSats `json:"amount_msat"`
	AmountReceivedMsat money.MilliSats `json:"amount_received_msat,omitempty"`
	Status             string          `json:"status"`
	PayIndex           uint64          `json:"pay_index,omitempty"`
	Description        string          `json:"description,omitempty"`
	ExpiresAt          time.Time       `json:"expires_at,omitempty"`
	PaidAt             time.Time       `json:"paid_at,omitempty"`
}

type Payment struct {
	Bolt11         string          `json:"bolt11,omitempty"`
	PaymentHash    string          `json:"payment_hash"`
	Preimage       string          `json:"payment_preimage,omitempty"`
	Destination    string          `json:"destination,omitempty"`
	AmountMsat     money.MilliSats `json:"amount_msat"`
	AmountSentMsat money.MilliSats `json:"amount_sent_msat"`
	Status         string          `json:"status"`
	FailureReason  string          `json:"failure_reason,omitempty"`
}

type DecodedInvoice struct {
	Currency    string          `json:"currency"`
	Payee       string          `json:"payee"`
	PaymentHash string          `json:"payment_hash"`
	AmountMsat  money.MilliSats `json:"amount_msat"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Expiry      time.Duration   `json:"expiry"`
}

//go:generate go tool mockgen -destination=mock.go -package=lightning . Client
type Client interface {
	GetInfo(ctx context.Context) (*NodeInfo, error)
	ListFunds(ctx context.Context) (*Funds, error)
	ListPeers(ctx context.Context) ([]Peer, error)
	ListNodes(ctx context.Context) ([]Node, error)
	ListChannels(ctx context.Context) ([]ChannelEdge, error)
	Connect(ctx context.Context, addr NodeAddress) (string, error)
	FundChannel(ctx context.Context, nodeID string, amount money.Money) (*FundingTx, error)
	CloseChannel(ctx context.Context, peerID string) (*ClosingTx, error)
	CreateInvoice(ctx context.Context, amount money.MilliSats, label, description string) (*Invoice, error)
	Pay(ctx context.Context, bolt11 string) (*Payment, error)
	ListPays(ctx context.Context, bolt11 string) ([]Payment, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
	DecodePay(ctx context.Context, bolt11 string) (*DecodedInvoice, error)
	// WaitAnyInvoice blocks until an invoice with a pay index above
	// lastPayIndex is paid.
	WaitAnyInvoice(ctx context.Context, lastPayIndex uint64) (*Invoice, error)
	NewAddress(ctx context.Context) (string, error)
}
