package bitcoin

import (
	"context"
	"errors"
	"time"

	"github.com/40acres/walletconsole/money"
	"github.com/shopspring/decimal"
)

// ErrInvalidAddress is returned before anything is sent when an address does
// not decode for the client's network.
var ErrInvalidAddress = errors.New("invalid address")

// TxRecord is one wallet transaction entry. BlockHeight is 0 while the
// transaction is unconfirmed.
type TxRecord struct {
	TxID          string          `json:"txid"`
	Address       string          `json:"address,omitempty"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	Label         string          `json:"label,omitempty"`
	Confirmations int64           `json:"confirmations"`
	BlockHeight   int64           `json:"blockheight"`
	BlockHash     string          `json:"blockhash,omitempty"`
	Time          time.Time       `json:"time"`
}

type WalletInfo struct {
	WalletName         string          `json:"walletname"`
	WalletVersion      int64           `json:"walletversion"`
	Balance            decimal.Decimal `json:"balance"`
	UnconfirmedBalance decimal.Decimal `json:"unconfirmed_balance"`
	ImmatureBalance    decimal.Decimal `json:"immature_balance"`
	TxCount            int64           `json:"txcount"`
	KeypoolSize        int64           `json:"keypoolsize"`
	PrivateKeysEnabled bool            `json:"private_keys_enabled"`
}

type NetworkInfo struct {
	Version         int64           `json:"version"`
	Subversion      string          `json:"subversion"`
	ProtocolVersion int64           `json:"protocolversion"`
	Connections     int64           `json:"connections"`
	NetworkActive   bool            `json:"networkactive"`
	RelayFee        decimal.Decimal `json:"relayfee"`
	Warnings        string          `json:"warnings"`
}

//go:generate go tool mockgen -destination=mock.go -package=bitcoin . Client
type Client interface {
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	ListTransactions(ctx context.Context, label string, count int) ([]TxRecord, error)
	GetNetworkInfo(ctx context.Context) (*NetworkInfo, error)
	GetWalletInfo(ctx context.Context) (*WalletInfo, error)
	GetAddressesByLabel(ctx context.Context, label string) ([]string, error)
	GetNewAddress(ctx context.Context, label string) (string, error)
	SendToAddress(ctx context.Context, address string, amount money.Money) (string, error)
	SendMany(ctx context.Context, label string, amounts map[string]money.Money) (string, error)
}
