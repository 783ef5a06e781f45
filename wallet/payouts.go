package wallet

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type PayoutStatus string

const (
	PayoutSent   PayoutStatus = "sent"
	PayoutFailed PayoutStatus = "failed"
)

// PayoutResult covers the whole batch. A rejected batch carries the daemon's
// message once, there is no per-output detail.
type PayoutResult struct {
	Status   PayoutStatus `json:"status"`
	TxID     string       `json:"txid,omitempty"`
	Explorer string       `json:"explorer_url,omitempty"`
	Reason   string       `json:"reason,omitempty"`
}

func (r PayoutResult) Failed() bool {
	return r.Status == PayoutFailed
}

type Payouts struct {
	bitcoin  bitcoin.Client
	params   *chaincfg.Params
	explorer Explorer
}

func NewPayouts(client bitcoin.Client, network lightning.Network, explorer Explorer) (*Payouts, error) {
	params := lightning.ToChainCfgNetwork(network)
	if params == nil {
		return nil, fmt.Errorf("unsupported network: %q", network)
	}

	return &Payouts{
		bitcoin:  client,
		params:   params,
		explorer: explorer,
	}, nil
}

// Withdraw pays every address in outputs (amounts in BTC) with one sendmany.
// Input is checked before anything reaches the daemon.
func (p *Payouts) Withdraw(ctx context.Context, outputs map[string]decimal.Decimal) (*PayoutResult, error) {
	if len(outputs) == 0 {
		return nil, ErrEmptyPayout
	}

	amounts := make(map[string]money.Money, len(outputs))
	// Sorted so the first invalid entry reported is stable.
	for _, address := range slices.Sorted(maps.Keys(outputs)) {
		amount, err := p.validate(address, outputs[address])
		if err != nil {
			return nil, err
		}
		amounts[address] = amount
	}

	txid, err := p.bitcoin.SendMany(ctx, "", amounts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.WithError(err).WithField("outputs", len(amounts)).Warn("withdrawal rejected")

		return &PayoutResult{Status: PayoutFailed, Reason: DaemonMessage(err)}, nil
	}

	log.WithField("txid", txid).WithField("outputs", len(amounts)).Info("withdrawal sent")

	return &PayoutResult{Status: PayoutSent, TxID: txid, Explorer: p.explorer.TxURL(txid)}, nil
}

// Send pays a single address with sendtoaddress.
func (p *Payouts) Send(ctx context.Context, address string, btc decimal.Decimal) (*PayoutResult, error) {
	amount, err := p.validate(address, btc)
	if err != nil {
		return nil, err
	}

	txid, err := p.bitcoin.SendToAddress(ctx, address, amount)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.WithError(err).WithField("address", address).Warn("send rejected")

		return &PayoutResult{Status: PayoutFailed, Reason: DaemonMessage(err)}, nil
	}

	log.WithField("txid", txid).WithField("address", address).Info("payment sent")

	return &PayoutResult{Status: PayoutSent, TxID: txid, Explorer: p.explorer.TxURL(txid)}, nil
}

func (p *Payouts) validate(address string, btc decimal.Decimal) (money.Money, error) {
	addr, err := btcutil.DecodeAddress(address, p.params)
	if err != nil || !addr.IsForNet(p.params) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	amount, err := money.NewFromBtc(btc)
	if err != nil {
		return 0, fmt.Errorf("%w: %s for %s: %w", ErrInvalidAmount, btc, address, err)
	}
	if amount == 0 {
		return 0, fmt.Errorf("%w: zero amount for %s", ErrInvalidAmount, address)
	}

	return amount, nil
}
