package wallet

import (
	"context"
	"fmt"
	"strings"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	"github.com/lightningnetwork/lnd/zpay32"
	log "github.com/sirupsen/logrus"
)

const labelPrefix = "console-"

type PaymentResult string

const (
	PaymentSucceeded PaymentResult = "succeeded"
	PaymentFailed    PaymentResult = "failed"
)

// PaymentOutcome is what Pay returns for every attempt the daemon saw or
// rejected. Failures are an expected result, not an error.
type PaymentOutcome struct {
	Result  PaymentResult      `json:"result"`
	Payment *lightning.Payment `json:"payment,omitempty"`
	Reason  string             `json:"reason,omitempty"`
}

func (o PaymentOutcome) Failed() bool {
	return o.Result == PaymentFailed
}

type Direction string

const (
	Outgoing Direction = "outgoing"
	Incoming Direction = "incoming"
)

// StatusUnknown is reported for a bolt11 the node has neither paid nor issued.
const StatusUnknown = "unknown"

type PaymentStatus struct {
	Bolt11      string          `json:"bolt11"`
	Direction   Direction       `json:"direction,omitempty"`
	Status      string          `json:"status"`
	PaymentHash string          `json:"payment_hash,omitempty"`
	AmountMsat  money.MilliSats `json:"amount_msat,omitempty"`
}

type Payments struct {
	lightning lightning.Client
	params    *chaincfg.Params
	newLabel  func() string
}

func NewPayments(client lightning.Client, network lightning.Network) (*Payments, error) {
	params := lightning.ToChainCfgNetwork(network)
	if params == nil {
		return nil, fmt.Errorf("unsupported network: %q", network)
	}

	return &Payments{
		lightning: client,
		params:    params,
		newLabel: func() string {
			return labelPrefix + uuid.NewString()
		},
	}, nil
}

// CreateInvoice asks the daemon for an invoice of amount sats. Every invoice
// gets a fresh label since the daemon rejects duplicates.
func (p *Payments) CreateInvoice(ctx context.Context, amount money.Money, message string) (*lightning.Invoice, error) {
	if amount == 0 || amount > money.MaxMoney {
		return nil, fmt.Errorf("%w: %d sats", ErrInvalidAmount, amount)
	}

	label := p.newLabel()
	invoice, err := p.lightning.CreateInvoice(ctx, amount.ToMilliSats(), label, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	log.WithField("label", label).Infof("created invoice for %d sats", amount)

	return invoice, nil
}

// Pay pays bolt11. An invoice for another network, a daemon rejection and a
// payment that ended failed all come back as a PaymentFailed outcome. The
// error is reserved for a canceled context.
func (p *Payments) Pay(ctx context.Context, bolt11 string) (*PaymentOutcome, error) {
	bolt11 = strings.TrimSpace(bolt11)
	logger := log.WithField("bolt11", bolt11)

	if _, err := zpay32.Decode(bolt11, p.params); err != nil {
		logger.WithError(err).Warn("refusing to pay invalid invoice")

		return &PaymentOutcome{Result: PaymentFailed, Reason: fmt.Sprintf("invalid invoice: %v", err)}, nil
	}

	payment, err := p.lightning.Pay(ctx, bolt11)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.WithError(err).Warn("payment failed")

		return &PaymentOutcome{Result: PaymentFailed, Reason: DaemonMessage(err)}, nil
	}

	if strings.EqualFold(payment.Status, "failed") {
		reason := payment.FailureReason
		if reason == "" {
			reason = "payment failed"
		}

		return &PaymentOutcome{Result: PaymentFailed, Payment: payment, Reason: reason}, nil
	}

	logger.WithField("payment_hash", payment.PaymentHash).Info("invoice paid")

	return &PaymentOutcome{Result: PaymentSucceeded, Payment: payment}, nil
}

// Status looks bolt11 up on every call, first among outgoing payments and
// then among the node's own invoices.
func (p *Payments) Status(ctx context.Context, bolt11 string) (*PaymentStatus, error) {
	bolt11 = strings.TrimSpace(bolt11)

	pays, err := p.lightning.ListPays(ctx, bolt11)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	if pay, ok := latestPay(pays, bolt11); ok {
		return &PaymentStatus{
			Bolt11:      bolt11,
			Direction:   Outgoing,
			Status:      pay.Status,
			PaymentHash: pay.PaymentHash,
			AmountMsat:  pay.AmountMsat,
		}, nil
	}

	invoices, err := p.lightning.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	for _, inv := range invoices {
		if inv.Bolt11 == bolt11 {
			return &PaymentStatus{
				Bolt11:      bolt11,
				Direction:   Incoming,
				Status:      inv.Status,
				PaymentHash: inv.PaymentHash,
				AmountMsat:  inv.AmountMsat,
			}, nil
		}
	}

	return &PaymentStatus{Bolt11: bolt11, Status: StatusUnknown}, nil
}

// latestPay picks the completed attempt if there is one, else the last.
func latestPay(pays []lightning.Payment, bolt11 string) (lightning.Payment, bool) {
	var found *lightning.Payment
	for i := range pays {
		if pays[i].Bolt11 != "" && pays[i].Bolt11 != bolt11 {
			continue
		}
		if strings.EqualFold(pays[i].Status, "complete") {
			return pays[i], true
		}
		found = &pays[i]
	}
	if found == nil {
		return lightning.Payment{}, false
	}

	return *found, true
}

func (p *Payments) Decode(ctx context.Context, bolt11 string) (*lightning.DecodedInvoice, error) {
	decoded, err := p.lightning.DecodePay(ctx, strings.TrimSpace(bolt11))
	if err != nil {
		return nil, fmt.Errorf("failed to decode invoice: %w", err)
	}

	return decoded, nil
}

// ListPaid returns the node's invoices that have been paid.
func (p *Payments) ListPaid(ctx context.Context) ([]lightning.Invoice, error) {
	invoices, err := p.lightning.ListInvoices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	paid := make([]lightning.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if strings.EqualFold(inv.Status, lightning.InvoiceStatusPaid) {
			paid = append(paid, inv)
		}
	}

	return paid, nil
}
