// Package lightningtest holds fixtures shared by the Lightning tests: a fixed
// node key and signed regtest invoices.
package lightningtest

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/stretchr/testify/require"
)

var (
	PaymentHash = [32]byte{
		0xd7, 0x8a, 0x8b, 0xa8, 0xb6, 0x25, 0x10, 0x27,
		0xf3, 0x7f, 0xd6, 0xfe, 0xbf, 0xf0, 0x31, 0x5f,
		0x2d, 0x45, 0xbe, 0x83, 0x1b, 0xa3, 0x13, 0xfb,
		0x23, 0xc6, 0xe0, 0x3a, 0x2a, 0xbe, 0x3c, 0xa5,
	}

	privKeyBytes, _ = hex.DecodeString("e126f68f7eafcc8b74f54d269fe206be715000f94dac067d1c04a8ca3b2db734")

	PrivKey, _ = btcec.PrivKeyFromBytes(privKeyBytes)

	// NodeID is the node id matching PrivKey.
	NodeID = hex.EncodeToString(PrivKey.PubKey().SerializeCompressed())

	Description = "test description"
)

var signer = zpay32.MessageSigner{
	SignCompact: func(msg []byte) ([]byte, error) {
		return ecdsa.SignCompact(PrivKey, chainhash.HashB(msg), true)
	},
}

type InvoiceOption func(*zpay32.Invoice)

// WithNet overrides the chain the invoice is encoded for.
func WithNet(params *chaincfg.Params) InvoiceOption {
	return func(i *zpay32.Invoice) {
		i.Net = params
	}
}

// CreateMockInvoice returns a bolt11 for sats satoshis signed by PrivKey,
// encoded for regtest unless overridden. A negative amount produces an
// amountless invoice.
func CreateMockInvoice(t *testing.T, sats int64, opts ...InvoiceOption) string {
	t.Helper()

	invoice := zpay32.Invoice{
		Net:         &chaincfg.RegressionNetParams,
		PaymentHash: &PaymentHash,
		Description: &Description,
		Features:    lnwire.NewFeatureVector(nil, lnwire.Features),
		Timestamp:   time.Now(),
	}

	if sats >= 0 {
		amount := lnwire.NewMSatFromSatoshis(btcutil.Amount(sats))
		invoice.MilliSat = &amount
	}

	for _, opt := range opts {
		opt(&invoice)
	}

	s, err := invoice.Encode(signer)
	require.NoError(t, err, "encoding mock invoice")

	return s
}
