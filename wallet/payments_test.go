package wallet

import (
	"context"
	"testing"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/lightning/lightningtest"
	"github.com/40acres/walletconsole/money"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPayments(t *testing.T, ln lightning.Client) *Payments {
	t.Helper()

	payments, err := NewPayments(ln, lightning.Regtest)
	require.NoError(t, err)
	payments.newLabel = func() string { return "console-test" }

	return payments
}

func TestPayments_CreateInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("converts sats to msat", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().CreateInvoice(ctx, money.MilliSats(5000), "console-test", "m").
			Return(&lightning.Invoice{Bolt11: "lnbcrt50n1...", Label: "console-test"}, nil)

		invoice, err := newTestPayments(t, ln).CreateInvoice(ctx, 5, "m")
		require.NoError(t, err)
		assert.Equal(t, "lnbcrt50n1...", invoice.Bolt11)
	})

	t.Run("labels are unique", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		labels := map[string]bool{}
		ln.EXPECT().CreateInvoice(ctx, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ money.MilliSats, label, _ string) (*lightning.Invoice, error) {
				labels[label] = true

				return &lightning.Invoice{Label: label}, nil
			}).Times(3)

		payments, err := NewPayments(ln, lightning.Regtest)
		require.NoError(t, err)
		for range 3 {
			_, err := payments.CreateInvoice(ctx, 1, "")
			require.NoError(t, err)
		}
		assert.Len(t, labels, 3)
	})

	t.Run("zero amount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		_, err := newTestPayments(t, lightning.NewMockClient(ctrl)).CreateInvoice(ctx, 0, "m")
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestPayments_Pay(t *testing.T) {
	ctx := context.Background()
	bolt11 := lightningtest.CreateMockInvoice(t, 1000)

	tests := []struct {
		name   string
		bolt11 string
		setup  func(ln *lightning.MockClient)
		want   *PaymentOutcome
	}{
		{
			name:   "paid",
			bolt11: bolt11,
			setup: func(ln *lightning.MockClient) {
				ln.EXPECT().Pay(ctx, bolt11).Return(&lightning.Payment{PaymentHash: "h", Status: "complete"}, nil)
			},
			want: &PaymentOutcome{Result: PaymentSucceeded, Payment: &lightning.Payment{PaymentHash: "h", Status: "complete"}},
		},
		{
			name:   "daemon failure",
			bolt11: bolt11,
			setup: func(ln *lightning.MockClient) {
				ln.EXPECT().Pay(ctx, bolt11).Return(nil, &lightning.RPCError{Code: 210, Message: "Ran out of routes to try"})
			},
			want: &PaymentOutcome{Result: PaymentFailed, Reason: "Ran out of routes to try"},
		},
		{
			name:   "payment ended failed",
			bolt11: bolt11,
			setup: func(ln *lightning.MockClient) {
				ln.EXPECT().Pay(ctx, bolt11).Return(&lightning.Payment{Status: "failed", FailureReason: "invoice expired"}, nil)
			},
			want: &PaymentOutcome{
				Result:  PaymentFailed,
				Payment: &lightning.Payment{Status: "failed", FailureReason: "invoice expired"},
				Reason:  "invoice expired",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			ln := lightning.NewMockClient(ctrl)
			tt.setup(ln)

			got, err := newTestPayments(t, ln).Pay(ctx, tt.bolt11)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid invoice never reaches the daemon", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().Pay(gomock.Any(), gomock.Any()).Times(0)

		got, err := newTestPayments(t, ln).Pay(ctx, "lnbc-garbage")
		require.NoError(t, err)
		assert.True(t, got.Failed())
		assert.Contains(t, got.Reason, "invalid invoice")
	})

	t.Run("invoice for another network", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().Pay(gomock.Any(), gomock.Any()).Times(0)

		mainnet := lightningtest.CreateMockInvoice(t, 1000, lightningtest.WithNet(&chaincfg.MainNetParams))
		got, err := newTestPayments(t, ln).Pay(ctx, mainnet)
		require.NoError(t, err)
		assert.True(t, got.Failed())
	})

	t.Run("canceled context is an error", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().Pay(cctx, bolt11).DoAndReturn(func(context.Context, string) (*lightning.Payment, error) {
			cancel()

			return nil, context.Canceled
		})

		_, err := newTestPayments(t, ln).Pay(cctx, bolt11)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPayments_Status(t *testing.T) {
	ctx := context.Background()

	t.Run("outgoing payment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().ListPays(ctx, "bolt").Return([]lightning.Payment{
			{Bolt11: "bolt", Status: "failed"},
			{Bolt11: "bolt", Status: "complete", PaymentHash: "h", AmountMsat: 1000},
		}, nil)

		got, err := newTestPayments(t, ln).Status(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, &PaymentStatus{Bolt11: "bolt", Direction: Outgoing, Status: "complete", PaymentHash: "h", AmountMsat: 1000}, got)
	})

	t.Run("own invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().ListPays(ctx, "bolt").Return(nil, nil)
		ln.EXPECT().ListInvoices(ctx).Return([]lightning.Invoice{
			{Bolt11: "other", Status: "paid"},
			{Bolt11: "bolt", Status: "unpaid", PaymentHash: "h2"},
		}, nil)

		got, err := newTestPayments(t, ln).Status(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, Incoming, got.Direction)
		assert.Equal(t, "unpaid", got.Status)
	})

	t.Run("unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		ln.EXPECT().ListPays(ctx, "bolt").Return(nil, nil)
		ln.EXPECT().ListInvoices(ctx).Return(nil, nil)

		got, err := newTestPayments(t, ln).Status(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, StatusUnknown, got.Status)
	})

	t.Run("always re-queries", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		ln := lightning.NewMockClient(ctrl)
		first := ln.EXPECT().ListPays(ctx, "bolt").Return([]lightning.Payment{{Status: "pending"}}, nil)
		ln.EXPECT().ListPays(ctx, "bolt").Return([]lightning.Payment{{Status: "complete"}}, nil).After(first)

		payments := newTestPayments(t, ln)
		got, err := payments.Status(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, "pending", got.Status)

		got, err = payments.Status(ctx, "bolt")
		require.NoError(t, err)
		assert.Equal(t, "complete", got.Status)
	})
}

func TestPayments_ListPaid(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	ln := lightning.NewMockClient(ctrl)
	ln.EXPECT().ListInvoices(ctx).Return([]lightning.Invoice{
		{Label: "a", Status: "paid"},
		{Label: "b", Status: "unpaid"},
		{Label: "c", Status: "expired"},
		{Label: "d", Status: "PAID"},
	}, nil)

	got, err := newTestPayments(t, ln).ListPaid(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Label)
	assert.Equal(t, "d", got[1].Label)
}

func TestPayments_Decode(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	ln := lightning.NewMockClient(ctrl)
	ln.EXPECT().DecodePay(ctx, "bolt").Return(&lightning.DecodedInvoice{AmountMsat: 5000, Description: "m"}, nil)

	got, err := newTestPayments(t, ln).Decode(ctx, " bolt ")
	require.NoError(t, err)
	assert.Equal(t, money.MilliSats(5000), got.AmountMsat)
}
