package wallet

import (
	"context"
	"testing"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/btcsuite/btcd/btcjson"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	addrA       = "bcrt1qqyqszqgpqyqszqgpqyqszqgpqyqszqgpvxat9t"
	addrB       = "bcrt1qqgpqyqszqgpqyqszqgpqyqszqgpqyqszazmwwa"
	testnetAddr = "tb1qqszqgpqyqszqgpqyqszqgpqyqszqgpqy7ty85f"
)

func newTestPayouts(t *testing.T, btc bitcoin.Client) *Payouts {
	t.Helper()

	payouts, err := NewPayouts(btc, lightning.Regtest, Explorer("https://explorer.test/tx"))
	require.NoError(t, err)

	return payouts
}

func TestPayouts_Withdraw(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		outputs map[string]decimal.Decimal
		setup   func(btc *bitcoin.MockClient)
		want    *PayoutResult
		wantErr error
	}{
		{
			name: "one batch call",
			outputs: map[string]decimal.Decimal{
				addrA: decimal.NewFromInt(1),
				addrB: decimal.NewFromInt(2),
			},
			setup: func(btc *bitcoin.MockClient) {
				btc.EXPECT().SendMany(ctx, "", map[string]money.Money{
					addrA: 100_000_000,
					addrB: 200_000_000,
				}).Return("txid", nil).Times(1)
			},
			want: &PayoutResult{Status: PayoutSent, TxID: "txid", Explorer: "https://explorer.test/tx/txid"},
		},
		{
			name: "rejection is one opaque failure",
			outputs: map[string]decimal.Decimal{
				addrA: decimal.NewFromInt(1),
				addrB: decimal.NewFromInt(2),
			},
			setup: func(btc *bitcoin.MockClient) {
				btc.EXPECT().SendMany(ctx, "", gomock.Any()).
					Return("", &btcjson.RPCError{Code: btcjson.ErrRPCWalletInsufficientFunds, Message: "Insufficient funds"}).Times(1)
			},
			want: &PayoutResult{Status: PayoutFailed, Reason: "Insufficient funds"},
		},
		{
			name:    "empty",
			outputs: map[string]decimal.Decimal{},
			setup:   func(*bitcoin.MockClient) {},
			wantErr: ErrEmptyPayout,
		},
		{
			name:    "wrong network address",
			outputs: map[string]decimal.Decimal{testnetAddr: decimal.NewFromInt(1)},
			setup:   func(*bitcoin.MockClient) {},
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "negative amount",
			outputs: map[string]decimal.Decimal{addrA: decimal.NewFromInt(-1)},
			setup:   func(*bitcoin.MockClient) {},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "sub satoshi amount",
			outputs: map[string]decimal.Decimal{addrA: decimal.RequireFromString("0.000000001")},
			setup:   func(*bitcoin.MockClient) {},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "zero amount",
			outputs: map[string]decimal.Decimal{addrA: decimal.Zero},
			setup:   func(*bitcoin.MockClient) {},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			btc := bitcoin.NewMockClient(ctrl)
			tt.setup(btc)

			got, err := newTestPayouts(t, btc).Withdraw(ctx, tt.outputs)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPayouts_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		btc := bitcoin.NewMockClient(ctrl)
		btc.EXPECT().SendToAddress(ctx, addrA, money.Money(50_000)).Return("txid", nil)

		got, err := newTestPayouts(t, btc).Send(ctx, addrA, decimal.RequireFromString("0.0005"))
		require.NoError(t, err)
		assert.Equal(t, PayoutSent, got.Status)
		assert.Equal(t, "https://explorer.test/tx/txid", got.Explorer)
	})

	t.Run("daemon message kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		btc := bitcoin.NewMockClient(ctrl)
		btc.EXPECT().SendToAddress(ctx, addrA, gomock.Any()).Return("", &btcjson.RPCError{Code: -26, Message: "dust"})

		got, err := newTestPayouts(t, btc).Send(ctx, addrA, decimal.RequireFromString("0.00000001"))
		require.NoError(t, err)
		assert.True(t, got.Failed())
		assert.Equal(t, "dust", got.Reason)
	})
}
