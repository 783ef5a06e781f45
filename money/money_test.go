package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewFromBtc(t *testing.T) {
	type args struct {
		amount decimal.Decimal
	}
	tests := []struct {
		name    string
		args    args
		want    Money
		wantErr error
	}{
		{
			name: "NewFromBtc - Pass",
			args: args{
				amount: decimal.NewFromInt(1),
			},
			want: 100000000,
		},
		{
			name: "NewFromBtc - Smallest unit",
			args: args{
				amount: decimal.RequireFromString("0.00000001"),
			},
			want: 1,
		},
		{
			name: "NewFromBtc - Fail Negative Amount",
			args: args{
				amount: decimal.NewFromInt(-1),
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name: "NewFromBtc - Fail Sub Satoshi",
			args: args{
				amount: decimal.RequireFromString("0.000000015"),
			},
			wantErr: ErrSubSatoshi,
		},
		{
			name: "NewFromBtc - Fail Above Supply",
			args: args{
				amount: decimal.NewFromInt(21_000_001),
			},
			wantErr: ErrAmountTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFromBtc(tt.args.amount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewFromSats(t *testing.T) {
	_, err := NewFromSats(-5)
	require.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewFromSats(int64(MaxMoney) + 1)
	require.ErrorIs(t, err, ErrAmountTooLarge)

	got, err := NewFromSats(5)
	require.NoError(t, err)
	require.Equal(t, Money(5), got)
}

func TestMoney_ToBtc(t *testing.T) {
	tests := []struct {
		name string
		m    Money
		want decimal.Decimal
	}{
		{
			name: "To BTC - Pass",
			m:    100000000,
			want: decimal.NewFromInt(1),
		},
		{
			name: "To BTC - One sat",
			m:    1,
			want: decimal.RequireFromString("0.00000001"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.ToBtc(); got.Cmp(tt.want) != 0 {
				t.Errorf("Money.ToBtc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMilliSatConversions(t *testing.T) {
	require.Equal(t, MilliSats(5000), Money(5).ToMilliSats())
	require.Equal(t, MilliSats(0), Money(0).ToMilliSats())

	require.Equal(t, Money(1), MilliSats(1999).ToSats())
	require.Equal(t, Money(0), MilliSats(999).ToSats())
	require.Equal(t, Money(2), MilliSats(2000).ToSats())
	require.Equal(t, MaxMoney, MaxMoney.ToMilliSats().ToSats())
}

func TestSumMilliSats(t *testing.T) {
	// 1500 + 1500 msat is 3 sat when summed first, 2 sat when each is
	// truncated before adding.
	total := SumMilliSats(1500, 1500)
	require.Equal(t, Money(3), total.ToSats())
	require.Equal(t, Money(2), MilliSats(1500).ToSats()+MilliSats(1500).ToSats())

	require.Equal(t, MilliSats(0), SumMilliSats())
}
