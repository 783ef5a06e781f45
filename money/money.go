package money

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/lnwire"
	"github.com/shopspring/decimal"
)

// Money is a type that represents a monetary amount in satoshis for Bitcoin.
type Money uint64

// MilliSats is the Lightning daemon's native accounting unit. 1000 msat is one
// satoshi.
type MilliSats uint64

// MaxMoney is the largest amount accepted by the converters: the full 21M BTC
// supply. Keeping amounts below it guarantees the msat representation fits in
// a uint64.
const MaxMoney Money = 21_000_000 * btcutil.SatoshiPerBitcoin

const msatPerSat = 1000

var (
	// ErrNegativeAmount is returned when trying to create a Money with a negative amount.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrAmountTooLarge is returned for amounts above MaxMoney.
	ErrAmountTooLarge = errors.New("amount exceeds the bitcoin supply")

	// ErrSubSatoshi is returned when a BTC amount carries more than 8 decimals.
	ErrSubSatoshi = errors.New("amount has sub-satoshi precision")
)

var satsPerBtc = decimal.NewFromInt(btcutil.SatoshiPerBitcoin)

func NewFromBtc(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return 0, ErrNegativeAmount
	}

	sats := amount.Mul(satsPerBtc)
	if !sats.Equal(sats.Truncate(0)) {
		return 0, ErrSubSatoshi
	}

	if sats.GreaterThan(decimal.NewFromUint64(uint64(MaxMoney))) {
		return 0, ErrAmountTooLarge
	}

	return Money(sats.IntPart()), nil // nolint:gosec
}

// NewFromSats validates a signed satoshi amount coming from user input.
func NewFromSats(sats int64) (Money, error) {
	if sats < 0 {
		return 0, ErrNegativeAmount
	}
	if Money(sats) > MaxMoney {
		return 0, ErrAmountTooLarge
	}

	return Money(sats), nil
}

func (m Money) ToBtc() decimal.Decimal {
	return decimal.NewFromUint64(uint64(m)).Div(satsPerBtc)
}

// ToMilliSats converts whole satoshis into msat. It is exact.
func (m Money) ToMilliSats() MilliSats {
	return MilliSats(lnwire.NewMSatFromSatoshis(m.Amount()))
}

// Amount returns the btcutil representation used by the bitcoind client.
func (m Money) Amount() btcutil.Amount {
	return btcutil.Amount(m) // nolint:gosec
}

// ToSats truncates to whole satoshis (floor division by 1000).
func (m MilliSats) ToSats() Money {
	return Money(lnwire.MilliSatoshi(m).ToSatoshis())
}

// SumMilliSats adds amounts in msat. Callers round the total afterwards so
// sub-satoshi remainders are not lost per item.
func SumMilliSats(amounts ...MilliSats) MilliSats {
	var total MilliSats
	for _, a := range amounts {
		total += a
	}

	return total
}
