package wallet

import (
	"errors"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/btcsuite/btcd/btcjson"
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrInvalidNodeID  = errors.New("invalid node id")
	ErrInvalidAddress = bitcoin.ErrInvalidAddress
	ErrEmptyPayout    = errors.New("payout has no outputs")
)

// DaemonMessage returns the message a daemon attached to err, untouched, so
// it can be shown to the operator as is. Errors that did not come from a
// daemon fall back to err.Error().
func DaemonMessage(err error) string {
	if err == nil {
		return ""
	}

	var btcErr *btcjson.RPCError
	if errors.As(err, &btcErr) {
		return btcErr.Message
	}

	var lnErr *lightning.RPCError
	if errors.As(err, &lnErr) {
		return lnErr.Message
	}

	return err.Error()
}
