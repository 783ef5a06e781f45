package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/40acres/walletconsole/bitcoin"
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/40acres/walletconsole/wallet"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "bad body", err: fmt.Errorf("%w: unexpected EOF", errBadRequest), want: http.StatusBadRequest},
		{name: "amount", err: fmt.Errorf("%w: zero", wallet.ErrInvalidAmount), want: http.StatusBadRequest},
		{name: "sub satoshi", err: money.ErrSubSatoshi, want: http.StatusBadRequest},
		{name: "address from the bitcoind client", err: fmt.Errorf("sendmany: %w", bitcoin.ErrInvalidAddress), want: http.StatusBadRequest},
		{name: "node address", err: lightning.ErrInvalidNodeAddress, want: http.StatusBadRequest},
		{name: "deadline", err: fmt.Errorf("pay: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "canceled", err: context.Canceled, want: http.StatusServiceUnavailable},
		{name: "daemon", err: &lightning.RPCError{Code: -1, Message: "boom"}, want: http.StatusBadGateway},
		{name: "anything else", err: errors.New("connection refused"), want: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
