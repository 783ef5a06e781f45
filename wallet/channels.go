package wallet

import (
	"context"
	"fmt"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	log "github.com/sirupsen/logrus"
)

type FundingStatus string

const (
	FundingSucceeded FundingStatus = "succeeded"
	FundingFailed    FundingStatus = "failed"
)

// FundingOutcome is the result of an open channel request, including what
// the connectivity check did before funding was attempted.
type FundingOutcome struct {
	Status     FundingStatus     `json:"status"`
	TxID       string            `json:"txid,omitempty"`
	ChannelID  string            `json:"channel_id,omitempty"`
	Reason     string            `json:"reason,omitempty"`
	Connection ConnectionOutcome `json:"connection"`
}

type Channels struct {
	lightning    lightning.Client
	connectivity *Connectivity
}

func NewChannels(client lightning.Client, connectivity *Connectivity) *Channels {
	return &Channels{
		lightning:    client,
		connectivity: connectivity,
	}
}

// OpenChannel funds a channel with nodeID. A failed bootstrap connection is
// recorded in the outcome but funding is still attempted, the node may reach
// the peer some other way. Only invalid input and context cancellation are
// returned as errors.
func (c *Channels) OpenChannel(ctx context.Context, nodeID string, amount money.Money) (*FundingOutcome, error) {
	if _, err := lightning.ParsePubKey(nodeID); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNodeID, err)
	}
	if amount == 0 || amount > money.MaxMoney {
		return nil, fmt.Errorf("%w: %d sats", ErrInvalidAmount, amount)
	}

	logger := log.WithField("peer", nodeID)

	outcome := &FundingOutcome{
		Connection: c.connectivity.EnsureConnected(ctx),
	}
	if outcome.Connection.Failed() {
		logger.WithField("reason", outcome.Connection.Reason).Warn("connectivity check failed, funding anyway")
	}

	tx, err := c.lightning.FundChannel(ctx, nodeID, amount)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.WithError(err).Warn("channel funding failed")
		outcome.Status = FundingFailed
		outcome.Reason = DaemonMessage(err)

		return outcome, nil
	}

	logger.WithField("txid", tx.TxID).Infof("funded %d sats channel", amount)
	outcome.Status = FundingSucceeded
	outcome.TxID = tx.TxID
	outcome.ChannelID = tx.ChannelID

	return outcome, nil
}

// CloseChannel asks the daemon to close the channel with peerID. The daemon
// validates that such a channel exists.
func (c *Channels) CloseChannel(ctx context.Context, peerID string) (*lightning.ClosingTx, error) {
	tx, err := c.lightning.CloseChannel(ctx, peerID)
	if err != nil {
		return nil, fmt.Errorf("failed to close channel: %w", err)
	}
	log.WithField("peer", peerID).WithField("txid", tx.TxID).Info("channel closing")

	return tx, nil
}
