package wallet

import (
	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
)

// PeerSummary is the liquidity view of one peer across all of its channels.
type PeerSummary struct {
	PeerID        string      `json:"peer_id"`
	Connected     bool        `json:"connected"`
	SatsTotal     money.Money `json:"sats_total"`
	CanSend       money.Money `json:"can_send"`
	CanReceive    money.Money `json:"can_receive"`
	ChannelStates []string    `json:"channel_states"`
}

// SummarizePeers folds every peer's channels into a PeerSummary. Amounts are
// summed in msat and only the totals are floored to sats, so fractions of a
// satoshi spread over several channels are not lost. The result keeps the
// input order.
func SummarizePeers(peers []lightning.Peer) []PeerSummary {
	summaries := make([]PeerSummary, 0, len(peers))
	for _, peer := range peers {
		var total, toUs, fulfilled money.MilliSats
		states := make([]string, 0, len(peer.Channels))
		for _, ch := range peer.Channels {
			total = money.SumMilliSats(total, ch.TotalMsat)
			toUs = money.SumMilliSats(toUs, ch.ToUsMsat)
			fulfilled = money.SumMilliSats(fulfilled, ch.OutFulfilledMsat)
			states = append(states, ch.State)
		}

		summaries = append(summaries, PeerSummary{
			PeerID:        peer.ID,
			Connected:     peer.Connected,
			SatsTotal:     total.ToSats(),
			CanSend:       toUs.ToSats(),
			CanReceive:    fulfilled.ToSats(),
			ChannelStates: states,
		})
	}

	return summaries
}
