package wallet

import (
	"testing"

	"github.com/40acres/walletconsole/lightning"
	"github.com/40acres/walletconsole/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizePeers(t *testing.T) {
	tests := []struct {
		name  string
		peers []lightning.Peer
		want  []PeerSummary
	}{
		{
			name:  "no peers",
			peers: nil,
			want:  []PeerSummary{},
		},
		{
			name:  "peer without channels",
			peers: []lightning.Peer{{ID: "a", Connected: true}},
			want:  []PeerSummary{{PeerID: "a", Connected: true, ChannelStates: []string{}}},
		},
		{
			name: "single channel",
			peers: []lightning.Peer{{ID: "a", Channels: []lightning.Channel{
				{TotalMsat: 100_000_999, ToUsMsat: 40_000_500, OutFulfilledMsat: 2_000, State: "CHANNELD_NORMAL"},
			}}},
			want: []PeerSummary{{
				PeerID:        "a",
				SatsTotal:     100_000,
				CanSend:       40_000,
				CanReceive:    2,
				ChannelStates: []string{"CHANNELD_NORMAL"},
			}},
		},
		{
			name: "sums before rounding",
			peers: []lightning.Peer{{ID: "a", Channels: []lightning.Channel{
				{TotalMsat: 1500, ToUsMsat: 1500, OutFulfilledMsat: 1500, State: "CHANNELD_NORMAL"},
				{TotalMsat: 1500, ToUsMsat: 1500, OutFulfilledMsat: 1500, State: "ONCHAIN"},
			}}},
			want: []PeerSummary{{
				PeerID:        "a",
				SatsTotal:     3,
				CanSend:       3,
				CanReceive:    3,
				ChannelStates: []string{"CHANNELD_NORMAL", "ONCHAIN"},
			}},
		},
		{
			name: "keeps peer order",
			peers: []lightning.Peer{
				{ID: "b", Channels: []lightning.Channel{{TotalMsat: 2000, State: "OPENINGD"}}},
				{ID: "a"},
			},
			want: []PeerSummary{
				{PeerID: "b", SatsTotal: 2, ChannelStates: []string{"OPENINGD"}},
				{PeerID: "a", ChannelStates: []string{}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizePeers(tt.peers)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummarizePeers_SumThenRoundDiffersFromRoundThenSum(t *testing.T) {
	channels := []lightning.Channel{{TotalMsat: 1500}, {TotalMsat: 1500}}

	var roundedFirst money.Money
	for _, ch := range channels {
		roundedFirst += ch.TotalMsat.ToSats()
	}

	got := SummarizePeers([]lightning.Peer{{ID: "a", Channels: channels}})
	require.Len(t, got, 1)
	assert.Equal(t, money.Money(3), got[0].SatsTotal)
	assert.Equal(t, money.Money(2), roundedFirst)
}

func TestSummarizePeers_Deterministic(t *testing.T) {
	peers := []lightning.Peer{
		{ID: "a", Channels: []lightning.Channel{{TotalMsat: 1234567, ToUsMsat: 999, State: "x"}}},
		{ID: "b", Channels: []lightning.Channel{{TotalMsat: 1, State: "y"}, {TotalMsat: 999, State: "z"}}},
	}

	assert.Equal(t, SummarizePeers(peers), SummarizePeers(peers))
}
