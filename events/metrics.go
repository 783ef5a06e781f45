package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "walletconsole_payment_events_total",
		Help: "Payment events published by the bridge, labeled by kind",
	}, []string{"kind"})

	pollFaultsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "walletconsole_invoice_poll_faults_total",
		Help: "Failed waits on the Lightning daemon for paid invoices",
	})

	subscribersGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "walletconsole_payment_event_subscribers",
		Help: "Live payment event subscriptions",
	})

	payIndexGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "walletconsole_invoice_pay_index",
		Help: "Pay index of the last delivered invoice",
	})
)
