// Package metrics exposes Prometheus instruments for the wager pipeline.
// All collectors are registered on the default registry via promauto and
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BetsPlaced counts accepted wagers.
	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_bets_placed_total",
		Help: "Total number of bets accepted.",
	})

	// BetsSettled counts settled wagers, partitioned by terminal status.
	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "casino_bets_settled_total",
		Help: "Total number of bets settled, by result.",
	}, []string{"result"})

	// AmountWagered accumulates stake volume in house currency.
	AmountWagered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_amount_wagered_total",
		Help: "Total stake volume accepted, in house currency.",
	})

	// AmountPaidOut accumulates credits returned to players at settlement.
	AmountPaidOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "casino_amount_paid_out_total",
		Help: "Total amount credited back to players, in house currency.",
	})

	// PendingBets is the count of stale unsettled bets, set by the
	// liability sweep.
	PendingBets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "casino_pending_bets",
		Help: "Number of bets pending longer than the liability threshold.",
	})

	// PendingLiability is the total stake held in stale unsettled bets.
	PendingLiability = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "casino_pending_liability",
		Help: "Total stake locked in stale pending bets, in house currency.",
	})
)
