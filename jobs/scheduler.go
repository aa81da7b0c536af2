package jobs

import (
	"context"
	"log"
	"time"

	"coinboard/providers/coinbase"
	"coinboard/store"
)

// StartSchedulers runs the periodic maintenance loops: the daily boost
// counter reset and the stale-pending sweep. The sweep only reads from
// the gateway and logs; status changes still flow exclusively through
// webhook reconciliation.
func StartSchedulers(ledger *store.Ledger, gateway *coinbase.Client) {
	tickerReset := time.NewTicker(24 * time.Hour)
	go func() {
		for {
			<-tickerReset.C
			n, err := ledger.ResetDailyBoosts(context.Background())
			if err != nil {
				log.Printf("❌ failed to reset daily boosts: %v", err)
				continue
			}
			log.Printf("✅ reset daily boosts on %d coins", n)
		}
	}()

	tickerSweep := time.NewTicker(30 * time.Minute)
	go func() {
		for {
			<-tickerSweep.C
			sweepStalePending(ledger, gateway)
		}
	}()
}

func sweepStalePending(ledger *store.Ledger, gateway *coinbase.Client) {
	ctx := context.Background()

	trxs, err := ledger.StalePendingTransactions(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		log.Printf("❌ failed to list stale pending transactions: %v", err)
		return
	}

	for _, trx := range trxs {
		if trx.ChargeID == "" {
			log.Printf("⚠️ stale pending transaction %s has no charge attached", trx.TransactionID)
			continue
		}
		charge, err := gateway.GetCharge(ctx, trx.ChargeID)
		if err != nil {
			log.Printf("❌ failed to query charge %s for stale transaction %s: %v", trx.ChargeID, trx.TransactionID, err)
			continue
		}
		latest := "UNKNOWN"
		if n := len(charge.Timeline); n > 0 {
			latest = charge.Timeline[n-1].Status
		}
		log.Printf("⚠️ transaction %s pending since %s, gateway reports %s", trx.TransactionID, trx.CreatedAt.Format(time.RFC3339), latest)
	}
}
