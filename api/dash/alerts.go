package dash

import (
	"fmt"
	"sort"

	"SellerPulse/api/recon"
	"SellerPulse/internal/config"
)

type skuSignals struct {
	orders       int
	returns      int
	unprofitable bool
}

// GenerateSmartAlerts scans the full unfiltered dataset for SKUs with a high
// return rate or an apparently unprofitable cost structure. It deliberately
// ignores the active filters; a problem SKU should surface no matter what
// slice the seller is looking at. Order volume comes from the orders file and
// return counts from the returns file; the settlement file only feeds the
// profitability check.
func GenerateSmartAlerts(all *recon.FileDataSet, prices *recon.SkuPrices) []SmartAlert {
	if all == nil || len(all.Orders) == 0 {
		return nil
	}

	signals := make(map[string]*skuSignals)
	get := func(sku string) *skuSignals {
		s, ok := signals[sku]
		if !ok {
			s = &skuSignals{}
			signals[sku] = s
		}
		return s
	}

	for _, o := range all.Orders {
		if o.SKU == "" {
			continue
		}
		get(o.SKU).orders++
	}
	for _, r := range all.Returns {
		if r.SKU == "" {
			continue
		}
		get(r.SKU).returns++
	}
	for _, p := range all.Payments {
		if p.SKU == "" {
			continue
		}
		// Per-row screen: a single settlement row that cannot cover its
		// product cost plus return cost marks the SKU. The formula leaves
		// packaging and marketing out; it is a coarse screen, not the
		// netProfit formula.
		cost := prices.Cost(p.SKU)
		if !cost.IsPositive() {
			continue
		}
		if p.FinalPayment.Add(p.ClaimAmount).LessThan(cost.Add(p.ReturnCost)) {
			get(p.SKU).unprofitable = true
		}
	}

	skus := make([]string, 0, len(signals))
	for sku := range signals {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var alerts []SmartAlert
	for _, sku := range skus {
		s := signals[sku]

		flagged := false
		if s.orders >= config.ReturnRateAlertMinOrders {
			rate := float64(s.returns) / float64(s.orders)
			if rate >= config.ReturnRateAlertThreshold {
				flagged = true
				alerts = append(alerts, SmartAlert{
					ID:    "high_return_rate:" + sku,
					Level: "warning",
					SKU:   sku,
					Message: fmt.Sprintf("%s has a %.0f%% return rate across %d orders.",
						sku, rate*100, s.orders),
				})
			}
		}
		// One alert per SKU; a high return rate already explains the losses.
		if flagged {
			continue
		}

		if s.unprofitable {
			alerts = append(alerts, SmartAlert{
				ID:      "unprofitable:" + sku,
				Level:   "warning",
				SKU:     sku,
				Message: fmt.Sprintf("%s appears to be unprofitable.", sku),
			})
		}
	}
	return alerts
}
