package dash

import (
	"github.com/shopspring/decimal"

	"SellerPulse/api/recon"
)

// CalculateSkuDrilldown aggregates every record for one SKU across the full
// dataset, ignoring filters. Volume and return counts come from the orders
// file; money comes from the settlement file, so without payments data the
// result is flagged insufficient instead of showing misleading zeros.
func CalculateSkuDrilldown(sku string, all *recon.FileDataSet, prices *recon.SkuPrices) *SkuDrilldown {
	d := &SkuDrilldown{
		SKU:             sku,
		TotalSettlement: decimal.Zero,
		NetProfit:       decimal.Zero,
	}
	if all == nil || sku == "" || len(all.Payments) == 0 {
		return d
	}

	settlement := decimal.Zero
	claim := decimal.Zero
	returnCost := decimal.Zero
	for _, p := range all.Payments {
		if p.SKU != sku {
			continue
		}
		claim = claim.Add(p.ClaimAmount)
		returnCost = returnCost.Add(p.ReturnCost)
		if recon.ClassifyStatus(p.Status) == recon.StatusDelivered {
			d.TotalDelivered++
			settlement = settlement.Add(p.FinalPayment)
		}
	}
	for _, o := range all.Orders {
		if o.SKU != sku {
			continue
		}
		d.TotalSold++
		switch recon.ClassifyStatus(o.Status) {
		case recon.StatusReturn:
			d.TotalReturns++
		case recon.StatusRTO:
			d.TotalRTO++
		}
	}

	delivered := decimal.NewFromInt(int64(d.TotalDelivered))
	cogs := prices.Cost(sku).Add(prices.PackagingCost(sku)).Mul(delivered)

	d.TotalSettlement = settlement
	d.NetProfit = settlement.Sub(cogs).Sub(returnCost).Add(claim)
	d.DataSufficient = true
	return d
}
