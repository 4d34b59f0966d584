package dash

import (
	"strings"

	"SellerPulse/api/recon"
)

// CalculateReturnsDashboard builds the return-reason view from filtered
// return lines. Blank and "Unknown" reasons are common in marketplace exports
// and are dropped rather than shown as a bucket, as is any "others" catch-all,
// since none of them is actionable.
func CalculateReturnsDashboard(returns []recon.ReturnEntry) *ReturnsDashboard {
	if len(returns) == 0 {
		return &ReturnsDashboard{HasData: false}
	}

	skuCounts := make(map[string]int)
	reasonCounts := make(map[string]int)
	for _, r := range returns {
		if r.SKU != "" {
			skuCounts[r.SKU]++
		}
		if actionableReason(r.ReturnReason) {
			reasonCounts[r.ReturnReason]++
		}
	}

	return &ReturnsDashboard{
		HasData:         true,
		TopReturnedSkus: topN(skuCounts, 5),
		ReturnReasons:   topN(reasonCounts, 5),
	}
}

func actionableReason(reason string) bool {
	if reason == "" {
		return false
	}
	lower := strings.ToLower(reason)
	return lower != "unknown" && !strings.Contains(lower, "others")
}
