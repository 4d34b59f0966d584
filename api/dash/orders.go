package dash

import (
	"fmt"
	"sort"

	"SellerPulse/api/recon"
)

type statusCounts struct {
	byStatus map[recon.Status]int
	total    int
}

func countStatuses(orders []recon.OrderEntry) statusCounts {
	c := statusCounts{byStatus: make(map[recon.Status]int), total: len(orders)}
	for _, o := range orders {
		c.byStatus[recon.ClassifyStatus(o.Status)]++
	}
	return c
}

// ratePercent renders count/total as a one-decimal percentage, "0.0%" when
// the denominator is zero.
func ratePercent(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// CalculateOrdersDashboard builds the operational view from filtered order
// lines: status mix, geographic spread and SKU volume. previous, when non-nil,
// is the equal-length window before the active date range and drives the
// trend arrows on the volume KPIs.
func CalculateOrdersDashboard(orders, previous []recon.OrderEntry) *OrdersDashboard {
	if len(orders) == 0 {
		return &OrdersDashboard{HasData: false}
	}

	counts := countStatuses(orders)
	skuCounts := make(map[string]int)
	stateCounts := make(map[string]int)
	for _, o := range orders {
		if o.SKU != "" && o.SKU != "Unknown" {
			skuCounts[o.SKU]++
		}
		if o.State != "" && o.State != "Unknown" {
			stateCounts[o.State]++
		}
	}

	var prev *statusCounts
	if previous != nil {
		p := countStatuses(previous)
		prev = &p
	}
	trend := func(st recon.Status) *Trend {
		if prev == nil {
			return nil
		}
		return CalculateTrend(float64(counts.byStatus[st]), float64(prev.byStatus[st]))
	}
	var totalTrend *Trend
	if prev != nil {
		totalTrend = CalculateTrend(float64(counts.total), float64(prev.total))
	}

	overview := []KPI{
		{Title: "Total Orders", Value: counts.total, Icon: "total", Trend: totalTrend},
		{Title: "Delivered", Value: counts.byStatus[recon.StatusDelivered], Icon: "delivered", Trend: trend(recon.StatusDelivered)},
		{Title: "Delivered %", Value: ratePercent(counts.byStatus[recon.StatusDelivered], counts.total), Icon: "delivered"},
		{Title: "RTO", Value: counts.byStatus[recon.StatusRTO], Icon: "rto", Trend: trend(recon.StatusRTO)},
		{Title: "RTO %", Value: ratePercent(counts.byStatus[recon.StatusRTO], counts.total), Icon: "rto"},
		{Title: "Returns", Value: counts.byStatus[recon.StatusReturn], Icon: "returns", Trend: trend(recon.StatusReturn)},
		{Title: "Return %", Value: ratePercent(counts.byStatus[recon.StatusReturn], counts.total), Icon: "returns"},
		{Title: "Cancelled", Value: counts.byStatus[recon.StatusCancelled], Icon: "cancelled", Trend: trend(recon.StatusCancelled)},
		{Title: "Cancelled %", Value: ratePercent(counts.byStatus[recon.StatusCancelled], counts.total), Icon: "cancelled"},
		{Title: "Shipped", Value: counts.byStatus[recon.StatusShipped], Icon: "shipped", Trend: trend(recon.StatusShipped)},
		{Title: "Exchanged", Value: counts.byStatus[recon.StatusExchanged], Icon: "exchanged", Trend: trend(recon.StatusExchanged)},
	}

	distribution := make(map[string]int, len(counts.byStatus))
	for st, n := range counts.byStatus {
		if n > 0 {
			distribution[st.String()] = n
		}
	}

	states := make([]StateCount, 0, len(stateCounts))
	for state, n := range stateCounts {
		states = append(states, StateCount{State: state, Count: n})
	}
	sort.Slice(states, func(i, j int) bool {
		if states[i].Count != states[j].Count {
			return states[i].Count > states[j].Count
		}
		return states[i].State < states[j].State
	})
	if len(states) > 10 {
		states = states[:10]
	}

	return &OrdersDashboard{
		HasData:                 true,
		OrderOverview:           overview,
		OrderStatusDistribution: topN(distribution, len(distribution)),
		StateDistribution:       states,
		TopSkus:                 topN(skuCounts, 10),
	}
}
