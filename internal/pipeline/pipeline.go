package pipeline

import (
	"time"

	"SellerPulse/api/dash"
	"SellerPulse/api/recon"
)

// AnalysisResult is everything one analysis pass produces. Version echoes the
// dataset version the pass ran against so consumers can discard results that
// were computed before a newer upload landed.
type AnalysisResult struct {
	Context  *recon.FilterContext    `json:"filter_context,omitempty"`
	Payments *dash.PaymentsDashboard `json:"payments_dashboard"`
	Orders   *dash.OrdersDashboard   `json:"orders_dashboard"`
	Returns  *dash.ReturnsDashboard  `json:"returns_dashboard"`
	Version  uint64                  `json:"-"`
}

// RunFullAnalysis is the single analysis engine. Every caller, whether the
// synchronous upload path, the background file worker or the filter worker,
// goes through here so filtered numbers can never drift between entry points.
func RunFullAnalysis(ds *recon.FileDataSet, fc *recon.FilterContext, prices *recon.SkuPrices, filters recon.FilterState, rebuildContext bool) *AnalysisResult {
	if ds == nil {
		ds = &recon.FileDataSet{}
	}
	if fc == nil || rebuildContext {
		fc = recon.BuildFilterContext(ds)
	}

	filtered := recon.ApplyFilters(ds, fc, filters)

	var prevPayments []recon.PaymentEntry
	var prevOrders []recon.OrderEntry
	if filters.CalculateTrend {
		if prev, ok := previousPeriod(filters); ok {
			prevSet := recon.ApplyFilters(ds, fc, prev)
			// An empty previous window still anchors a trend; nil means
			// "no window", so keep these non-nil.
			prevPayments = prevSet.Payments
			if prevPayments == nil {
				prevPayments = []recon.PaymentEntry{}
			}
			prevOrders = prevSet.Orders
			if prevOrders == nil {
				prevOrders = []recon.OrderEntry{}
			}
		}
	}

	res := &AnalysisResult{
		Payments: dash.CalculatePaymentsDashboard(filtered.Payments, prices, ds.AdsCost, ds, prevPayments),
		Orders:   dash.CalculateOrdersDashboard(filtered.Orders, prevOrders),
		Returns:  dash.CalculateReturnsDashboard(filtered.Returns),
		Version:  ds.Version,
	}
	if rebuildContext {
		res.Context = fc
	}
	return res
}

// previousPeriod derives the window of equal length immediately before the
// active date range. Trends only make sense against a bounded range.
func previousPeriod(f recon.FilterState) (recon.FilterState, bool) {
	if f.DateStart == "" || f.DateEnd == "" {
		return recon.FilterState{}, false
	}
	start, err := time.Parse("2006-01-02", f.DateStart)
	if err != nil {
		return recon.FilterState{}, false
	}
	end, err := time.Parse("2006-01-02", f.DateEnd)
	if err != nil || end.Before(start) {
		return recon.FilterState{}, false
	}

	span := end.Sub(start) + 24*time.Hour
	prev := f
	prev.CalculateTrend = false
	prev.DateEnd = start.Add(-24 * time.Hour).Format("2006-01-02")
	prev.DateStart = start.Add(-span).Format("2006-01-02")
	return prev, true
}
