package dash

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"SellerPulse/api/constants"
	"SellerPulse/api/recon"
)

// financialTotals is one pass over a payment set. Keeping it separate lets
// the previous-period trend reuse the exact same arithmetic.
type financialTotals struct {
	settlement   decimal.Decimal
	claim        decimal.Decimal
	recovery     decimal.Decimal
	tds          decimal.Decimal
	tcs          decimal.Decimal
	returnCost   decimal.Decimal
	invoice      decimal.Decimal
	gst          decimal.Decimal
	productCost  decimal.Decimal
	packaging    decimal.Decimal
	marketing    decimal.Decimal
	cogs         decimal.Decimal
	grossProfit  decimal.Decimal
	claimAndRec  decimal.Decimal
	netProfit    decimal.Decimal
	netProfitNet decimal.Decimal // net of GST

	delivered int
	rto       int
	returns   int
}

func computeFinancials(payments []recon.PaymentEntry, prices *recon.SkuPrices, adsCost decimal.Decimal) financialTotals {
	t := financialTotals{
		settlement: decimal.Zero, claim: decimal.Zero, recovery: decimal.Zero,
		tds: decimal.Zero, tcs: decimal.Zero, returnCost: decimal.Zero,
		invoice: decimal.Zero, gst: decimal.Zero,
		productCost: decimal.Zero, packaging: decimal.Zero,
	}
	hundred := decimal.NewFromInt(100)
	for _, p := range payments {
		t.settlement = t.settlement.Add(p.FinalPayment)
		t.claim = t.claim.Add(p.ClaimAmount)
		t.recovery = t.recovery.Add(p.Recovery)
		t.tds = t.tds.Add(p.TDS)
		t.tcs = t.tcs.Add(p.TCS)
		t.returnCost = t.returnCost.Add(p.ReturnCost)
		t.invoice = t.invoice.Add(p.InvoicePrice)
		if p.GSTRate != 0 {
			t.gst = t.gst.Add(p.FinalPayment.Mul(decimal.NewFromFloat(p.GSTRate)).Div(hundred))
		}

		switch recon.ClassifyStatus(p.Status) {
		case recon.StatusDelivered:
			t.delivered++
			// Cost is attributed to delivered orders only; undelivered stock
			// comes back to the seller.
			t.productCost = t.productCost.Add(prices.Cost(p.SKU))
			t.packaging = t.packaging.Add(prices.PackagingCost(p.SKU))
		case recon.StatusRTO:
			t.rto++
		case recon.StatusReturn:
			t.returns++
		}
	}

	external := decimal.Zero
	if prices != nil {
		external = prices.ExternalMarketingCost
	}
	t.marketing = adsCost.Add(external)
	t.cogs = t.productCost.Add(t.packaging).Add(t.marketing)
	t.grossProfit = t.settlement.Sub(t.cogs)
	t.claimAndRec = t.claim.Add(t.recovery)
	t.netProfit = t.grossProfit.Sub(t.returnCost).Add(t.claimAndRec)
	t.netProfitNet = t.netProfit.Sub(t.gst)
	return t
}

// CalculatePaymentsDashboard builds the financial dashboard from filtered
// settlement records. The full dataset is still needed for the smart alerts,
// which correlate orders against returns. previous is the prior period's
// filtered payments when a trend comparison was requested, nil otherwise.
func CalculatePaymentsDashboard(payments []recon.PaymentEntry, prices *recon.SkuPrices, adsCost decimal.Decimal, all *recon.FileDataSet, previous []recon.PaymentEntry) *PaymentsDashboard {
	if len(payments) == 0 {
		return emptyPaymentsDashboard()
	}

	t := computeFinancials(payments, prices, adsCost)
	pricesEntered := prices.Entered()
	hundred := decimal.NewFromInt(100)

	grossMargin := decimal.Zero
	netMargin := decimal.Zero
	if t.settlement.IsPositive() {
		grossMargin = t.grossProfit.Mul(hundred).Div(t.settlement)
		netMargin = t.netProfit.Mul(hundred).Div(t.settlement)
	}
	perUnit := decimal.Zero
	perUnitNoGst := decimal.Zero
	if t.delivered > 0 {
		n := decimal.NewFromInt(int64(t.delivered))
		perUnit = t.netProfit.Div(n)
		perUnitNoGst = t.netProfitNet.Div(n)
	}

	profitTitle := "Net Profit"
	if t.netProfit.IsNegative() {
		profitTitle = "Net Loss"
	}
	var profitTrend *Trend
	if previous != nil {
		prev := computeFinancials(previous, prices, adsCost)
		profitTrend = CalculateTrend(t.netProfit.InexactFloat64(), prev.netProfit.InexactFloat64())
	}

	earnings := []KPI{
		{Title: "Settlement Amt", Value: formatCurrency(t.settlement), Icon: "settlement"},
		{Title: "Product Cost", Value: formatCurrency(t.productCost), Icon: "product_cost"},
		{Title: "Packaging Cost", Value: formatCurrency(t.packaging), Icon: "packaging_cost"},
		{Title: "Marketing Cost", Value: formatCurrency(t.marketing), Icon: "marketing_cost"},
		{Title: "Return Cost", Value: formatCurrency(t.returnCost), Icon: "return_cost"},
		{Title: "Claims & Recovery", Value: formatCurrency(t.claimAndRec), Icon: "claim"},
		{Title: profitTitle, Value: formatCurrency(t.netProfit), Icon: "profit", Trend: profitTrend},
	}

	overview := []KPI{
		{Title: "Total Transactions", Value: len(payments), Icon: "total"},
		{Title: "Delivered", Value: t.delivered, Icon: "delivered"},
		{Title: "Returns", Value: t.returns, Icon: "returns"},
		{Title: "RTO", Value: t.rto, Icon: "rto"},
	}

	level := "success"
	if t.netProfit.IsNegative() {
		level = "danger"
	}
	alerts := []Alert{{
		ID:          "net_profit",
		Level:       level,
		Icon:        "barchart",
		Title:       profitTitle,
		Value:       formatCurrency(t.netProfit),
		Description: "For the selected period and filters.",
	}}

	costDependent := func(s string) string {
		if !pricesEntered {
			return "N/A"
		}
		return s
	}
	economics := UnitEconomics{
		SettlementAmt:         formatAmount(t.settlement),
		ProductCost:           costDependent(formatAmount(t.productCost)),
		PackagingCost:         costDependent(formatAmount(t.packaging)),
		MarketingCost:         formatAmount(t.marketing),
		COGS:                  costDependent(formatAmount(t.cogs)),
		GrossProfit:           costDependent(formatAmount(t.grossProfit)),
		ReturnCost:            formatAmount(t.returnCost),
		NetProfit:             costDependent(formatAmount(t.netProfit)),
		GrossMargin:           costDependent(formatPercent(grossMargin)),
		NetMargin:             costDependent(formatPercent(netMargin)),
		NetProfitPerUnit:      costDependent(formatAmount(perUnit)),
		PricesEntered:         pricesEntered,
		InvoicePrice:          formatAmount(t.invoice),
		TotalGst:              formatAmount(t.gst),
		NetProfitWithoutGst:   costDependent(formatAmount(t.netProfitNet)),
		NetProfitPerUnitNoGst: costDependent(formatAmount(perUnitNoGst)),
		ClaimAmount:           formatAmount(t.claim),
		Recovery:              formatAmount(t.recovery),
		TDS:                   formatAmount(t.tds),
		TCS:                   formatAmount(t.tcs),
	}

	return &PaymentsDashboard{
		HasData:                true,
		OrderOverview:          overview,
		EarningsOverview:       earnings,
		UnitEconomics:          economics,
		DailyDeliveredVsReturn: dailyBreakdown(payments),
		DeliveredVsRtoPie: dropZeroBuckets([]NameValue{
			{Name: "Delivered", Value: t.delivered},
			{Name: "RTO", Value: t.rto},
			{Name: "Return", Value: t.returns},
		}),
		DeliveredVsReturnPie: dropZeroBuckets([]NameValue{
			{Name: "Delivered", Value: t.delivered},
			{Name: "Return", Value: t.returns + t.rto},
		}),
		TopDeliveredSkus:    topDeliveredSkus(payments),
		TopReturnedSkus:     topReturnedSkus(payments),
		SkuProfitData:       skuProfitData(payments, prices, true),
		SkuLossData:         skuProfitData(payments, prices, false),
		KeywordDistribution: keywordDistribution(payments),
		NetProfit:           t.netProfit,
		Alerts:              alerts,
		SmartAlerts:         GenerateSmartAlerts(all, prices),
	}
}

func emptyPaymentsDashboard() *PaymentsDashboard {
	zero := formatAmount(decimal.Zero)
	return &PaymentsDashboard{
		HasData:   false,
		NetProfit: decimal.Zero,
		UnitEconomics: UnitEconomics{
			SettlementAmt: zero, ProductCost: zero, PackagingCost: zero,
			MarketingCost: zero, COGS: zero, GrossProfit: zero,
			ReturnCost: zero, NetProfit: zero,
			GrossMargin: "0.00%", NetMargin: "0.00%", NetProfitPerUnit: zero,
			InvoicePrice: "N/A", TotalGst: "N/A",
			NetProfitWithoutGst: "N/A", NetProfitPerUnitNoGst: "N/A",
			ClaimAmount: zero, Recovery: zero, TDS: zero, TCS: zero,
		},
	}
}

func dropZeroBuckets(buckets []NameValue) []NameValue {
	out := buckets[:0]
	for _, b := range buckets {
		if b.Value > 0 {
			out = append(out, b)
		}
	}
	return out
}

func topDeliveredSkus(payments []recon.PaymentEntry) []NameValue {
	counts := make(map[string]int)
	for _, p := range payments {
		if p.SKU != "" && recon.ClassifyStatus(p.Status) == recon.StatusDelivered {
			counts[p.SKU]++
		}
	}
	return topN(counts, 10)
}

func topReturnedSkus(payments []recon.PaymentEntry) []NameValue {
	counts := make(map[string]int)
	for _, p := range payments {
		if p.SKU != "" && p.ReturnCost.IsPositive() {
			counts[p.SKU]++
		}
	}
	return topN(counts, 10)
}

// skuProfitData accumulates per-SKU profit across the filtered payments and
// returns either the profitable list (descending) or the loss list (worst
// first).
func skuProfitData(payments []recon.PaymentEntry, prices *recon.SkuPrices, profitable bool) []SkuProfitLoss {
	metrics := make(map[string]*skuMetrics)
	for _, p := range payments {
		if p.SKU == "" {
			continue
		}
		m, ok := metrics[p.SKU]
		if !ok {
			m = newSkuMetrics()
			metrics[p.SKU] = m
		}
		m.settlement = m.settlement.Add(p.FinalPayment)
		m.claim = m.claim.Add(p.ClaimAmount)
		m.returnCost = m.returnCost.Add(p.ReturnCost)
		m.orders++
		if recon.ClassifyStatus(p.Status) == recon.StatusDelivered {
			m.productCost = m.productCost.Add(prices.Cost(p.SKU))
			m.packagingCost = m.packagingCost.Add(prices.PackagingCost(p.SKU))
		}
	}

	var out []SkuProfitLoss
	for sku, m := range metrics {
		profit := m.settlement.Add(m.claim).Sub(m.returnCost).Sub(m.productCost.Add(m.packagingCost))
		if profitable && profit.IsPositive() {
			out = append(out, SkuProfitLoss{SKU: sku, Value: profit, Orders: m.orders})
		} else if !profitable && profit.IsNegative() {
			out = append(out, SkuProfitLoss{SKU: sku, Value: profit, Orders: m.orders})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		c := out[i].Value.Cmp(out[j].Value)
		if c != 0 {
			if profitable {
				return c > 0
			}
			return c < 0
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// keywordDistribution splits delivered SKU strings into name fragments and
// counts recurring tokens: short tokens and bare numbers carry no signal.
func keywordDistribution(payments []recon.PaymentEntry) []NameValue {
	counts := make(map[string]int)
	for _, p := range payments {
		if p.SKU == "" || recon.ClassifyStatus(p.Status) != recon.StatusDelivered {
			continue
		}
		tokens := strings.FieldsFunc(p.SKU, func(r rune) bool {
			return r == '-' || r == '_' || unicode.IsSpace(r)
		})
		for _, tok := range tokens {
			if len(tok) <= 2 || isNumericToken(tok) {
				continue
			}
			counts[strings.ToLower(tok)]++
		}
	}
	return topN(counts, 10)
}

func isNumericToken(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// dailyBreakdown groups payments by calendar day, counting delivered against
// returned/RTO, in chronological order.
func dailyBreakdown(payments []recon.PaymentEntry) []DailyPoint {
	type bucket struct {
		day       string
		delivered int
		returned  int
	}
	buckets := make(map[string]*bucket)
	for _, p := range payments {
		if p.OrderDate == nil {
			continue
		}
		key := p.OrderDate.Format(constants.DateFormat)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{day: key}
			buckets[key] = b
		}
		switch recon.ClassifyStatus(p.Status) {
		case recon.StatusDelivered:
			b.delivered++
		case recon.StatusReturn, recon.StatusRTO:
			b.returned++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]DailyPoint, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		// Key is the layout it was formatted with, so this cannot fail.
		day, _ := time.Parse(constants.DateFormat, k)
		out = append(out, DailyPoint{
			Name:      day.Format(constants.DayLabelFormat),
			Value:     b.delivered,
			Delivered: b.delivered,
			Return:    b.returned,
		})
	}
	return out
}
