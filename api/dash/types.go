package dash

import (
	"github.com/shopspring/decimal"
)

// Display-ready view models. Each dashboard is recomputed wholesale from the
// filtered records on every filter or price change; nothing here is mutated
// incrementally.

// Trend is the delta against the previous period, attached to a KPI when the
// caller asked for a comparison.
type Trend struct {
	Change    int    `json:"change"`
	Direction string `json:"direction"` // "up", "down" or "neutral"
}

// KPI is one headline card. Value is either a formatted string or a count.
type KPI struct {
	Title string `json:"title"`
	Value any    `json:"value"`
	Icon  string `json:"icon"`
	Trend *Trend `json:"trend,omitempty"`
}

// NameValue is one bucket of a chart series.
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// StateCount is one bucket of the state distribution chart.
type StateCount struct {
	State string `json:"state"`
	Count int    `json:"count"`
}

// DailyPoint is one calendar day of the delivered-vs-returns series.
type DailyPoint struct {
	Name      string `json:"name"` // "02-Jan"
	Value     int    `json:"value"`
	Delivered int    `json:"delivered"`
	Return    int    `json:"return"`
}

// SkuProfitLoss ranks one SKU by its accumulated profit or loss.
type SkuProfitLoss struct {
	SKU    string          `json:"sku"`
	Value  decimal.Decimal `json:"value"`
	Orders int             `json:"orders"`
}

// UnitEconomics is the formatted cost breakdown table. Cost-dependent fields
// render as "N/A" until the seller enters SKU costs; a zero there would be
// indistinguishable from a genuinely zero cost.
type UnitEconomics struct {
	SettlementAmt            string `json:"settlement_amt"`
	ProductCost              string `json:"product_cost"`
	PackagingCost            string `json:"packaging_cost"`
	MarketingCost            string `json:"marketing_cost"`
	COGS                     string `json:"cogs"`
	GrossProfit              string `json:"gross_profit"`
	ReturnCost               string `json:"return_cost"`
	NetProfit                string `json:"net_profit"`
	GrossMargin              string `json:"gross_margin"`
	NetMargin                string `json:"net_margin"`
	NetProfitPerUnit         string `json:"net_profit_per_unit"`
	PricesEntered            bool   `json:"prices_entered"`
	InvoicePrice             string `json:"invoice_price"`
	TotalGst                 string `json:"total_gst"`
	NetProfitWithoutGst      string `json:"net_profit_without_gst"`
	NetProfitPerUnitNoGst    string `json:"net_profit_per_unit_without_gst"`
	ClaimAmount              string `json:"claim_amount"`
	Recovery                 string `json:"recovery"`
	TDS                      string `json:"tds"`
	TCS                      string `json:"tcs"`
}

// Alert is the headline profit/loss banner.
type Alert struct {
	ID          string `json:"id"`
	Level       string `json:"level"` // "success" or "danger"
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// SmartAlert is a per-SKU heuristic warning (high return rate or apparent
// unprofitability).
type SmartAlert struct {
	ID      string `json:"id"`
	Level   string `json:"level"`
	Message string `json:"message"`
	SKU     string `json:"sku,omitempty"`
}

// PaymentsDashboard is the financial view computed from filtered settlement
// records.
type PaymentsDashboard struct {
	HasData                bool            `json:"has_data"`
	OrderOverview          []KPI           `json:"order_overview"`
	EarningsOverview       []KPI           `json:"earnings_overview"`
	UnitEconomics          UnitEconomics   `json:"unit_economics"`
	DailyDeliveredVsReturn []DailyPoint    `json:"daily_delivered_vs_returns"`
	DeliveredVsRtoPie      []NameValue     `json:"delivered_vs_rto_pie"`
	DeliveredVsReturnPie   []NameValue     `json:"delivered_vs_return_pie"`
	TopDeliveredSkus       []NameValue     `json:"top_delivered_skus"`
	TopReturnedSkus        []NameValue     `json:"top_returned_skus"`
	SkuProfitData          []SkuProfitLoss `json:"sku_profit_data"`
	SkuLossData            []SkuProfitLoss `json:"sku_loss_data"`
	KeywordDistribution    []NameValue     `json:"keyword_distribution"`
	NetProfit              decimal.Decimal `json:"net_profit"`
	Alerts                 []Alert         `json:"alerts"`
	SmartAlerts            []SmartAlert    `json:"smart_alerts"`
}

// OrdersDashboard is the operational view computed from filtered order lines.
type OrdersDashboard struct {
	HasData                 bool         `json:"has_data"`
	OrderOverview           []KPI        `json:"order_overview"`
	OrderStatusDistribution []NameValue  `json:"order_status_distribution"`
	StateDistribution       []StateCount `json:"state_distribution"`
	TopSkus                 []NameValue  `json:"top_skus"`
}

// ReturnsDashboard is the return-reason view computed from filtered returns.
type ReturnsDashboard struct {
	HasData         bool        `json:"has_data"`
	TopReturnedSkus []NameValue `json:"top_returned_skus"`
	ReturnReasons   []NameValue `json:"return_reasons"`
}

// SkuDrilldown is the single-SKU deep dive over the full unfiltered dataset.
type SkuDrilldown struct {
	SKU             string          `json:"sku"`
	TotalSold       int             `json:"total_sold"`
	TotalDelivered  int             `json:"total_delivered"`
	TotalSettlement decimal.Decimal `json:"total_settlement"`
	TotalReturns    int             `json:"total_returns"`
	TotalRTO        int             `json:"total_rto"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	DataSufficient  bool            `json:"data_sufficient"`
}

// skuMetrics accumulates per-SKU money while walking payment rows once.
type skuMetrics struct {
	settlement    decimal.Decimal
	claim         decimal.Decimal
	returnCost    decimal.Decimal
	productCost   decimal.Decimal
	packagingCost decimal.Decimal
	orders        int
}

func newSkuMetrics() *skuMetrics {
	return &skuMetrics{
		settlement:    decimal.Zero,
		claim:         decimal.Zero,
		returnCost:    decimal.Zero,
		productCost:   decimal.Zero,
		packagingCost: decimal.Zero,
	}
}
