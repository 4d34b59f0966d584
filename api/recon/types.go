package recon

import (
	"time"

	"github.com/shopspring/decimal"
)

// FileType tags the three marketplace exports the engine understands.
type FileType string

const (
	FileTypePayments FileType = "payments"
	FileTypeOrders   FileType = "orders"
	FileTypeReturns  FileType = "returns"
)

// ValidFileType reports whether t names one of the three upload slots.
func ValidFileType(t FileType) bool {
	return t == FileTypePayments || t == FileTypeOrders || t == FileTypeReturns
}

// PaymentEntry is one settlement transaction from the payments export.
// Monetary cells parse to zero when absent or malformed.
type PaymentEntry struct {
	OrderID      string          `json:"order_id"`
	OrderDate    *time.Time      `json:"order_date"`
	SKU          string          `json:"sku"`
	Status       string          `json:"status"`
	GSTRate      float64         `json:"gst_rate"`
	FinalPayment decimal.Decimal `json:"final_payment"`
	InvoicePrice decimal.Decimal `json:"invoice_price"`
	ReturnCost   decimal.Decimal `json:"return_cost"`
	TCS          decimal.Decimal `json:"tcs"`
	TDS          decimal.Decimal `json:"tds"`
	ClaimAmount  decimal.Decimal `json:"claim_amount"`
	Recovery     decimal.Decimal `json:"recovery"`
}

// OrderEntry is one logistics order line from the orders export.
type OrderEntry struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
	State   string `json:"state"`
	SKU     string `json:"sku"`
	Size    string `json:"size"`
}

// ReturnEntry is one return/RTO record. Many return rows carry no usable
// order id, only a SKU.
type ReturnEntry struct {
	SKU          string `json:"sku"`
	Size         string `json:"size"`
	Category     string `json:"category"`
	OrderID      string `json:"order_id"`
	ReturnType   string `json:"return_type"`
	ReturnReason string `json:"return_reason"`
	SubReason    string `json:"sub_reason"`
}

// FileDataSet holds the current snapshot of all uploaded data. Re-uploading a
// file type replaces that slot wholesale; AdsCost accumulates across payment
// uploads because ad spend lives in an auxiliary sheet of the payments file.
// A FileDataSet is immutable once built: replacing a slot produces a new
// value with a bumped Version.
type FileDataSet struct {
	Payments []PaymentEntry  `json:"payments,omitempty"`
	Orders   []OrderEntry    `json:"orders,omitempty"`
	Returns  []ReturnEntry   `json:"returns,omitempty"`
	AdsCost  decimal.Decimal `json:"ads_cost"`
	Version  uint64          `json:"version"`
}

func (ds *FileDataSet) clone() *FileDataSet {
	next := &FileDataSet{AdsCost: decimal.Zero}
	if ds != nil {
		*next = *ds
	}
	return next
}

// WithPayments returns a copy of ds with the payments slot replaced, the ad
// spend from this upload accumulated, and the version advanced.
func (ds *FileDataSet) WithPayments(entries []PaymentEntry, adsCost decimal.Decimal) *FileDataSet {
	next := ds.clone()
	next.Payments = entries
	next.AdsCost = next.AdsCost.Add(adsCost)
	next.Version++
	return next
}

// WithOrders returns a copy of ds with the orders slot replaced.
func (ds *FileDataSet) WithOrders(entries []OrderEntry) *FileDataSet {
	next := ds.clone()
	next.Orders = entries
	next.Version++
	return next
}

// WithReturns returns a copy of ds with the returns slot replaced.
func (ds *FileDataSet) WithReturns(entries []ReturnEntry) *FileDataSet {
	next := ds.clone()
	next.Returns = entries
	next.Version++
	return next
}

// WithoutSlot returns a copy of ds with one file slot dropped.
func (ds *FileDataSet) WithoutSlot(t FileType) *FileDataSet {
	next := ds.clone()
	switch t {
	case FileTypePayments:
		next.Payments = nil
	case FileTypeOrders:
		next.Orders = nil
	case FileTypeReturns:
		next.Returns = nil
	}
	next.Version++
	return next
}

// Empty reports whether no export has been uploaded yet.
func (ds *FileDataSet) Empty() bool {
	return ds == nil || (len(ds.Payments) == 0 && len(ds.Orders) == 0 && len(ds.Returns) == 0)
}

// SkuPrices is the seller-entered cost configuration. All fields optional;
// an empty or all-zero cost map switches the financial dashboards into a
// "prices not entered" mode.
type SkuPrices struct {
	SkuCosts              map[string]decimal.Decimal `json:"sku_costs"`
	SkuPackagingCosts     map[string]decimal.Decimal `json:"sku_packaging_costs"`
	ExternalMarketingCost decimal.Decimal            `json:"external_marketing_cost"`
}

// Cost returns the per-unit product cost for a SKU, zero when not entered.
func (p *SkuPrices) Cost(sku string) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return p.SkuCosts[sku]
}

// PackagingCost returns the per-unit packaging cost for a SKU.
func (p *SkuPrices) PackagingCost(sku string) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return p.SkuPackagingCosts[sku]
}

// Entered reports whether at least one SKU has a nonzero product cost.
// Zero-valued costs are ambiguous with "never entered", so they don't count.
func (p *SkuPrices) Entered() bool {
	if p == nil {
		return false
	}
	for _, c := range p.SkuCosts {
		if c.IsPositive() {
			return true
		}
	}
	return false
}

// MergedOrder is the canonical reconciled view of one order id across the
// three exports. Built fresh on every reconciliation pass, never mutated.
type MergedOrder struct {
	OrderID      string     `json:"order_id"`
	SKU          string     `json:"sku"`
	Status       string     `json:"status"`
	Date         *time.Time `json:"date"`
	State        string     `json:"state"`
	ReturnReason string     `json:"return_reason,omitempty"`
}

// FilterContext is the master order list plus the distinct value sets that
// populate the filter options. Consumed, never mutated, by ApplyFilters.
type FilterContext struct {
	MergedOrders      []MergedOrder `json:"merged_orders"`
	AvailableSkus     []string      `json:"available_skus"`
	AvailableStates   []string      `json:"available_states"`
	AvailableReasons  []string      `json:"available_reasons"`
	AvailableStatuses []string      `json:"available_statuses"`
}

// FilterState is the caller-owned filter selection. Empty slices mean "all";
// empty date strings mean unbounded. Dates are "2006-01-02".
type FilterState struct {
	DateStart       string   `json:"date_start"`
	DateEnd         string   `json:"date_end"`
	OrderStatuses   []string `json:"order_statuses"`
	SelectedSkus    []string `json:"selected_skus"`
	SelectedStates  []string `json:"selected_states"`
	SelectedReasons []string `json:"selected_reasons"`
	Keyword         string   `json:"keyword"`
	CalculateTrend  bool     `json:"calculate_trend"`
}

// Active reports whether any constraint is set.
func (f FilterState) Active() bool {
	return f.DateStart != "" || f.DateEnd != "" ||
		len(f.OrderStatuses) > 0 || len(f.SelectedSkus) > 0 ||
		len(f.SelectedStates) > 0 || len(f.SelectedReasons) > 0 ||
		f.Keyword != ""
}

// FilteredData is the projection of the three raw record arrays that survive
// the current filter.
type FilteredData struct {
	Payments []PaymentEntry
	Orders   []OrderEntry
	Returns  []ReturnEntry
}
