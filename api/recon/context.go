package recon

import (
	"sort"
	"strings"
)

// BuildFilterContext reconciles the three exports into one canonical order
// list and derives the distinct value sets behind the filter options.
//
// Single pass with map lookups: sellers upload tens of thousands of rows and
// the context is rebuilt on every dataset change. Duplicate ids within one
// export are last-write-wins, never merged.
func BuildFilterContext(ds *FileDataSet) *FilterContext {
	paymentsByID := make(map[string]*PaymentEntry, len(ds.Payments))
	ordersByID := make(map[string]*OrderEntry, len(ds.Orders))
	returnsByID := make(map[string]*ReturnEntry, len(ds.Returns))

	// Union of order ids, in first-seen order so rebuilds are deterministic.
	ids := make([]string, 0, len(ds.Payments)+len(ds.Orders)+len(ds.Returns))
	seen := make(map[string]struct{}, len(ds.Payments)+len(ds.Orders)+len(ds.Returns))
	addID := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	for i := range ds.Payments {
		paymentsByID[ds.Payments[i].OrderID] = &ds.Payments[i]
		addID(ds.Payments[i].OrderID)
	}
	for i := range ds.Orders {
		ordersByID[ds.Orders[i].OrderID] = &ds.Orders[i]
		addID(ds.Orders[i].OrderID)
	}
	for i := range ds.Returns {
		returnsByID[ds.Returns[i].OrderID] = &ds.Returns[i]
		addID(ds.Returns[i].OrderID)
	}

	fc := &FilterContext{MergedOrders: make([]MergedOrder, 0, len(ids))}
	skus := make(map[string]struct{})
	states := make(map[string]struct{})
	reasons := make(map[string]struct{})
	statuses := make(map[string]struct{})

	for _, id := range ids {
		p := paymentsByID[id]
		o := ordersByID[id]
		r := returnsByID[id]

		m := MergedOrder{
			OrderID: id,
			SKU:     mergedSKU(p, o, r),
			Status:  mergedStatus(p, o, r),
		}
		if p != nil {
			m.Date = p.OrderDate
		}
		if o != nil {
			m.State = o.State
		}
		if r != nil {
			m.ReturnReason = r.ReturnReason
		}
		fc.MergedOrders = append(fc.MergedOrders, m)

		if m.SKU != "" {
			skus[m.SKU] = struct{}{}
		}
		if m.Status != "" {
			statuses[m.Status] = struct{}{}
		}
		if m.State != "" {
			states[m.State] = struct{}{}
		}
		if m.ReturnReason != "" {
			reasons[m.ReturnReason] = struct{}{}
		}
	}

	fc.AvailableSkus = sortedKeys(skus)
	fc.AvailableStates = sortedKeys(states)
	fc.AvailableReasons = sortedKeys(reasons)
	fc.AvailableStatuses = sortedKeys(statuses)
	return fc
}

// mergedSKU picks the first non-empty SKU across the three sources.
func mergedSKU(p *PaymentEntry, o *OrderEntry, r *ReturnEntry) string {
	if p != nil && p.SKU != "" {
		return p.SKU
	}
	if o != nil && o.SKU != "" {
		return o.SKU
	}
	if r != nil {
		return r.SKU
	}
	return ""
}

// mergedStatus derives the normalized status with explicit precedence:
// payment status, then order status, then a status inferred from the return
// type, then "Unknown".
func mergedStatus(p *PaymentEntry, o *OrderEntry, r *ReturnEntry) string {
	if p != nil && p.Status != "" {
		return p.Status
	}
	if o != nil && o.Status != "" {
		return o.Status
	}
	if r != nil {
		if strings.Contains(strings.ToLower(r.ReturnType), "rto") {
			return "RTO"
		}
		return "Return"
	}
	return "Unknown"
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
