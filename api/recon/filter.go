package recon

import (
	"strings"
	"time"
)

const filterDateLayout = "2006-01-02"

// ApplyFilters narrows the canonical merged list by the filter state and
// projects the survivors back onto the three raw record arrays.
//
// With no filters active the originals are returned untouched; the
// projection must be the identity then, not merely an empty filter that
// happens to pass everything.
func ApplyFilters(ds *FileDataSet, fc *FilterContext, f FilterState) FilteredData {
	if ds == nil {
		return FilteredData{}
	}
	if !f.Active() {
		return FilteredData{Payments: ds.Payments, Orders: ds.Orders, Returns: ds.Returns}
	}
	if fc == nil {
		fc = BuildFilterContext(ds)
	}

	survivors := filterMergedOrders(fc.MergedOrders, f)

	allowedIDs := make(map[string]struct{}, len(survivors))
	allowedSkus := make(map[string]struct{}, len(survivors))
	for _, m := range survivors {
		if m.OrderID != "" {
			allowedIDs[m.OrderID] = struct{}{}
		}
		if m.SKU != "" {
			allowedSkus[m.SKU] = struct{}{}
		}
	}

	out := FilteredData{}
	for _, p := range ds.Payments {
		if _, ok := allowedIDs[p.OrderID]; ok {
			out.Payments = append(out.Payments, p)
		}
	}
	for _, o := range ds.Orders {
		if _, ok := allowedIDs[o.OrderID]; ok {
			out.Orders = append(out.Orders, o)
		}
	}

	// Return rows often have no usable order id, so under a SKU or keyword
	// filter they are matched by SKU instead.
	skuFilterActive := len(f.SelectedSkus) > 0 || f.Keyword != ""
	for _, r := range ds.Returns {
		if r.OrderID != "" {
			if _, ok := allowedIDs[r.OrderID]; ok {
				out.Returns = append(out.Returns, r)
				continue
			}
		}
		if skuFilterActive && r.SKU != "" {
			if _, ok := allowedSkus[r.SKU]; ok {
				out.Returns = append(out.Returns, r)
			}
		}
	}
	return out
}

func filterMergedOrders(merged []MergedOrder, f FilterState) []MergedOrder {
	start, end := parseDateBounds(f)
	statuses := toSet(f.OrderStatuses)
	skus := toSet(f.SelectedSkus)
	states := toSet(f.SelectedStates)
	reasons := toSet(f.SelectedReasons)
	keyword := strings.ToLower(f.Keyword)

	out := make([]MergedOrder, 0, len(merged))
	for _, m := range merged {
		if start != nil || end != nil {
			// Orders without a payments date cannot be placed in any range.
			if m.Date == nil {
				continue
			}
			if start != nil && m.Date.Before(*start) {
				continue
			}
			if end != nil && m.Date.After(*end) {
				continue
			}
		}
		if len(statuses) > 0 {
			if _, ok := statuses[m.Status]; !ok {
				continue
			}
		}
		if len(skus) > 0 {
			if _, ok := skus[m.SKU]; !ok {
				continue
			}
		}
		if len(states) > 0 {
			if _, ok := states[m.State]; !ok {
				continue
			}
		}
		if len(reasons) > 0 {
			if m.ReturnReason == "" {
				continue
			}
			if _, ok := reasons[m.ReturnReason]; !ok {
				continue
			}
		}
		if keyword != "" && !strings.Contains(strings.ToLower(m.SKU), keyword) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// parseDateBounds expands the inclusive date range to [start 00:00:00,
// end 23:59:59] in UTC, matching how entry dates are normalized.
func parseDateBounds(f FilterState) (*time.Time, *time.Time) {
	var start, end *time.Time
	if f.DateStart != "" {
		if t, err := time.Parse(filterDateLayout, f.DateStart); err == nil {
			start = &t
		}
	}
	if f.DateEnd != "" {
		if t, err := time.Parse(filterDateLayout, f.DateEnd); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			end = &t
		}
	}
	return start, end
}

func toSet(vals []string) map[string]struct{} {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}
