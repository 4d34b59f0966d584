package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFiltersInactiveIsIdentity(t *testing.T) {
	ds := sampleDataSet()
	got := ApplyFilters(ds, nil, FilterState{})

	// Identity, not an equivalent copy.
	assert.Len(t, got.Payments, len(ds.Payments))
	assert.Len(t, got.Orders, len(ds.Orders))
	assert.Len(t, got.Returns, len(ds.Returns))
	if len(ds.Payments) > 0 {
		assert.Same(t, &ds.Payments[0], &got.Payments[0])
	}
}

func TestApplyFiltersDateRange(t *testing.T) {
	ds := sampleDataSet()
	fc := BuildFilterContext(ds)

	got := ApplyFilters(ds, fc, FilterState{DateStart: "2024-03-01", DateEnd: "2024-03-01"})
	require.Len(t, got.Payments, 1)
	assert.Equal(t, "SO1", got.Payments[0].OrderID)

	// Orders without a payments date are excluded once a bound is set.
	for _, o := range got.Orders {
		assert.Equal(t, "SO1", o.OrderID)
	}
}

func TestApplyFiltersStatus(t *testing.T) {
	ds := sampleDataSet()
	fc := BuildFilterContext(ds)

	got := ApplyFilters(ds, fc, FilterState{OrderStatuses: []string{"Delivered"}})
	require.Len(t, got.Payments, 1)
	assert.Equal(t, "SO1", got.Payments[0].OrderID)
	assert.Empty(t, got.Returns)
}

func TestApplyFiltersReturnsSkuFallback(t *testing.T) {
	ds := &FileDataSet{
		Payments: []PaymentEntry{
			{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered"},
		},
		Returns: []ReturnEntry{
			// No order id at all, only a SKU. Survives a SKU filter via the
			// fallback.
			{SKU: "TSHIRT-RED", ReturnReason: "Damaged"},
			// Different SKU, must not survive.
			{SKU: "KURTA-BLUE", ReturnReason: "Wrong size"},
		},
	}
	fc := BuildFilterContext(ds)

	got := ApplyFilters(ds, fc, FilterState{SelectedSkus: []string{"TSHIRT-RED"}})
	require.Len(t, got.Returns, 1)
	assert.Equal(t, "TSHIRT-RED", got.Returns[0].SKU)

	// Without a SKU or keyword filter the fallback stays off: an id-less
	// return row is dropped by any other active filter.
	got = ApplyFilters(ds, fc, FilterState{OrderStatuses: []string{"Delivered"}})
	assert.Empty(t, got.Returns)
}

func TestApplyFiltersKeyword(t *testing.T) {
	ds := sampleDataSet()
	fc := BuildFilterContext(ds)

	got := ApplyFilters(ds, fc, FilterState{Keyword: "tshirt"})
	require.Len(t, got.Payments, 2)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "SO1", got.Orders[0].OrderID)
}

func TestApplyFiltersMonotonicity(t *testing.T) {
	ds := sampleDataSet()
	fc := BuildFilterContext(ds)

	loose := ApplyFilters(ds, fc, FilterState{Keyword: "tshirt"})
	tight := ApplyFilters(ds, fc, FilterState{Keyword: "tshirt", OrderStatuses: []string{"Delivered"}})

	assert.LessOrEqual(t, len(tight.Payments), len(loose.Payments))
	assert.LessOrEqual(t, len(tight.Orders), len(loose.Orders))
	assert.LessOrEqual(t, len(tight.Returns), len(loose.Returns))
}

func TestApplyFiltersReasonRequiresValue(t *testing.T) {
	ds := sampleDataSet()
	fc := BuildFilterContext(ds)

	got := ApplyFilters(ds, fc, FilterState{SelectedReasons: []string{"Wrong size"}})
	require.Len(t, got.Payments, 1)
	assert.Equal(t, "SO2", got.Payments[0].OrderID)
}

func TestApplyFiltersNilDataSet(t *testing.T) {
	got := ApplyFilters(nil, nil, FilterState{Keyword: "x"})
	assert.Empty(t, got.Payments)
	assert.Empty(t, got.Orders)
	assert.Empty(t, got.Returns)
}
