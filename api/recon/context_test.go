package recon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleDataSet() *FileDataSet {
	return &FileDataSet{
		Payments: []PaymentEntry{
			{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered", OrderDate: date(2024, 3, 1)},
			{OrderID: "SO2", SKU: "TSHIRT-RED", Status: "Return", OrderDate: date(2024, 3, 2)},
		},
		Orders: []OrderEntry{
			{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Shipped", State: "Karnataka"},
			{OrderID: "SO3", SKU: "KURTA-BLUE", Status: "Shipped", State: "Kerala"},
		},
		Returns: []ReturnEntry{
			{OrderID: "SO2", SKU: "TSHIRT-RED", ReturnType: "Customer Return", ReturnReason: "Wrong size"},
			{OrderID: "SO4", SKU: "SAREE-GOLD", ReturnType: "Courier Return (RTO)"},
		},
	}
}

func TestBuildFilterContextMergesUnionOfIDs(t *testing.T) {
	fc := BuildFilterContext(sampleDataSet())

	require.Len(t, fc.MergedOrders, 4)
	byID := make(map[string]MergedOrder)
	for _, m := range fc.MergedOrders {
		byID[m.OrderID] = m
	}

	// Payment status wins over order status.
	assert.Equal(t, "Delivered", byID["SO1"].Status)
	assert.Equal(t, "Karnataka", byID["SO1"].State)
	require.NotNil(t, byID["SO1"].Date)

	// Return-only order derives status from its return type.
	assert.Equal(t, "RTO", byID["SO4"].Status)
	assert.Equal(t, "SAREE-GOLD", byID["SO4"].SKU)

	// Order-only entry keeps the order file status.
	assert.Equal(t, "Shipped", byID["SO3"].Status)

	// Return reason rides along on the merged view.
	assert.Equal(t, "Wrong size", byID["SO2"].ReturnReason)
}

func TestBuildFilterContextDistinctSetsSorted(t *testing.T) {
	fc := BuildFilterContext(sampleDataSet())
	assert.Equal(t, []string{"KURTA-BLUE", "SAREE-GOLD", "TSHIRT-RED"}, fc.AvailableSkus)
	assert.Equal(t, []string{"Karnataka", "Kerala"}, fc.AvailableStates)
	assert.Equal(t, []string{"Wrong size"}, fc.AvailableReasons)
	assert.Equal(t, []string{"Delivered", "RTO", "Return", "Shipped"}, fc.AvailableStatuses)
}

func TestBuildFilterContextEmptyDataSet(t *testing.T) {
	fc := BuildFilterContext(&FileDataSet{})
	assert.Empty(t, fc.MergedOrders)
	assert.Empty(t, fc.AvailableSkus)
}

func TestClassifyStatusPrecedence(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"Delivered", StatusDelivered},
		{"delivered to customer", StatusDelivered},
		{"Courier Return (RTO)", StatusRTO},
		{"rto_complete", StatusRTO},
		{"Customer Return", StatusReturn},
		{"SHIPPED", StatusShipped},
		{"Cancelled by buyer", StatusCancelled},
		{"Exchange", StatusExchanged},
		{"something else", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyStatus(c.raw), "input %q", c.raw)
	}
}

func TestFileDataSetVersioning(t *testing.T) {
	ds := &FileDataSet{}
	v1 := ds.WithOrders([]OrderEntry{{OrderID: "SO1"}})
	v2 := v1.WithReturns([]ReturnEntry{{OrderID: "SO2"}})

	assert.Equal(t, uint64(0), ds.Version)
	assert.Equal(t, uint64(1), v1.Version)
	assert.Equal(t, uint64(2), v2.Version)
	assert.Empty(t, v1.Returns, "older snapshot must not see newer slots")
}
