package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/api/recon"
)

func TestOrdersDashboard(t *testing.T) {
	orders := []recon.OrderEntry{
		{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered", State: "Karnataka"},
		{OrderID: "SO2", SKU: "TSHIRT-RED", Status: "Shipped", State: "Karnataka"},
		{OrderID: "SO3", SKU: "KURTA-BLUE", Status: "Delivered", State: "Kerala"},
	}
	d := CalculateOrdersDashboard(orders, nil)
	require.True(t, d.HasData)

	kpis := map[string]any{}
	for _, k := range d.OrderOverview {
		kpis[k.Title] = k.Value
	}
	assert.Equal(t, 3, kpis["Total Orders"])
	assert.Equal(t, 2, kpis["Delivered"])
	assert.Equal(t, "66.7%", kpis["Delivered %"])
	assert.Equal(t, 1, kpis["Shipped"])
	assert.Equal(t, 0, kpis["RTO"])
	assert.Equal(t, "0.0%", kpis["RTO %"])

	require.Len(t, d.StateDistribution, 2)
	assert.Equal(t, "Karnataka", d.StateDistribution[0].State)
	assert.Equal(t, 2, d.StateDistribution[0].Count)

	assert.Equal(t, "TSHIRT-RED", d.TopSkus[0].Name)

	statuses := map[string]int{}
	for _, nv := range d.OrderStatusDistribution {
		statuses[nv.Name] = nv.Value
	}
	assert.Equal(t, 2, statuses["Delivered"])
	assert.Equal(t, 1, statuses["Shipped"])
}

func TestOrdersDashboardTrend(t *testing.T) {
	orders := []recon.OrderEntry{
		{OrderID: "SO1", Status: "Delivered"},
		{OrderID: "SO2", Status: "Delivered"},
		{OrderID: "SO3", Status: "Shipped"},
	}
	previous := []recon.OrderEntry{
		{OrderID: "SO0", Status: "Delivered"},
		{OrderID: "SO-1", Status: "Cancelled"},
	}

	d := CalculateOrdersDashboard(orders, previous)
	trends := map[string]*Trend{}
	for _, k := range d.OrderOverview {
		trends[k.Title] = k.Trend
	}

	require.NotNil(t, trends["Total Orders"])
	assert.Equal(t, 50, trends["Total Orders"].Change)
	assert.Equal(t, "up", trends["Total Orders"].Direction)

	require.NotNil(t, trends["Delivered"])
	assert.Equal(t, 100, trends["Delivered"].Change)
	assert.Equal(t, "up", trends["Delivered"].Direction)

	// An empty previous window still anchors the arrows.
	d = CalculateOrdersDashboard(orders, []recon.OrderEntry{})
	for _, k := range d.OrderOverview[:2] {
		require.NotNil(t, k.Trend, k.Title)
		assert.Equal(t, "up", k.Trend.Direction)
	}

	// No window at all means no arrows.
	d = CalculateOrdersDashboard(orders, nil)
	for _, k := range d.OrderOverview {
		assert.Nil(t, k.Trend, k.Title)
	}
}

func TestOrdersDashboardEmpty(t *testing.T) {
	d := CalculateOrdersDashboard(nil, nil)
	assert.False(t, d.HasData)
}

func TestReturnsDashboardDropsNonActionableReasons(t *testing.T) {
	returns := []recon.ReturnEntry{
		{SKU: "TSHIRT-RED", ReturnReason: "Wrong size"},
		{SKU: "TSHIRT-RED", ReturnReason: ""},
		{SKU: "TSHIRT-RED", ReturnReason: "Unknown"},
		{SKU: "TSHIRT-RED", ReturnReason: "Others / misc"},
		{SKU: "KURTA-BLUE", ReturnReason: "Wrong size"},
	}
	d := CalculateReturnsDashboard(returns)
	require.True(t, d.HasData)

	require.Len(t, d.ReturnReasons, 1)
	assert.Equal(t, "Wrong size", d.ReturnReasons[0].Name)
	assert.Equal(t, 2, d.ReturnReasons[0].Value)

	assert.Equal(t, "TSHIRT-RED", d.TopReturnedSkus[0].Name)
}

func TestReturnsDashboardEmpty(t *testing.T) {
	assert.False(t, CalculateReturnsDashboard(nil).HasData)
}

func TestSkuDrilldown(t *testing.T) {
	ds := &recon.FileDataSet{
		Orders: []recon.OrderEntry{
			{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered"},
			{OrderID: "SO2", SKU: "TSHIRT-RED", Status: "Courier Return (RTO)"},
			{OrderID: "SO4", SKU: "TSHIRT-RED", Status: "Customer Return"},
		},
		Payments: []recon.PaymentEntry{
			{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered", FinalPayment: dec(450)},
			{OrderID: "SO2", SKU: "TSHIRT-RED", Status: "Courier Return (RTO)", FinalPayment: dec(-50)},
			{OrderID: "SO3", SKU: "KURTA-BLUE", Status: "Delivered", FinalPayment: dec(600)},
		},
	}
	prices := testPrices()

	d := CalculateSkuDrilldown("TSHIRT-RED", ds, prices)
	require.True(t, d.DataSufficient)
	assert.Equal(t, 3, d.TotalSold)
	assert.Equal(t, 1, d.TotalDelivered)
	assert.Equal(t, 1, d.TotalRTO)
	assert.Equal(t, 1, d.TotalReturns)
	// Only the delivered row settles.
	assert.True(t, d.TotalSettlement.Equal(dec(450)))
	// 450 settlement - 190 delivered cost = 260
	assert.True(t, d.NetProfit.Equal(dec(260)), "net %s", d.NetProfit)
}

func TestSkuDrilldownWithoutPayments(t *testing.T) {
	ds := &recon.FileDataSet{
		Orders: []recon.OrderEntry{
			{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered"},
		},
	}
	d := CalculateSkuDrilldown("TSHIRT-RED", ds, nil)
	assert.False(t, d.DataSufficient)
	assert.Equal(t, 0, d.TotalSold)
}
