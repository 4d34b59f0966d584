package dash

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SellerPulse/api/recon"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func testPrices() *recon.SkuPrices {
	return &recon.SkuPrices{
		SkuCosts: map[string]decimal.Decimal{
			"TSHIRT-RED": dec(180),
			"KURTA-BLUE": dec(250),
		},
		SkuPackagingCosts: map[string]decimal.Decimal{
			"TSHIRT-RED": dec(10),
			"KURTA-BLUE": dec(10),
		},
		ExternalMarketingCost: dec(50),
	}
}

func testPayments() []recon.PaymentEntry {
	d1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	return []recon.PaymentEntry{
		{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered", OrderDate: &d1,
			FinalPayment: dec(450), GSTRate: 18, InvoicePrice: dec(500)},
		{OrderID: "SO2", SKU: "KURTA-BLUE", Status: "Delivered", OrderDate: &d1,
			FinalPayment: dec(600), GSTRate: 18, InvoicePrice: dec(700)},
		{OrderID: "SO3", SKU: "TSHIRT-RED", Status: "Return", OrderDate: &d2,
			FinalPayment: dec(-120), ReturnCost: dec(80), ClaimAmount: dec(30)},
	}
}

func TestPaymentsDashboardFinancialIdentity(t *testing.T) {
	prices := testPrices()
	d := CalculatePaymentsDashboard(testPayments(), prices, dec(100), nil, nil)
	require.True(t, d.HasData)

	// settlement = 450 + 600 - 120 = 930
	// product cost (delivered only) = 180 + 250 = 430
	// packaging (delivered only) = 10 + 10 = 20
	// marketing = 100 ads + 50 external = 150
	// cogs = 430 + 20 + 150 = 600
	// gross = 930 - 600 = 330
	// net = gross - returnCost(80) + claims(30) = 280
	assert.True(t, d.NetProfit.Equal(dec(280)), "net profit %s", d.NetProfit)
	assert.Equal(t, "₹930.00", d.UnitEconomics.SettlementAmt)
	assert.Equal(t, "₹430.00", d.UnitEconomics.ProductCost)
	assert.Equal(t, "₹600.00", d.UnitEconomics.COGS)
	assert.Equal(t, "₹280.00", d.UnitEconomics.NetProfit)
	assert.True(t, d.UnitEconomics.PricesEntered)

	// GST = (450 + 600) * 18% = 189
	assert.Equal(t, "₹189.00", d.UnitEconomics.TotalGst)
	// Net without GST = 280 - 189 = 91
	assert.Equal(t, "₹91.00", d.UnitEconomics.NetProfitWithoutGst)
}

func TestPaymentsDashboardPricesNotEntered(t *testing.T) {
	d := CalculatePaymentsDashboard(testPayments(), nil, decimal.Zero, nil, nil)
	require.True(t, d.HasData)
	assert.False(t, d.UnitEconomics.PricesEntered)
	assert.Equal(t, "N/A", d.UnitEconomics.ProductCost)
	assert.Equal(t, "N/A", d.UnitEconomics.NetProfit)
	assert.Equal(t, "N/A", d.UnitEconomics.GrossMargin)
	// Fields independent of SKU costs still render.
	assert.Equal(t, "₹930.00", d.UnitEconomics.SettlementAmt)
	assert.Equal(t, "₹80.00", d.UnitEconomics.ReturnCost)
}

func TestPaymentsDashboardZeroSettlementMargins(t *testing.T) {
	payments := []recon.PaymentEntry{
		{OrderID: "SO1", SKU: "TSHIRT-RED", Status: "Delivered"},
	}
	d := CalculatePaymentsDashboard(payments, testPrices(), decimal.Zero, nil, nil)
	// No division by zero; margins report 0.00% instead.
	assert.Equal(t, "0.00%", d.UnitEconomics.GrossMargin)
	assert.Equal(t, "0.00%", d.UnitEconomics.NetMargin)
}

func TestPaymentsDashboardEmpty(t *testing.T) {
	d := CalculatePaymentsDashboard(nil, nil, decimal.Zero, nil, nil)
	assert.False(t, d.HasData)
	assert.True(t, d.NetProfit.IsZero())
	assert.Equal(t, "N/A", d.UnitEconomics.TotalGst)
}

func TestPaymentsDashboardStatusSplit(t *testing.T) {
	d := CalculatePaymentsDashboard(testPayments(), testPrices(), decimal.Zero, nil, nil)

	pie := map[string]int{}
	for _, b := range d.DeliveredVsRtoPie {
		pie[b.Name] = b.Value
	}
	assert.Equal(t, 2, pie["Delivered"])
	assert.Equal(t, 1, pie["Return"])
	// Zero buckets are dropped, RTO must be absent.
	_, hasRTO := pie["RTO"]
	assert.False(t, hasRTO)
}

func TestPaymentsDashboardTopSkus(t *testing.T) {
	d := CalculatePaymentsDashboard(testPayments(), testPrices(), decimal.Zero, nil, nil)

	require.NotEmpty(t, d.TopDeliveredSkus)
	// One delivered each, alphabetical tiebreak.
	assert.Equal(t, "KURTA-BLUE", d.TopDeliveredSkus[0].Name)

	require.Len(t, d.TopReturnedSkus, 1)
	assert.Equal(t, "TSHIRT-RED", d.TopReturnedSkus[0].Name)
}

func TestPaymentsDashboardSkuProfitSplit(t *testing.T) {
	d := CalculatePaymentsDashboard(testPayments(), testPrices(), decimal.Zero, nil, nil)

	// KURTA-BLUE: 600 - 260 = +340 profit.
	// TSHIRT-RED: (450 - 120) + 30 - 80 - 190 = +90 profit.
	require.Len(t, d.SkuProfitData, 2)
	assert.Equal(t, "KURTA-BLUE", d.SkuProfitData[0].SKU)
	assert.True(t, d.SkuProfitData[0].Value.Equal(dec(340)))
	assert.Empty(t, d.SkuLossData)
}

func TestKeywordDistribution(t *testing.T) {
	payments := []recon.PaymentEntry{
		{SKU: "TSHIRT-RED-42", Status: "Delivered"},
		{SKU: "TSHIRT-BLUE", Status: "Delivered"},
		{SKU: "TSHIRT-GREEN", Status: "Return"}, // not delivered, excluded
	}
	got := keywordDistribution(payments)

	counts := map[string]int{}
	for _, nv := range got {
		counts[nv.Name] = nv.Value
	}
	assert.Equal(t, 2, counts["tshirt"])
	assert.Equal(t, 1, counts["red"])
	assert.Equal(t, 1, counts["blue"])
	// Purely numeric fragments carry no signal.
	_, hasNumeric := counts["42"]
	assert.False(t, hasNumeric)
	_, hasGreen := counts["green"]
	assert.False(t, hasGreen)
}

func TestDailyBreakdownLabelsAndOrder(t *testing.T) {
	d := CalculatePaymentsDashboard(testPayments(), testPrices(), decimal.Zero, nil, nil)

	require.Len(t, d.DailyDeliveredVsReturn, 2)
	assert.Equal(t, "01-Mar", d.DailyDeliveredVsReturn[0].Name)
	assert.Equal(t, 2, d.DailyDeliveredVsReturn[0].Delivered)
	assert.Equal(t, "02-Mar", d.DailyDeliveredVsReturn[1].Name)
	assert.Equal(t, 1, d.DailyDeliveredVsReturn[1].Return)
}

func TestPaymentsDashboardTrendAttached(t *testing.T) {
	current := testPayments()
	previous := []recon.PaymentEntry{
		{OrderID: "P1", SKU: "TSHIRT-RED", Status: "Delivered", FinalPayment: dec(300)},
	}
	d := CalculatePaymentsDashboard(current, nil, decimal.Zero, nil, previous)

	var profitKPI *KPI
	for i := range d.EarningsOverview {
		if d.EarningsOverview[i].Icon == "profit" {
			profitKPI = &d.EarningsOverview[i]
		}
	}
	require.NotNil(t, profitKPI)
	require.NotNil(t, profitKPI.Trend)
	assert.Contains(t, []string{"up", "down", "neutral"}, profitKPI.Trend.Direction)
}
