package ingest

import (
	"github.com/shopspring/decimal"

	"SellerPulse/api/recon"
	"SellerPulse/internal/config"
)

// Fixed column positions per export, applied once the header row is located.
// Columns are positional, not header-name based (0-indexed).
const (
	payColOrderID      = 0  // A
	payColOrderDate    = 1  // B
	payColSKU          = 4  // E
	payColStatus       = 5  // F
	payColGSTRate      = 6  // G
	payColFinalPayment = 11 // L
	payColInvoicePrice = 14 // O
	payColReturnCost   = 25 // Z
	payColTCS          = 32 // AG
	payColTDS          = 34 // AI
	payColClaimAmount  = 36 // AK
	payColRecovery     = 37 // AL

	ordColStatus  = 0 // A
	ordColOrderID = 1 // B ("Sub Order No")
	ordColState   = 3 // D
	ordColSKU     = 5 // F
	ordColSize    = 6 // G

	retColSKU          = 2  // C
	retColSize         = 3  // D ("Variation")
	retColCategory     = 5  // F
	retColOrderID      = 8  // I ("Suborder Number")
	retColReturnType   = 11 // L
	retColReturnReason = 19 // T
	retColSubReason    = 20 // U
)

// DecodedFile is the typed result of decoding one uploaded workbook.
// Exactly one of the three slices is populated, matching Type.
type DecodedFile struct {
	Type     recon.FileType
	Payments []recon.PaymentEntry
	Orders   []recon.OrderEntry
	Returns  []recon.ReturnEntry
	AdsCost  decimal.Decimal
}

// Rows reports how many records survived decoding.
func (d *DecodedFile) Rows() int {
	return len(d.Payments) + len(d.Orders) + len(d.Returns)
}

// DecodeWorkbook locates the data sheet for the given file type and decodes
// its rows into typed records. Rows with neither an order id nor a SKU are
// dropped. Cell-level garbage never fails the file; only a missing
// sheet/header does.
func DecodeWorkbook(wb *Workbook, t recon.FileType) (*DecodedFile, error) {
	sheet, start, err := LocateSheet(wb, t)
	if err != nil {
		return nil, err
	}

	out := &DecodedFile{Type: t, AdsCost: decimal.Zero}
	for i := start; i < len(sheet.Rows); i++ {
		row := sheet.Rows[i]
		switch t {
		case recon.FileTypePayments:
			e := decodePaymentRow(row)
			if e.OrderID != "" || e.SKU != "" {
				out.Payments = append(out.Payments, e)
			}
		case recon.FileTypeOrders:
			e := decodeOrderRow(row)
			if e.OrderID != "" || e.SKU != "" {
				out.Orders = append(out.Orders, e)
			}
		case recon.FileTypeReturns:
			e := decodeReturnRow(row)
			if e.OrderID != "" || e.SKU != "" {
				out.Returns = append(out.Returns, e)
			}
		}
	}

	if t == recon.FileTypePayments {
		out.AdsCost = decodeAdsCost(wb)
	}
	return out, nil
}

func decodePaymentRow(row []string) recon.PaymentEntry {
	return recon.PaymentEntry{
		OrderID:      ParseString(cell(row, payColOrderID)),
		OrderDate:    ParseDate(cell(row, payColOrderDate)),
		SKU:          ParseString(cell(row, payColSKU)),
		Status:       ParseString(cell(row, payColStatus)),
		GSTRate:      ParseNumber(cell(row, payColGSTRate)),
		FinalPayment: ParseDecimal(cell(row, payColFinalPayment)),
		InvoicePrice: ParseDecimal(cell(row, payColInvoicePrice)),
		ReturnCost:   ParseDecimal(cell(row, payColReturnCost)),
		TCS:          ParseDecimal(cell(row, payColTCS)),
		TDS:          ParseDecimal(cell(row, payColTDS)),
		ClaimAmount:  ParseDecimal(cell(row, payColClaimAmount)),
		Recovery:     ParseDecimal(cell(row, payColRecovery)),
	}
}

func decodeOrderRow(row []string) recon.OrderEntry {
	return recon.OrderEntry{
		Status:  ParseString(cell(row, ordColStatus)),
		OrderID: ParseString(cell(row, ordColOrderID)),
		State:   ParseString(cell(row, ordColState)),
		SKU:     ParseString(cell(row, ordColSKU)),
		Size:    ParseString(cell(row, ordColSize)),
	}
}

func decodeReturnRow(row []string) recon.ReturnEntry {
	return recon.ReturnEntry{
		SKU:          ParseString(cell(row, retColSKU)),
		Size:         ParseString(cell(row, retColSize)),
		Category:     ParseString(cell(row, retColCategory)),
		OrderID:      ParseString(cell(row, retColOrderID)),
		ReturnType:   ParseString(cell(row, retColReturnType)),
		ReturnReason: ParseString(cell(row, retColReturnReason)),
		SubReason:    ParseString(cell(row, retColSubReason)),
	}
}

// decodeAdsCost sums the spend column of the auxiliary "ads cost" sheet.
// That sheet has a stable layout, so its offsets are fixed rather than
// content-scanned.
func decodeAdsCost(wb *Workbook) decimal.Decimal {
	sheet, ok := locateAdsSheet(wb)
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	for i := config.AdsCostHeaderRow + 1; i < len(sheet.Rows); i++ {
		total = total.Add(ParseDecimal(cell(sheet.Rows[i], config.AdsCostSpendCol)))
	}
	return total
}
