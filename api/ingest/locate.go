package ingest

import (
	"fmt"
	"strings"

	"SellerPulse/api/recon"
	"SellerPulse/internal/config"
)

// normalizeHeader lowercases a header cell and strips all whitespace so
// "Sub Order No", "SubOrder No" and "suborder no" all compare equal.
func normalizeHeader(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// headerSignatures match a candidate header row at fixed column positions.
// The orders and returns exports shuffle their data between sheets and
// prepend metadata rows, so the locator anchors on header content instead of
// a fixed sheet name.
var headerSignatures = map[recon.FileType]func(row []string) bool{
	recon.FileTypeOrders: func(row []string) bool {
		return strings.Contains(normalizeHeader(cell(row, 1)), "suborderno") &&
			strings.Contains(normalizeHeader(cell(row, 5)), "sku")
	},
	recon.FileTypeReturns: func(row []string) bool {
		return strings.Contains(normalizeHeader(cell(row, 2)), "sku") &&
			strings.Contains(normalizeHeader(cell(row, 8)), "subordernumber")
	},
}

var locateHints = map[recon.FileType]string{
	recon.FileTypePayments: fmt.Sprintf("expected a sheet named exactly %q", config.PaymentsSheetName),
	recon.FileTypeOrders:   "expected a header row with 'Sub Order No' in column B and 'SKU' in column F",
	recon.FileTypeReturns:  "expected a header row with 'SKU' in column C and 'Suborder Number' in column I",
}

// LocateSheet finds the data sheet for a file type and returns it together
// with the 0-based row index where data begins.
func LocateSheet(wb *Workbook, t recon.FileType) (Sheet, int, error) {
	if t == recon.FileTypePayments {
		for _, sheet := range wb.Sheets {
			if strings.TrimSpace(sheet.Name) == config.PaymentsSheetName {
				return sheet, config.PaymentsHeaderRow + 1, nil
			}
		}
		return Sheet{}, 0, fmt.Errorf("no valid sheet found for %s file: %s", t, locateHints[t])
	}

	match, ok := headerSignatures[t]
	if !ok {
		return Sheet{}, 0, fmt.Errorf("unknown file type %q", t)
	}
	for _, sheet := range wb.Sheets {
		for i := 0; i < config.HeaderScanRows && i < len(sheet.Rows); i++ {
			row := sheet.Rows[i]
			if len(row) > 5 && match(row) {
				return sheet, i + 1, nil
			}
		}
	}
	return Sheet{}, 0, fmt.Errorf("no valid sheet found for %s file: %s", t, locateHints[t])
}

// locateAdsSheet finds the auxiliary ad-spend sheet in a payments workbook by
// case-insensitive name match. Absence is not an error; most payment exports
// simply don't carry one.
func locateAdsSheet(wb *Workbook) (Sheet, bool) {
	for _, sheet := range wb.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Name), config.AdsCostSheetName) {
			return sheet, true
		}
	}
	return Sheet{}, false
}
