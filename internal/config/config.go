package config

const (
	DefaultTimeZone = "Asia/Kolkata"

	// Payments workbook layout. The settlement export always carries a fixed
	// sheet name; the header sits on 0-indexed row 2, data from row 3.
	PaymentsSheetName = "Order Payments"
	PaymentsHeaderRow = 2
	AdsCostSheetName  = "ads cost"
	AdsCostHeaderRow  = 3
	AdsCostSpendCol   = 7

	// Orders and returns exports move their data sheet around, so the locator
	// scans the first rows of every sheet for a header signature.
	HeaderScanRows = 10

	// Spreadsheet date serials count days from 1900; 25569 is 1970-01-01.
	ExcelEpochDays = 25569

	// Uploads above this size are processed on a background worker instead of
	// the request goroutine.
	LargeFileBytes = 10 << 20

	// Smart alert thresholds
	ReturnRateAlertThreshold = 0.25
	ReturnRateAlertMinOrders = 20

	// Retention for the upload audit trail, pruned by the cron job.
	AuditRetentionDays     = 90
	AuditRetentionSchedule = "0 3 * * *"
)
