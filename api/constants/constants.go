package constants

// Common error messages
const (
	ErrInvalidJSON                = "invalid json or missing fields"
	ErrMethodNotAllowed           = "Method Not Allowed"
	ErrFailedToParseMultipartForm = "Failed to parse multipart form"
	ErrUnsupportedFileType        = "Unsupported file type. Please upload .xlsx or .xls"
	ErrUnknownFileType            = "Unknown file type. Expected payments, orders or returns"
)

// Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "Content-Type"
)

// Date formats
const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
	DayLabelFormat = "02-Jan"
)
