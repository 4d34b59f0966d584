package recon

import "strings"

// Status is the closed classification of a free-text order status. Every
// aggregator classifies through ClassifyStatus so the substring rules cannot
// drift between dashboards.
type Status int

const (
	StatusUnknown Status = iota
	StatusDelivered
	StatusRTO
	StatusReturn
	StatusShipped
	StatusCancelled
	StatusExchanged
)

var statusNames = map[Status]string{
	StatusUnknown:   "Unknown",
	StatusDelivered: "Delivered",
	StatusRTO:       "RTO",
	StatusReturn:    "Return",
	StatusShipped:   "Shipped",
	StatusCancelled: "Cancelled",
	StatusExchanged: "Exchanged",
}

func (s Status) String() string {
	return statusNames[s]
}

// ClassifyStatus maps a raw marketplace status to the closed set. Matching is
// case-insensitive substring containment, checked in priority order; exact
// matching would miss variants like "RTO Complete" or "Return Initiated".
func ClassifyStatus(raw string) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(s, "delivered"):
		return StatusDelivered
	case strings.Contains(s, "rto"):
		return StatusRTO
	case strings.Contains(s, "return"):
		return StatusReturn
	case strings.Contains(s, "shipped"):
		return StatusShipped
	case strings.Contains(s, "cancelled"):
		return StatusCancelled
	case strings.Contains(s, "exchange"):
		return StatusExchanged
	default:
		return StatusUnknown
	}
}
