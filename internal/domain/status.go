package domain

// Status is an order's fulfilment state. Any status may be set from any other.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusShipped   Status = "Shipped"
	StatusDelivered Status = "Delivered"
)

var Statuses = []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered}

// ParseStatus accepts only the exact names in Statuses.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Tone is the badge class the views use for a status.
func (s Status) Tone() string {
	switch s {
	case StatusDelivered:
		return "success"
	case StatusShipped:
		return "info"
	case StatusConfirmed:
		return "warning"
	default:
		return "error"
	}
}
