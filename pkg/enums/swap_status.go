package enums

import "fmt"

// SwapStatus tracks the lifecycle of a shift swap request.
type SwapStatus string

const (
	SwapStatusPending         SwapStatus = "pending"
	SwapStatusAccepted        SwapStatus = "accepted"
	SwapStatusRejected        SwapStatus = "rejected"
	SwapStatusApproved        SwapStatus = "approved"
	SwapStatusManagerRejected SwapStatus = "manager_rejected"
	SwapStatusExpired         SwapStatus = "expired"
)

var validSwapStatuses = []SwapStatus{
	SwapStatusPending,
	SwapStatusAccepted,
	SwapStatusRejected,
	SwapStatusApproved,
	SwapStatusManagerRejected,
	SwapStatusExpired,
}

// ActiveSwapStatuses are the statuses that block a second request for the same shift.
var ActiveSwapStatuses = []SwapStatus{SwapStatusPending, SwapStatusAccepted}

// String implements fmt.Stringer.
func (s SwapStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SwapStatus.
func (s SwapStatus) IsValid() bool {
	for _, candidate := range validSwapStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s SwapStatus) IsTerminal() bool {
	switch s {
	case SwapStatusRejected, SwapStatusApproved, SwapStatusManagerRejected, SwapStatusExpired:
		return true
	default:
		return false
	}
}

// ParseSwapStatus converts raw input into a SwapStatus.
func ParseSwapStatus(value string) (SwapStatus, error) {
	for _, candidate := range validSwapStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid swap status %q", value)
}
