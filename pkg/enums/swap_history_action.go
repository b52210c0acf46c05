package enums

import "fmt"

// SwapHistoryAction labels an immutable shift swap audit row.
type SwapHistoryAction string

const (
	SwapHistoryActionCreated            SwapHistoryAction = "created"
	SwapHistoryActionAcceptedByEmployee SwapHistoryAction = "accepted_by_employee"
	SwapHistoryActionRejectedByEmployee SwapHistoryAction = "rejected_by_employee"
	SwapHistoryActionApproved           SwapHistoryAction = "swap_approved"
	SwapHistoryActionRejectedByManager  SwapHistoryAction = "rejected_by_manager"
	SwapHistoryActionExpired            SwapHistoryAction = "expired"
)

var validSwapHistoryActions = []SwapHistoryAction{
	SwapHistoryActionCreated,
	SwapHistoryActionAcceptedByEmployee,
	SwapHistoryActionRejectedByEmployee,
	SwapHistoryActionApproved,
	SwapHistoryActionRejectedByManager,
	SwapHistoryActionExpired,
}

// String implements fmt.Stringer.
func (a SwapHistoryAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known SwapHistoryAction.
func (a SwapHistoryAction) IsValid() bool {
	for _, candidate := range validSwapHistoryActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseSwapHistoryAction converts raw input into a SwapHistoryAction.
func ParseSwapHistoryAction(value string) (SwapHistoryAction, error) {
	for _, candidate := range validSwapHistoryActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid swap history action %q", value)
}
