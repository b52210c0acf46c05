package swaps

import "github.com/shiftline/shiftline-backend/pkg/enums"

// legalTransitions is the complete state table for a swap request. A status
// absent from the map is terminal; a target absent from the slice is illegal.
var legalTransitions = map[enums.SwapStatus][]enums.SwapStatus{
	enums.SwapStatusPending: {
		enums.SwapStatusAccepted,
		enums.SwapStatusRejected,
		enums.SwapStatusExpired,
	},
	enums.SwapStatusAccepted: {
		enums.SwapStatusApproved,
		enums.SwapStatusManagerRejected,
	},
}

// isValidTransition reports whether a swap request may move from one status
// to another. It is total over all status pairs.
func isValidTransition(from, to enums.SwapStatus) bool {
	for _, candidate := range legalTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
