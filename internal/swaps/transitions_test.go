package swaps

import (
	"testing"

	"github.com/shiftline/shiftline-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func TestIsValidTransition(t *testing.T) {
	all := []enums.SwapStatus{
		enums.SwapStatusPending,
		enums.SwapStatusAccepted,
		enums.SwapStatusRejected,
		enums.SwapStatusApproved,
		enums.SwapStatusManagerRejected,
		enums.SwapStatusExpired,
	}

	legal := map[enums.SwapStatus]map[enums.SwapStatus]bool{
		enums.SwapStatusPending: {
			enums.SwapStatusAccepted: true,
			enums.SwapStatusRejected: true,
			enums.SwapStatusExpired:  true,
		},
		enums.SwapStatusAccepted: {
			enums.SwapStatusApproved:        true,
			enums.SwapStatusManagerRejected: true,
		},
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[from][to]
			assert.Equalf(t, want, isValidTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	for _, status := range []enums.SwapStatus{
		enums.SwapStatusRejected,
		enums.SwapStatusApproved,
		enums.SwapStatusManagerRejected,
		enums.SwapStatusExpired,
	} {
		assert.True(t, status.IsTerminal(), status)
		assert.Empty(t, legalTransitions[status])
	}
}
