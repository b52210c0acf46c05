package enums

import "fmt"

// Capability names a permission checked against a restaurant membership.
type Capability string

const (
	CapabilityRequestShiftSwap Capability = "request_shift_swap"
	CapabilityApproveShiftSwap Capability = "approve_shift_swap"
)

var validCapabilities = []Capability{
	CapabilityRequestShiftSwap,
	CapabilityApproveShiftSwap,
}

// String implements fmt.Stringer.
func (c Capability) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Capability.
func (c Capability) IsValid() bool {
	for _, candidate := range validCapabilities {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCapability converts raw input into a Capability.
func ParseCapability(value string) (Capability, error) {
	for _, candidate := range validCapabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid capability %q", value)
}
