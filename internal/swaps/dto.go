package swaps

import (
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	"github.com/shiftline/shiftline-backend/pkg/pagination"
)

// CreateInput captures the data required to open a swap request.
type CreateInput struct {
	ShiftID    uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
}

// RespondInput carries the proposed recipient's accept/reject decision.
type RespondInput struct {
	RequestID uuid.UUID
	ByUserID  uuid.UUID
	Accept    bool
}

// DecisionInput carries the manager's approve/reject decision on an
// employee-accepted swap.
type DecisionInput struct {
	RequestID uuid.UUID
	ByUserID  uuid.UUID
	Approve   bool
}

// ListFilters describe the optional narrowing inputs for swap lists.
// Date bounds apply to requested_at.
type ListFilters struct {
	Statuses []enums.SwapStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// ListParams configures a restaurant-scoped swap list. Visibility is decided
// per viewer: approvers see every request in the restaurant, everyone else
// sees only requests they are a party to.
type ListParams struct {
	RestaurantID uuid.UUID
	ViewerID     uuid.UUID
	Filters      ListFilters
	Page         pagination.Params
}

// ApprovalQueueParams configures the pending-manager-approval list.
type ApprovalQueueParams struct {
	RestaurantID uuid.UUID
	ViewerID     uuid.UUID
	Page         pagination.Params
}

// SwapSummary is the flattened row returned by swap lists, joining the
// request with the current shift window so clients can render a schedule
// without a second lookup.
type SwapSummary struct {
	ID            uuid.UUID        `json:"id"`
	ShiftID       uuid.UUID        `json:"shift_id"`
	RestaurantID  uuid.UUID        `json:"restaurant_id"`
	FromUserID    uuid.UUID        `json:"from_user_id"`
	ToUserID      uuid.UUID        `json:"to_user_id"`
	Status        enums.SwapStatus `json:"status"`
	RequestedAt   time.Time        `json:"requested_at"`
	ExpiresAt     time.Time        `json:"expires_at"`
	RespondedAt   *time.Time       `json:"responded_at,omitempty"`
	ApprovedAt    *time.Time       `json:"approved_at,omitempty"`
	ApprovedByID  *uuid.UUID       `json:"approved_by_id,omitempty"`
	ShiftStartsAt time.Time        `json:"shift_starts_at"`
	ShiftEndsAt   time.Time        `json:"shift_ends_at"`
	ShiftType     enums.ShiftType  `json:"shift_type"`
	CreatedAt     time.Time        `json:"created_at"`
}

// SwapList wraps a page of summaries plus the cursor for the next page.
type SwapList struct {
	Swaps      []SwapSummary `json:"swaps"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// HistoryEntry is one immutable audit row in a swap's timeline.
type HistoryEntry struct {
	ID            uuid.UUID               `json:"id"`
	Action        enums.SwapHistoryAction `json:"action"`
	FromUserID    uuid.UUID               `json:"from_user_id"`
	ToUserID      uuid.UUID               `json:"to_user_id"`
	ActorUserID   *uuid.UUID              `json:"actor_user_id,omitempty"`
	ShiftStartsAt time.Time               `json:"shift_starts_at"`
	ShiftEndsAt   time.Time               `json:"shift_ends_at"`
	ShiftType     enums.ShiftType         `json:"shift_type"`
	CreatedAt     time.Time               `json:"created_at"`
}

// SwapDetail combines a summary with the full audit timeline.
type SwapDetail struct {
	SwapSummary
	History []HistoryEntry `json:"history"`
}

// NotificationEvent is the fire-and-forget payload handed to the notifier
// after a state change commits.
type NotificationEvent struct {
	Kind          enums.NotificationType
	RestaurantID  uuid.UUID
	Recipients    []uuid.UUID
	SwapRequestID uuid.UUID
	ShiftID       uuid.UUID
	ShiftStartsAt time.Time
}
