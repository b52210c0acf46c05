package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftline/shiftline-backend/pkg/enums"
)

// ShiftSwapHistory is an append-only audit row recorded for every transition
// that changes a swap request's disposition. Shift fields are snapshotted at
// write time so the timeline stays accurate even if the shift is later edited
// or reassigned again.
type ShiftSwapHistory struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SwapRequestID uuid.UUID               `gorm:"column:swap_request_id;type:uuid;not null"`
	ShiftID       uuid.UUID               `gorm:"column:shift_id;type:uuid;not null"`
	RestaurantID  uuid.UUID               `gorm:"column:restaurant_id;type:uuid;not null"`
	Action        enums.SwapHistoryAction `gorm:"column:action;type:swap_history_action;not null"`
	FromUserID    uuid.UUID               `gorm:"column:from_user_id;type:uuid;not null"`
	ToUserID      uuid.UUID               `gorm:"column:to_user_id;type:uuid;not null"`
	ActorUserID   *uuid.UUID              `gorm:"column:actor_user_id;type:uuid"`
	ShiftStartsAt time.Time               `gorm:"column:shift_starts_at;not null"`
	ShiftEndsAt   time.Time               `gorm:"column:shift_ends_at;not null"`
	ShiftType     enums.ShiftType         `gorm:"column:shift_type;type:shift_type;not null"`
	RequestedAt   time.Time               `gorm:"column:requested_at;not null"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides gorm's pluralization.
func (ShiftSwapHistory) TableName() string {
	return "shift_swap_history"
}
