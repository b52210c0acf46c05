package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftline/shiftline-backend/pkg/enums"
)

// ShiftSwapRequest is the central entity of the swap lifecycle engine.
// At most one request per shift may be in an active status (pending or
// accepted); the partial unique index in the migration backs the invariant
// the repository enforces at creation time. Once the status reaches a
// terminal value the row is never mutated again.
type ShiftSwapRequest struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShiftID      uuid.UUID        `gorm:"column:shift_id;type:uuid;not null"`
	FromUserID   uuid.UUID        `gorm:"column:from_user_id;type:uuid;not null"`
	ToUserID     uuid.UUID        `gorm:"column:to_user_id;type:uuid;not null"`
	Status       enums.SwapStatus `gorm:"column:status;type:swap_status;not null;default:'pending'"`
	RequestedAt  time.Time        `gorm:"column:requested_at;not null"`
	ExpiresAt    time.Time        `gorm:"column:expires_at;not null"`
	RespondedAt  *time.Time       `gorm:"column:responded_at"`
	ApprovedAt   *time.Time       `gorm:"column:approved_at"`
	ApprovedByID *uuid.UUID       `gorm:"column:approved_by_id;type:uuid"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
