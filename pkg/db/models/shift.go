package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftline/shiftline-backend/pkg/enums"
)

// Shift is a scheduled block of work assigned to exactly one employee.
// AssignedUserID is mutated by the swap engine only when an approved swap
// request commits; everything else about the shift is owned by scheduling.
type Shift struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID   uuid.UUID       `gorm:"column:restaurant_id;type:uuid;not null"`
	AssignedUserID uuid.UUID       `gorm:"column:assigned_user_id;type:uuid;not null"`
	ShiftType      enums.ShiftType `gorm:"column:shift_type;type:shift_type;not null"`
	StartsAt       time.Time       `gorm:"column:starts_at;not null"`
	EndsAt         time.Time       `gorm:"column:ends_at;not null"`
	Position       *string         `gorm:"column:position"`
	Notes          *string         `gorm:"column:notes"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
