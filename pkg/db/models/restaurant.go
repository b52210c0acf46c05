package models

import (
	"time"

	"github.com/google/uuid"
)

// Restaurant represents the canonical tenant model.
type Restaurant struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Timezone  string    `gorm:"column:timezone;not null;default:'UTC'"`
	Address   *string   `gorm:"column:address"`
	Phone     *string   `gorm:"column:phone"`
	Email     *string   `gorm:"column:email"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
