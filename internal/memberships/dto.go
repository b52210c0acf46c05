package memberships

import (
	"time"

	"github.com/google/uuid"

	"github.com/shiftline/shiftline-backend/pkg/enums"
)

// MembershipWithRestaurant includes basic restaurant metadata + membership info.
type MembershipWithRestaurant struct {
	MembershipID    uuid.UUID              `json:"membership_id"`
	RestaurantID    uuid.UUID              `json:"restaurant_id"`
	UserID          uuid.UUID              `json:"user_id"`
	RestaurantName  string                 `json:"restaurant_name"`
	Role            enums.MemberRole       `json:"role"`
	Status          enums.MembershipStatus `json:"status"`
	InvitedByUserID *uuid.UUID             `json:"invited_by_user_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
