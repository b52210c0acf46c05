package memberships

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	"gorm.io/gorm"
)

// capabilitiesByRole is the role→capability table consulted when a role is
// not elevated. Owners and admins bypass the table entirely.
var capabilitiesByRole = map[enums.MemberRole][]enums.Capability{
	enums.MemberRoleManager: {
		enums.CapabilityRequestShiftSwap,
		enums.CapabilityApproveShiftSwap,
	},
	enums.MemberRoleStaff: {
		enums.CapabilityRequestShiftSwap,
	},
}

// Repository exposes membership persistence plus the permission gate the
// swap engine consumes.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds the repo to the provided GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListUserRestaurants returns the restaurants a user belongs to along with
// membership metadata.
func (r *Repository) ListUserRestaurants(ctx context.Context, userID uuid.UUID) ([]MembershipWithRestaurant, error) {
	var rows []membershipWithRestaurantRow

	err := r.db.WithContext(ctx).
		Model(&models.RestaurantMembership{}).
		Select("restaurant_memberships.*, restaurants.name AS restaurant_name").
		Joins("JOIN restaurants ON restaurants.id = restaurant_memberships.restaurant_id").
		Where("restaurant_memberships.user_id = ?", userID).
		Order("restaurants.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]MembershipWithRestaurant, 0, len(rows))
	for _, row := range rows {
		out = append(out, MembershipWithRestaurant{
			MembershipID:    row.ID,
			RestaurantID:    row.RestaurantID,
			UserID:          row.UserID,
			RestaurantName:  row.RestaurantName,
			Role:            row.Role,
			Status:          row.Status,
			InvitedByUserID: row.InvitedByUserID,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
	}
	return out, nil
}

type membershipWithRestaurantRow struct {
	models.RestaurantMembership
	RestaurantName string
}

// GetMembership retrieves a membership by user and restaurant.
func (r *Repository) GetMembership(ctx context.Context, userID, restaurantID uuid.UUID) (*models.RestaurantMembership, error) {
	var membership models.RestaurantMembership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// CreateMembership persists a new membership record.
func (r *Repository) CreateMembership(ctx context.Context, restaurantID, userID uuid.UUID, role enums.MemberRole, invitedBy *uuid.UUID, status enums.MembershipStatus) (*models.RestaurantMembership, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role %q", role)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid membership status %q", status)
	}

	membership := &models.RestaurantMembership{
		RestaurantID:    restaurantID,
		UserID:          userID,
		Role:            role,
		Status:          status,
		InvitedByUserID: invitedBy,
	}

	if err := r.db.WithContext(ctx).Create(membership).Error; err != nil {
		return nil, err
	}
	return membership, nil
}

// IsActiveMember reports whether the user holds an active membership in the
// restaurant.
func (r *Repository) IsActiveMember(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RestaurantMembership{}).
		Where("user_id = ? AND restaurant_id = ? AND status = ?", userID, restaurantID, enums.MembershipStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasCapability reports whether the user may perform the capability in the
// restaurant. Elevated roles pass unconditionally; everyone else goes
// through the role table. Inactive or missing memberships never pass.
func (r *Repository) HasCapability(ctx context.Context, userID, restaurantID uuid.UUID, capability enums.Capability) (bool, error) {
	membership, err := r.GetMembership(ctx, userID, restaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	if membership.Status != enums.MembershipStatusActive {
		return false, nil
	}
	if membership.Role.IsElevated() {
		return true, nil
	}
	for _, granted := range capabilitiesByRole[membership.Role] {
		if granted == capability {
			return true, nil
		}
	}
	return false, nil
}

// UserHasRole reports whether the user holds one of the provided roles for
// the restaurant.
func (r *Repository) UserHasRole(ctx context.Context, userID, restaurantID uuid.UUID, roles ...enums.MemberRole) (bool, error) {
	if len(roles) == 0 {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RestaurantMembership{}).
		Where("user_id = ? AND restaurant_id = ? AND role IN ?", userID, restaurantID, roles).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
