package shifts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository exposes the shift surface the swap engine and the schedule
// endpoints rely on.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, shift *models.Shift) error
	FindShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error)
	ReassignOwner(ctx context.Context, tx *gorm.DB, shiftID, currentOwnerID, newOwnerID uuid.UUID) error
	ListSchedule(ctx context.Context, params ScheduleParams) ([]models.Shift, error)
}

// ScheduleParams narrows the schedule listing.
type ScheduleParams struct {
	RestaurantID   uuid.UUID
	AssignedUserID *uuid.UUID
	From           *time.Time
	To             *time.Time
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shifts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shift *models.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *repository) FindShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error) {
	var shift models.Shift
	err := r.db.WithContext(ctx).
		Where("id = ?", shiftID).
		First(&shift).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

// ReassignOwner flips the shift's assignee only while the expected owner
// still holds it. A zero-row result means the shift changed hands since the
// swap was validated and the approval must not commit.
func (r *repository) ReassignOwner(ctx context.Context, tx *gorm.DB, shiftID, currentOwnerID, newOwnerID uuid.UUID) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	result := db.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ? AND assigned_user_id = ?", shiftID, currentOwnerID).
		Updates(map[string]any{"assigned_user_id": newOwnerID})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeSwapExecutionFailed, result.Error, "reassign shift owner")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeSwapExecutionFailed, "shift owner changed during approval")
	}
	return nil
}

func (r *repository) ListSchedule(ctx context.Context, params ScheduleParams) ([]models.Shift, error) {
	query := r.db.WithContext(ctx).
		Where("restaurant_id = ?", params.RestaurantID)
	if params.AssignedUserID != nil {
		query = query.Where("assigned_user_id = ?", *params.AssignedUserID)
	}
	if params.From != nil {
		query = query.Where("starts_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("starts_at <= ?", *params.To)
	}

	var shifts []models.Shift
	if err := query.Order("starts_at ASC, id ASC").Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}
