package swaps

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	"github.com/shiftline/shiftline-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a swaps repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type listSwapsQuery struct {
	RestaurantID  *uuid.UUID
	FromUserID    *uuid.UUID
	ToUserID      *uuid.UUID
	ParticipantID *uuid.UUID
	Statuses      []enums.SwapStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	Limit         int
	Cursor        *pagination.Cursor
}

const swapSummaryColumns = "shift_swap_requests.id, shift_swap_requests.shift_id, " +
	"shifts.restaurant_id AS restaurant_id, shift_swap_requests.from_user_id, " +
	"shift_swap_requests.to_user_id, shift_swap_requests.status, " +
	"shift_swap_requests.requested_at, shift_swap_requests.expires_at, " +
	"shift_swap_requests.responded_at, shift_swap_requests.approved_at, " +
	"shift_swap_requests.approved_by_id, shifts.starts_at AS shift_starts_at, " +
	"shifts.ends_at AS shift_ends_at, shifts.shift_type AS shift_type, " +
	"shift_swap_requests.created_at"

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.ShiftSwapRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ShiftSwapRequest, error) {
	var request models.ShiftSwapRequest
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) FindActiveByShift(ctx context.Context, shiftID uuid.UUID) (*models.ShiftSwapRequest, error) {
	var request models.ShiftSwapRequest
	err := r.db.WithContext(ctx).
		Where("shift_id = ? AND status IN ?", shiftID, enums.ActiveSwapStatuses).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateStatusIf applies updates only when the row still holds the expected
// status. The boolean result reports whether the write landed.
func (r *repository) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected enums.SwapStatus, updates map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShiftSwapRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]models.ShiftSwapRequest, error) {
	var requests []models.ShiftSwapRequest
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", enums.SwapStatusPending, cutoff).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ExpireIfStale repeats the pending-and-overdue predicate in the write so a
// racing respond call and a racing sweep cannot both win the row.
func (r *repository) ExpireIfStale(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShiftSwapRequest{}).
		Where("id = ? AND status = ? AND expires_at < ?", id, enums.SwapStatusPending, cutoff).
		Updates(map[string]any{"status": enums.SwapStatusExpired})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) InsertHistory(ctx context.Context, row *models.ShiftSwapHistory) error {
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) ListHistory(ctx context.Context, swapRequestID uuid.UUID) ([]models.ShiftSwapHistory, error) {
	var rows []models.ShiftSwapHistory
	err := r.db.WithContext(ctx).
		Where("swap_request_id = ?", swapRequestID).
		Order("created_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) List(ctx context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(query.Limit)
	normalized := pagination.NormalizeLimit(query.Limit)

	q := r.db.WithContext(ctx).
		Model(&models.ShiftSwapRequest{}).
		Select(swapSummaryColumns).
		Joins("JOIN shifts ON shifts.id = shift_swap_requests.shift_id")

	if query.RestaurantID != nil {
		q = q.Where("shifts.restaurant_id = ?", *query.RestaurantID)
	}
	if query.FromUserID != nil {
		q = q.Where("shift_swap_requests.from_user_id = ?", *query.FromUserID)
	}
	if query.ToUserID != nil {
		q = q.Where("shift_swap_requests.to_user_id = ?", *query.ToUserID)
	}
	if query.ParticipantID != nil {
		q = q.Where("(shift_swap_requests.from_user_id = ? OR shift_swap_requests.to_user_id = ?)",
			*query.ParticipantID, *query.ParticipantID)
	}
	if len(query.Statuses) > 0 {
		q = q.Where("shift_swap_requests.status IN ?", query.Statuses)
	}
	if query.DateFrom != nil {
		q = q.Where("shift_swap_requests.requested_at >= ?", *query.DateFrom)
	}
	if query.DateTo != nil {
		q = q.Where("shift_swap_requests.requested_at <= ?", *query.DateTo)
	}
	if query.Cursor != nil {
		q = q.Where("(shift_swap_requests.created_at, shift_swap_requests.id) < (?, ?)",
			query.Cursor.CreatedAt, query.Cursor.ID)
	}

	var rows []SwapSummary
	err := q.Order("shift_swap_requests.created_at DESC, shift_swap_requests.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, nil, err
	}

	if len(rows) > normalized {
		next := rows[normalized]
		rows = rows[:normalized]
		return rows, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return rows, nil, nil
}
