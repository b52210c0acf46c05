package swaps

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	"github.com/shiftline/shiftline-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for swap requests and their
// audit history. Status mutations go through conditional writes keyed on the
// expected current status so concurrent callers serialize on the row.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.ShiftSwapRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ShiftSwapRequest, error)
	FindActiveByShift(ctx context.Context, shiftID uuid.UUID) (*models.ShiftSwapRequest, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, expected enums.SwapStatus, updates map[string]any) (bool, error)
	FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]models.ShiftSwapRequest, error)
	ExpireIfStale(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error)
	InsertHistory(ctx context.Context, row *models.ShiftSwapHistory) error
	ListHistory(ctx context.Context, swapRequestID uuid.UUID) ([]models.ShiftSwapHistory, error)
	List(ctx context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error)
}

// ShiftAccessor is the narrow surface the engine holds on the scheduling
// subsystem: read a shift, and reassign its owner as part of an approval.
type ShiftAccessor interface {
	FindShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error)
	ReassignOwner(ctx context.Context, tx *gorm.DB, shiftID, currentOwnerID, newOwnerID uuid.UUID) error
}

// PermissionGate answers membership and capability questions for a
// restaurant. Elevated roles are resolved inside the gate.
type PermissionGate interface {
	IsActiveMember(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error)
	HasCapability(ctx context.Context, userID, restaurantID uuid.UUID, capability enums.Capability) (bool, error)
}

// UserDirectory resolves bare user identities.
type UserDirectory interface {
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Notifier delivers fire-and-forget notifications. Errors are logged by the
// caller and never fail the originating operation.
type Notifier interface {
	Notify(ctx context.Context, event NotificationEvent) error
}
