package swaps

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
	"github.com/shiftline/shiftline-backend/pkg/logger"
	"github.com/shiftline/shiftline-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubSwapRepo struct {
	createFn            func(ctx context.Context, request *models.ShiftSwapRequest) error
	findByIDFn          func(ctx context.Context, id uuid.UUID) (*models.ShiftSwapRequest, error)
	findActiveByShiftFn func(ctx context.Context, shiftID uuid.UUID) (*models.ShiftSwapRequest, error)
	updateStatusIfFn    func(ctx context.Context, id uuid.UUID, expected enums.SwapStatus, updates map[string]any) (bool, error)
	findExpiredFn       func(ctx context.Context, cutoff time.Time, limit int) ([]models.ShiftSwapRequest, error)
	expireIfStaleFn     func(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error)
	insertHistoryFn     func(ctx context.Context, row *models.ShiftSwapHistory) error
	listHistoryFn       func(ctx context.Context, swapRequestID uuid.UUID) ([]models.ShiftSwapHistory, error)
	listFn              func(ctx context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error)
}

func (s *stubSwapRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubSwapRepo) Create(ctx context.Context, request *models.ShiftSwapRequest) error {
	if s.createFn == nil {
		panic("not implemented")
	}
	return s.createFn(ctx, request)
}

func (s *stubSwapRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ShiftSwapRequest, error) {
	if s.findByIDFn == nil {
		panic("not implemented")
	}
	return s.findByIDFn(ctx, id)
}

func (s *stubSwapRepo) FindActiveByShift(ctx context.Context, shiftID uuid.UUID) (*models.ShiftSwapRequest, error) {
	if s.findActiveByShiftFn == nil {
		panic("not implemented")
	}
	return s.findActiveByShiftFn(ctx, shiftID)
}

func (s *stubSwapRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, expected enums.SwapStatus, updates map[string]any) (bool, error) {
	if s.updateStatusIfFn == nil {
		panic("not implemented")
	}
	return s.updateStatusIfFn(ctx, id, expected, updates)
}

func (s *stubSwapRepo) FindExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]models.ShiftSwapRequest, error) {
	if s.findExpiredFn == nil {
		panic("not implemented")
	}
	return s.findExpiredFn(ctx, cutoff, limit)
}

func (s *stubSwapRepo) ExpireIfStale(ctx context.Context, id uuid.UUID, cutoff time.Time) (bool, error) {
	if s.expireIfStaleFn == nil {
		panic("not implemented")
	}
	return s.expireIfStaleFn(ctx, id, cutoff)
}

func (s *stubSwapRepo) InsertHistory(ctx context.Context, row *models.ShiftSwapHistory) error {
	if s.insertHistoryFn == nil {
		panic("not implemented")
	}
	return s.insertHistoryFn(ctx, row)
}

func (s *stubSwapRepo) ListHistory(ctx context.Context, swapRequestID uuid.UUID) ([]models.ShiftSwapHistory, error) {
	if s.listHistoryFn == nil {
		panic("not implemented")
	}
	return s.listHistoryFn(ctx, swapRequestID)
}

func (s *stubSwapRepo) List(ctx context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error) {
	if s.listFn == nil {
		panic("not implemented")
	}
	return s.listFn(ctx, query)
}

type stubShiftAccessor struct {
	findShiftFn     func(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error)
	reassignOwnerFn func(ctx context.Context, tx *gorm.DB, shiftID, currentOwnerID, newOwnerID uuid.UUID) error
}

func (s *stubShiftAccessor) FindShift(ctx context.Context, shiftID uuid.UUID) (*models.Shift, error) {
	if s.findShiftFn == nil {
		panic("not implemented")
	}
	return s.findShiftFn(ctx, shiftID)
}

func (s *stubShiftAccessor) ReassignOwner(ctx context.Context, tx *gorm.DB, shiftID, currentOwnerID, newOwnerID uuid.UUID) error {
	if s.reassignOwnerFn == nil {
		panic("not implemented")
	}
	return s.reassignOwnerFn(ctx, tx, shiftID, currentOwnerID, newOwnerID)
}

type stubGate struct {
	isActiveMemberFn func(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error)
	hasCapabilityFn  func(ctx context.Context, userID, restaurantID uuid.UUID, capability enums.Capability) (bool, error)
}

func (s *stubGate) IsActiveMember(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	if s.isActiveMemberFn == nil {
		panic("not implemented")
	}
	return s.isActiveMemberFn(ctx, userID, restaurantID)
}

func (s *stubGate) HasCapability(ctx context.Context, userID, restaurantID uuid.UUID, capability enums.Capability) (bool, error) {
	if s.hasCapabilityFn == nil {
		panic("not implemented")
	}
	return s.hasCapabilityFn(ctx, userID, restaurantID, capability)
}

type stubUsers struct {
	userExistsFn func(ctx context.Context, userID uuid.UUID) (bool, error)
}

func (s *stubUsers) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	if s.userExistsFn == nil {
		panic("not implemented")
	}
	return s.userExistsFn(ctx, userID)
}

type recordingNotifier struct {
	events []NotificationEvent
}

func (n *recordingNotifier) Notify(ctx context.Context, event NotificationEvent) error {
	n.events = append(n.events, event)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type swapsFixture struct {
	repo     *stubSwapRepo
	shifts   *stubShiftAccessor
	gate     *stubGate
	users    *stubUsers
	notifier *recordingNotifier
	now      time.Time
}

func newSwapsFixture(t *testing.T) (*swapsFixture, Service) {
	t.Helper()
	fixture := &swapsFixture{
		repo:     &stubSwapRepo{},
		shifts:   &stubShiftAccessor{},
		gate:     &stubGate{},
		users:    &stubUsers{},
		notifier: &recordingNotifier{},
		now:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	svc, err := NewService(ServiceParams{
		Repo:     fixture.repo,
		Shifts:   fixture.shifts,
		Gate:     fixture.gate,
		Users:    fixture.users,
		Notifier: fixture.notifier,
		Tx:       passthroughTx{},
		Logger:   logger.New(logger.Options{ServiceName: "swaps-test", Output: io.Discard}),
		Now:      func() time.Time { return fixture.now },
	})
	require.NoError(t, err)
	return fixture, svc
}

func fixtureShift(owner uuid.UUID, startsAt time.Time) *models.Shift {
	return &models.Shift{
		ID:             uuid.New(),
		RestaurantID:   uuid.New(),
		AssignedUserID: owner,
		ShiftType:      enums.ShiftTypeEvening,
		StartsAt:       startsAt,
		EndsAt:         startsAt.Add(8 * time.Hour),
	}
}

func TestServiceCreate(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	owner := uuid.New()
	recipient := uuid.New()
	shift := fixtureShift(owner, fixture.now.Add(72*time.Hour))

	fixture.shifts.findShiftFn = func(_ context.Context, id uuid.UUID) (*models.Shift, error) {
		require.Equal(t, shift.ID, id)
		return shift, nil
	}
	fixture.gate.hasCapabilityFn = func(_ context.Context, userID, restaurantID uuid.UUID, capability enums.Capability) (bool, error) {
		assert.Equal(t, enums.CapabilityRequestShiftSwap, capability)
		assert.Equal(t, shift.RestaurantID, restaurantID)
		return true, nil
	}
	fixture.gate.isActiveMemberFn = func(_ context.Context, userID, restaurantID uuid.UUID) (bool, error) {
		assert.Equal(t, recipient, userID)
		return true, nil
	}
	fixture.users.userExistsFn = func(_ context.Context, userID uuid.UUID) (bool, error) {
		return true, nil
	}
	fixture.repo.findActiveByShiftFn = func(_ context.Context, shiftID uuid.UUID) (*models.ShiftSwapRequest, error) {
		return nil, nil
	}

	var created *models.ShiftSwapRequest
	var history *models.ShiftSwapHistory
	fixture.repo.createFn = func(_ context.Context, request *models.ShiftSwapRequest) error {
		created = request
		return nil
	}
	fixture.repo.insertHistoryFn = func(_ context.Context, row *models.ShiftSwapHistory) error {
		history = row
		return nil
	}

	request, err := svc.Create(context.Background(), CreateInput{
		ShiftID:    shift.ID,
		FromUserID: owner,
		ToUserID:   recipient,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, enums.SwapStatusPending, request.Status)
	assert.Equal(t, fixture.now, request.RequestedAt)
	assert.Equal(t, fixture.now.Add(48*time.Hour), request.ExpiresAt, "response window is exactly 48 hours")

	require.NotNil(t, history)
	assert.Equal(t, enums.SwapHistoryActionCreated, history.Action)
	require.NotNil(t, history.ActorUserID)
	assert.Equal(t, owner, *history.ActorUserID)
	assert.Equal(t, shift.StartsAt, history.ShiftStartsAt)
	assert.Equal(t, shift.ShiftType, history.ShiftType)

	require.Len(t, fixture.notifier.events, 1)
	event := fixture.notifier.events[0]
	assert.Equal(t, enums.NotificationTypeSwapRequested, event.Kind)
	assert.Equal(t, []uuid.UUID{recipient}, event.Recipients)
	assert.Equal(t, request.ID, event.SwapRequestID)
}

func TestServiceCreatePreconditionOrder(t *testing.T) {
	owner := uuid.New()
	recipient := uuid.New()

	// Each case breaks its own precondition plus every later one, so the
	// returned code proves the checks run in order.
	cases := []struct {
		name     string
		arrange  func(f *swapsFixture, shift *models.Shift, input *CreateInput)
		expected pkgerrors.Code
	}{
		{
			name: "shift not found",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				f.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
					return nil, gorm.ErrRecordNotFound
				}
				input.ToUserID = input.FromUserID
			},
			expected: pkgerrors.CodeShiftNotFound,
		},
		{
			name: "not the shift owner",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				shift.AssignedUserID = uuid.New()
				input.ToUserID = input.FromUserID
			},
			expected: pkgerrors.CodeNotAuthorized,
		},
		{
			name: "missing request permission",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				f.gate.hasCapabilityFn = func(context.Context, uuid.UUID, uuid.UUID, enums.Capability) (bool, error) {
					return false, nil
				}
				shift.StartsAt = f.now.Add(-time.Hour)
				input.ToUserID = input.FromUserID
			},
			expected: pkgerrors.CodeNotAuthorized,
		},
		{
			name: "shift already started",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				shift.StartsAt = f.now.Add(-time.Hour)
				input.ToUserID = input.FromUserID
			},
			expected: pkgerrors.CodeShiftInPast,
		},
		{
			name: "active swap already exists",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				f.repo.findActiveByShiftFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
					return &models.ShiftSwapRequest{ID: uuid.New(), Status: enums.SwapStatusPending}, nil
				}
				input.ToUserID = input.FromUserID
			},
			expected: pkgerrors.CodeSwapAlreadyExists,
		},
		{
			name: "recipient unknown",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				f.users.userExistsFn = func(context.Context, uuid.UUID) (bool, error) {
					return false, nil
				}
			},
			expected: pkgerrors.CodeUserNotFound,
		},
		{
			name: "recipient not in restaurant",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				f.gate.isActiveMemberFn = func(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
					return false, nil
				}
			},
			expected: pkgerrors.CodeUserNotInRestaurant,
		},
		{
			name: "recipient is the requester",
			arrange: func(f *swapsFixture, shift *models.Shift, input *CreateInput) {
				input.ToUserID = input.FromUserID
			},
			expected: pkgerrors.CodeCannotSwapWithSelf,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fixture, svc := newSwapsFixture(t)
			shift := fixtureShift(owner, fixture.now.Add(72*time.Hour))

			// Every precondition passes unless the case breaks it.
			fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
				return shift, nil
			}
			fixture.gate.hasCapabilityFn = func(context.Context, uuid.UUID, uuid.UUID, enums.Capability) (bool, error) {
				return true, nil
			}
			fixture.gate.isActiveMemberFn = func(context.Context, uuid.UUID, uuid.UUID) (bool, error) {
				return true, nil
			}
			fixture.users.userExistsFn = func(context.Context, uuid.UUID) (bool, error) {
				return true, nil
			}
			fixture.repo.findActiveByShiftFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
				return nil, nil
			}

			input := CreateInput{ShiftID: shift.ID, FromUserID: owner, ToUserID: recipient}
			tc.arrange(fixture, shift, &input)

			_, err := svc.Create(context.Background(), input)
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, tc.expected), "want %s, got %v", tc.expected, err)
			assert.Empty(t, fixture.notifier.events, "failed create must not notify")
		})
	}
}

func TestServiceRespond(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	owner := uuid.New()
	recipient := uuid.New()
	shift := fixtureShift(owner, fixture.now.Add(72*time.Hour))
	request := &models.ShiftSwapRequest{
		ID:          uuid.New(),
		ShiftID:     shift.ID,
		FromUserID:  owner,
		ToUserID:    recipient,
		Status:      enums.SwapStatusPending,
		RequestedAt: fixture.now.Add(-time.Hour),
		ExpiresAt:   fixture.now.Add(47 * time.Hour),
	}

	fixture.repo.findByIDFn = func(_ context.Context, id uuid.UUID) (*models.ShiftSwapRequest, error) {
		copied := *request
		return &copied, nil
	}
	fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
		return shift, nil
	}

	var casExpected enums.SwapStatus
	var casUpdates map[string]any
	fixture.repo.updateStatusIfFn = func(_ context.Context, id uuid.UUID, expected enums.SwapStatus, updates map[string]any) (bool, error) {
		casExpected = expected
		casUpdates = updates
		return true, nil
	}
	var history *models.ShiftSwapHistory
	fixture.repo.insertHistoryFn = func(_ context.Context, row *models.ShiftSwapHistory) error {
		history = row
		return nil
	}

	updated, err := svc.Respond(context.Background(), RespondInput{
		RequestID: request.ID,
		ByUserID:  recipient,
		Accept:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.SwapStatusAccepted, updated.Status)
	require.NotNil(t, updated.RespondedAt)
	assert.Equal(t, fixture.now, *updated.RespondedAt)
	assert.Equal(t, enums.SwapStatusPending, casExpected)
	assert.Equal(t, enums.SwapStatusAccepted, casUpdates["status"])

	require.NotNil(t, history)
	assert.Equal(t, enums.SwapHistoryActionAcceptedByEmployee, history.Action)

	require.Len(t, fixture.notifier.events, 1)
	assert.Equal(t, enums.NotificationTypeSwapAccepted, fixture.notifier.events[0].Kind)
	assert.Equal(t, []uuid.UUID{owner}, fixture.notifier.events[0].Recipients)
}

func TestServiceRespondOnlyRecipient(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	request := &models.ShiftSwapRequest{
		ID:         uuid.New(),
		ShiftID:    uuid.New(),
		FromUserID: uuid.New(),
		ToUserID:   uuid.New(),
		Status:     enums.SwapStatusPending,
	}
	fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
		return request, nil
	}

	// The original requester cannot respond to their own offer.
	_, err := svc.Respond(context.Background(), RespondInput{
		RequestID: request.ID,
		ByUserID:  request.FromUserID,
		Accept:    true,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAuthorized))
}

func TestServiceRespondNonPending(t *testing.T) {
	for _, status := range []enums.SwapStatus{
		enums.SwapStatusAccepted,
		enums.SwapStatusRejected,
		enums.SwapStatusExpired,
		enums.SwapStatusApproved,
		enums.SwapStatusManagerRejected,
	} {
		for _, accept := range []bool{true, false} {
			fixture, svc := newSwapsFixture(t)
			recipient := uuid.New()
			fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
				return &models.ShiftSwapRequest{
					ID:       uuid.New(),
					ShiftID:  uuid.New(),
					ToUserID: recipient,
					Status:   status,
				}, nil
			}

			_, err := svc.Respond(context.Background(), RespondInput{
				RequestID: uuid.New(),
				ByUserID:  recipient,
				Accept:    accept,
			})
			require.Error(t, err, "status %s accept=%v", status, accept)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidStatusTransition))
			assert.Empty(t, fixture.notifier.events)
		}
	}
}

func TestServiceDecideApprove(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	owner := uuid.New()
	recipient := uuid.New()
	manager := uuid.New()
	shift := fixtureShift(owner, fixture.now.Add(24*time.Hour))
	request := &models.ShiftSwapRequest{
		ID:         uuid.New(),
		ShiftID:    shift.ID,
		FromUserID: owner,
		ToUserID:   recipient,
		Status:     enums.SwapStatusAccepted,
	}

	fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
		copied := *request
		return &copied, nil
	}
	fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
		return shift, nil
	}
	fixture.gate.hasCapabilityFn = func(_ context.Context, userID, restaurantID uuid.UUID, capability enums.Capability) (bool, error) {
		assert.Equal(t, enums.CapabilityApproveShiftSwap, capability)
		return userID == manager, nil
	}
	fixture.repo.updateStatusIfFn = func(_ context.Context, id uuid.UUID, expected enums.SwapStatus, updates map[string]any) (bool, error) {
		assert.Equal(t, enums.SwapStatusAccepted, expected)
		assert.Equal(t, fixture.now, updates["approved_at"])
		assert.Equal(t, manager, updates["approved_by_id"])
		return true, nil
	}

	reassigned := false
	fixture.shifts.reassignOwnerFn = func(_ context.Context, _ *gorm.DB, shiftID, currentOwnerID, newOwnerID uuid.UUID) error {
		reassigned = true
		assert.Equal(t, shift.ID, shiftID)
		assert.Equal(t, owner, currentOwnerID)
		assert.Equal(t, recipient, newOwnerID)
		return nil
	}
	var history *models.ShiftSwapHistory
	fixture.repo.insertHistoryFn = func(_ context.Context, row *models.ShiftSwapHistory) error {
		history = row
		return nil
	}

	updated, err := svc.Decide(context.Background(), DecisionInput{
		RequestID: request.ID,
		ByUserID:  manager,
		Approve:   true,
	})
	require.NoError(t, err)

	assert.True(t, reassigned)
	assert.Equal(t, enums.SwapStatusApproved, updated.Status)
	require.NotNil(t, updated.ApprovedByID)
	assert.Equal(t, manager, *updated.ApprovedByID)

	require.NotNil(t, history)
	assert.Equal(t, enums.SwapHistoryActionApproved, history.Action)

	require.Len(t, fixture.notifier.events, 1)
	event := fixture.notifier.events[0]
	assert.Equal(t, enums.NotificationTypeSwapApproved, event.Kind)
	assert.ElementsMatch(t, []uuid.UUID{owner, recipient}, event.Recipients)
}

func TestServiceDecideRejectSkipsReassignment(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	owner := uuid.New()
	recipient := uuid.New()
	shift := fixtureShift(owner, fixture.now.Add(24*time.Hour))

	fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
		return &models.ShiftSwapRequest{
			ID:         uuid.New(),
			ShiftID:    shift.ID,
			FromUserID: owner,
			ToUserID:   recipient,
			Status:     enums.SwapStatusAccepted,
		}, nil
	}
	fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
		return shift, nil
	}
	fixture.gate.hasCapabilityFn = func(context.Context, uuid.UUID, uuid.UUID, enums.Capability) (bool, error) {
		return true, nil
	}
	fixture.repo.updateStatusIfFn = func(_ context.Context, _ uuid.UUID, _ enums.SwapStatus, updates map[string]any) (bool, error) {
		assert.Equal(t, enums.SwapStatusManagerRejected, updates["status"])
		assert.NotContains(t, updates, "approved_at")
		return true, nil
	}
	fixture.repo.insertHistoryFn = func(_ context.Context, row *models.ShiftSwapHistory) error {
		assert.Equal(t, enums.SwapHistoryActionRejectedByManager, row.Action)
		return nil
	}

	updated, err := svc.Decide(context.Background(), DecisionInput{
		RequestID: uuid.New(),
		ByUserID:  uuid.New(),
		Approve:   false,
	})
	require.NoError(t, err)

	assert.Equal(t, enums.SwapStatusManagerRejected, updated.Status)
	assert.Nil(t, updated.ApprovedAt)
	require.Len(t, fixture.notifier.events, 1)
	assert.Equal(t, enums.NotificationTypeSwapDeclined, fixture.notifier.events[0].Kind)
}

func TestServiceDecideRequiresAcceptedStatus(t *testing.T) {
	for _, status := range []enums.SwapStatus{
		enums.SwapStatusPending,
		enums.SwapStatusRejected,
		enums.SwapStatusExpired,
		enums.SwapStatusApproved,
		enums.SwapStatusManagerRejected,
	} {
		fixture, svc := newSwapsFixture(t)
		shift := fixtureShift(uuid.New(), fixture.now.Add(24*time.Hour))
		fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
			return &models.ShiftSwapRequest{ID: uuid.New(), ShiftID: shift.ID, Status: status}, nil
		}
		fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
			return shift, nil
		}
		fixture.gate.hasCapabilityFn = func(context.Context, uuid.UUID, uuid.UUID, enums.Capability) (bool, error) {
			return true, nil
		}

		_, err := svc.Decide(context.Background(), DecisionInput{
			RequestID: uuid.New(),
			ByUserID:  uuid.New(),
			Approve:   true,
		})
		require.Error(t, err, "status %s", status)
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidStatusTransition))
		assert.Contains(t, err.Error(), "must be accepted by the employee")
	}
}

func TestServiceDecideRequiresApprovalCapability(t *testing.T) {
	fixture, svc := newSwapsFixture(t)
	shift := fixtureShift(uuid.New(), fixture.now.Add(24*time.Hour))

	fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
		return &models.ShiftSwapRequest{ID: uuid.New(), ShiftID: shift.ID, Status: enums.SwapStatusAccepted}, nil
	}
	fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
		return shift, nil
	}
	fixture.gate.hasCapabilityFn = func(context.Context, uuid.UUID, uuid.UUID, enums.Capability) (bool, error) {
		return false, nil
	}

	_, err := svc.Decide(context.Background(), DecisionInput{
		RequestID: uuid.New(),
		ByUserID:  uuid.New(),
		Approve:   true,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAuthorized))
}

// Runs the approval against a real database so the rollback is exercised for
// real: when reassignment fails the status flip must not survive.
func TestServiceDecideApproveRollsBackOnReassignFailure(t *testing.T) {
	db := setupSwapsTestDB(t)
	ctx := context.Background()

	owner := uuid.New()
	recipient := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	shift := seedShift(t, db, uuid.New(), owner, now.Add(24*time.Hour))
	request := seedRequest(t, db, shift, owner, recipient, enums.SwapStatusAccepted, now.Add(-2*time.Hour))

	shiftAccessor := &stubShiftAccessor{
		findShiftFn: func(context.Context, uuid.UUID) (*models.Shift, error) {
			return shift, nil
		},
		reassignOwnerFn: func(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeSwapExecutionFailed, "shift owner changed during approval")
		},
	}
	gate := &stubGate{
		hasCapabilityFn: func(context.Context, uuid.UUID, uuid.UUID, enums.Capability) (bool, error) {
			return true, nil
		},
	}
	notifier := &recordingNotifier{}

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(db),
		Shifts:   shiftAccessor,
		Gate:     gate,
		Users:    &stubUsers{},
		Notifier: notifier,
		Tx:       gormTxRunner{db: db},
		Logger:   logger.New(logger.Options{ServiceName: "swaps-test", Output: io.Discard}),
		Now:      func() time.Time { return now },
	})
	require.NoError(t, err)

	_, err = svc.Decide(ctx, DecisionInput{
		RequestID: request.ID,
		ByUserID:  uuid.New(),
		Approve:   true,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeSwapExecutionFailed))

	var reloaded models.ShiftSwapRequest
	require.NoError(t, db.Where("id = ?", request.ID).First(&reloaded).Error)
	assert.Equal(t, enums.SwapStatusAccepted, reloaded.Status, "rolled-back approval leaves the request accepted")
	assert.Nil(t, reloaded.ApprovedAt)

	var historyCount int64
	require.NoError(t, db.Model(&models.ShiftSwapHistory{}).
		Where("swap_request_id = ?", request.ID).Count(&historyCount).Error)
	assert.Zero(t, historyCount, "rolled-back approval writes no audit row")
	assert.Empty(t, notifier.events)
}

func TestServiceExpireStale(t *testing.T) {
	db := setupSwapsTestDB(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	staleShift := seedShift(t, db, uuid.New(), uuid.New(), now.Add(time.Hour))
	stale := seedRequest(t, db, staleShift, staleShift.AssignedUserID, uuid.New(), enums.SwapStatusPending, now.Add(-49*time.Hour))

	freshShift := seedShift(t, db, uuid.New(), uuid.New(), now.Add(96*time.Hour))
	fresh := seedRequest(t, db, freshShift, freshShift.AssignedUserID, uuid.New(), enums.SwapStatusPending, now.Add(-time.Hour))

	shiftsByID := map[uuid.UUID]*models.Shift{staleShift.ID: staleShift, freshShift.ID: freshShift}
	notifier := &recordingNotifier{}

	svc, err := NewService(ServiceParams{
		Repo: NewRepository(db),
		Shifts: &stubShiftAccessor{
			findShiftFn: func(_ context.Context, id uuid.UUID) (*models.Shift, error) {
				shift, ok := shiftsByID[id]
				if !ok {
					return nil, gorm.ErrRecordNotFound
				}
				return shift, nil
			},
		},
		Gate:     &stubGate{},
		Users:    &stubUsers{},
		Notifier: notifier,
		Tx:       gormTxRunner{db: db},
		Logger:   logger.New(logger.Options{ServiceName: "swaps-test", Output: io.Discard}),
		Now:      func() time.Time { return now },
	})
	require.NoError(t, err)

	count, err := svc.ExpireStale(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, notifier.events, "expiry is silent")

	var reloaded models.ShiftSwapRequest
	require.NoError(t, db.Where("id = ?", stale.ID).First(&reloaded).Error)
	assert.Equal(t, enums.SwapStatusExpired, reloaded.Status)

	var history []models.ShiftSwapHistory
	require.NoError(t, db.Where("swap_request_id = ?", stale.ID).Find(&history).Error)
	require.Len(t, history, 1)
	assert.Equal(t, enums.SwapHistoryActionExpired, history[0].Action)
	assert.Nil(t, history[0].ActorUserID, "system expiry has no actor")

	var reloadedFresh models.ShiftSwapRequest
	require.NoError(t, db.Where("id = ?", fresh.ID).First(&reloadedFresh).Error)
	assert.Equal(t, enums.SwapStatusPending, reloadedFresh.Status)

	// The sweep is idempotent.
	count, err = svc.ExpireStale(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, db.Where("swap_request_id = ?", stale.ID).Find(&history).Error)
	assert.Len(t, history, 1)

	// A response that lands after expiry is refused.
	_, err = svc.Respond(ctx, RespondInput{
		RequestID: stale.ID,
		ByUserID:  stale.ToUserID,
		Accept:    true,
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidStatusTransition))
}

func TestServiceGetVisibility(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	owner := uuid.New()
	recipient := uuid.New()
	manager := uuid.New()
	stranger := uuid.New()
	shift := fixtureShift(owner, fixture.now.Add(24*time.Hour))
	request := &models.ShiftSwapRequest{
		ID:         uuid.New(),
		ShiftID:    shift.ID,
		FromUserID: owner,
		ToUserID:   recipient,
		Status:     enums.SwapStatusPending,
	}

	fixture.repo.findByIDFn = func(context.Context, uuid.UUID) (*models.ShiftSwapRequest, error) {
		return request, nil
	}
	fixture.shifts.findShiftFn = func(context.Context, uuid.UUID) (*models.Shift, error) {
		return shift, nil
	}
	fixture.gate.hasCapabilityFn = func(_ context.Context, userID, _ uuid.UUID, _ enums.Capability) (bool, error) {
		return userID == manager, nil
	}
	fixture.repo.listHistoryFn = func(context.Context, uuid.UUID) ([]models.ShiftSwapHistory, error) {
		return []models.ShiftSwapHistory{*historyRow(request, shift, enums.SwapHistoryActionCreated, &owner)}, nil
	}

	for _, viewer := range []uuid.UUID{owner, recipient, manager} {
		detail, err := svc.Get(context.Background(), viewer, request.ID)
		require.NoError(t, err)
		assert.Equal(t, request.ID, detail.ID)
		assert.Len(t, detail.History, 1)
	}

	_, err := svc.Get(context.Background(), stranger, request.ID)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAuthorized))
}

func TestServiceListScopesNonApprovers(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	restaurant := uuid.New()
	manager := uuid.New()
	staff := uuid.New()

	fixture.gate.hasCapabilityFn = func(_ context.Context, userID, _ uuid.UUID, _ enums.Capability) (bool, error) {
		return userID == manager, nil
	}
	var lastQuery listSwapsQuery
	fixture.repo.listFn = func(_ context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error) {
		lastQuery = query
		return nil, nil, nil
	}

	_, err := svc.List(context.Background(), ListParams{RestaurantID: restaurant, ViewerID: staff})
	require.NoError(t, err)
	require.NotNil(t, lastQuery.ParticipantID, "non-approvers only see their own requests")
	assert.Equal(t, staff, *lastQuery.ParticipantID)

	_, err = svc.List(context.Background(), ListParams{RestaurantID: restaurant, ViewerID: manager})
	require.NoError(t, err)
	assert.Nil(t, lastQuery.ParticipantID, "approvers see the whole restaurant")
}

func TestServiceListRejectsInvalidStatusFilter(t *testing.T) {
	_, svc := newSwapsFixture(t)

	_, err := svc.List(context.Background(), ListParams{
		RestaurantID: uuid.New(),
		ViewerID:     uuid.New(),
		Filters:      ListFilters{Statuses: []enums.SwapStatus{"cancelled"}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestServiceListPendingApproval(t *testing.T) {
	fixture, svc := newSwapsFixture(t)

	restaurant := uuid.New()
	manager := uuid.New()

	fixture.gate.hasCapabilityFn = func(_ context.Context, userID, _ uuid.UUID, _ enums.Capability) (bool, error) {
		return userID == manager, nil
	}
	var lastQuery listSwapsQuery
	fixture.repo.listFn = func(_ context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error) {
		lastQuery = query
		return nil, nil, nil
	}

	_, err := svc.ListPendingApproval(context.Background(), ApprovalQueueParams{
		RestaurantID: restaurant,
		ViewerID:     manager,
	})
	require.NoError(t, err)
	assert.Equal(t, []enums.SwapStatus{enums.SwapStatusAccepted}, lastQuery.Statuses)

	_, err = svc.ListPendingApproval(context.Background(), ApprovalQueueParams{
		RestaurantID: restaurant,
		ViewerID:     uuid.New(),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotAuthorized))
}

func TestServiceIncomingOutgoing(t *testing.T) {
	fixture, svc := newSwapsFixture(t)
	user := uuid.New()

	var lastQuery listSwapsQuery
	fixture.repo.listFn = func(_ context.Context, query listSwapsQuery) ([]SwapSummary, *pagination.Cursor, error) {
		lastQuery = query
		return nil, nil, nil
	}

	_, err := svc.ListIncoming(context.Background(), user, pagination.Params{})
	require.NoError(t, err)
	require.NotNil(t, lastQuery.ToUserID)
	assert.Equal(t, user, *lastQuery.ToUserID)
	assert.Nil(t, lastQuery.FromUserID)

	_, err = svc.ListOutgoing(context.Background(), user, pagination.Params{})
	require.NoError(t, err)
	require.NotNil(t, lastQuery.FromUserID)
	assert.Equal(t, user, *lastQuery.FromUserID)
	assert.Nil(t, lastQuery.ToUserID)
}
