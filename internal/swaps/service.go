package swaps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	pkgerrors "github.com/shiftline/shiftline-backend/pkg/errors"
	"github.com/shiftline/shiftline-backend/pkg/logger"
	"github.com/shiftline/shiftline-backend/pkg/pagination"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// DefaultResponseWindow bounds how long the proposed recipient has to
// respond before the request expires.
const DefaultResponseWindow = 48 * time.Hour

const sweepBatchSize = 500

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the swap lifecycle orchestrator. Every mutation is linearized
// through a conditional status write, so operations are safe to retry.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.ShiftSwapRequest, error)
	Respond(ctx context.Context, input RespondInput) (*models.ShiftSwapRequest, error)
	Decide(ctx context.Context, input DecisionInput) (*models.ShiftSwapRequest, error)
	Get(ctx context.Context, viewerID, requestID uuid.UUID) (*SwapDetail, error)
	List(ctx context.Context, params ListParams) (*SwapList, error)
	ListIncoming(ctx context.Context, userID uuid.UUID, page pagination.Params) (*SwapList, error)
	ListOutgoing(ctx context.Context, userID uuid.UUID, page pagination.Params) (*SwapList, error)
	ListPendingApproval(ctx context.Context, params ApprovalQueueParams) (*SwapList, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

type service struct {
	repo           Repository
	shifts         ShiftAccessor
	gate           PermissionGate
	users          UserDirectory
	notifier       Notifier
	tx             txRunner
	logg           *logger.Logger
	responseWindow time.Duration
	now            func() time.Time
}

// ServiceParams collects the orchestrator's dependencies.
type ServiceParams struct {
	Repo           Repository
	Shifts         ShiftAccessor
	Gate           PermissionGate
	Users          UserDirectory
	Notifier       Notifier
	Tx             txRunner
	Logger         *logger.Logger
	ResponseWindow time.Duration
	Now            func() time.Time
}

// NewService builds the swap lifecycle service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("swaps repository required")
	}
	if params.Shifts == nil {
		return nil, fmt.Errorf("shift accessor required")
	}
	if params.Gate == nil {
		return nil, fmt.Errorf("permission gate required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("user directory required")
	}
	if params.Notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.ResponseWindow <= 0 {
		params.ResponseWindow = DefaultResponseWindow
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		repo:           params.Repo,
		shifts:         params.Shifts,
		gate:           params.Gate,
		users:          params.Users,
		notifier:       params.Notifier,
		tx:             params.Tx,
		logg:           params.Logger,
		responseWindow: params.ResponseWindow,
		now:            params.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.ShiftSwapRequest, error) {
	if input.ShiftID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift id required")
	}
	if input.FromUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if input.ToUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipient user id required")
	}

	now := s.now().UTC()

	shift, err := s.shifts.FindShift(ctx, input.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeShiftNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
	}
	if shift.AssignedUserID != input.FromUserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotAuthorized, "only the shift owner can offer it for swap")
	}

	allowed, err := s.gate.HasCapability(ctx, input.FromUserID, shift.RestaurantID, enums.CapabilityRequestShiftSwap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check swap-request permission")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeNotAuthorized, "missing permission to request shift swaps")
	}

	if !shift.StartsAt.After(now) {
		return nil, pkgerrors.New(pkgerrors.CodeShiftInPast, "shift has already started")
	}

	existing, err := s.repo.FindActiveByShift(ctx, input.ShiftID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check active swap requests")
	}
	if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeSwapAlreadyExists, "shift already has an active swap request").
			WithDetails(map[string]any{"existing_request_id": existing.ID, "existing_status": existing.Status})
	}

	exists, err := s.users.UserExists(ctx, input.ToUserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve recipient user")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeUserNotFound, "recipient user not found")
	}
	member, err := s.gate.IsActiveMember(ctx, input.ToUserID, shift.RestaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check recipient membership")
	}
	if !member {
		return nil, pkgerrors.New(pkgerrors.CodeUserNotInRestaurant, "recipient is not an active member of the restaurant")
	}

	if input.ToUserID == input.FromUserID {
		return nil, pkgerrors.New(pkgerrors.CodeCannotSwapWithSelf, "cannot swap a shift with yourself")
	}

	request := &models.ShiftSwapRequest{
		ID:          uuid.New(),
		ShiftID:     input.ShiftID,
		FromUserID:  input.FromUserID,
		ToUserID:    input.ToUserID,
		Status:      enums.SwapStatusPending,
		RequestedAt: now,
		ExpiresAt:   now.Add(s.responseWindow),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, request); err != nil {
			if pkgerrors.UniqueViolation(err) {
				return pkgerrors.New(pkgerrors.CodeSwapAlreadyExists, "shift already has an active swap request")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert swap request")
		}
		row := historyRow(request, shift, enums.SwapHistoryActionCreated, &input.FromUserID)
		if err := repo.InsertHistory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record swap history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, NotificationEvent{
		Kind:          enums.NotificationTypeSwapRequested,
		RestaurantID:  shift.RestaurantID,
		Recipients:    []uuid.UUID{input.ToUserID},
		SwapRequestID: request.ID,
		ShiftID:       shift.ID,
		ShiftStartsAt: shift.StartsAt,
	})
	return request, nil
}

func (s *service) Respond(ctx context.Context, input RespondInput) (*models.ShiftSwapRequest, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swap request id required")
	}
	if input.ByUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	now := s.now().UTC()

	request, err := s.loadRequest(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if request.ToUserID != input.ByUserID {
		return nil, pkgerrors.New(pkgerrors.CodeNotAuthorized, "only the proposed recipient may respond")
	}

	target := enums.SwapStatusRejected
	action := enums.SwapHistoryActionRejectedByEmployee
	kind := enums.NotificationTypeSwapRejected
	if input.Accept {
		target = enums.SwapStatusAccepted
		action = enums.SwapHistoryActionAcceptedByEmployee
		kind = enums.NotificationTypeSwapAccepted
	}
	if request.Status != enums.SwapStatusPending || !isValidTransition(request.Status, target) {
		return nil, invalidTransition(request.Status, target)
	}

	shift, err := s.loadShift(ctx, request.ShiftID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		won, err := repo.UpdateStatusIf(ctx, request.ID, enums.SwapStatusPending, map[string]any{
			"status":       target,
			"responded_at": now,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update swap status")
		}
		if !won {
			return invalidTransition(enums.SwapStatusPending, target)
		}
		row := historyRow(request, shift, action, &input.ByUserID)
		if err := repo.InsertHistory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record swap history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = target
	request.RespondedAt = &now

	s.notify(ctx, NotificationEvent{
		Kind:          kind,
		RestaurantID:  shift.RestaurantID,
		Recipients:    []uuid.UUID{request.FromUserID},
		SwapRequestID: request.ID,
		ShiftID:       shift.ID,
		ShiftStartsAt: shift.StartsAt,
	})
	return request, nil
}

func (s *service) Decide(ctx context.Context, input DecisionInput) (*models.ShiftSwapRequest, error) {
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swap request id required")
	}
	if input.ByUserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	now := s.now().UTC()

	request, err := s.loadRequest(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	shift, err := s.loadShift(ctx, request.ShiftID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.gate.HasCapability(ctx, input.ByUserID, shift.RestaurantID, enums.CapabilityApproveShiftSwap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check swap-approval permission")
	}
	if !allowed {
		return nil, pkgerrors.New(pkgerrors.CodeNotAuthorized, "missing permission to decide shift swaps")
	}

	target := enums.SwapStatusManagerRejected
	action := enums.SwapHistoryActionRejectedByManager
	kind := enums.NotificationTypeSwapDeclined
	if input.Approve {
		target = enums.SwapStatusApproved
		action = enums.SwapHistoryActionApproved
		kind = enums.NotificationTypeSwapApproved
	}
	if request.Status != enums.SwapStatusAccepted || !isValidTransition(request.Status, target) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidStatusTransition,
			fmt.Sprintf("swap must be accepted by the employee before a manager decision; current status is %s", request.Status)).
			WithDetails(transitionDetails(request.Status, target))
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		updates := map[string]any{"status": target}
		if input.Approve {
			updates["approved_at"] = now
			updates["approved_by_id"] = input.ByUserID
		}
		won, err := repo.UpdateStatusIf(ctx, request.ID, enums.SwapStatusAccepted, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update swap status")
		}
		if !won {
			return invalidTransition(enums.SwapStatusAccepted, target)
		}

		if input.Approve {
			// Reassignment and the status flip commit together or not at all.
			if err := s.shifts.ReassignOwner(ctx, tx, shift.ID, request.FromUserID, request.ToUserID); err != nil {
				if pkgerrors.HasCode(err, pkgerrors.CodeSwapExecutionFailed) {
					return err
				}
				return pkgerrors.Wrap(pkgerrors.CodeSwapExecutionFailed, err, "reassign shift owner")
			}
		}

		row := historyRow(request, shift, action, &input.ByUserID)
		if err := repo.InsertHistory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record swap history")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	request.Status = target
	if input.Approve {
		request.ApprovedAt = &now
		request.ApprovedByID = &input.ByUserID
	}

	s.notify(ctx, NotificationEvent{
		Kind:          kind,
		RestaurantID:  shift.RestaurantID,
		Recipients:    []uuid.UUID{request.FromUserID, request.ToUserID},
		SwapRequestID: request.ID,
		ShiftID:       shift.ID,
		ShiftStartsAt: shift.StartsAt,
	})
	return request, nil
}

func (s *service) Get(ctx context.Context, viewerID, requestID uuid.UUID) (*SwapDetail, error) {
	if viewerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "swap request id required")
	}

	request, err := s.loadRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	shift, err := s.loadShift(ctx, request.ShiftID)
	if err != nil {
		return nil, err
	}

	if viewerID != request.FromUserID && viewerID != request.ToUserID {
		approver, err := s.gate.HasCapability(ctx, viewerID, shift.RestaurantID, enums.CapabilityApproveShiftSwap)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check swap-approval permission")
		}
		if !approver {
			return nil, pkgerrors.New(pkgerrors.CodeNotAuthorized, "swap request is not visible to this user")
		}
	}

	rows, err := s.repo.ListHistory(ctx, request.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load swap history")
	}

	detail := &SwapDetail{
		SwapSummary: summarize(request, shift),
		History:     make([]HistoryEntry, 0, len(rows)),
	}
	for _, row := range rows {
		detail.History = append(detail.History, HistoryEntry{
			ID:            row.ID,
			Action:        row.Action,
			FromUserID:    row.FromUserID,
			ToUserID:      row.ToUserID,
			ActorUserID:   row.ActorUserID,
			ShiftStartsAt: row.ShiftStartsAt,
			ShiftEndsAt:   row.ShiftEndsAt,
			ShiftType:     row.ShiftType,
			CreatedAt:     row.CreatedAt,
		})
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*SwapList, error) {
	if params.RestaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}
	if params.ViewerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	for _, status := range params.Filters.Statuses {
		if !status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid status filter %q", status))
		}
	}

	query := listSwapsQuery{
		RestaurantID: &params.RestaurantID,
		Statuses:     params.Filters.Statuses,
		DateFrom:     params.Filters.DateFrom,
		DateTo:       params.Filters.DateTo,
		Limit:        params.Page.Limit,
	}

	approver, err := s.gate.HasCapability(ctx, params.ViewerID, params.RestaurantID, enums.CapabilityApproveShiftSwap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check swap-approval permission")
	}
	if !approver {
		viewer := params.ViewerID
		query.ParticipantID = &viewer
	}

	return s.list(ctx, query, params.Page.Cursor)
}

func (s *service) ListIncoming(ctx context.Context, userID uuid.UUID, page pagination.Params) (*SwapList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.list(ctx, listSwapsQuery{ToUserID: &userID, Limit: page.Limit}, page.Cursor)
}

func (s *service) ListOutgoing(ctx context.Context, userID uuid.UUID, page pagination.Params) (*SwapList, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	return s.list(ctx, listSwapsQuery{FromUserID: &userID, Limit: page.Limit}, page.Cursor)
}

func (s *service) ListPendingApproval(ctx context.Context, params ApprovalQueueParams) (*SwapList, error) {
	if params.RestaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id required")
	}
	if params.ViewerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	approver, err := s.gate.HasCapability(ctx, params.ViewerID, params.RestaurantID, enums.CapabilityApproveShiftSwap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check swap-approval permission")
	}
	if !approver {
		return nil, pkgerrors.New(pkgerrors.CodeNotAuthorized, "missing permission to review shift swaps")
	}

	query := listSwapsQuery{
		RestaurantID: &params.RestaurantID,
		Statuses:     []enums.SwapStatus{enums.SwapStatusAccepted},
		Limit:        params.Page.Limit,
	}
	return s.list(ctx, query, params.Page.Cursor)
}

// ExpireStale transitions every overdue pending request to expired and
// records the audit row. Idempotent: a second sweep, or a sweep racing a
// human response, finds the predicate false and skips the row. Expiry is
// silent, no notification is sent.
func (s *service) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	now = now.UTC()
	var expired int64
	for {
		candidates, err := s.repo.FindExpiredPending(ctx, now, sweepBatchSize)
		if err != nil {
			return expired, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find expired pending swaps")
		}
		if len(candidates) == 0 {
			return expired, nil
		}

		var errs []error
		for i := range candidates {
			request := candidates[i]
			won, err := s.expireOne(ctx, &request, now)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if won {
				expired++
			}
		}
		// A failed row stays pending and would be re-fetched forever, so a
		// batch with errors ends the sweep and reports them.
		if len(errs) > 0 {
			return expired, multierr.Combine(errs...)
		}

		if len(candidates) < sweepBatchSize {
			return expired, nil
		}
	}
}

func (s *service) expireOne(ctx context.Context, request *models.ShiftSwapRequest, now time.Time) (bool, error) {
	shift, err := s.loadShift(ctx, request.ShiftID)
	if err != nil {
		return false, err
	}

	won := false
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ok, err := repo.ExpireIfStale(ctx, request.ID, now)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire swap request")
		}
		if !ok {
			return nil
		}
		won = true
		row := historyRow(request, shift, enums.SwapHistoryActionExpired, nil)
		if err := repo.InsertHistory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record swap history")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return won, nil
}

func (s *service) list(ctx context.Context, query listSwapsQuery, cursor string) (*SwapList, error) {
	if cursor != "" {
		parsed, err := pagination.ParseCursor(cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = parsed
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list swap requests")
	}

	result := &SwapList{Swaps: rows}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) loadRequest(ctx context.Context, id uuid.UUID) (*models.ShiftSwapRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeSwapNotFound, "swap request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load swap request")
	}
	return request, nil
}

func (s *service) loadShift(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	shift, err := s.shifts.FindShift(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeShiftNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shift")
	}
	return shift, nil
}

func (s *service) notify(ctx context.Context, event NotificationEvent) {
	if err := s.notifier.Notify(ctx, event); err != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"notification_kind": event.Kind,
			"swap_request_id":   event.SwapRequestID,
		})
		s.logg.Error(ctx, "swap notification failed", err)
	}
}

func historyRow(request *models.ShiftSwapRequest, shift *models.Shift, action enums.SwapHistoryAction, actor *uuid.UUID) *models.ShiftSwapHistory {
	return &models.ShiftSwapHistory{
		ID:            uuid.New(),
		SwapRequestID: request.ID,
		ShiftID:       shift.ID,
		RestaurantID:  shift.RestaurantID,
		Action:        action,
		FromUserID:    request.FromUserID,
		ToUserID:      request.ToUserID,
		ActorUserID:   actor,
		ShiftStartsAt: shift.StartsAt,
		ShiftEndsAt:   shift.EndsAt,
		ShiftType:     shift.ShiftType,
		RequestedAt:   request.RequestedAt,
	}
}

func summarize(request *models.ShiftSwapRequest, shift *models.Shift) SwapSummary {
	return SwapSummary{
		ID:            request.ID,
		ShiftID:       request.ShiftID,
		RestaurantID:  shift.RestaurantID,
		FromUserID:    request.FromUserID,
		ToUserID:      request.ToUserID,
		Status:        request.Status,
		RequestedAt:   request.RequestedAt,
		ExpiresAt:     request.ExpiresAt,
		RespondedAt:   request.RespondedAt,
		ApprovedAt:    request.ApprovedAt,
		ApprovedByID:  request.ApprovedByID,
		ShiftStartsAt: shift.StartsAt,
		ShiftEndsAt:   shift.EndsAt,
		ShiftType:     shift.ShiftType,
		CreatedAt:     request.CreatedAt,
	}
}

func invalidTransition(current, attempted enums.SwapStatus) error {
	return pkgerrors.New(pkgerrors.CodeInvalidStatusTransition,
		fmt.Sprintf("cannot transition swap request from %s to %s", current, attempted)).
		WithDetails(transitionDetails(current, attempted))
}

func transitionDetails(current, attempted enums.SwapStatus) map[string]any {
	return map[string]any{
		"current_status":   current,
		"attempted_status": attempted,
	}
}
