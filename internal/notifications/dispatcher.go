package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"github.com/shiftline/shiftline-backend/internal/swaps"
	"github.com/shiftline/shiftline-backend/pkg/db/models"
	"github.com/shiftline/shiftline-backend/pkg/enums"
	"github.com/shiftline/shiftline-backend/pkg/logger"
)

const (
	deliverMaxRetries = 3
	deliverBaseDelay  = 250 * time.Millisecond
)

// Dispatcher fans a swap lifecycle event out into per-user notification rows.
// Delivery happens on a detached goroutine with bounded retries; the caller
// only sees validation errors, so a storage hiccup never fails a swap
// operation.
type Dispatcher struct {
	repo Repository
	logg *logger.Logger
}

// NewDispatcher wires the dispatcher dependencies.
func NewDispatcher(repo Repository, logg *logger.Logger) (*Dispatcher, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Dispatcher{repo: repo, logg: logg}, nil
}

// Notify implements the swap engine's notifier contract.
func (d *Dispatcher) Notify(ctx context.Context, event swaps.NotificationEvent) error {
	if !event.Kind.IsValid() {
		return fmt.Errorf("invalid notification kind %q", event.Kind)
	}
	if len(event.Recipients) == 0 {
		return fmt.Errorf("notification has no recipients")
	}

	title, message := renderSwapEvent(event)
	link := fmt.Sprintf("/swaps/%s", event.SwapRequestID)

	rows := make([]*models.Notification, 0, len(event.Recipients))
	for _, userID := range event.Recipients {
		if userID == uuid.Nil {
			continue
		}
		rows = append(rows, &models.Notification{
			ID:           uuid.New(),
			UserID:       userID,
			RestaurantID: event.RestaurantID,
			Type:         event.Kind,
			Title:        title,
			Message:      message,
			Link:         &link,
		})
	}
	if len(rows) == 0 {
		return fmt.Errorf("notification has no recipients")
	}

	// Delivery outlives the request; caller cancellation must not drop
	// the notification.
	go d.deliver(context.WithoutCancel(ctx), rows)
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, rows []*models.Notification) {
	backoff := retry.WithMaxRetries(deliverMaxRetries, retry.NewExponential(deliverBaseDelay))

	delivered := make([]bool, len(rows))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		for i, row := range rows {
			if delivered[i] {
				continue
			}
			if err := d.repo.Create(ctx, row); err != nil {
				return retry.RetryableError(err)
			}
			delivered[i] = true
		}
		return nil
	})
	if err != nil {
		d.logg.Error(ctx, "notification delivery failed", err)
	}
}

func renderSwapEvent(event swaps.NotificationEvent) (string, string) {
	when := event.ShiftStartsAt.Format("Mon Jan 2 15:04")
	switch event.Kind {
	case enums.NotificationTypeSwapRequested:
		return "Shift swap offered to you", fmt.Sprintf("A coworker offered you their shift on %s.", when)
	case enums.NotificationTypeSwapAccepted:
		return "Your swap was accepted", fmt.Sprintf("Your swap request for the shift on %s was accepted and now awaits manager approval.", when)
	case enums.NotificationTypeSwapRejected:
		return "Your swap was declined", fmt.Sprintf("Your swap request for the shift on %s was declined by the recipient.", when)
	case enums.NotificationTypeSwapApproved:
		return "Shift swap approved", fmt.Sprintf("The swap for the shift on %s was approved by a manager.", when)
	case enums.NotificationTypeSwapDeclined:
		return "Shift swap rejected", fmt.Sprintf("The swap for the shift on %s was rejected by a manager.", when)
	default:
		return "Schedule update", fmt.Sprintf("Your schedule changed for the shift on %s.", when)
	}
}
