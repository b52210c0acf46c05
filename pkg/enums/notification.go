package enums

import "fmt"

// NotificationType maps to the notification_type enum in Postgres.
type NotificationType string

const (
	NotificationTypeSwapRequested        NotificationType = "swap_requested"
	NotificationTypeSwapAccepted         NotificationType = "swap_accepted"
	NotificationTypeSwapRejected         NotificationType = "swap_rejected"
	NotificationTypeSwapApproved         NotificationType = "swap_approved"
	NotificationTypeSwapDeclined         NotificationType = "swap_declined"
	NotificationTypeScheduleAnnouncement NotificationType = "schedule_announcement"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeSwapRequested,
	NotificationTypeSwapAccepted,
	NotificationTypeSwapRejected,
	NotificationTypeSwapApproved,
	NotificationTypeSwapDeclined,
	NotificationTypeScheduleAnnouncement,
}

// IsValid checks whether the given type matches the canonical enum.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw strings into NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
