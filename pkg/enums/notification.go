package enums

import "fmt"

// NotificationType maps to the notification_type column in Postgres.
type NotificationType string

const (
	NotificationTypeCaseAlert          NotificationType = "case_alert"
	NotificationTypeDocumentAlert      NotificationType = "document_alert"
	NotificationTypeScheduleChange     NotificationType = "schedule_change"
	NotificationTypeSystemAnnouncement NotificationType = "system_announcement"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeCaseAlert,
	NotificationTypeDocumentAlert,
	NotificationTypeScheduleChange,
	NotificationTypeSystemAnnouncement,
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
