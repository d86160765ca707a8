package shared

import "time"

// SecurityAlertType defines types of security alerts
type SecurityAlertType string

const (
	AlertPasswordChanged SecurityAlertType = "password_changed"

	TypeSendSecurityAlert = "auth:send_security_alert"
)

// Asynq queues
const (
	QueueUser    = "user"
	QueueDefault = "default"
)

// SecurityAlertPayload is the asynq payload of TypeSendSecurityAlert.
type SecurityAlertPayload struct {
	UserID     string            `json:"userId"`
	Email      string            `json:"email"`
	AlertType  SecurityAlertType `json:"alertType"`
	Language   string            `json:"language"`
	IPAddress  string            `json:"ipAddress"`
	OccurredAt time.Time         `json:"occurredAt"`
}
