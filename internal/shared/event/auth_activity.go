package event

import "time"

const AuthActivityDestination string = "auth_activity"

type AuthActivityMessage struct {
	Email      string    `json:"email"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
