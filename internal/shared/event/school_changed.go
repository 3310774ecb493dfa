package event

const SchoolChangedDestination string = "school_changed"

type SchoolChangedMessage struct {
	SchoolID int64  `json:"school_id"`
	Name     string `json:"name,omitempty"`
	Action   string `json:"action"`
}
