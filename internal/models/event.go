package models

type StudentEvent struct {
	EventID   string `json:"event_id"`
	Action    string `json:"action"`
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	Timestamp int64  `json:"timestamp"`
}

const (
	StudentCreated = "student.created"
	StudentUpdated = "student.updated"
	StudentDeleted = "student.deleted"
)
