package succession

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusInTraining  Status = "in_training"
	StatusReady       Status = "ready"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusUnderReview, StatusApproved, StatusInTraining, StatusReady:
		return Status(s), true
	}
	return "", false
}

// Candidate is a shortlisted successor for a position. MatchScore is a
// snapshot; callers recompute it on demand rather than continuously.
type Candidate struct {
	ID           uuid.UUID
	PositionID   uuid.UUID
	EmployeeID   uuid.UUID
	EmployeeName string
	PriorityRank int
	MatchScore   float64
	Status       Status
	CreatedAt    time.Time
}
