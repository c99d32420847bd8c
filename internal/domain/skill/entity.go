package skill

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryTechnical     Category = "technical"
	CategoryLeadership    Category = "leadership"
	CategoryCommunication Category = "communication"
	CategoryBusiness      Category = "business"
	CategoryCreative      Category = "creative"
	CategoryAnalytical    Category = "analytical"
	CategoryOther         Category = "other"
)

func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryTechnical, CategoryLeadership, CategoryCommunication,
		CategoryBusiness, CategoryCreative, CategoryAnalytical, CategoryOther:
		return Category(s), true
	}
	return "", false
}

// Skills referenced by historical proficiency records are never deleted,
// only deactivated.
type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  Category
	Active    bool
	CreatedAt time.Time
}

const (
	MinLevel = 1
	MaxLevel = 5
)

func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

// ProficiencyRecord links an employee to a skill. At most one record exists
// per (employee, skill) pair; re-adding updates in place.
type ProficiencyRecord struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	SkillID        uuid.UUID
	SkillName      string
	Level          int
	AcquiredAt     time.Time
	LastAssessedAt *time.Time
	Notes          string
}

// RequirementRecord links a position to a skill it requires. Weight is a
// relative multiplier only; scores are normalized over the total weight.
type RequirementRecord struct {
	ID            uuid.UUID
	PositionID    uuid.UUID
	SkillID       uuid.UUID
	SkillName     string
	RequiredLevel int
	Mandatory     bool
	Weight        int
}
