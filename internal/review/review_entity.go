package review

import (
	"time"

	"go-hrm/internal/employee"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	StatusDraft     ReviewStatus = "DRAFT"
	StatusSubmitted ReviewStatus = "SUBMITTED"
	StatusApproved  ReviewStatus = "APPROVED"
)

var reviewTransitions = map[ReviewStatus][]ReviewStatus{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusDraft},
}

func (s ReviewStatus) CanTransitionTo(target ReviewStatus) bool {
	for _, next := range reviewTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func ParseReviewStatus(v string) (ReviewStatus, bool) {
	switch ReviewStatus(v) {
	case StatusDraft, StatusSubmitted, StatusApproved:
		return ReviewStatus(v), true
	}
	return "", false
}

type PerformanceReview struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_performance_reviews_employee_period,priority:1"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null"`

	// Period berformat bebas tapi konsisten, mis. "2026-H1" atau "2026-Q3".
	Period string `gorm:"type:varchar(20);not null;uniqueIndex:uq_performance_reviews_employee_period,priority:2"`

	OverallRating       int    `gorm:"type:int;not null"`
	Strengths           string `gorm:"type:text"`
	AreasForImprovement string `gorm:"type:text"`

	Status ReviewStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *employee.Employee `gorm:"foreignKey:EmployeeID"`
	Goals    []PerformanceGoal  `gorm:"foreignKey:ReviewID"`
}

func (PerformanceReview) TableName() string { return "performance_reviews" }

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "NOT_STARTED"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
	GoalCancelled  GoalStatus = "CANCELLED"
)

func ParseGoalStatus(v string) (GoalStatus, bool) {
	switch GoalStatus(v) {
	case GoalNotStarted, GoalInProgress, GoalCompleted, GoalCancelled:
		return GoalStatus(v), true
	}
	return "", false
}

// PerformanceGoal adalah target kerja yang menempel pada satu review.
// Goal dibuat bersama review-nya dan ikut terhapus saat review dihapus.
type PerformanceGoal struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ReviewID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	TargetDate  time.Time  `gorm:"type:date;not null"`
	Status      GoalStatus `gorm:"type:varchar(20);not null;default:'NOT_STARTED'"`

	// Progress dalam persen, 0..100.
	Progress int     `gorm:"type:int;not null;default:0"`
	Comments *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PerformanceGoal) TableName() string { return "performance_goals" }
