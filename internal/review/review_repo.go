package review

import (
	"context"
	"database/sql"

	"go-hrm/internal/employee"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=review_repo.go -destination=mock/review_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pr *PerformanceReview) error
	FindByID(ctx context.Context, id string) (*PerformanceReview, error)
	FindAll(ctx context.Context, filter ListReviewsFilter) ([]PerformanceReview, int64, error)
	Update(ctx context.Context, pr *PerformanceReview) error
	Delete(ctx context.Context, id string) error
	PeriodTaken(ctx context.Context, employeeID, period string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	CreateGoals(ctx context.Context, goals []PerformanceGoal) error
	FindGoalByID(ctx context.Context, id string) (*PerformanceGoal, error)
	UpdateGoal(ctx context.Context, goal *PerformanceGoal) error
	DeleteGoalsByReview(ctx context.Context, reviewID string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, pr *PerformanceReview) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PerformanceReview, error) {
	var pr PerformanceReview
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Goals").
		First(&pr, "id = ?", id).Error
	return &pr, err
}

func (r *repository) FindAll(ctx context.Context, filter ListReviewsFilter) ([]PerformanceReview, int64, error) {
	db := r.db.WithContext(ctx).Model(&PerformanceReview{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Period != "" {
		db = db.Where("period = ?", filter.Period)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.ExcludeDrafts {
		db = db.Where("status <> ?", StatusDraft)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 10
	}

	var reviews []PerformanceReview
	err := db.
		Preload("Employee").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reviews).Error
	return reviews, total, err
}

func (r *repository) Update(ctx context.Context, pr *PerformanceReview) error {
	// Goals dan Employee di-update lewat jalurnya sendiri.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(pr).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&PerformanceReview{}, "id = ?", id).Error
}

func (r *repository) CreateGoals(ctx context.Context, goals []PerformanceGoal) error {
	if len(goals) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&goals).Error
}

func (r *repository) FindGoalByID(ctx context.Context, id string) (*PerformanceGoal, error) {
	var goal PerformanceGoal
	err := r.db.WithContext(ctx).First(&goal, "id = ?", id).Error
	return &goal, err
}

func (r *repository) UpdateGoal(ctx context.Context, goal *PerformanceGoal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r *repository) DeleteGoalsByReview(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).Delete(&PerformanceGoal{}, "review_id = ?", reviewID).Error
}

func (r *repository) PeriodTaken(ctx context.Context, employeeID, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&PerformanceReview{}).
		Where("employee_id = ? AND period = ?", employeeID, period).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&employee.Employee{}).
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
