package leaverequest

import (
	"context"
	"database/sql"
	"time"

	"go-hrm/internal/employee"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindAll(ctx context.Context, filter ListLeaveRequestsFilter) ([]LeaveRequest, int64, error)
	// Transition menulis status + review stamps dari lr hanya bila status
	// tersimpan masih sama dengan from (compare-and-swap). applied=false
	// berarti record sudah berubah di bawah kita.
	Transition(ctx context.Context, lr *LeaveRequest, from Status) (applied bool, err error)
	HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	FindApprovedInYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error)
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

func (r *repository) Create(ctx context.Context, lr *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(lr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&lr, "id = ?", id).Error
	return &lr, err
}

func (r *repository) FindAll(ctx context.Context, filter ListLeaveRequestsFilter) ([]LeaveRequest, int64, error) {
	db := r.db.WithContext(ctx).Model(&LeaveRequest{})

	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.LeaveType != "" {
		db = db.Where("leave_type = ?", filter.LeaveType)
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

	var requests []LeaveRequest
	err := db.
		Preload("Employee").
		Order("submitted_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	return requests, total, err
}

func (r *repository) Transition(ctx context.Context, lr *LeaveRequest, from Status) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", lr.ID).
		Where("status = ?", from).
		Updates(map[string]any{
			"status":      lr.Status,
			"reviewed_at": lr.ReviewedAt,
			"reviewed_by": lr.ReviewedBy,
			"comments":    lr.Comments,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("employee_id = ?", employeeID).
		Where("status IN ?", []Status{StatusPending, StatusApproved}).
		Where("start_date <= ? AND end_date >= ?", endDate, startDate).
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

func (r *repository) FindApprovedInYear(ctx context.Context, employeeID string, year int) ([]LeaveRequest, error) {
	// Request yang melewati pergantian tahun dibebankan ke tahun start_date.
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	nextYearStart := yearStart.AddDate(1, 0, 0)

	var requests []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("start_date >= ? AND start_date < ?", yearStart, nextYearStart).
		Find(&requests).Error
	return requests, err
}
