package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context, filter ListEmployeesFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListEmployeesFilter) ([]Employee, int64, error) {
	db := r.db.WithContext(ctx).Model(&Employee{})

	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}
	switch filter.Status {
	case "active":
		db = db.Where("is_active = TRUE")
	case "inactive":
		db = db.Where("is_active = FALSE")
	}
	if filter.Search != "" {
		q := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			q, q, q,
		)
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

	var employees []Employee
	err := db.
		Order("last_name ASC, first_name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&employees).Error
	return employees, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmailTaken(ctx context.Context, email string, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("LOWER(email) = LOWER(?)", email)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
