package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	withTxFn     func(tx *sql.Tx) employee.Repository
	createFn     func(ctx context.Context, e *employee.Employee) error
	findAllFn    func(ctx context.Context, filter employee.ListEmployeesFilter) ([]employee.Employee, int64, error)
	findByIDFn   func(ctx context.Context, id string) (*employee.Employee, error)
	updateFn     func(ctx context.Context, e *employee.Employee) error
	deleteFn     func(ctx context.Context, id string) error
	existsFn     func(ctx context.Context, id string) (bool, error)
	emailTakenFn func(ctx context.Context, email string, excludeID *string) (bool, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, e *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context, filter employee.ListEmployeesFilter) ([]employee.Employee, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, e *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, e)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeEmployeeRepository) Exists(ctx context.Context, id string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, id)
	}
	return true, nil
}

func (f *fakeEmployeeRepository) EmailTaken(ctx context.Context, email string, excludeID *string) (bool, error) {
	if f.emailTakenFn != nil {
		return f.emailTakenFn(ctx, email, excludeID)
	}
	return false, nil
}

type employeeServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *fakeEmployeeRepository
}

func setupEmployeeServiceTest(t *testing.T) *employeeServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeEmployeeRepository{}
	svc := employee.NewService(db, repo)

	return &employeeServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := employee.CreateEmployeeRequest{
			FirstName:  "Sari",
			LastName:   "Wijaya",
			Email:      "sari.wijaya@example.com",
			Department: "Engineering",
			Position:   "Backend Engineer",
			Salary:     12000000,
			HireDate:   "2026-01-15",
		}

		deps.repo.createFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "sari.wijaya@example.com", e.Email)
			assert.True(t, e.IsActive)
			assert.Equal(t, "2026-01-15", e.HireDate.Format("2006-01-02"))
			return nil
		}

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "Sari", resp.FirstName)
		assert.True(t, resp.IsActive)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative email taken", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.emailTakenFn = func(ctx context.Context, email string, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Sari",
			LastName:  "Wijaya",
			Email:     "sari.wijaya@example.com",
			HireDate:  "2026-01-15",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	})

	t.Run("negative invalid hire date", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Sari",
			LastName:  "Wijaya",
			Email:     "sari.wijaya@example.com",
			HireDate:  "15-01-2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("negative manager not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		managerID := uuid.New().String()
		deps.repo.existsFn = func(ctx context.Context, id string) (bool, error) {
			assert.Equal(t, managerID, id)
			return false, nil
		}

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			FirstName: "Sari",
			LastName:  "Wijaya",
			Email:     "sari.wijaya@example.com",
			HireDate:  "2026-01-15",
			ManagerID: &managerID,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrManagerNotFound)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:        uuid.MustParse(targetID),
				FirstName: "Budi",
				LastName:  "Santoso",
				Email:     "budi@example.com",
				IsActive:  true,
			}, nil
		}

		resp, err := deps.service.GetByID(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, "Budi", resp.FirstName)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, id)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, "abc")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("success partial update", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:         uuid.MustParse(targetID),
				FirstName:  "Budi",
				LastName:   "Santoso",
				Email:      "budi@example.com",
				Department: "Sales",
				IsActive:   true,
			}, nil
		}

		newDept := "Marketing"
		deps.repo.updateFn = func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "Marketing", e.Department)
			assert.Equal(t, "budi@example.com", e.Email)
			return nil
		}

		resp, err := deps.service.Update(ctx, id, employee.UpdateEmployeeRequest{
			Department: &newDept,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Marketing", resp.Department)
	})

	t.Run("negative email collision on update", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, targetID string) (*employee.Employee, error) {
			return &employee.Employee{
				ID:    uuid.MustParse(targetID),
				Email: "budi@example.com",
			}, nil
		}
		deps.repo.emailTakenFn = func(ctx context.Context, email string, excludeID *string) (bool, error) {
			assert.Equal(t, "taken@example.com", email)
			assert.NotNil(t, excludeID)
			return true, nil
		}

		taken := "taken@example.com"
		_, err := deps.service.Update(ctx, id, employee.UpdateEmployeeRequest{
			Email: &taken,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmailTaken)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deleted := false
		deps.repo.deleteFn = func(ctx context.Context, targetID string) error {
			deleted = true
			return nil
		}

		err := deps.service.Delete(ctx, id)

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.existsFn = func(ctx context.Context, targetID string) (bool, error) {
			return false, nil
		}

		err := deps.service.Delete(ctx, id)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupEmployeeServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.deleteFn = func(ctx context.Context, targetID string) error {
			return errors.New("db error")
		}

		err := deps.service.Delete(ctx, id)

		assert.Error(t, err)
	})
}
