package employee

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListEmployeesFilter) ([]EmployeeResponse, int64, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department", req.Department),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}

	var managerID *uuid.UUID
	if req.ManagerID != nil && *req.ManagerID != "" {
		parsed, err := uuid.Parse(*req.ManagerID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidManagerID
		}
		exists, err := qtx.Exists(ctx, parsed.String())
		if err != nil {
			return EmployeeResponse{}, err
		}
		if !exists {
			return EmployeeResponse{}, employeeerrors.ErrManagerNotFound
		}
		managerID = &parsed
	}

	taken, err := qtx.EmailTaken(ctx, req.Email, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if taken {
		return EmployeeResponse{}, employeeerrors.ErrEmailTaken
	}

	e := &Employee{
		ID:          uuid.New(),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Department:  req.Department,
		Position:    req.Position,
		Salary:      req.Salary,
		HireDate:    hireDate,
		ManagerID:   managerID,
		Skills:      req.Skills,
		IsActive:    true,
	}

	if err := qtx.Create(ctx, e); err != nil {
		// Backstop: dua request paralel dengan email sama bisa lolos
		// pengecekan di atas, unique index yang menangkap sisanya.
		if isUniqueEmailViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", e.ID.String()),
	)

	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, filter ListEmployeesFilter) ([]EmployeeResponse, int64, error) {
	employees, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.Email != nil && *req.Email != e.Email {
		taken, err := qtx.EmailTaken(ctx, *req.Email, &id)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if taken {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		e.Email = *req.Email
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		e.PhoneNumber = *req.PhoneNumber
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			e.ManagerID = nil
		} else {
			parsed, err := uuid.Parse(*req.ManagerID)
			if err != nil {
				return EmployeeResponse{}, employeeerrors.ErrInvalidManagerID
			}
			e.ManagerID = &parsed
		}
	}
	if req.Skills != nil {
		e.Skills = req.Skills
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, e); err != nil {
		if isUniqueEmailViolation(err) {
			return EmployeeResponse{}, employeeerrors.ErrEmailTaken
		}
		s.logger.Error("update employee persist failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	s.logger.Info("update employee success", zap.String("employee_id", id))

	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func isUniqueEmailViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_employees_email"
	}
	return false
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:          e.ID.String(),
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Department:  e.Department,
		Position:    e.Position,
		Salary:      e.Salary,
		HireDate:    e.HireDate.Format("2006-01-02"),
		Skills:      e.Skills,
		IsActive:    e.IsActive,
	}
	if e.ManagerID != nil {
		v := e.ManagerID.String()
		resp.ManagerID = &v
	}
	return resp
}
