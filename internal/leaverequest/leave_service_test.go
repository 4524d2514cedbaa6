package leaverequest_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrm/internal/identity"
	"go-hrm/internal/leaverequest"
	leaveerrors "go-hrm/internal/leaverequest/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn             func(tx *sql.Tx) leaverequest.Repository
	createFn             func(ctx context.Context, lr *leaverequest.LeaveRequest) error
	findByIDFn           func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	findAllFn            func(ctx context.Context, filter leaverequest.ListLeaveRequestsFilter) ([]leaverequest.LeaveRequest, int64, error)
	transitionFn         func(ctx context.Context, lr *leaverequest.LeaveRequest, from leaverequest.Status) (bool, error)
	hasOverlappingFn     func(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error)
	employeeExistsFn     func(ctx context.Context, employeeID string) (bool, error)
	findApprovedInYearFn func(ctx context.Context, employeeID string, year int) ([]leaverequest.LeaveRequest, error)
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leaverequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, lr *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, lr)
	}
	return nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leaverequest.ListLeaveRequestsFilter) ([]leaverequest.LeaveRequest, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) Transition(ctx context.Context, lr *leaverequest.LeaveRequest, from leaverequest.Status) (bool, error) {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, lr, from)
	}
	return true, nil
}

func (f *fakeLeaveRepository) HasOverlapping(ctx context.Context, employeeID string, startDate, endDate time.Time) (bool, error) {
	if f.hasOverlappingFn != nil {
		return f.hasOverlappingFn(ctx, employeeID, startDate, endDate)
	}
	return false, nil
}

func (f *fakeLeaveRepository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	if f.employeeExistsFn != nil {
		return f.employeeExistsFn(ctx, employeeID)
	}
	return true, nil
}

func (f *fakeLeaveRepository) FindApprovedInYear(ctx context.Context, employeeID string, year int) ([]leaverequest.LeaveRequest, error) {
	if f.findApprovedInYearFn != nil {
		return f.findApprovedInYearFn(ctx, employeeID, year)
	}
	return nil, nil
}

type leaveServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leaverequest.Service
	repo    *fakeLeaveRepository
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	svc := leaverequest.NewService(db, repo)

	return &leaveServiceDeps{
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

func employeeActor(employeeID string) identity.Actor {
	return identity.Actor{
		UserID:     uuid.New().String(),
		EmployeeID: employeeID,
		Role:       identity.RoleEmployee,
	}
}

func managerActor() identity.Actor {
	return identity.Actor{
		UserID:     uuid.New().String(),
		EmployeeID: uuid.New().String(),
		Role:       identity.RoleManager,
	}
}

func TestLeaveService_Submit(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success inclusive day count", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leaverequest.SubmitLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Family event",
		}

		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			assert.Equal(t, employeeID, eid)
			return true, nil
		}
		deps.repo.hasOverlappingFn = func(ctx context.Context, eid string, startDate, endDate time.Time) (bool, error) {
			assert.Equal(t, "2026-03-01", startDate.Format("2006-01-02"))
			assert.Equal(t, "2026-03-03", endDate.Format("2006-01-02"))
			return false, nil
		}
		deps.repo.createFn = func(ctx context.Context, lr *leaverequest.LeaveRequest) error {
			assert.Equal(t, uuid.MustParse(employeeID), lr.EmployeeID)
			assert.Equal(t, leaverequest.TypeAnnual, lr.LeaveType)
			assert.Equal(t, 3, lr.DaysRequested)
			assert.Equal(t, leaverequest.StatusPending, lr.Status)
			assert.False(t, lr.SubmittedAt.IsZero())
			return nil
		}

		resp, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.NoError(t, err)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.Equal(t, 3, resp.DaysRequested)
		assert.Equal(t, "PENDING", resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success single day", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		req := leaverequest.SubmitLeaveRequest{
			LeaveType: "SICK",
			StartDate: "2026-03-05",
			EndDate:   "2026-03-05",
			Reason:    "Flu",
		}

		resp, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.DaysRequested)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leaverequest.SubmitLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-03-10",
			EndDate:   "2026-03-09",
			Reason:    "Trip",
		}

		_, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative blank reason", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leaverequest.SubmitLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "   ",
		}

		_, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.ErrorIs(t, err, leaveerrors.ErrEmptyReason)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leaverequest.SubmitLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "Trip",
		}

		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overlapping request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		req := leaverequest.SubmitLeaveRequest{
			LeaveType: "ANNUAL",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
			Reason:    "Trip",
		}

		deps.repo.hasOverlappingFn = func(ctx context.Context, eid string, startDate, endDate time.Time) (bool, error) {
			return true, nil
		}

		_, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.ErrorIs(t, err, leaveerrors.ErrOverlappingRequest)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee submitting for someone else", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		req := leaverequest.SubmitLeaveRequest{
			EmployeeID: uuid.New().String(),
			LeaveType:  "ANNUAL",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-02",
			Reason:     "Trip",
		}

		_, err := deps.service.Submit(ctx, employeeActor(employeeID), req)

		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})

	t.Run("manager submits on behalf", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		target := uuid.New().String()
		req := leaverequest.SubmitLeaveRequest{
			EmployeeID: target,
			LeaveType:  "UNPAID",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-02",
			Reason:     "Personal matters",
		}

		resp, err := deps.service.Submit(ctx, managerActor(), req)

		assert.NoError(t, err)
		assert.Equal(t, target, resp.EmployeeID)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("employee always scoped to own requests", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, filter leaverequest.ListLeaveRequestsFilter) ([]leaverequest.LeaveRequest, int64, error) {
			// Filter employee_id milik orang lain harus sudah ditimpa.
			assert.Equal(t, employeeID, filter.EmployeeID)
			return []leaverequest.LeaveRequest{}, 0, nil
		}

		_, _, err := deps.service.GetAll(ctx, employeeActor(employeeID), leaverequest.ListLeaveRequestsFilter{
			EmployeeID: uuid.New().String(),
		})

		assert.NoError(t, err)
	})

	t.Run("manager sees any employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		target := uuid.New().String()
		deps.repo.findAllFn = func(ctx context.Context, filter leaverequest.ListLeaveRequestsFilter) ([]leaverequest.LeaveRequest, int64, error) {
			assert.Equal(t, target, filter.EmployeeID)
			return []leaverequest.LeaveRequest{
				{
					ID:            uuid.New(),
					EmployeeID:    uuid.MustParse(target),
					LeaveType:     leaverequest.TypeSick,
					StartDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
					EndDate:       time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
					DaysRequested: 2,
					Status:        leaverequest.StatusPending,
					SubmittedAt:   time.Now(),
				},
			}, 1, nil
		}

		resp, total, err := deps.service.GetAll(ctx, managerActor(), leaverequest.ListLeaveRequestsFilter{
			EmployeeID: target,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
		assert.Equal(t, 2, resp[0].DaysRequested)
	})

	t.Run("negative invalid status filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.GetAll(ctx, managerActor(), leaverequest.ListLeaveRequestsFilter{
			Status: "DECLINED",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusFilter)
	})
}

func TestLeaveService_GetByID(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	requestID := uuid.New().String()

	pendingRequest := func() *leaverequest.LeaveRequest {
		return &leaverequest.LeaveRequest{
			ID:            uuid.MustParse(requestID),
			EmployeeID:    uuid.MustParse(ownerID),
			LeaveType:     leaverequest.TypeAnnual,
			StartDate:     time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
			DaysRequested: 3,
			Reason:        "Trip",
			Status:        leaverequest.StatusPending,
			SubmittedAt:   time.Now(),
		}
	}

	t.Run("owner sees own request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		resp, err := deps.service.GetByID(ctx, employeeActor(ownerID), requestID)

		assert.NoError(t, err)
		assert.Equal(t, requestID, resp.ID)
	})

	t.Run("negative other employee denied", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		_, err := deps.service.GetByID(ctx, employeeActor(uuid.New().String()), requestID)

		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})

	t.Run("negative not found", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, managerActor(), requestID)

		assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, managerActor(), "not-a-uuid")

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidRequestID)
	})
}

func TestLeaveService_Approve(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	requestID := uuid.New().String()

	pendingRequest := func() *leaverequest.LeaveRequest {
		return &leaverequest.LeaveRequest{
			ID:            uuid.MustParse(requestID),
			EmployeeID:    uuid.MustParse(ownerID),
			LeaveType:     leaverequest.TypeAnnual,
			StartDate:     time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
			DaysRequested: 3,
			Status:        leaverequest.StatusPending,
			SubmittedAt:   time.Now(),
		}
	}

	t.Run("success stamps reviewer", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		actor := managerActor()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}
		deps.repo.transitionFn = func(ctx context.Context, lr *leaverequest.LeaveRequest, from leaverequest.Status) (bool, error) {
			assert.Equal(t, leaverequest.StatusPending, from)
			assert.Equal(t, leaverequest.StatusApproved, lr.Status)
			assert.NotNil(t, lr.ReviewedAt)
			assert.NotNil(t, lr.ReviewedBy)
			assert.Equal(t, actor.UserID, lr.ReviewedBy.String())
			return true, nil
		}

		resp, err := deps.service.Approve(ctx, actor, requestID, leaverequest.ReviewLeaveRequest{Comments: "Enjoy"})

		assert.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.NotNil(t, resp.ReviewedAt)
		assert.Equal(t, "Enjoy", *resp.Comments)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee role cannot approve", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		_, err := deps.service.Approve(ctx, employeeActor(uuid.New().String()), requestID, leaverequest.ReviewLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})

	t.Run("negative reviewer cannot approve own request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		actor := managerActor()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			lr := pendingRequest()
			lr.EmployeeID = uuid.MustParse(actor.EmployeeID)
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, actor, requestID, leaverequest.ReviewLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			lr := pendingRequest()
			lr.Status = leaverequest.StatusRejected
			return lr, nil
		}

		_, err := deps.service.Approve(ctx, managerActor(), requestID, leaverequest.ReviewLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
	})

	t.Run("negative lost compare-and-swap race", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}
		deps.repo.transitionFn = func(ctx context.Context, lr *leaverequest.LeaveRequest, from leaverequest.Status) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Approve(ctx, managerActor(), requestID, leaverequest.ReviewLeaveRequest{})

		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
	})
}

func TestLeaveService_Reject(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	requestID := uuid.New().String()

	t.Run("success with comments", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return &leaverequest.LeaveRequest{
				ID:          uuid.MustParse(requestID),
				EmployeeID:  uuid.MustParse(ownerID),
				LeaveType:   leaverequest.TypeAnnual,
				StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
				Status:      leaverequest.StatusPending,
				SubmittedAt: time.Now(),
			}, nil
		}

		resp, err := deps.service.Reject(ctx, managerActor(), requestID, leaverequest.RejectLeaveRequest{
			Comments: "Coverage gap that week",
		})

		assert.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		assert.Equal(t, "Coverage gap that week", *resp.Comments)
	})

	t.Run("negative comments required", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, managerActor(), requestID, leaverequest.RejectLeaveRequest{
			Comments: "  ",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrCommentsRequired)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New().String()
	requestID := uuid.New().String()

	pendingRequest := func() *leaverequest.LeaveRequest {
		return &leaverequest.LeaveRequest{
			ID:          uuid.MustParse(requestID),
			EmployeeID:  uuid.MustParse(ownerID),
			LeaveType:   leaverequest.TypePersonal,
			StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			Status:      leaverequest.StatusPending,
			SubmittedAt: time.Now(),
		}
	}

	t.Run("owner cancels own pending request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}
		deps.repo.transitionFn = func(ctx context.Context, lr *leaverequest.LeaveRequest, from leaverequest.Status) (bool, error) {
			// Cancel bukan keputusan reviewer.
			assert.Nil(t, lr.ReviewedAt)
			assert.Nil(t, lr.ReviewedBy)
			return true, nil
		}

		resp, err := deps.service.Cancel(ctx, employeeActor(ownerID), requestID)

		assert.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
		assert.Nil(t, resp.ReviewedAt)
		assert.Nil(t, resp.ReviewedBy)
	})

	t.Run("negative other employee cannot cancel", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		_, err := deps.service.Cancel(ctx, employeeActor(uuid.New().String()), requestID)

		assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
	})

	t.Run("manager cancels on behalf", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return pendingRequest(), nil
		}

		resp, err := deps.service.Cancel(ctx, managerActor(), requestID)

		assert.NoError(t, err)
		assert.Equal(t, "CANCELLED", resp.Status)
	})

	t.Run("negative cancel approved request", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			lr := pendingRequest()
			lr.Status = leaverequest.StatusApproved
			return lr, nil
		}

		_, err := deps.service.Cancel(ctx, employeeActor(ownerID), requestID)

		assert.ErrorIs(t, err, leaveerrors.ErrIllegalTransition)
	})
}

func TestLeaveService_Balance(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()

	t.Run("success aggregates approved days", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findApprovedInYearFn = func(ctx context.Context, eid string, year int) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, 2026, year)
			return []leaverequest.LeaveRequest{
				{LeaveType: leaverequest.TypeAnnual, DaysRequested: 6},
				{LeaveType: leaverequest.TypeAnnual, DaysRequested: 2},
				{LeaveType: leaverequest.TypeSick, DaysRequested: 3},
				{LeaveType: leaverequest.TypePersonal, DaysRequested: 1},
				{LeaveType: leaverequest.TypeUnpaid, DaysRequested: 5},
			}, nil
		}

		resp, err := deps.service.Balance(ctx, employeeActor(employeeID), employeeID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 2026, resp.Year)
		assert.Equal(t, 20, resp.Annual.Total)
		assert.Equal(t, 8, resp.Annual.Used)
		assert.Equal(t, 12, resp.Annual.Remaining)
		assert.Equal(t, 3, resp.Sick.Used)
		assert.Equal(t, 1, resp.Personal.Used)
	})

	t.Run("remaining never negative", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findApprovedInYearFn = func(ctx context.Context, eid string, year int) ([]leaverequest.LeaveRequest, error) {
			return []leaverequest.LeaveRequest{
				{LeaveType: leaverequest.TypeAnnual, DaysRequested: 25},
			}, nil
		}

		resp, err := deps.service.Balance(ctx, employeeActor(employeeID), employeeID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 25, resp.Annual.Used)
		assert.Equal(t, 0, resp.Annual.Remaining)
	})

	t.Run("negative other employee denied", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Balance(ctx, employeeActor(uuid.New().String()), employeeID, 2026)

		assert.ErrorIs(t, err, leaveerrors.ErrAccessDenied)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.employeeExistsFn = func(ctx context.Context, eid string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Balance(ctx, managerActor(), employeeID, 2026)

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	t.Run("negative absurd year", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Balance(ctx, managerActor(), employeeID, 1875)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidYear)
	})
}
