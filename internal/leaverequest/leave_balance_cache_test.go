package leaverequest_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-hrm/internal/leaverequest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLeaveService_BalanceCache(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New().String()
	cacheKey := leaverequest.BalanceCacheKey(employeeID, 2026)

	freshBalance := leaverequest.BalanceResponse{
		Year:   2026,
		Annual: leaverequest.AnnualBalance{Total: 20, Used: 6, Remaining: 14},
		Sick:   leaverequest.LeaveTypeUsage{Used: 2},
	}

	setup := func(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeLeaveRepository, redismock.ClientMock, leaverequest.Service) {
		t.Helper()
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		rdb, redisMock := redismock.NewClientMock()
		repo := &fakeLeaveRepository{}
		svc := leaverequest.NewServiceWithDeps(db, repo, nil, rdb)
		return db, sqlMock, repo, redisMock, svc
	}

	t.Run("cache hit skips repository", func(t *testing.T) {
		db, _, repo, redisMock, svc := setup(t)
		defer db.Close()

		payload, err := json.Marshal(freshBalance)
		assert.NoError(t, err)
		redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		repo.findApprovedInYearFn = func(ctx context.Context, eid string, year int) ([]leaverequest.LeaveRequest, error) {
			t.Fatal("repository should not be queried on cache hit")
			return nil, nil
		}

		resp, err := svc.Balance(ctx, managerActor(), employeeID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 14, resp.Annual.Remaining)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss computes and stores", func(t *testing.T) {
		db, _, repo, redisMock, svc := setup(t)
		defer db.Close()

		payload, err := json.Marshal(freshBalance)
		assert.NoError(t, err)

		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.ExpectSet(cacheKey, payload, 10*time.Minute).SetVal("OK")

		repo.findApprovedInYearFn = func(ctx context.Context, eid string, year int) ([]leaverequest.LeaveRequest, error) {
			return []leaverequest.LeaveRequest{
				{LeaveType: leaverequest.TypeAnnual, DaysRequested: 6},
				{LeaveType: leaverequest.TypeSick, DaysRequested: 2},
			}, nil
		}

		resp, err := svc.Balance(ctx, managerActor(), employeeID, 2026)

		assert.NoError(t, err)
		assert.Equal(t, 6, resp.Annual.Used)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("decision invalidates cached balance", func(t *testing.T) {
		db, sqlMock, repo, redisMock, svc := setup(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		requestID := uuid.New()
		repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return &leaverequest.LeaveRequest{
				ID:          requestID,
				EmployeeID:  uuid.MustParse(employeeID),
				LeaveType:   leaverequest.TypeAnnual,
				StartDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
				EndDate:     time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
				Status:      leaverequest.StatusPending,
				SubmittedAt: time.Now(),
			}, nil
		}
		redisMock.ExpectDel(cacheKey).SetVal(1)

		_, err := svc.Approve(ctx, managerActor(), requestID.String(), leaverequest.ReviewLeaveRequest{})

		assert.NoError(t, err)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
