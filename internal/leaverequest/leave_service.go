package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-hrm/internal/events"
	"go-hrm/internal/identity"
	leaveerrors "go-hrm/internal/leaverequest/errors"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// AnnualAllotment adalah jatah cuti ANNUAL per karyawan per tahun kalender.
const AnnualAllotment = 20

const balanceCacheTTL = 10 * time.Minute

// BalanceCacheKey mengembalikan key Redis untuk cache balance seorang
// employee pada satu tahun. Dipakai juga oleh consumer untuk invalidasi.
func BalanceCacheKey(employeeID string, year int) string {
	return fmt.Sprintf("leave:balance:%s:%d", employeeID, year)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor identity.Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error)
	GetAll(ctx context.Context, actor identity.Actor, filter ListLeaveRequestsFilter) ([]LeaveRequestResponse, int64, error)
	GetByID(ctx context.Context, actor identity.Actor, id string) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actor identity.Actor, id string, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actor identity.Actor, id string, req RejectLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, actor identity.Actor, id string) (LeaveRequestResponse, error)
	Balance(ctx context.Context, actor identity.Actor, employeeID string, year int) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithDeps(db, repo, nil, nil, logger...)
}

// NewServiceWithDeps menerima outbox repo dan Redis client; keduanya boleh
// nil (event tidak dicatat, balance dihitung langsung dari DB).
func NewServiceWithDeps(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, rdb: rdb, logger: l}
}

func (s *service) Submit(ctx context.Context, actor identity.Actor, req SubmitLeaveRequest) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	employeeID := req.EmployeeID
	if employeeID == "" {
		employeeID = actor.EmployeeID
	}
	if employeeID == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	// Submit atas nama orang lain hanya untuk role yang melihat semua request.
	if !actor.Owns(employeeID) && !actor.Role.CanViewAllRequests() {
		return LeaveRequestResponse{}, leaveerrors.ErrAccessDenied
	}

	leaveType, ok := ParseLeaveType(req.LeaveType)
	if !ok {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if endDate.Before(startDate) {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidDateRange
	}
	if strings.TrimSpace(req.Reason) == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrEmptyReason
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, employeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !exists {
		return LeaveRequestResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	overlap, err := qtx.HasOverlapping(ctx, employeeID, startDate, endDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if overlap {
		return LeaveRequestResponse{}, leaveerrors.ErrOverlappingRequest
	}

	lr := &LeaveRequest{
		ID:            uuid.New(),
		EmployeeID:    empUUID,
		LeaveType:     leaveType,
		StartDate:     startDate,
		EndDate:       endDate,
		DaysRequested: DaySpan(startDate, endDate),
		Reason:        req.Reason,
		Status:        StatusPending,
		SubmittedAt:   time.Now().UTC(),
	}

	if err := qtx.Create(ctx, lr); err != nil {
		// Backstop: dua submit paralel pada rentang yang sama bisa sama-sama
		// lolos pengecekan overlap, exclusion constraint menangkap sisanya.
		if isOverlapViolation(err) {
			return LeaveRequestResponse{}, leaveerrors.ErrOverlappingRequest
		}
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("employee_id", employeeID),
		zap.Int("days_requested", lr.DaysRequested),
	)

	return mapToLeaveResponse(*lr), nil
}

func (s *service) GetAll(ctx context.Context, actor identity.Actor, filter ListLeaveRequestsFilter) ([]LeaveRequestResponse, int64, error) {
	if !actor.Role.CanViewAllRequests() {
		// Role biasa selalu di-scope ke request miliknya sendiri,
		// apapun filter yang dikirim klien.
		filter.EmployeeID = actor.EmployeeID
		if filter.EmployeeID == "" {
			return []LeaveRequestResponse{}, 0, nil
		}
	}

	if filter.Status != "" {
		if _, ok := ParseStatus(filter.Status); !ok {
			return nil, 0, leaveerrors.ErrInvalidStatusFilter
		}
	}

	requests, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]LeaveRequestResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapToLeaveResponse(lr)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidRequestID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if !actor.CanSee(lr.EmployeeID.String()) {
		// Keberadaan request orang lain tidak dibocorkan lewat 403 vs 404;
		// di sini kita pakai 403 karena id path bukan rahasia.
		return LeaveRequestResponse{}, leaveerrors.ErrAccessDenied
	}

	return mapToLeaveResponse(*lr), nil
}

func (s *service) Approve(ctx context.Context, actor identity.Actor, id string, req ReviewLeaveRequest) (LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, StatusApproved, req.Comments)
}

func (s *service) Reject(ctx context.Context, actor identity.Actor, id string, req RejectLeaveRequest) (LeaveRequestResponse, error) {
	if strings.TrimSpace(req.Comments) == "" {
		return LeaveRequestResponse{}, leaveerrors.ErrCommentsRequired
	}
	return s.decide(ctx, actor, id, StatusRejected, req.Comments)
}

func (s *service) Cancel(ctx context.Context, actor identity.Actor, id string) (LeaveRequestResponse, error) {
	return s.decide(ctx, actor, id, StatusCancelled, "")
}

// decide menjalankan satu transisi keluar dari PENDING. Keputusan ditulis
// compare-and-swap terhadap status PENDING; dua reviewer yang balapan pada
// request yang sama, hanya satu yang menang.
func (s *service) decide(ctx context.Context, actor identity.Actor, id string, target Status, comments string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaveerrors.ErrInvalidRequestID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaveerrors.ErrRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	switch target {
	case StatusApproved, StatusRejected:
		if !actor.Role.CanReview() {
			return LeaveRequestResponse{}, leaveerrors.ErrAccessDenied
		}
		// Reviewer tidak boleh memutuskan request miliknya sendiri.
		if actor.Owns(lr.EmployeeID.String()) {
			return LeaveRequestResponse{}, leaveerrors.ErrAccessDenied
		}
	case StatusCancelled:
		if !actor.Owns(lr.EmployeeID.String()) && !actor.Role.CanCancelAny() {
			return LeaveRequestResponse{}, leaveerrors.ErrNotRequestOwner
		}
	}

	if !lr.Status.CanTransitionTo(target) {
		return LeaveRequestResponse{}, leaveerrors.ErrIllegalTransition
	}

	lr.Status = target
	// reviewed_at/reviewed_by hanya diisi oleh keputusan reviewer; cancel
	// bukan review, jadi kedua kolom tetap kosong.
	if target == StatusApproved || target == StatusRejected {
		now := time.Now().UTC()
		lr.ReviewedAt = &now
		if actor.UserID != "" {
			if reviewer, err := uuid.Parse(actor.UserID); err == nil {
				lr.ReviewedBy = &reviewer
			}
		}
	}
	if comments != "" {
		lr.Comments = &comments
	}

	applied, err := qtx.Transition(ctx, lr, StatusPending)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	if !applied {
		return LeaveRequestResponse{}, leaveerrors.ErrIllegalTransition
	}

	if s.outbox != nil {
		if err := s.recordDecisionEvent(ctx, tx, rid, lr, target); err != nil {
			s.logger.Error("record leave decision event failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	s.invalidateBalanceCache(ctx, lr.EmployeeID.String(), lr.StartDate.Year())

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("status", string(target)),
		zap.String("reviewed_by", actor.UserID),
	)

	return mapToLeaveResponse(*lr), nil
}

// recordDecisionEvent menulis event ke outbox dalam transaksi yang sama
// dengan update status; event tidak pernah terbit untuk keputusan yang
// batal di-commit.
func (s *service) recordDecisionEvent(ctx context.Context, tx *sql.Tx, rid string, lr *LeaveRequest, target Status) error {
	eventType := events.LeaveCancelledEvent
	switch target {
	case StatusApproved:
		eventType = events.LeaveApprovedEvent
	case StatusRejected:
		eventType = events.LeaveRejectedEvent
	}

	payload, err := json.Marshal(events.LeaveDecidedEvent{
		EventType:  eventType,
		RequestID:  lr.ID.String(),
		EmployeeID: lr.EmployeeID.String(),
		LeaveType:  string(lr.LeaveType),
		Status:     string(lr.Status),
		Year:       lr.StartDate.Year(),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   lr.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateBalanceCache(ctx context.Context, employeeID string, year int) {
	if s.rdb == nil {
		return
	}
	key := BalanceCacheKey(employeeID, year)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		// Cache basi ter-cover TTL dan consumer invalidation, cukup dicatat.
		s.logger.Warn("invalidate balance cache failed", zap.String("cache_key", key), zap.Error(err))
	}
}

func (s *service) Balance(ctx context.Context, actor identity.Actor, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if year < 2000 || year > 2200 {
		return BalanceResponse{}, leaveerrors.ErrInvalidYear
	}
	if !actor.CanSee(employeeID) {
		return BalanceResponse{}, leaveerrors.ErrAccessDenied
	}

	if s.rdb != nil {
		key := BalanceCacheKey(employeeID, year)
		if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var resp BalanceResponse
			if err := json.Unmarshal(cached, &resp); err == nil {
				return resp, nil
			}
			s.logger.Warn("decode cached balance failed", zap.String("cache_key", key), zap.Error(err))
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("read balance cache failed", zap.String("cache_key", key), zap.Error(err))
		}
	}

	// Cache miss yang serentak untuk employee+year yang sama digabung jadi
	// satu hitungan DB.
	v, err, _ := s.sf.Do(BalanceCacheKey(employeeID, year), func() (any, error) {
		return s.computeBalance(ctx, employeeID, year)
	})
	if err != nil {
		return BalanceResponse{}, err
	}
	resp := v.(BalanceResponse)

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.Set(ctx, BalanceCacheKey(employeeID, year), payload, balanceCacheTTL).Err(); err != nil {
				s.logger.Warn("write balance cache failed", zap.Error(err))
			}
		}
	}

	return resp, nil
}

func (s *service) computeBalance(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	exists, err := s.repo.EmployeeExists(ctx, employeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	if !exists {
		return BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
	}

	approved, err := s.repo.FindApprovedInYear(ctx, employeeID, year)
	if err != nil {
		return BalanceResponse{}, err
	}

	var annualUsed, sickUsed, personalUsed int
	for _, lr := range approved {
		switch lr.LeaveType {
		case TypeAnnual:
			annualUsed += lr.DaysRequested
		case TypeSick:
			sickUsed += lr.DaysRequested
		case TypePersonal:
			personalUsed += lr.DaysRequested
		}
	}

	remaining := AnnualAllotment - annualUsed
	if remaining < 0 {
		remaining = 0
	}

	return BalanceResponse{
		Year: year,
		Annual: AnnualBalance{
			Total:     AnnualAllotment,
			Used:      annualUsed,
			Remaining: remaining,
		},
		Sick:     LeaveTypeUsage{Used: sickUsed},
		Personal: LeaveTypeUsage{Used: personalUsed},
	}, nil
}

func isOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" && pgErr.ConstraintName == "ex_leave_requests_no_overlap"
	}
	return false
}

func mapToLeaveResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:            lr.ID.String(),
		EmployeeID:    lr.EmployeeID.String(),
		LeaveType:     string(lr.LeaveType),
		StartDate:     lr.StartDate.Format("2006-01-02"),
		EndDate:       lr.EndDate.Format("2006-01-02"),
		DaysRequested: lr.DaysRequested,
		Reason:        lr.Reason,
		Status:        string(lr.Status),
		SubmittedAt:   lr.SubmittedAt.Format(time.RFC3339),
	}
	if lr.Employee != nil {
		resp.EmployeeName = lr.Employee.FullName()
	}
	if lr.ReviewedAt != nil {
		v := lr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	if lr.ReviewedBy != nil {
		v := lr.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if lr.Comments != nil {
		resp.Comments = lr.Comments
	}
	return resp
}
