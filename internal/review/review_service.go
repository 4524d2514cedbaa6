package review

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrm/internal/identity"
	reviewerrors "go-hrm/internal/review/errors"
	"go-hrm/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=review_service.go -destination=mock/review_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor identity.Actor, req CreateReviewRequest) (ReviewResponse, error)
	GetAll(ctx context.Context, actor identity.Actor, filter ListReviewsFilter) ([]ReviewResponse, int64, error)
	GetByID(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error)
	Update(ctx context.Context, actor identity.Actor, id string, req UpdateReviewRequest) (ReviewResponse, error)
	Submit(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error)
	Approve(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error)
	Reopen(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error)
	Delete(ctx context.Context, actor identity.Actor, id string) error
	UpdateGoal(ctx context.Context, actor identity.Actor, goalID string, req UpdateGoalRequest) (GoalResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("review.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("review.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actor identity.Actor, req CreateReviewRequest) (ReviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	empUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidEmployeeID
	}
	if actor.Owns(req.EmployeeID) {
		return ReviewResponse{}, reviewerrors.ErrSelfReview
	}
	reviewerUUID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return ReviewResponse{}, reviewerrors.ErrAccessDenied
	}

	targetDates := make([]time.Time, len(req.Goals))
	for i, g := range req.Goals {
		td, err := time.Parse("2006-01-02", g.TargetDate)
		if err != nil {
			return ReviewResponse{}, reviewerrors.ErrInvalidGoalDate
		}
		targetDates[i] = td
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create review begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return ReviewResponse{}, err
	}
	if !exists {
		return ReviewResponse{}, reviewerrors.ErrEmployeeNotFound
	}

	taken, err := qtx.PeriodTaken(ctx, req.EmployeeID, req.Period)
	if err != nil {
		return ReviewResponse{}, err
	}
	if taken {
		return ReviewResponse{}, reviewerrors.ErrDuplicatePeriod
	}

	pr := &PerformanceReview{
		ID:                  uuid.New(),
		EmployeeID:          empUUID,
		ReviewerID:          reviewerUUID,
		Period:              req.Period,
		OverallRating:       req.OverallRating,
		Strengths:           req.Strengths,
		AreasForImprovement: req.AreasForImprovement,
		Status:              StatusDraft,
	}

	if err := qtx.Create(ctx, pr); err != nil {
		if isDuplicatePeriodViolation(err) {
			return ReviewResponse{}, reviewerrors.ErrDuplicatePeriod
		}
		s.logger.Error("create review persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}

	// Goal dibuat dalam transaksi yang sama dengan review-nya.
	goals := make([]PerformanceGoal, len(req.Goals))
	for i, g := range req.Goals {
		goals[i] = PerformanceGoal{
			ID:          uuid.New(),
			ReviewID:    pr.ID,
			Title:       g.Title,
			Description: g.Description,
			TargetDate:  targetDates[i],
			Status:      GoalNotStarted,
			Progress:    0,
		}
	}
	if err := qtx.CreateGoals(ctx, goals); err != nil {
		s.logger.Error("create review goals persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	pr.Goals = goals

	if err := tx.Commit(); err != nil {
		s.logger.Error("create review commit failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	s.logger.Info("create review success",
		zap.String("request_id", rid),
		zap.String("review_id", pr.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("period", req.Period),
	)

	return mapToReviewResponse(*pr), nil
}

func (s *service) GetAll(ctx context.Context, actor identity.Actor, filter ListReviewsFilter) ([]ReviewResponse, int64, error) {
	if !actor.Role.CanViewAllRequests() {
		// Karyawan hanya melihat review miliknya sendiri, tanpa draft.
		filter.EmployeeID = actor.EmployeeID
		filter.ExcludeDrafts = true
		if filter.EmployeeID == "" {
			return []ReviewResponse{}, 0, nil
		}
	}

	reviews, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	resp := make([]ReviewResponse, len(reviews))
	for i, pr := range reviews {
		resp[i] = mapToReviewResponse(pr)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewID
	}

	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, reviewerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}

	if !actor.CanSee(pr.EmployeeID.String()) {
		return ReviewResponse{}, reviewerrors.ErrAccessDenied
	}

	// Draft hanya terlihat oleh reviewer dan role pengelola, subjeknya
	// belum boleh melihat sampai di-submit.
	if pr.Status == StatusDraft && !actor.Role.CanManageReviews() && actor.UserID != pr.ReviewerID.String() {
		return ReviewResponse{}, reviewerrors.ErrAccessDenied
	}

	return mapToReviewResponse(*pr), nil
}

func (s *service) Update(ctx context.Context, actor identity.Actor, id string, req UpdateReviewRequest) (ReviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update review begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, reviewerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}

	if pr.Status != StatusDraft {
		return ReviewResponse{}, reviewerrors.ErrNotEditable
	}
	if actor.UserID != pr.ReviewerID.String() && !actor.Role.CanManageReviews() {
		return ReviewResponse{}, reviewerrors.ErrAccessDenied
	}

	if req.OverallRating != nil {
		pr.OverallRating = *req.OverallRating
	}
	if req.Strengths != nil {
		pr.Strengths = *req.Strengths
	}
	if req.AreasForImprovement != nil {
		pr.AreasForImprovement = *req.AreasForImprovement
	}

	if err := qtx.Update(ctx, pr); err != nil {
		s.logger.Error("update review persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update review commit failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	s.logger.Info("update review success", zap.String("request_id", rid), zap.String("review_id", id))

	return mapToReviewResponse(*pr), nil
}

func (s *service) Submit(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error) {
	return s.transition(ctx, actor, id, StatusSubmitted)
}

func (s *service) Approve(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error) {
	return s.transition(ctx, actor, id, StatusApproved)
}

// Reopen mengembalikan review yang sudah submitted ke draft supaya bisa
// direvisi sebelum disetujui.
func (s *service) Reopen(ctx context.Context, actor identity.Actor, id string) (ReviewResponse, error) {
	return s.transition(ctx, actor, id, StatusDraft)
}

func (s *service) transition(ctx context.Context, actor identity.Actor, id string, target ReviewStatus) (ReviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return ReviewResponse{}, reviewerrors.ErrInvalidReviewID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition review begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewResponse{}, reviewerrors.ErrReviewNotFound
		}
		return ReviewResponse{}, err
	}

	switch target {
	case StatusSubmitted:
		if actor.UserID != pr.ReviewerID.String() && !actor.Role.CanManageReviews() {
			return ReviewResponse{}, reviewerrors.ErrAccessDenied
		}
	case StatusApproved, StatusDraft:
		if !actor.Role.CanManageReviews() {
			return ReviewResponse{}, reviewerrors.ErrAccessDenied
		}
	}

	if !pr.Status.CanTransitionTo(target) {
		return ReviewResponse{}, reviewerrors.ErrIllegalTransition
	}
	pr.Status = target

	if err := qtx.Update(ctx, pr); err != nil {
		s.logger.Error("transition review persist failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("transition review commit failed", zap.String("request_id", rid), zap.Error(err))
		return ReviewResponse{}, err
	}
	s.logger.Info("transition review success",
		zap.String("request_id", rid),
		zap.String("review_id", id),
		zap.String("status", string(target)),
	)

	return mapToReviewResponse(*pr), nil
}

// Delete hanya berlaku untuk draft; review yang sudah submitted atau
// approved adalah catatan historis.
func (s *service) Delete(ctx context.Context, actor identity.Actor, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return reviewerrors.ErrInvalidReviewID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reviewerrors.ErrReviewNotFound
		}
		return err
	}

	if pr.Status != StatusDraft {
		return reviewerrors.ErrNotEditable
	}
	if actor.UserID != pr.ReviewerID.String() && !actor.Role.CanManageReviews() {
		return reviewerrors.ErrAccessDenied
	}

	// Goal ikut terhapus bersama review-nya.
	if err := qtx.DeleteGoalsByReview(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("delete review success", zap.String("review_id", id))
	return nil
}

// UpdateGoal dipakai untuk melaporkan progres sebuah goal. Subjek review,
// reviewer, dan role pengelola sama-sama boleh memperbarui.
func (s *service) UpdateGoal(ctx context.Context, actor identity.Actor, goalID string, req UpdateGoalRequest) (GoalResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(goalID); err != nil {
		return GoalResponse{}, reviewerrors.ErrInvalidGoalID
	}

	var status GoalStatus
	if req.Status != nil {
		parsed, ok := ParseGoalStatus(*req.Status)
		if !ok {
			return GoalResponse{}, reviewerrors.ErrInvalidGoalStatus
		}
		status = parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update goal begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return GoalResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	goal, err := qtx.FindGoalByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GoalResponse{}, reviewerrors.ErrGoalNotFound
		}
		return GoalResponse{}, err
	}

	pr, err := qtx.FindByID(ctx, goal.ReviewID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GoalResponse{}, reviewerrors.ErrReviewNotFound
		}
		return GoalResponse{}, err
	}
	if !actor.Owns(pr.EmployeeID.String()) &&
		actor.UserID != pr.ReviewerID.String() &&
		!actor.Role.CanManageReviews() {
		return GoalResponse{}, reviewerrors.ErrAccessDenied
	}

	if req.Status != nil {
		goal.Status = status
	}
	if req.Progress != nil {
		goal.Progress = *req.Progress
	}
	if req.Comments != nil {
		goal.Comments = req.Comments
	}

	if err := qtx.UpdateGoal(ctx, goal); err != nil {
		s.logger.Error("update goal persist failed", zap.String("request_id", rid), zap.Error(err))
		return GoalResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update goal commit failed", zap.String("request_id", rid), zap.Error(err))
		return GoalResponse{}, err
	}
	s.logger.Info("update goal success",
		zap.String("request_id", rid),
		zap.String("goal_id", goalID),
		zap.String("review_id", goal.ReviewID.String()),
	)

	return mapToGoalResponse(*goal), nil
}

func isDuplicatePeriodViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_performance_reviews_employee_period"
	}
	return false
}

func mapToReviewResponse(pr PerformanceReview) ReviewResponse {
	resp := ReviewResponse{
		ID:                  pr.ID.String(),
		EmployeeID:          pr.EmployeeID.String(),
		ReviewerID:          pr.ReviewerID.String(),
		Period:              pr.Period,
		OverallRating:       pr.OverallRating,
		Strengths:           pr.Strengths,
		AreasForImprovement: pr.AreasForImprovement,
		Status:              string(pr.Status),
		CreatedAt:           pr.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           pr.UpdatedAt.Format(time.RFC3339),
	}
	if pr.Employee != nil {
		resp.EmployeeName = pr.Employee.FullName()
	}
	for _, g := range pr.Goals {
		resp.Goals = append(resp.Goals, mapToGoalResponse(g))
	}
	return resp
}

func mapToGoalResponse(g PerformanceGoal) GoalResponse {
	return GoalResponse{
		ID:          g.ID.String(),
		ReviewID:    g.ReviewID.String(),
		Title:       g.Title,
		Description: g.Description,
		TargetDate:  g.TargetDate.Format("2006-01-02"),
		Status:      string(g.Status),
		Progress:    g.Progress,
		Comments:    g.Comments,
	}
}
