package reviewerrors

import (
	"net/http"

	"go-hrm/internal/shared/apperror"
)

var (
	ErrInvalidReviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid review id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee record not found",
		http.StatusNotFound,
	)
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"performance review not found",
		http.StatusNotFound,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"a review for this employee and period already exists",
		http.StatusConflict,
	)
	ErrSelfReview = apperror.New(
		apperror.CodeForbidden,
		"reviewers may not review themselves",
		http.StatusForbidden,
	)
	ErrAccessDenied = apperror.New(
		apperror.CodeForbidden,
		"you do not have access to this review",
		http.StatusForbidden,
	)
	ErrNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"only draft reviews can be edited",
		http.StatusBadRequest,
	)
	ErrIllegalTransition = apperror.New(
		apperror.CodeInvalidState,
		"review status transition not allowed",
		http.StatusBadRequest,
	)
	ErrInvalidGoalID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid goal id",
		http.StatusBadRequest,
	)
	ErrGoalNotFound = apperror.New(
		apperror.CodeNotFound,
		"performance goal not found",
		http.StatusNotFound,
	)
	ErrInvalidGoalStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid goal status",
		http.StatusBadRequest,
	)
	ErrInvalidGoalDate = apperror.New(
		apperror.CodeInvalidInput,
		"target_date must be YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
