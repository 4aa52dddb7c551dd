package payrollerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrWeekAlreadyApproved = apperror.New(
		apperror.CodeConflict,
		"an approved payslip already exists for this week",
		http.StatusConflict,
	)
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipNotPending = apperror.New(
		apperror.CodeInvalidState,
		"payslip has already been decided",
		http.StatusBadRequest,
	)
	ErrInvalidCreatedAt = apperror.New(
		apperror.CodeInvalidInput,
		"invalid created_at, expected RFC3339",
		http.StatusBadRequest,
	)
)
