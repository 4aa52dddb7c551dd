package employeeerrors

import (
	"net/http"

	"go-payroll/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeExists = apperror.New(
		apperror.CodeConflict,
		"employee with this id already exists",
		http.StatusConflict,
	)
	ErrEmployeeNotArchived = apperror.New(
		apperror.CodeNotFound,
		"employee not found in archive",
		http.StatusNotFound,
	)
	ErrInvalidAnnualSalary = apperror.New(
		apperror.CodeInvalidInput,
		"annual_salary must not be negative",
		http.StatusBadRequest,
	)
)
