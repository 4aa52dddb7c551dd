package attendance

import (
	"net/http"
	"strconv"

	"go-payroll/internal/shared/apperror"
	"go-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("attendance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// bindPunch memaksa non-admin absen untuk dirinya sendiri; hanya admin
// yang boleh mencatatkan punch karyawan lain atau memberi waktu manual.
func (h *Handler) bindPunch(c *gin.Context) (PunchRequest, bool) {
	var req PunchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http punch validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return PunchRequest{}, false
	}
	if c.GetString("role") != "admin" {
		req.EmployeeID = c.GetString("employee_id")
		req.At = ""
	}
	return req, true
}

func (h *Handler) TimeIn(c *gin.Context) {
	req, ok := h.bindPunch(c)
	if !ok {
		return
	}
	resp, err := h.service.TimeIn(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TimeOut(c *gin.Context) {
	req, ok := h.bindPunch(c)
	if !ok {
		return
	}
	resp, err := h.service.TimeOut(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		resp []PunchResponse
		err  error
	)
	if c.GetString("role") == "admin" {
		resp, err = h.service.GetAll(ctx)
	} else {
		resp, err = h.service.GetForEmployee(ctx, c.GetString("employee_id"))
	}
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) Weeks(c *gin.Context) {
	resp, err := h.service.Weeks(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) WeekHours(c *gin.Context) {
	weekIndex, _ := strconv.Atoi(c.DefaultQuery("week", "0"))
	employeeID := c.Query("employee_id")
	if c.GetString("role") != "admin" {
		employeeID = c.GetString("employee_id")
	}

	resp, err := h.service.WeekHours(c.Request.Context(), weekIndex, employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) WeekLates(c *gin.Context) {
	weekIndex, _ := strconv.Atoi(c.DefaultQuery("week", "0"))

	resp, err := h.service.WeekLates(c.Request.Context(), weekIndex)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
