package app

import (
	"context"
	"os"
	"time"

	"go-payroll/internal/attendance"
	"go-payroll/internal/auth"
	"go-payroll/internal/employee"
	"go-payroll/internal/leave"
	"go-payroll/internal/middleware"
	"go-payroll/internal/mirror"
	"go-payroll/internal/payroll"
	"go-payroll/internal/performance"
	"go-payroll/internal/rbac"
	"go-payroll/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
)

const defaultPollInterval = 5 * time.Second

func registerModules(router *gin.Engine, st store.Store, rdb *redis.Client) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(st)
	attendanceRepo := attendance.NewRepository(st)
	payrollRepo := payroll.NewRepository(st)
	leaveRepo := leave.NewRepository(st)
	authRepo := auth.NewRepository(st)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Mirror (opsional, best-effort) ---
	var punchMirror attendance.Mirror
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		writer := &kafkago.Writer{
			Addr:     kafkago.TCP(broker),
			Balancer: &kafkago.LeastBytes{},
		}
		publisher := mirror.NewPublisher(writer, 256)
		go publisher.Run(context.Background())
		punchMirror = mirror.NewRecorder(employeeRepo, publisher)
	}

	// --- Services ---
	authService := auth.NewService(authRepo)
	employeeService := employee.NewService(employeeRepo)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo, punchMirror)
	performanceService := performance.NewService(attendanceRepo, employeeRepo)
	payrollService := payroll.NewService(payrollRepo, attendanceRepo, employeeRepo, employeeService)
	leaveService := leave.NewService(leaveRepo, employeeRepo, attendanceRepo)

	// --- Watcher: tulisan dari konteks lain menggugurkan cache repo ---
	interval := defaultPollInterval
	if v := os.Getenv("STORE_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			interval = d
		}
	}
	watcher := store.NewWatcher(st, interval)
	watcher.OnChange(employeeRepo.Invalidate)
	watcher.OnChange(attendanceRepo.Invalidate)
	watcher.OnChange(payrollRepo.Invalidate)
	watcher.OnChange(leaveRepo.Invalidate)
	watcher.OnChange(authRepo.Invalidate)
	go watcher.Run(context.Background())

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	employeeHandler := employee.NewHandler(employeeService)
	attendanceHandler := attendance.NewHandler(attendanceService)
	performanceHandler := performance.NewHandler(performanceService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	leaveHandler := leave.NewHandler(leaveService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		performance.RegisterRoutes(api, performanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		leave.RegisterRoutes(api, leaveHandler, rbacService)
	}

	return nil
}
