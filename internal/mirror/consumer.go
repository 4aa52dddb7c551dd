package mirror

import (
	"context"
	"encoding/json"

	"go-payroll/internal/bootstrap"
	"go-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAttendanceSnapshots membaca topik snapshot dan meneruskannya
// ke audit logger. Ini sisi penerima dari mirroring satu arah.
func ConsumeAttendanceSnapshots(
	ctx context.Context,
	reader *kafkago.Reader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.attendance_snapshot")
	log.Info("attendance snapshot consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("attendance snapshot consumer stopped")
				return
			}
			log.Error("fetch attendance snapshot message failed", zap.Error(err))
			continue
		}

		var event events.AttendanceSnapshotEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode attendance snapshot failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "attendance_snapshot",
			Message: "attendance snapshot received",
			Meta: map[string]any{
				"attendance_id":   event.AttendanceID,
				"employee_id":     event.EmployeeID,
				"date":            event.Date,
				"worked_hours":    event.WorkedHours,
				"payable_hours":   event.PayableHours,
				"late_minutes":    event.LateMinutes,
				"late_deduction":  event.LateDeduction,
				"statutory_total": event.StatutoryTotal,
				"net_week":        event.NetWeek,
				"source":          event.Source,
			},
		})

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit attendance snapshot message failed", zap.Error(err))
			continue
		}
	}
}
