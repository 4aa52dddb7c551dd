package mirror

import (
	"context"
	"encoding/json"

	"go-payroll/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Writer adalah irisan kecil dari *kafkago.Writer agar bisa dipalsukan
// di test.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publisher mengirim snapshot absensi ke sink jarak jauh secara
// best-effort: antrian ber-buffer, satu goroutine penulis, kegagalan
// hanya dicatat dan tidak pernah membatalkan tulisan lokal.
type Publisher struct {
	writer Writer
	queue  chan events.AttendanceSnapshotEvent
	logger *zap.Logger
}

func NewPublisher(writer Writer, buffer int, logger ...*zap.Logger) *Publisher {
	l := zap.L().Named("mirror.publisher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mirror.publisher")
	}
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		writer: writer,
		queue:  make(chan events.AttendanceSnapshotEvent, buffer),
		logger: l,
	}
}

// Enqueue tidak pernah memblokir; saat antrian penuh event dibuang.
func (p *Publisher) Enqueue(ev events.AttendanceSnapshotEvent) {
	select {
	case p.queue <- ev:
	default:
		p.logger.Warn("mirror queue full, snapshot dropped",
			zap.String("attendance_id", ev.AttendanceID),
			zap.String("employee_id", ev.EmployeeID),
		)
	}
}

// Run menguras antrian sampai ctx selesai.
func (p *Publisher) Run(ctx context.Context) {
	p.logger.Info("mirror publisher started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("mirror publisher stopped")
			return
		case ev := <-p.queue:
			p.publish(ctx, ev)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, ev events.AttendanceSnapshotEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("encode attendance snapshot failed", zap.Error(err))
		return
	}

	msg := kafkago.Message{
		Topic: events.AttendanceMirrorTopic,
		Key:   []byte(ev.EmployeeID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("attendance_snapshot")},
			{Key: "source", Value: []byte(ev.Source)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return
		}
		p.logger.Error("publish attendance snapshot failed",
			zap.String("attendance_id", ev.AttendanceID),
			zap.String("employee_id", ev.EmployeeID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("attendance snapshot published",
		zap.String("attendance_id", ev.AttendanceID),
		zap.String("employee_id", ev.EmployeeID),
	)
}
