package seller

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// AuditRecord is the durable trace of one seller lifecycle event
type AuditRecord struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	Kind          string    `json:"kind"`
	SellerID      int64     `json:"seller_id"`
	SellerName    string    `json:"seller_name"`
	Category      string    `json:"category"`
	OccurredAt    time.Time `json:"occurred_at"`
	Summary       string    `json:"summary"`
	BranchName    string    `json:"branch_name,omitempty"`
	OldBranchName string    `json:"old_branch_name,omitempty"`
	NewBranchName string    `json:"new_branch_name,omitempty"`
	ChangedFields []string  `json:"changed_fields,omitempty"`
}

// AuditSink stores audit records
type AuditSink interface {
	Record(ctx context.Context, record AuditRecord) error
}

// AuditHandler writes an audit record for every seller lifecycle event
type AuditHandler struct {
	logger *zap.Logger
	sink   AuditSink
}

// NewAuditHandler creates a new audit handler. A nil sink logs the records.
func NewAuditHandler(logger *zap.Logger, sink AuditSink) *AuditHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sink == nil {
		sink = NewLoggingAuditSink(logger)
	}
	return &AuditHandler{logger: logger, sink: sink}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditHandler) EventTypes() []string {
	return seller.AllEventTypes()
}

// Handle builds the audit record and hands it to the sink
func (h *AuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lifecycle, ok := event.(seller.LifecycleEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	record := NewAuditRecord(lifecycle)
	if err := h.sink.Record(ctx, record); err != nil {
		return fmt.Errorf("failed to record audit entry for event %s: %w", record.EventID, err)
	}
	return nil
}

// NewAuditRecord converts a lifecycle event into an audit record
func NewAuditRecord(event seller.LifecycleEvent) AuditRecord {
	ref := event.Seller()
	record := AuditRecord{
		EventID:    event.EventID().String(),
		EventType:  event.EventType(),
		Kind:       string(event.Kind()),
		SellerID:   ref.SellerID,
		SellerName: ref.SellerName,
		Category:   string(ref.Category),
		OccurredAt: event.OccurredAt(),
	}

	switch e := event.(type) {
	case *seller.SellerCreatedEvent:
		record.BranchName = e.BranchName
		record.Summary = fmt.Sprintf("Seller created: %s (ID %d, category %s)", ref.SellerName, ref.SellerID, ref.Category)
	case *seller.SellerBranchChangedEvent:
		record.OldBranchName = e.OldBranchName
		record.NewBranchName = e.NewBranchName
		record.Summary = fmt.Sprintf("%s moved from branch %s to %s", ref.SellerName, e.OldBranchName, e.NewBranchName)
	case *seller.SellerModifiedEvent:
		record.ChangedFields = e.ChangedFields
		record.Summary = fmt.Sprintf("Seller modified: %s (ID %d), fields: %s", ref.SellerName, ref.SellerID, strings.Join(e.ChangedFields, ", "))
	case *seller.SellerDeactivatedEvent:
		record.Summary = fmt.Sprintf("Seller deactivated: %s (ID %d)", ref.SellerName, ref.SellerID)
	case *seller.SellerReactivatedEvent:
		record.Summary = fmt.Sprintf("Seller reactivated: %s (ID %d)", ref.SellerName, ref.SellerID)
	}
	return record
}

var _ shared.EventHandler = (*AuditHandler)(nil)

// LoggingAuditSink writes audit records to the application log
type LoggingAuditSink struct {
	logger *zap.Logger
}

// NewLoggingAuditSink creates a new logging sink
func NewLoggingAuditSink(logger *zap.Logger) *LoggingAuditSink {
	return &LoggingAuditSink{logger: logger}
}

// Record logs the audit record
func (s *LoggingAuditSink) Record(ctx context.Context, record AuditRecord) error {
	s.logger.Info("AUDIT",
		zap.String("event_id", record.EventID),
		zap.String("kind", record.Kind),
		zap.Int64("seller_id", record.SellerID),
		zap.String("category", record.Category),
		zap.Time("occurred_at", record.OccurredAt),
		zap.String("summary", record.Summary),
	)
	return nil
}

var _ AuditSink = (*LoggingAuditSink)(nil)
