package seller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// OnboardingCourse is the course every new seller is enrolled in
const OnboardingCourse = "SELLER_ONBOARDING"

// TrainingEnrollment asks the training system to enroll a seller
type TrainingEnrollment struct {
	SellerID   int64  `json:"seller_id"`
	SellerName string `json:"seller_name"`
	Email      string `json:"email"`
	Category   string `json:"category"`
	Course     string `json:"course"`
}

// TrainingEnroller enrolls sellers in courses
type TrainingEnroller interface {
	Enroll(ctx context.Context, enrollment TrainingEnrollment) error
}

// TrainingHandler enrolls newly registered sellers in the onboarding course
type TrainingHandler struct {
	logger   *zap.Logger
	enroller TrainingEnroller
}

// NewTrainingHandler creates a new training handler
func NewTrainingHandler(logger *zap.Logger, enroller TrainingEnroller) *TrainingHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if enroller == nil {
		enroller = NewLoggingTrainingEnroller(logger)
	}
	return &TrainingHandler{logger: logger, enroller: enroller}
}

// EventTypes returns the event types this handler is interested in
func (h *TrainingHandler) EventTypes() []string {
	return []string{seller.EventTypeSellerCreated}
}

// Handle enrolls the seller
func (h *TrainingHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*seller.SellerCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			seller.EventTypeSellerCreated, event.EventType())
	}

	ref := created.Seller()
	enrollment := TrainingEnrollment{
		SellerID:   ref.SellerID,
		SellerName: ref.SellerName,
		Email:      ref.Email,
		Category:   string(ref.Category),
		Course:     OnboardingCourse,
	}
	if err := h.enroller.Enroll(ctx, enrollment); err != nil {
		h.logger.Error("failed to enroll seller in onboarding course",
			zap.Int64("seller_id", ref.SellerID),
			zap.Error(err),
		)
	}
	return nil
}

var _ shared.EventHandler = (*TrainingHandler)(nil)

// LoggingTrainingEnroller logs enrollments
type LoggingTrainingEnroller struct {
	logger *zap.Logger
}

// NewLoggingTrainingEnroller creates a new logging enroller
func NewLoggingTrainingEnroller(logger *zap.Logger) *LoggingTrainingEnroller {
	return &LoggingTrainingEnroller{logger: logger}
}

// Enroll logs the enrollment
func (e *LoggingTrainingEnroller) Enroll(ctx context.Context, enrollment TrainingEnrollment) error {
	e.logger.Info("seller enrolled in course",
		zap.Int64("seller_id", enrollment.SellerID),
		zap.String("seller_name", enrollment.SellerName),
		zap.String("course", enrollment.Course),
	)
	return nil
}

var _ TrainingEnroller = (*LoggingTrainingEnroller)(nil)
