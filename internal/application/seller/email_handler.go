package seller

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// Email templates
const (
	EmailTemplateWelcome      = "seller_welcome"
	EmailTemplateBranchChange = "seller_branch_change"
	EmailTemplateDeactivation = "seller_deactivation"
)

// EmailMessage is an outgoing notification to a seller
type EmailMessage struct {
	To       string `json:"to"`
	Name     string `json:"name"`
	Template string `json:"template"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// EmailNotifier delivers email messages
type EmailNotifier interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailHandler emails sellers when they join, move branch or leave
type EmailHandler struct {
	logger   *zap.Logger
	notifier EmailNotifier
}

// NewEmailHandler creates a new email handler. A nil notifier logs the messages.
func NewEmailHandler(logger *zap.Logger, notifier EmailNotifier) *EmailHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NewLoggingEmailNotifier(logger)
	}
	return &EmailHandler{logger: logger, notifier: notifier}
}

// EventTypes returns the event types this handler is interested in
func (h *EmailHandler) EventTypes() []string {
	return []string{
		seller.EventTypeSellerCreated,
		seller.EventTypeSellerBranchChanged,
		seller.EventTypeSellerDeactivated,
	}
}

// Handle composes and sends the message for the event
func (h *EmailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	msg, ok := ComposeEmail(event)
	if !ok {
		h.logger.Debug("no email for event", zap.String("event_type", event.EventType()))
		return nil
	}
	if msg.To == "" {
		h.logger.Warn("seller has no email address, skipping notification",
			zap.String("event_type", event.EventType()),
			zap.String("seller", msg.Name),
		)
		return nil
	}

	if err := h.notifier.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send seller email",
			zap.String("template", msg.Template),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		// Don't return error - email failure shouldn't fail the event handling
	}
	return nil
}

// ComposeEmail builds the message for an event. It returns false for events
// that do not produce an email.
func ComposeEmail(event shared.DomainEvent) (EmailMessage, bool) {
	switch e := event.(type) {
	case *seller.SellerCreatedEvent:
		ref := e.Seller()
		return EmailMessage{
			To:       ref.Email,
			Name:     ref.SellerName,
			Template: EmailTemplateWelcome,
			Subject:  "Welcome to the sales team",
			Body: fmt.Sprintf("Hello %s, your seller account is active and assigned to branch %s.",
				ref.SellerName, e.BranchName),
		}, true
	case *seller.SellerBranchChangedEvent:
		ref := e.Seller()
		return EmailMessage{
			To:       ref.Email,
			Name:     ref.SellerName,
			Template: EmailTemplateBranchChange,
			Subject:  "Your branch assignment has changed",
			Body: fmt.Sprintf("Hello %s, you have been moved from branch %s to branch %s.",
				ref.SellerName, e.OldBranchName, e.NewBranchName),
		}, true
	case *seller.SellerDeactivatedEvent:
		ref := e.Seller()
		return EmailMessage{
			To:       ref.Email,
			Name:     ref.SellerName,
			Template: EmailTemplateDeactivation,
			Subject:  "Your seller account has been deactivated",
			Body:     fmt.Sprintf("Hello %s, thank you for your work with us. Your seller account is now inactive.", ref.SellerName),
		}, true
	}
	return EmailMessage{}, false
}

var _ shared.EventHandler = (*EmailHandler)(nil)

// LoggingEmailNotifier logs emails instead of sending them.
// This is useful for development and testing
type LoggingEmailNotifier struct {
	logger *zap.Logger
}

// NewLoggingEmailNotifier creates a new logging notifier
func NewLoggingEmailNotifier(logger *zap.Logger) *LoggingEmailNotifier {
	return &LoggingEmailNotifier{logger: logger}
}

// Send logs the message
func (n *LoggingEmailNotifier) Send(ctx context.Context, msg EmailMessage) error {
	n.logger.Info("EMAIL",
		zap.String("to", msg.To),
		zap.String("template", msg.Template),
		zap.String("subject", msg.Subject),
	)
	return nil
}

var _ EmailNotifier = (*LoggingEmailNotifier)(nil)
