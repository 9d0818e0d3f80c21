package seller

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/venta/backend/internal/domain/seller"
	"github.com/venta/backend/internal/domain/shared"
)

// FinanceAccountType distinguishes the payout scheme of a seller
type FinanceAccountType string

const (
	// FinanceAccountCommission pays external sellers a share of each sale
	FinanceAccountCommission FinanceAccountType = "COMMISSION"
	// FinanceAccountBonus pays internal sellers a bonus on goal attainment
	FinanceAccountBonus FinanceAccountType = "BONUS"
)

// FinanceAccount is the payout account opened for a new seller
type FinanceAccount struct {
	SellerID       int64              `json:"seller_id"`
	SellerName     string             `json:"seller_name"`
	Type           FinanceAccountType `json:"type"`
	CommissionRate decimal.Decimal    `json:"commission_rate"`
	BonusAmount    decimal.Decimal    `json:"bonus_amount"`
}

// FinanceAccountOpener opens payout accounts in the finance system
type FinanceAccountOpener interface {
	OpenAccount(ctx context.Context, account FinanceAccount) error
}

// FinanceHandler opens a commission account for external sellers and a
// bonus account for internal sellers when they are registered
type FinanceHandler struct {
	logger         *zap.Logger
	opener         FinanceAccountOpener
	commissionRate decimal.Decimal
	internalBonus  decimal.Decimal
}

// NewFinanceHandler creates a new finance handler. A nil opener logs the accounts.
func NewFinanceHandler(logger *zap.Logger, opener FinanceAccountOpener, commissionRate, internalBonus decimal.Decimal) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opener == nil {
		opener = NewLoggingFinanceAccountOpener(logger)
	}
	return &FinanceHandler{
		logger:         logger,
		opener:         opener,
		commissionRate: commissionRate,
		internalBonus:  internalBonus,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *FinanceHandler) EventTypes() []string {
	return []string{seller.EventTypeSellerCreated}
}

// Handle opens the account matching the seller category
func (h *FinanceHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	created, ok := event.(*seller.SellerCreatedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", seller.EventTypeSellerCreated),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			seller.EventTypeSellerCreated, event.EventType())
	}

	account := h.accountFor(created.Seller())
	if err := h.opener.OpenAccount(ctx, account); err != nil {
		h.logger.Error("failed to open finance account",
			zap.Int64("seller_id", account.SellerID),
			zap.String("account_type", string(account.Type)),
			zap.Error(err),
		)
		// Don't return error - the seller exists regardless of the finance system
	}
	return nil
}

func (h *FinanceHandler) accountFor(ref seller.SellerRef) FinanceAccount {
	account := FinanceAccount{
		SellerID:       ref.SellerID,
		SellerName:     ref.SellerName,
		CommissionRate: decimal.Zero,
		BonusAmount:    decimal.Zero,
	}
	if ref.Category == seller.CategoryExternal {
		account.Type = FinanceAccountCommission
		account.CommissionRate = h.commissionRate
	} else {
		account.Type = FinanceAccountBonus
		account.BonusAmount = h.internalBonus
	}
	return account
}

var _ shared.EventHandler = (*FinanceHandler)(nil)

// LoggingFinanceAccountOpener logs accounts instead of opening them
type LoggingFinanceAccountOpener struct {
	logger *zap.Logger
}

// NewLoggingFinanceAccountOpener creates a new logging opener
func NewLoggingFinanceAccountOpener(logger *zap.Logger) *LoggingFinanceAccountOpener {
	return &LoggingFinanceAccountOpener{logger: logger}
}

// OpenAccount logs the account
func (o *LoggingFinanceAccountOpener) OpenAccount(ctx context.Context, account FinanceAccount) error {
	o.logger.Info("finance account opened",
		zap.Int64("seller_id", account.SellerID),
		zap.String("seller_name", account.SellerName),
		zap.String("account_type", string(account.Type)),
		zap.String("commission_rate", account.CommissionRate.String()),
		zap.String("bonus_amount", account.BonusAmount.StringFixed(2)),
	)
	return nil
}

var _ FinanceAccountOpener = (*LoggingFinanceAccountOpener)(nil)
