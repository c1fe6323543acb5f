package postgresadapter

import (
	"context"
	"errors"
	"log/slog"

	"galavote/contexts/event-catalog/event-service/domain/entities"
	"galavote/contexts/event-catalog/event-service/ports"

	"gorm.io/gorm"
)

// BillingReader reads the subscription projection maintained by the billing
// webhook pipeline. An absent row means the owner never subscribed and falls
// through to the free tier.
type BillingReader struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewBillingReader(db *gorm.DB, logger *slog.Logger) *BillingReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &BillingReader{db: db, logger: logger}
}

type billingAccountModel struct {
	UserID             string `gorm:"column:user_id;primaryKey"`
	SubscriptionStatus string `gorm:"column:subscription_status"`
	PriceID            string `gorm:"column:price_id"`
}

func (billingAccountModel) TableName() string { return "billing_accounts" }

func (r *BillingReader) GetBillingAccount(ctx context.Context, userID string) (entities.BillingAccount, error) {
	var model billingAccountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BillingAccount{UserID: userID}, nil
	}
	if err != nil {
		r.logger.ErrorContext(ctx, "event catalog storage failure",
			slog.String("event", "billing_account_get_failed"),
			slog.String("module", "event_service"),
			slog.String("layer", "adapter_postgres"),
			slog.String("error", err.Error()),
		)
		return entities.BillingAccount{}, err
	}
	return entities.BillingAccount{
		UserID:             model.UserID,
		SubscriptionStatus: model.SubscriptionStatus,
		PriceID:            model.PriceID,
	}, nil
}

var _ ports.BillingReader = (*BillingReader)(nil)
