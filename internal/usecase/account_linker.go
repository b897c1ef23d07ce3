package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/notifier"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/provider"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
)

// AccountLinker connects a maker's payment account to a product and runs the first verification.
type AccountLinker struct {
	productRepo repository.ProductRepository
	platform    provider.PaymentPlatform
	calculator  *RevenueCalculator
	codec       *StateCodec
	notifier    notifier.Notifier
	logger      *zap.Logger
	now         func() time.Time
}

func NewAccountLinker(
	productRepo repository.ProductRepository,
	platform provider.PaymentPlatform,
	calculator *RevenueCalculator,
	codec *StateCodec,
	notifier notifier.Notifier,
	logger *zap.Logger,
	now func() time.Time,
) *AccountLinker {
	if now == nil {
		now = time.Now
	}
	return &AccountLinker{
		productRepo: productRepo,
		platform:    platform,
		calculator:  calculator,
		codec:       codec,
		notifier:    notifier,
		logger:      logger,
		now:         now,
	}
}

// BeginLink returns the authorization URL the maker is redirected to. Nothing is persisted.
func (l *AccountLinker) BeginLink(ctx context.Context, productID, userID string) (string, error) {
	if _, err := loadOwnedProduct(ctx, l.productRepo, productID, userID); err != nil {
		return "", err
	}

	state, err := l.codec.Encode(LinkState{ProductID: productID, UserID: userID})
	if err != nil {
		return "", err
	}

	l.logger.Info("Payment account link started",
		zap.String("product_id", productID),
		zap.String("user_id", userID),
		zap.String("provider", l.platform.GetProviderName()))

	return l.platform.AuthorizeURL(state), nil
}

// CompleteLink exchanges the code, computes the first figure with the product's
// current filter, and persists account and figure together.
//
// When the exchange succeeds but the computation fails, the account is still
// saved: the returned result is non-nil, has no revenue, and err describes the
// failed computation so the caller can retry with Refresh.
func (l *AccountLinker) CompleteLink(ctx context.Context, code, stateToken, userID string) (*entity.LinkResult, error) {
	if userID == "" {
		return nil, domainErrors.ErrUnauthorized
	}

	state, err := l.codec.Decode(stateToken)
	if err != nil {
		l.logger.Warn("Rejected oauth state", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if state.UserID != userID {
		return nil, domainErrors.ErrUnauthorized
	}

	product, err := loadOwnedProduct(ctx, l.productRepo, state.ProductID, userID)
	if err != nil {
		return nil, err
	}

	accountID, err := l.platform.ExchangeCode(ctx, code)
	if err != nil {
		l.logger.Warn("OAuth code exchange failed",
			zap.String("product_id", product.ID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	result := &entity.LinkResult{
		ProductID:          product.ID,
		ConnectedAccountID: accountID,
	}

	revenue, computeErr := l.calculator.ComputeMonthlyRevenue(ctx, accountID, product.ProductFilter)
	var verification *entity.Verification
	if computeErr == nil {
		verification = &entity.Verification{RevenueCents: revenue, VerifiedAt: l.now().UTC()}
		result.VerifiedRevenueCents = &verification.RevenueCents
		result.VerifiedAt = &verification.VerifiedAt
	}

	if err := l.productRepo.SaveConnection(ctx, product.ID, accountID, verification); err != nil {
		return nil, fmt.Errorf("failed to save connected account: %w", err)
	}

	notify(ctx, l.notifier, l.logger, entity.RevenueEvent{
		Type:         entity.EventAccountConnected,
		ProductID:    product.ID,
		UserID:       userID,
		RevenueCents: result.VerifiedRevenueCents,
		OccurredAt:   l.now().UTC(),
	})

	if computeErr != nil {
		l.logger.Warn("Payment account linked but first verification failed",
			zap.String("product_id", product.ID),
			zap.String("account_id", accountID),
			zap.Error(computeErr))
		return result, fmt.Errorf("account linked, revenue verification pending: %w", computeErr)
	}

	l.logger.Info("Payment account linked",
		zap.String("product_id", product.ID),
		zap.String("user_id", userID),
		zap.String("account_id", accountID),
		zap.Int64("revenue_cents", revenue))

	return result, nil
}
