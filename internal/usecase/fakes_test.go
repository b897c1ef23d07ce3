package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func strPtr(s string) *string { return &s }

// MockPaymentPlatform is a mock implementation of provider.PaymentPlatform
type MockPaymentPlatform struct {
	mock.Mock
}

func (m *MockPaymentPlatform) AuthorizeURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockPaymentPlatform) ExchangeCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentPlatform) ListActiveSubscriptions(ctx context.Context, accountID string) ([]entity.SubscriptionSnapshot, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SubscriptionSnapshot), args.Error(1)
}

func (m *MockPaymentPlatform) ListProducts(ctx context.Context, accountID string) ([]entity.ExternalProduct, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ExternalProduct), args.Error(1)
}

func (m *MockPaymentPlatform) GetProviderName() string {
	return "stripe"
}

// memoryProductRepository keeps products in a map and counts writes.
type memoryProductRepository struct {
	mu       sync.Mutex
	products map[string]entity.Product
	writes   int
}

func newMemoryProductRepository(products ...entity.Product) *memoryProductRepository {
	r := &memoryProductRepository{products: make(map[string]entity.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *memoryProductRepository) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memoryProductRepository) update(id string, fn func(p *entity.Product)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domainErrors.ErrProductNotFound
	}
	fn(&p)
	r.products[id] = p
	r.writes++
	return nil
}

func (r *memoryProductRepository) SaveConnection(_ context.Context, id, accountID string, v *entity.Verification) error {
	return r.update(id, func(p *entity.Product) {
		p.ConnectedAccountID = &accountID
		p.VerifiedRevenueCents, p.VerifiedAt = nil, nil
		if v != nil {
			cents, at := v.RevenueCents, v.VerifiedAt
			p.VerifiedRevenueCents = &cents
			p.VerifiedAt = &at
		}
	})
}

func (r *memoryProductRepository) SaveVerification(_ context.Context, id string, v entity.Verification) error {
	return r.update(id, func(p *entity.Product) {
		cents, at := v.RevenueCents, v.VerifiedAt
		p.VerifiedRevenueCents = &cents
		p.VerifiedAt = &at
	})
}

func (r *memoryProductRepository) SaveFilter(_ context.Context, id string, filter *string) error {
	return r.update(id, func(p *entity.Product) {
		p.ProductFilter = filter
	})
}

func (r *memoryProductRepository) ClearConnection(_ context.Context, id string) error {
	return r.update(id, func(p *entity.Product) {
		p.ConnectedAccountID = nil
		p.VerifiedRevenueCents = nil
		p.VerifiedAt = nil
	})
}

func (r *memoryProductRepository) Ping(context.Context) error { return nil }

func (r *memoryProductRepository) get(id string) entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[id]
}

// recordingNotifier captures events; err makes every publish fail.
type recordingNotifier struct {
	events []entity.RevenueEvent
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event entity.RevenueEvent) error {
	if n.err != nil {
		return n.err
	}
	n.events = append(n.events, event)
	return nil
}

var errBoom = errors.New("boom")

func activeSub(id string, items ...entity.LineItem) entity.SubscriptionSnapshot {
	return entity.SubscriptionSnapshot{
		ID:               id,
		CustomerID:       "cus_" + id,
		Status:           "active",
		CurrentPeriodEnd: fixedNow.Add(10 * 24 * time.Hour),
		Items:            items,
	}
}

func monthly(productID string, amount, quantity int64) entity.LineItem {
	return entity.LineItem{ProductID: productID, UnitAmount: amount, Quantity: quantity, Interval: entity.IntervalMonth, IntervalCount: 1}
}

func yearly(productID string, amount int64) entity.LineItem {
	return entity.LineItem{ProductID: productID, UnitAmount: amount, Quantity: 1, Interval: entity.IntervalYear, IntervalCount: 1}
}
