package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	"go.uber.org/zap"
)

const subscriptionsPage = `{
  "object": "list",
  "url": "/v1/subscriptions",
  "has_more": false,
  "data": [
    {
      "id": "sub_1",
      "object": "subscription",
      "status": "active",
      "cancel_at_period_end": false,
      "canceled_at": null,
      "trial_end": null,
      "current_period_end": 1790000000,
      "customer": {"id": "cus_1", "object": "customer"},
      "items": {
        "object": "list",
        "data": [
          {
            "id": "si_1",
            "object": "subscription_item",
            "quantity": 3,
            "price": {
              "id": "price_1",
              "object": "price",
              "unit_amount": 2000,
              "product": "P1",
              "recurring": {"interval": "month", "interval_count": 1}
            }
          }
        ]
      }
    }
  ]
}`

const productsPage = `{
  "object": "list",
  "url": "/v1/products",
  "has_more": false,
  "data": [
    {"id": "P1", "object": "product", "name": "Starter", "active": true},
    {"id": "P2", "object": "product", "name": "Pro", "active": true}
  ]
}`

func newTestPlatform(t *testing.T, handler http.HandlerFunc) *ConnectPlatform {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewConnectPlatform(Config{
		SecretKey:   "sk_test_123",
		ClientID:    "ca_123",
		RedirectURL: "https://launch.example/revenue/callback",
		APIURL:      server.URL,
		ConnectURL:  server.URL,
	}, zap.NewNop())
}

func TestConnectPlatform_AuthorizeURL(t *testing.T) {
	platform := NewConnectPlatform(Config{SecretKey: "sk_test_123", ClientID: "ca_123"}, zap.NewNop())

	raw := platform.AuthorizeURL("state-token")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", parsed.Path)
	assert.Equal(t, "ca_123", parsed.Query().Get("client_id"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "read_only", parsed.Query().Get("scope"))
	assert.Equal(t, "state-token", parsed.Query().Get("state"))
}

func TestConnectPlatform_ExchangeCode(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		platform := newTestPlatform(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth/token", r.URL.Path)
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "code-1", r.PostForm.Get("code"))
			assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"stripe_user_id":"acct_1","livemode":false,"scope":"read_only","token_type":"bearer"}`))
		})

		accountID, err := platform.ExchangeCode(context.Background(), "code-1")
		require.NoError(t, err)
		assert.Equal(t, "acct_1", accountID)
	})

	t.Run("rejected code", func(t *testing.T) {
		platform := newTestPlatform(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Authorization code does not exist"}`))
		})

		_, err := platform.ExchangeCode(context.Background(), "bad")
		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrExchangeFailed)
	})
}

func TestConnectPlatform_ListActiveSubscriptions(t *testing.T) {
	platform := newTestPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions", r.URL.Path)
		assert.Equal(t, "acct_1", r.Header.Get("Stripe-Account"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		query, err := url.QueryUnescape(r.URL.RawQuery)
		require.NoError(t, err)
		assert.Contains(t, query, "data.items.data.price")
		assert.Contains(t, query, "data.customer")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(subscriptionsPage))
	})

	subs, err := platform.ListActiveSubscriptions(context.Background(), "acct_1")
	require.NoError(t, err)
	require.Len(t, subs, 1)

	assert.Equal(t, "sub_1", subs[0].ID)
	assert.Equal(t, "cus_1", subs[0].CustomerID)
	assert.Nil(t, subs[0].CanceledAt)
	assert.Equal(t, time.Unix(1790000000, 0).UTC(), subs[0].CurrentPeriodEnd)
	assert.Equal(t, []entity.LineItem{
		{ProductID: "P1", UnitAmount: 2000, Quantity: 3, Interval: entity.IntervalMonth, IntervalCount: 1},
	}, subs[0].Items)
}

func TestConnectPlatform_ListProducts(t *testing.T) {
	platform := newTestPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/products", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		assert.Equal(t, "acct_1", r.Header.Get("Stripe-Account"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(productsPage))
	})

	products, err := platform.ListProducts(context.Background(), "acct_1")
	require.NoError(t, err)
	assert.Equal(t, []entity.ExternalProduct{{ID: "P1", Name: "Starter"}, {ID: "P2", Name: "Pro"}}, products)
}

func TestConnectPlatform_UpstreamError(t *testing.T) {
	platform := newTestPlatform(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"The account does not exist"}}`))
	})

	_, err := platform.ListActiveSubscriptions(context.Background(), "acct_gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainErrors.ErrUpstream)
	assert.NotErrorIs(t, err, domainErrors.ErrExchangeFailed)

	var upstream *domainErrors.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, domainErrors.OpListSubscriptions, upstream.Op)
	assert.Equal(t, "The account does not exist", upstream.Message)
}

func TestToSnapshot(t *testing.T) {
	sub := &stripe.Subscription{
		ID:                "sub_2",
		Status:            stripe.SubscriptionStatusActive,
		CancelAtPeriodEnd: true,
		CanceledAt:        1700000000,
		TrialEnd:          1700000500,
		Items: &stripe.SubscriptionItemList{Data: []*stripe.SubscriptionItem{
			{Quantity: 2, Price: &stripe.Price{
				Product:           &stripe.Product{ID: "P1"},
				UnitAmountDecimal: 1234.5,
				Recurring:         &stripe.PriceRecurring{Interval: stripe.PriceRecurringIntervalYear, IntervalCount: 1},
			}},
			{Quantity: 1, Plan: &stripe.Plan{
				Product:       &stripe.Product{ID: "P2"},
				Amount:        500,
				Interval:      stripe.PlanIntervalWeek,
				IntervalCount: 2,
			}},
			{Quantity: 1},
			nil,
		}},
	}

	snapshot := toSnapshot(sub)

	assert.True(t, snapshot.CancelAtPeriodEnd)
	require.NotNil(t, snapshot.CanceledAt)
	require.NotNil(t, snapshot.TrialEnd)
	assert.True(t, snapshot.CurrentPeriodEnd.IsZero())
	assert.Empty(t, snapshot.CustomerID)
	assert.Equal(t, []entity.LineItem{
		{ProductID: "P1", UnitAmount: 1235, Quantity: 2, Interval: entity.IntervalYear, IntervalCount: 1},
		{ProductID: "P2", UnitAmount: 500, Quantity: 1, Interval: entity.IntervalWeek, IntervalCount: 2},
	}, snapshot.Items)
}
