package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wekeepgrowing/launch-revenue/internal/domain/entity"
	domainErrors "github.com/wekeepgrowing/launch-revenue/internal/domain/errors"
	domainRepo "github.com/wekeepgrowing/launch-revenue/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	testProductID = "3f2b8a0e-6d1c-4b7a-9f0e-2a1d5c7e9b10"
	testOwnerID   = "550e8400-e29b-41d4-a716-446655440000"
)

func newMockRepository(t *testing.T) (domainRepo.ProductRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return NewProductRepository(db, zap.NewNop()), mock
}

func TestProductRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		verifiedAt := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{
			"id", "owner_id", "name", "stripe_account_id", "stripe_product_filter",
			"verified_mrr_cents", "mrr_verified_at", "created_at", "updated_at",
		}).AddRow(testProductID, testOwnerID, "Launch Kit", "acct_1", "P1,P2", 6000, verifiedAt, verifiedAt, verifiedAt)
		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1`).WillReturnRows(rows)

		product, err := repo.GetByID(ctx, testProductID)
		require.NoError(t, err)
		require.NotNil(t, product)
		assert.Equal(t, testOwnerID, product.OwnerID)
		assert.Equal(t, "acct_1", *product.ConnectedAccountID)
		assert.Equal(t, "P1,P2", *product.ProductFilter)
		assert.Equal(t, int64(6000), *product.VerifiedRevenueCents)
		assert.True(t, verifiedAt.Equal(*product.VerifiedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		product, err := repo.GetByID(ctx, testProductID)
		require.NoError(t, err)
		assert.Nil(t, product)
	})

	t.Run("malformed id never queries", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		product, err := repo.GetByID(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Nil(t, product)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Writes(t *testing.T) {
	ctx := context.Background()
	verification := entity.Verification{RevenueCents: 6000, VerifiedAt: time.Now().UTC()}

	tests := []struct {
		name    string
		pattern string
		write   func(repo domainRepo.ProductRepository) error
	}{
		{
			name:    "save connection",
			pattern: `UPDATE "products" SET .*"mrr_verified_at".*"stripe_account_id".*"verified_mrr_cents"`,
			write: func(repo domainRepo.ProductRepository) error {
				return repo.SaveConnection(ctx, testProductID, "acct_1", &verification)
			},
		},
		{
			name:    "save verification",
			pattern: `UPDATE "products" SET .*"mrr_verified_at".*"verified_mrr_cents"`,
			write: func(repo domainRepo.ProductRepository) error {
				return repo.SaveVerification(ctx, testProductID, verification)
			},
		},
		{
			name:    "save filter",
			pattern: `UPDATE "products" SET .*"stripe_product_filter"`,
			write: func(repo domainRepo.ProductRepository) error {
				filter := "P1"
				return repo.SaveFilter(ctx, testProductID, &filter)
			},
		},
		{
			name:    "clear connection",
			pattern: `UPDATE "products" SET .*"mrr_verified_at".*"stripe_account_id".*"verified_mrr_cents"`,
			write: func(repo domainRepo.ProductRepository) error {
				return repo.ClearConnection(ctx, testProductID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectBegin()
			mock.ExpectExec(tt.pattern).WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			require.NoError(t, tt.write(repo))
			assert.NoError(t, mock.ExpectationsWereMet())
		})

		t.Run(tt.name+" missing row", func(t *testing.T) {
			repo, mock := newMockRepository(t)
			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE "products"`).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()

			assert.ErrorIs(t, tt.write(repo), domainErrors.ErrProductNotFound)
		})
	}
}

func TestProductRepository_SaveConnectionWithoutVerificationClearsFigure(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "products" SET "mrr_verified_at"=\$1,"stripe_account_id"=\$2,"verified_mrr_cents"=\$3`).
		WithArgs(nil, "acct_2", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveConnection(context.Background(), testProductID, "acct_2", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Ping(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer sqlDB.Close()

	mock.ExpectPing()
	mock.ExpectPing()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	assert.NoError(t, NewProductRepository(db, zap.NewNop()).Ping(context.Background()))
}
